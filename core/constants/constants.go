package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Timeouts and lifetimes
const (
	DefaultTimeout        = 30 * time.Second
	ServerShutdownTimeout = 10 * time.Second
	GoogleAPICallTimeout  = 15 * time.Second

	OAuthStateTTL         = 10 * time.Minute
	BusyIntervalsCacheTTL = 2 * time.Minute

	// TokenRefreshLeeway is how close to expiry an access token may get
	// before a request forces a refresh. TokenRefreshHorizon is the window
	// the periodic background task looks ahead.
	TokenRefreshLeeway  = 5 * time.Minute
	TokenRefreshHorizon = 30 * time.Minute
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyOAuthState    = "oauth:state:"
	RedisKeyBusyIntervals = "calendar:busy:"
)

// Background task types
const (
	TaskRefreshCalendarTokens = "calendar:refresh_tokens"
)

// Scheduling defaults. Candidates are scanned on a fine grid; the visual
// day grid uses a coarser one.
const (
	CandidateStepMinutes   = 15
	DisplayGridStepMinutes = 30

	DefaultWindowStart        = "09:00"
	DefaultWindowEnd          = "22:00"
	DefaultDurationMinutes    = 60
	DefaultMaxSuggestions     = 5
	DefaultMinFreeSlotMinutes = 30
	DefaultSearchDays         = 7
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)
