package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"meetmatch/core/cache"
	"meetmatch/core/config"
	"meetmatch/core/constants"
	"meetmatch/core/errors"
	"meetmatch/core/logger"
	"meetmatch/modules/calendar/dto"
	"meetmatch/modules/calendar/entity"
	"meetmatch/modules/calendar/repository"
	scheduleEntity "meetmatch/modules/schedule/entity"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarServiceInterface manages calendar provider connections and
// resolves busy intervals for the scheduling engines.
type CalendarServiceInterface interface {
	SaveGoogleConnection(ctx context.Context, userID uuid.UUID, token *oauth2.Token, calendarEmail string) *errors.AppError
	GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.ConnectionDTO, *errors.AppError)
	Disconnect(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError
	FreeBusy(ctx context.Context, userID uuid.UUID, req *dto.FreeBusyRequest) (*dto.FreeBusyResponse, *errors.AppError)

	// BusyIntervals implements the schedule module's provider contract.
	BusyIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]scheduleEntity.TimeSlot, bool, error)

	RefreshExpiringTokens(ctx context.Context) error
}

type CalendarService struct {
	repo  repository.CalendarRepository
	cache cache.Cache
}

func NewCalendarService(repo repository.CalendarRepository, c cache.Cache) *CalendarService {
	return &CalendarService{repo: repo, cache: c}
}

// SaveGoogleConnection upserts the Google connection for a user after an
// OAuth exchange. An existing connection keeps its refresh token when the
// new exchange did not return one (Google only sends it on first consent).
func (s *CalendarService) SaveGoogleConnection(ctx context.Context, userID uuid.UUID, token *oauth2.Token, calendarEmail string) *errors.AppError {
	existing, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load calendar connection", err)
	}

	if existing != nil {
		existing.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			existing.RefreshToken = token.RefreshToken
		}
		existing.TokenExpiresAt = token.Expiry
		existing.CalendarEmail = calendarEmail
		existing.IsActive = true
		if err := s.repo.UpdateConnection(ctx, existing); err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to update calendar connection", err)
		}
		return nil
	}

	conn := &entity.CalendarConnection{
		UserID:         userID,
		Provider:       entity.ProviderGoogle,
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: token.Expiry,
		CalendarEmail:  calendarEmail,
		IsActive:       true,
	}
	if _, err := s.repo.CreateConnection(ctx, conn); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to save calendar connection", err)
	}
	return nil
}

func (s *CalendarService) GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.ConnectionDTO, *errors.AppError) {
	connections, err := s.repo.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list calendar connections", err)
	}

	result := make([]dto.ConnectionDTO, 0, len(connections))
	for _, conn := range connections {
		result = append(result, dto.ConnectionDTO{
			Provider:      conn.Provider,
			CalendarEmail: conn.CalendarEmail,
			IsActive:      conn.IsActive,
			ConnectedAt:   conn.CreatedAt,
		})
	}
	return result, nil
}

func (s *CalendarService) Disconnect(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError {
	existing, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, provider)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load calendar connection", err)
	}
	if existing == nil {
		return errors.NewAppError(errors.ErrNotFound, "calendar connection not found", nil)
	}
	if err := s.repo.DeleteConnection(ctx, userID, provider); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to disconnect calendar", err)
	}
	return nil
}

// FreeBusy exposes a user's raw busy intervals for a range, mainly for
// debugging a connection.
func (s *CalendarService) FreeBusy(ctx context.Context, userID uuid.UUID, req *dto.FreeBusyRequest) (*dto.FreeBusyResponse, *errors.AppError) {
	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "from must be RFC3339", err)
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must be RFC3339", err)
	}
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must be after from", nil)
	}

	intervals, connected, err := s.BusyIntervals(ctx, userID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to query free/busy", err)
	}
	if !connected {
		return nil, errors.NewAppError(errors.ErrNotFound, "no connected calendar", nil)
	}

	result := make([]dto.BusyIntervalDTO, 0, len(intervals))
	for _, interval := range intervals {
		result = append(result, dto.BusyIntervalDTO{
			Start: interval.Start.Format(time.RFC3339),
			End:   interval.End.Format(time.RFC3339),
		})
	}
	return &dto.FreeBusyResponse{Busy: result}, nil
}

// BusyIntervals returns the user's busy intervals between from and to. The
// second return value reports whether the user has an active connection; a
// disconnected user yields (nil, false, nil) so callers can degrade instead
// of failing. Results are cached briefly to keep repeated scans over the
// same participants from hammering the Google API.
func (s *CalendarService) BusyIntervals(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]scheduleEntity.TimeSlot, bool, error) {
	conn, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		return nil, false, err
	}
	if conn == nil {
		return nil, false, nil
	}

	cacheKey := busyCacheKey(userID, from, to)
	var cached []scheduleEntity.TimeSlot
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	intervals, err := s.queryGoogleFreeBusy(ctx, conn, from, to)
	if err != nil {
		return nil, true, err
	}

	if err := s.cache.Set(ctx, cacheKey, intervals, constants.BusyIntervalsCacheTTL); err != nil {
		logger.Warn("CalendarService:BusyIntervals: cache write failed", "error", err)
	}
	return intervals, true, nil
}

// RefreshExpiringTokens force-refreshes access tokens that expire within
// the refresh horizon. Connections whose refresh token was revoked are
// deactivated so the user sees a reconnect prompt instead of silent
// failures.
func (s *CalendarService) RefreshExpiringTokens(ctx context.Context) error {
	deadline := time.Now().Add(constants.TokenRefreshHorizon)
	connections, err := s.repo.GetConnectionsExpiringBefore(ctx, deadline)
	if err != nil {
		return err
	}
	if len(connections) == 0 {
		return nil
	}

	logger.Info("Refreshing expiring calendar tokens", "count", len(connections))

	for i := range connections {
		conn := &connections[i]
		if _, err := s.refreshedToken(ctx, conn, constants.TokenRefreshHorizon); err != nil {
			logger.Error("CalendarService:RefreshExpiringTokens", "connection_id", conn.ID, "error", err)
			conn.IsActive = false
			if uerr := s.repo.UpdateConnection(ctx, conn); uerr != nil {
				logger.Error("CalendarService:RefreshExpiringTokens:Deactivate", "connection_id", conn.ID, "error", uerr)
			}
		}
	}
	return nil
}

func (s *CalendarService) queryGoogleFreeBusy(ctx context.Context, conn *entity.CalendarConnection, from, to time.Time) ([]scheduleEntity.TimeSlot, error) {
	token, err := s.refreshedToken(ctx, conn, constants.TokenRefreshLeeway)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.GoogleAPICallTimeout)
	defer cancel()

	oauthCfg := googleOAuthConfig()
	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauthCfg.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	resp, err := svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query failed: %w", err)
	}

	var intervals []scheduleEntity.TimeSlot
	for _, cal := range resp.Calendars {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			intervals = append(intervals, scheduleEntity.TimeSlot{Start: start, End: end})
		}
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })
	return intervals, nil
}

// refreshedToken returns a valid access token for the connection,
// refreshing through the oauth2 TokenSource when the token expires within
// the leeway and persisting the rotated token when Google issued a new one.
func (s *CalendarService) refreshedToken(ctx context.Context, conn *entity.CalendarConnection, leeway time.Duration) (*oauth2.Token, error) {
	current := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiresAt,
	}
	if time.Until(conn.TokenExpiresAt) > leeway {
		return current, nil
	}

	// Strip the access token so the TokenSource refreshes even when the
	// current one has not yet expired.
	stale := &oauth2.Token{RefreshToken: conn.RefreshToken}
	fresh, err := googleOAuthConfig().TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, err
	}

	if fresh.AccessToken != conn.AccessToken {
		conn.AccessToken = fresh.AccessToken
		if fresh.RefreshToken != "" {
			conn.RefreshToken = fresh.RefreshToken
		}
		conn.TokenExpiresAt = fresh.Expiry
		if err := s.repo.UpdateConnection(ctx, conn); err != nil {
			logger.Error("CalendarService:refreshedToken: failed to persist token", "connection_id", conn.ID, "error", err)
		}
	}
	return fresh, nil
}

func busyCacheKey(userID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d", constants.RedisKeyBusyIntervals, userID, from.Unix(), to.Unix())
}

func googleOAuthConfig() *oauth2.Config {
	cfg, _ := config.GetSafe()
	var clientID, clientSecret, redirectURI string
	if cfg != nil {
		clientID = cfg.GoogleAPI.ClientID
		clientSecret = cfg.GoogleAPI.ClientSecret
		redirectURI = cfg.GoogleAPI.RedirectURI
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			calendar.CalendarReadonlyScope,
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleOAuthConfig exposes the shared OAuth configuration for the auth
// module's login flow.
func GoogleOAuthConfig() *oauth2.Config {
	return googleOAuthConfig()
}
