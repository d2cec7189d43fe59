package config

import (
	"fmt"
	"sync"

	"meetmatch/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string
	Port     int
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type GoogleAPIConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type ScheduleConfig struct {
	Timezone           string
	WindowStart        string
	WindowEnd          string
	DurationMinutes    int
	MaxSuggestions     int
	MinFreeSlotMinutes int
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	GoogleAPI GoogleAPIConfig
	Schedule  ScheduleConfig
}

var (
	mu  sync.RWMutex
	cfg *Config
)

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "meetmatch")
	v.SetDefault("DB_SSLMODE", constants.DatabaseSSLMode)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_EXPIRY_HOURS", 72)

	v.SetDefault("SCHEDULE_TIMEZONE", "UTC")
	v.SetDefault("SCHEDULE_WINDOW_START", constants.DefaultWindowStart)
	v.SetDefault("SCHEDULE_WINDOW_END", constants.DefaultWindowEnd)
	v.SetDefault("SCHEDULE_DURATION_MINUTES", constants.DefaultDurationMinutes)
	v.SetDefault("SCHEDULE_MAX_SUGGESTIONS", constants.DefaultMaxSuggestions)
	v.SetDefault("SCHEDULE_MIN_FREE_SLOT_MINUTES", constants.DefaultMinFreeSlotMinutes)

	c := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		GoogleAPI: GoogleAPIConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  v.GetString("GOOGLE_REDIRECT_URI"),
		},
		Schedule: ScheduleConfig{
			Timezone:           v.GetString("SCHEDULE_TIMEZONE"),
			WindowStart:        v.GetString("SCHEDULE_WINDOW_START"),
			WindowEnd:          v.GetString("SCHEDULE_WINDOW_END"),
			DurationMinutes:    v.GetInt("SCHEDULE_DURATION_MINUTES"),
			MaxSuggestions:     v.GetInt("SCHEDULE_MAX_SUGGESTIONS"),
			MinFreeSlotMinutes: v.GetInt("SCHEDULE_MIN_FREE_SLOT_MINUTES"),
		},
	}

	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	cfg = c
	mu.Unlock()
	return c, nil
}

// Get returns the loaded configuration and panics when Load has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		panic("config not loaded")
	}
	return cfg
}

// GetSafe is Get without the panic, for code paths that can run before
// Load (tests, defaults).
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return cfg, cfg != nil
}
