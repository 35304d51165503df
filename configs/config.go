package configs

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"log"
	"os"
	"time"
)

type Config struct {
	ServerPort             string `envconfig:"SERVER_PORT" default:"8080"`
	ServerTimeOutInSeconds int64  `envconfig:"SERVER_TIME_OUT_IN_SECONDS" default:"5"`
	History                HistoryConfig
	RateLimit              RateLimitConfig
}

type HistoryConfig struct {
	FetchDelayMs    int64 `envconfig:"HISTORY_FETCH_DELAY_MS" default:"500"`
	CreateDelayMs   int64 `envconfig:"HISTORY_CREATE_DELAY_MS" default:"300"`
	DefaultPageSize int   `envconfig:"HISTORY_DEFAULT_PAGE_SIZE" default:"20"`
	// MaxPageSize of 0 leaves the page size unbounded
	MaxPageSize int `envconfig:"HISTORY_MAX_PAGE_SIZE" default:"0"`
}

type RateLimitConfig struct {
	// RequestsPerMinute of 0 disables rate limiting of the API routes
	RequestsPerMinute int `envconfig:"API_RATE_LIMIT_PER_MINUTE" default:"600"`
}

// FetchDelay returns the simulated latency of a history page read
func (h HistoryConfig) FetchDelay() time.Duration {
	return time.Duration(h.FetchDelayMs) * time.Millisecond
}

// CreateDelay returns the simulated latency of a comparison task creation
func (h HistoryConfig) CreateDelay() time.Duration {
	return time.Duration(h.CreateDelayMs) * time.Millisecond
}

// ServerTimeOut bounds request reads/writes and the graceful shutdown
func (c Config) ServerTimeOut() time.Duration {
	return time.Duration(c.ServerTimeOutInSeconds) * time.Second
}

// Validate reports settings that would make the service misbehave
func (c Config) Validate() error {
	if c.History.FetchDelayMs < 0 || c.History.CreateDelayMs < 0 {
		return fmt.Errorf("history delays must not be negative")
	}
	if c.History.DefaultPageSize < 1 {
		return fmt.Errorf("HISTORY_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.History.DefaultPageSize)
	}
	if c.History.MaxPageSize < 0 {
		return fmt.Errorf("HISTORY_MAX_PAGE_SIZE must not be negative, got %d", c.History.MaxPageSize)
	}
	if c.History.MaxPageSize > 0 && c.History.DefaultPageSize > c.History.MaxPageSize {
		return fmt.Errorf("HISTORY_DEFAULT_PAGE_SIZE (%d) exceeds HISTORY_MAX_PAGE_SIZE (%d)", c.History.DefaultPageSize, c.History.MaxPageSize)
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("API_RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

// LoadConfig reads an optional .env file and then the process environment
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	var cfg Config
	err = envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func InitConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}

	return cfg
}
