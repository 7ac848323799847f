package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment    string
	LogLevel       zerolog.Level
	HTTPTimeout    time.Duration
	MaxRetries     int
	BackoffBase    time.Duration
	UserAgent      string
	APIKey         string
	StationBaseURL string
	GeocodeBaseURL string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithMaxRetries allows setting the HTTP retry count
func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithAPIKey allows setting the station directory API key
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithStationBaseURL allows overriding the station directory endpoint
func WithStationBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.StationBaseURL = baseURL
	}
}

// WithGeocodeBaseURL allows overriding the geocoding endpoint
func WithGeocodeBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.GeocodeBaseURL = baseURL
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:    "production",
		LogLevel:       zerolog.InfoLevel,
		HTTPTimeout:    10 * time.Second,
		MaxRetries:     2,
		BackoffBase:    time.Second,
		UserAgent:      "findacharger/1.0 (github.com/shaed-rp/findacharger)",
		StationBaseURL: "https://developer.nrel.gov/api/alt-fuel-stations/v1",
		GeocodeBaseURL: "https://nominatim.openstreetmap.org",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithMaxRetries(getEnvInt("HTTP_MAX_RETRIES", 2)),
		WithAPIKey(os.Getenv("STATION_API_KEY")),
	)
	cfg.BackoffBase = getDurationEnvOrDefault("HTTP_BACKOFF_BASE", time.Second)
	if ua := os.Getenv("HTTP_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}
	if baseURL := os.Getenv("STATION_API_BASE_URL"); baseURL != "" {
		cfg.StationBaseURL = baseURL
	}
	if baseURL := os.Getenv("GEOCODE_BASE_URL"); baseURL != "" {
		cfg.GeocodeBaseURL = baseURL
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
