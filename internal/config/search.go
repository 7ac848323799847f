package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SearchConfig holds the query layer's cache and retry settings
type SearchConfig struct {
	// Result cache settings
	CacheSize         int
	FreshForSeconds   int
	EvictAfterSeconds int
	SweepSeconds      int
	EnableCache       bool

	// Query-level retry settings (independent of the HTTP client's own retries)
	Retries       int
	BackoffBaseMs int
}

const (
	// Default values
	defaultSearchCacheSize   = 128
	defaultFreshForSeconds   = 60
	defaultEvictAfterSeconds = 300
	defaultSweepSeconds      = 30
	defaultSearchRetries     = 2
	defaultBackoffBaseMs     = 1000
)

// GetSearchConfig returns the query layer configuration from environment variables or defaults
func GetSearchConfig() *SearchConfig {
	config := &SearchConfig{
		CacheSize:         getEnvInt("SEARCH_CACHE_SIZE", defaultSearchCacheSize),
		FreshForSeconds:   getEnvInt("SEARCH_FRESH_SECONDS", defaultFreshForSeconds),
		EvictAfterSeconds: getEnvInt("SEARCH_EVICT_SECONDS", defaultEvictAfterSeconds),
		SweepSeconds:      getEnvInt("SEARCH_SWEEP_SECONDS", defaultSweepSeconds),
		EnableCache:       getEnvBool("SEARCH_ENABLE_CACHE", true),
		Retries:           getEnvInt("SEARCH_RETRIES", defaultSearchRetries),
		BackoffBaseMs:     getEnvInt("SEARCH_BACKOFF_MS", defaultBackoffBaseMs),
	}

	log.Debug().
		Int("CacheSize", config.CacheSize).
		Int("FreshForSeconds", config.FreshForSeconds).
		Int("EvictAfterSeconds", config.EvictAfterSeconds).
		Int("SweepSeconds", config.SweepSeconds).
		Bool("EnableCache", config.EnableCache).
		Int("Retries", config.Retries).
		Int("BackoffBaseMs", config.BackoffBaseMs).
		Msg("Search configuration loaded")

	return config
}

// Helper methods for the SearchConfig struct
func (c *SearchConfig) GetFreshFor() time.Duration {
	return time.Duration(c.FreshForSeconds) * time.Second
}

func (c *SearchConfig) GetEvictAfter() time.Duration {
	return time.Duration(c.EvictAfterSeconds) * time.Second
}

func (c *SearchConfig) GetSweepInterval() time.Duration {
	return time.Duration(c.SweepSeconds) * time.Second
}

func (c *SearchConfig) GetBackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMs) * time.Millisecond
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
