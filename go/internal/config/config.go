package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mcdev12/genrevote/go/internal/cache"
	"github.com/mcdev12/genrevote/go/internal/feed"
	"github.com/mcdev12/genrevote/go/internal/voteclient"
)

// Config holds the client settings read from VOTE_* environment variables.
type Config struct {
	PageURL       string
	WSPath        string
	WSURL         string
	CatalogueFile string
	CacheBackend  string
	CachePath     string
	NATSURL       string
	NATSSubject   string
	StatusAddr    string
	LogLevel      string
	VoterID       string
	FetchVoterID  bool
	PingInterval  int // seconds
}

// NewConfigFromEnv reads VOTE_* environment variables (with defaults).
func NewConfigFromEnv() Config {
	return Config{
		PageURL:       getEnv("VOTE_PAGE_URL", "http://localhost:80/"),
		WSPath:        getEnv("VOTE_WS_PATH", voteclient.DefaultPath),
		WSURL:         getEnv("VOTE_WS_URL", ""),
		CatalogueFile: getEnv("VOTE_CATALOGUE_FILE", ""),
		CacheBackend:  getEnv("VOTE_CACHE_BACKEND", cache.BackendFile),
		CachePath:     getEnv("VOTE_CACHE_PATH", "votos.json"),
		NATSURL:       getEnv("VOTE_NATS_URL", ""),
		NATSSubject:   getEnv("VOTE_NATS_SUBJECT", feed.DefaultConfig().Subject),
		StatusAddr:    getEnv("VOTE_STATUS_ADDR", ""),
		LogLevel:      getEnv("VOTE_LOG_LEVEL", "info"),
		VoterID:       getEnv("VOTE_VOTER_ID", ""),
		FetchVoterID:  getEnvAsBool("VOTE_FETCH_VOTER_ID", false),
		PingInterval:  getEnvAsInt("VOTE_PING_INTERVAL", 30),
	}
}

// Endpoint returns the WebSocket URL to dial. VOTE_WS_URL wins over the
// endpoint derived from the page URL.
func (c Config) Endpoint() (string, error) {
	if c.WSURL != "" {
		return c.WSURL, nil
	}
	return voteclient.EndpointFromPage(c.PageURL, c.WSPath)
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate rejects settings that cannot start a session.
func (c Config) Validate() error {
	if _, err := c.Endpoint(); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	switch c.CacheBackend {
	case cache.BackendMemory, cache.BackendFile, cache.BackendSQLite:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.CacheBackend != cache.BackendMemory && c.CachePath == "" {
		return fmt.Errorf("cache backend %q needs VOTE_CACHE_PATH", c.CacheBackend)
	}
	if c.PingInterval <= 0 {
		return fmt.Errorf("ping interval must be positive, got %d", c.PingInterval)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
