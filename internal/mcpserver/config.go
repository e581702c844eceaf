package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// List tool defaults.
	ListLimit int
	MaxLimit  int

	// Size limits.
	MaxInlineSize int64
	MaxBodySize   int64

	// URL inputs may reach private addresses.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASGUARD_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASGUARD_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASGUARD_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASGUARD_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASGUARD_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASGUARD_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASGUARD_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("OASGUARD_LIST_LIMIT", 100),
		MaxLimit:           envInt("OASGUARD_MAX_LIMIT", 1000),
		MaxInlineSize:      envBytes("OASGUARD_MAX_INLINE_SIZE", 10<<20),
		MaxBodySize:        envBytes("OASGUARD_MAX_BODY_SIZE", 1<<20),
		AllowPrivateIPs:    envBool("OASGUARD_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// envBytes accepts plain byte counts as well as sizes like "5MiB" or "512kB".
func envBytes(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := humanize.ParseBytes(v)
	if err != nil || n == 0 || n > 1<<40 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", humanize.IBytes(uint64(fallback)))
		return fallback
	}
	return int64(n)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
