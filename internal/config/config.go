package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8787"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataDir          string        // directory holding the device stores
	SyncQuotaBytes   int64         // capacity of the quota-limited store (default 102400, the browser sync quota)
	DebounceInterval time.Duration // save-coalescing window for remote writes (default 1s)
	SeedFile         string        // optional YAML seed imported when the local store is empty
	AllowedOrigins   []string      // CORS origins for the extension UI (e.g. "chrome-extension://<id>")

	// Redis (remote sync backend; empty addr = local-only mode)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STASH_LISTEN_PORT", ":8787"),
		ShutdownTimeout: mustDuration("STASH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STASH_PRETTY_LOG", true),

		// Storage & sync
		DataDir:          getenv("STASH_DATA_DIR", defaultDataDir()),
		SyncQuotaBytes:   int64(getenvInt("STASH_SYNC_QUOTA_BYTES", 102400)),
		DebounceInterval: mustDuration("STASH_DEBOUNCE_INTERVAL", time.Second),
		SeedFile:         getenv("STASH_SEED_FILE", ""), // Optional, empty = no seeding
		AllowedOrigins:   splitAndTrim(getenv("STASH_ALLOWED_ORIGINS", "")),

		// Redis settings (optional: empty addr disables remote sync)
		RedisAddr:             getenv("STASH_REDIS_ADDR", ""),
		RedisUser:             getenv("STASH_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("STASH_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("STASH_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("STASH_REDIS_DB", 0),
		RedisConnectTimeout:   mustDuration("STASH_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("STASH_REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: STASH_REDIS_PASSWORD is required when STASH_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "stash")
	}
	return "./stash-data"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
