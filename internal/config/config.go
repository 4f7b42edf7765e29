package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/linker/internal/store"
)

type Config struct {
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Storage
	Backend          store.Kind    // file | sqlite | redis | memory
	DataDir          string        // directory for the file and sqlite backends
	PersistRetries   int           // extra write attempts after a failed persist (0 = none)
	PersistRetryMin  time.Duration // first wait between write attempts
	PersistRetryMax  time.Duration // cap on the wait between write attempts
	OperationTimeout time.Duration // bound on a single backend call from the CLI

	// HTTP shell
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	AllowedHosts    []string      // optional, restrict access to specific Host headers
	AllowedCIDRS    []string      // optional, restrict access to specific IPs/CIDRs
	TrustProxy      bool          // true => trust X-Forwarded-For headers
	RateBurst       int           // mutating requests allowed in a burst per IP
	RatePerMin      int           // refill rate of the per IP bucket

	// Homepage import
	ImportBookmarksFile string        // path to a Homepage bookmarks.yaml (empty = disabled)
	ImportServicesFile  string        // path to a Homepage services.yaml (empty = disabled)
	ImportInterval      time.Duration // interval between imports while serving

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

// Load reads the configuration from the environment, after an optional .env file.
func Load() *Config {
	_ = godotenv.Load() // a missing .env is the normal case

	cfg := &Config{
		// Logging
		LogLevel:  getenv("LINKER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKER_PRETTY_LOG", true),

		// Storage
		Backend:          requireKind("LINKER_BACKEND", store.KindFile),
		DataDir:          getenv("LINKER_DATA_DIR", defaultDataDir()),
		PersistRetries:   getenvInt("LINKER_PERSIST_RETRIES", 2),
		PersistRetryMin:  mustDuration("LINKER_PERSIST_RETRY_MIN", 50*time.Millisecond),
		PersistRetryMax:  mustDuration("LINKER_PERSIST_RETRY_MAX", time.Second),
		OperationTimeout: mustDuration("LINKER_OPERATION_TIMEOUT", 10*time.Second),

		// HTTP shell
		ListenPort:      getenv("LINKER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKER_SHUTDOWN_TIMEOUT", 5*time.Second),
		AllowedHosts:    splitAndTrim(getenv("LINKER_ALLOWED_HOSTS", "")),
		AllowedCIDRS:    splitAndTrim(getenv("LINKER_ALLOWED_CIDRS", "")),
		TrustProxy:      mustBool("LINKER_TRUST_PROXY", false),
		RateBurst:       getenvInt("LINKER_RATE_BURST", 20),
		RatePerMin:      getenvInt("LINKER_RATE_PER_MIN", 60),

		// Homepage import
		ImportBookmarksFile: getenv("LINKER_IMPORT_BOOKMARKS_FILE", ""),
		ImportServicesFile:  getenv("LINKER_IMPORT_SERVICES_FILE", ""),
		ImportInterval:      mustDuration("LINKER_IMPORT_INTERVAL", 24*time.Hour),

		// Redis
		RedisAddr:           getenv("LINKER_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("LINKER_REDIS_USERNAME", ""),
		RedisPassword:       getenv("LINKER_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKER_REDIS_DB", 0),
		RedisConnectTimeout: mustDuration("LINKER_REDIS_CONNECT_TIMEOUT", 10*time.Second),
		RedisRetryInterval:  mustDuration("LINKER_REDIS_RETRY_INTERVAL", 500*time.Millisecond),
		RedisMaxWait:        mustDuration("LINKER_REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("LINKER_REDIS_PING_TIMEOUT", 2*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// defaultDataDir is ~/.linker, or ./.linker when the home directory is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".linker"
	}
	return filepath.Join(home, ".linker")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireKind(key string, def store.Kind) store.Kind {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	kind, err := store.ParseKind(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %v", key, err))
	}
	return kind
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
