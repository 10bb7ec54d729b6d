package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog
	CatalogFile            string        // CSV backing used when Redis is not configured
	SeedFile               string        // optional YAML file of user-authored recipes
	CatalogRefreshInterval time.Duration // 0 = refresh only when empty or on POST /reload
	RefreshConcurrency     int           // letters fetched in parallel
	LetterTimeout          time.Duration // bound on a single letter fetch

	// Remote drink API
	CocktailDBURL string
	RemoteTimeout time.Duration
	RemoteRPS     float64
	RemoteBurst   int

	// Inbound rate limit, per client IP
	RateLimitBurst     int
	RateLimitPerMinute int

	// Redis (optional, empty address = CSV file backing)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// RedisEnabled reports whether a Redis address was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BARBACK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BARBACK_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BARBACK_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("BARBACK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BARBACK_PRETTY_LOG", false),

		// Catalog
		CatalogFile:            getenv("BARBACK_CATALOG_FILE", "data/default.csv"),
		SeedFile:               getenv("BARBACK_SEED_FILE", ""),
		CatalogRefreshInterval: mustDuration("BARBACK_CATALOG_REFRESH_INTERVAL", 0),
		RefreshConcurrency:     getenvInt("BARBACK_REFRESH_CONCURRENCY", 4),
		LetterTimeout:          mustDuration("BARBACK_LETTER_TIMEOUT", 10*time.Second),

		// Remote drink API
		CocktailDBURL: getenv("BARBACK_COCKTAILDB_URL", "https://www.thecocktaildb.com/api/json/v1/1/"),
		RemoteTimeout: mustDuration("BARBACK_REMOTE_TIMEOUT", 10*time.Second),
		RemoteRPS:     getenvFloat("BARBACK_REMOTE_RPS", 5),
		RemoteBurst:   getenvInt("BARBACK_REMOTE_BURST", 5),

		// Inbound rate limit
		RateLimitBurst:     getenvInt("BARBACK_RATE_LIMIT_BURST", 30),
		RateLimitPerMinute: getenvInt("BARBACK_RATE_LIMIT_PER_MINUTE", 120),

		// Redis settings
		RedisAddr:             getenv("BARBACK_REDIS_ADDR", ""),
		RedisUser:             getenv("BARBACK_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("BARBACK_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("BARBACK_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("BARBACK_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("BARBACK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("BARBACK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("BARBACK_TRUST_PROXY", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfgCopy.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("BARBACK_REDIS_PASSWORD is required when BARBACK_REDIS_PASSWORD_REQUIRED=true")
	}
	if !c.RedisEnabled() && c.CatalogFile == "" {
		return fmt.Errorf("BARBACK_CATALOG_FILE must be set when BARBACK_REDIS_ADDR is empty")
	}
	if c.RefreshConcurrency < 1 || c.RefreshConcurrency > 26 {
		return fmt.Errorf("BARBACK_REFRESH_CONCURRENCY must be between 1 and 26, got %d", c.RefreshConcurrency)
	}
	if c.RemoteRPS <= 0 {
		return fmt.Errorf("BARBACK_REMOTE_RPS must be > 0, got %v", c.RemoteRPS)
	}
	return nil
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
