package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// InsecureJWTSecret is the shipped default signing secret. Leaving it in
// place is a misconfiguration: login and session checks refuse to use it
// outside dev mode.
const InsecureJWTSecret = "change-me-secret"

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SitePassword      string        // shared secret exchanged for a session token ("" => login answers 500)
	AdminPassword     string        // administrator secret, checked per request ("" => nobody is admin)
	JWTSecret         string        // session signing secret
	JWTSecretInsecure bool          // true when JWTSecret is still the shipped default
	SessionTTL        time.Duration // session token lifetime (default 720h)
	DevMode           bool          // relaxes the insecure-secret refusal for local work

	ScheduleFile string // optional YAML overriding horizon/cutoff/timezone

	// Redis
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

	InternalCIDRS []string // IPs allowed to reach /healthz and /metrics (empty = no filter)
	TrustProxy    bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("KALENDARZ_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("KALENDARZ_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("KALENDARZ_LOG_LEVEL", "info"),
		PrettyLog: mustBool("KALENDARZ_PRETTY_LOG", true),

		// Secrets. Site and admin passwords stay optional at boot so the
		// endpoints can answer 500 instead of the process refusing to start.
		SitePassword:  getenv("KALENDARZ_SITE_PASSWORD", ""),
		AdminPassword: getenv("KALENDARZ_ADMIN_PASSWORD", ""),
		JWTSecret:     getenv("KALENDARZ_JWT_SECRET", InsecureJWTSecret),
		SessionTTL:    mustDuration("KALENDARZ_SESSION_TTL", 30*24*time.Hour),
		DevMode:       mustBool("KALENDARZ_DEV_MODE", false),

		// Schedule policy
		ScheduleFile: getenv("KALENDARZ_SCHEDULE_FILE", ""),

		// Redis settings
		RedisAddr:             requireEnv("KALENDARZ_REDIS_ADDR"),
		RedisUser:             getenv("KALENDARZ_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("KALENDARZ_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("KALENDARZ_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("KALENDARZ_REDIS_DB", 0),
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
		InternalCIDRS: splitAndTrim(getenv("KALENDARZ_INTERNAL_CIDRS", "")),
		TrustProxy:    mustBool("KALENDARZ_TRUST_PROXY", true),
	}

	cfg.JWTSecretInsecure = cfg.JWTSecret == InsecureJWTSecret || cfg.JWTSecret == ""

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: KALENDARZ_REDIS_PASSWORD is required when KALENDARZ_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.SitePassword = "***REDACTED***"
		cfgCopy.AdminPassword = "***REDACTED***"
		cfgCopy.JWTSecret = "***REDACTED***"
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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
