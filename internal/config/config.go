package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
	BackendRedis    = "redis"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Logging LoggingConfig
	Auth    AuthConfig
	Upload  UploadConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	TrustProxy      bool          `env:"SERVER_TRUST_PROXY" envDefault:"false"`
	// OriginIdleTimeout evicts cached origin workspaces that saw no request
	// for this long. Zero keeps them for the process lifetime.
	OriginIdleTimeout time.Duration `env:"ORIGIN_IDLE_TIMEOUT" envDefault:"30m"`
}

// StorageConfig selects the durable key-value backend behind every origin namespace.
type StorageConfig struct {
	Backend  string `env:"STORAGE_BACKEND" envDefault:"database"`
	Database DatabaseConfig
	Redis    RedisConfig
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"0"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"0"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"0s"`
	ConnMaxIdleTime time.Duration `env:"DATABASE_CONN_MAX_IDLE_TIME" envDefault:"0s"`
	UseMock         bool          `env:"DATABASE_USE_MOCK" envDefault:"false"`
}

// RedisConfig contains the redis connection and retry settings.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Username       string        `env:"REDIS_USERNAME"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB" envDefault:"0"`
	DialTimeout    time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout    time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout   time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	PoolSize       int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	MaxWait        time.Duration `env:"REDIS_MAX_WAIT" envDefault:"10s"`
	PingTimeout    time.Duration `env:"REDIS_PING_TIMEOUT" envDefault:"5s"`
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// AuthConfig groups session cookie settings and the simulated authentication round trips.
type AuthConfig struct {
	Session     SessionConfig
	SignInDelay time.Duration `env:"AUTH_SIGNIN_DELAY" envDefault:"1500ms"`
	SignUpDelay time.Duration `env:"AUTH_SIGNUP_DELAY" envDefault:"2s"`
	RateLimit   RateLimitConfig
}

// SessionConfig controls the browser session cookie that carries the origin id.
type SessionConfig struct {
	Lifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"creatives_session"`
	CookieDomain string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// RateLimitConfig bounds how often a single client may submit the auth forms.
type RateLimitConfig struct {
	PerSecond float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"1"`
	Burst     int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"5"`
}

// UploadConfig bounds the files accepted by the post creation form.
type UploadConfig struct {
	MaxFileBytes int64 `env:"UPLOAD_MAX_FILE_BYTES" envDefault:"10485760"`
}

// Load inspects the environment (and an optional .env file) and builds a Config value.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Server.Addr = firstNonEmpty(
		os.Getenv("SERVER_ADDR"),
		os.Getenv("ADDR"),
		":8080",
	)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case BackendMemory, BackendDatabase, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	if cfg.Upload.MaxFileBytes <= 0 {
		return Config{}, fmt.Errorf("upload size limit must be positive")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
