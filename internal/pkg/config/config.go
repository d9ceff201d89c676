package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=8h"`

	Backend   BackendConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Audit     AuditConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8081"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type RateLimitConfig struct {
	Window      time.Duration `env:"RATE_LIMIT_WINDOW, default=60s"`
	MaxRequests int           `env:"RATE_LIMIT_MAX,    default=100"`
	// LoginMaxAttempts bounds login attempts per username and IP inside Window.
	LoginMaxAttempts int `env:"LOGIN_MAX_ATTEMPTS, default=5"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the gateway runs with developer defaults
// such as pretty console logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
