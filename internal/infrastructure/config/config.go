package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the console session cookie.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,        default=24h"`
	// RefreshInterval is how old a cached profile may get before the next
	// gated request reconciles it with the CRM API.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,   default=5m"`
	// CacheTTL bounds staleness for query cache entries no mutation touches.
	CacheTTL           time.Duration `env:"QUERY_CACHE_TTL,    default=30s"`
	ImportPollInterval time.Duration `env:"IMPORT_POLL_INTERVAL, default=5s"`

	Upstream UpstreamConfig
	Redis    RedisConfig
}

// UpstreamConfig locates the CRM API this console fronts.
type UpstreamConfig struct {
	BaseURL string        `env:"CRM_API_URL,     default=http://localhost:4000"`
	Timeout time.Duration `env:"CRM_API_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
