package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is the signing secret used when JWT_SECRET is unset.
// It exists so development works out of the box; production startup
// refuses to run with it.
const DefaultJWTSecret = "insecure-dev-secret-change-me"

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=insecure-dev-secret-change-me"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`

	LoginRateLimit    int           `env:"LOGIN_RATE_LIMIT,    default=5"`
	LoginRateWindow   time.Duration `env:"LOGIN_RATE_WINDOW,   default=15m"`
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT,  default=3"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW, default=15m"`

	Mongo MongoConfig
	Redis RedisConfig
}

// MongoConfig selects the persistent user/contact store. Leave URI empty
// to run fully in memory.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=cleansite"`
}

// RedisConfig selects the shared rate limiter and duplicate checker.
// Leave Addr empty to use the in-memory limiter.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// IsProduction reports whether the service runs in a production-like
// environment; it controls the Secure cookie flag among other things.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
