package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8000"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	StaticDir string `env:"STATIC_DIR, default=public"`

	// TokenTTL bounds the lifetime of issued bearer tokens. Zero disables
	// the exp claim entirely (tokens never expire).
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// BcryptCost is the hashing work factor; HashWorkers caps how many
	// bcrypt computations may run concurrently.
	BcryptCost  int `env:"BCRYPT_COST,  default=10"`
	HashWorkers int `env:"HASH_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notes"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,          default=localhost:6379"`
	DB           int           `env:"REDIS_DB,            default=0"`
	UserCacheTTL time.Duration `env:"REDIS_USER_CACHE_TTL, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
