// internal/config/config.go
//
// Process configuration read from the environment (after godotenv has
// loaded any .env file). Defaults keep `go run .` working on a laptop.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`

	DBPath    string `env:"DB_PATH" envDefault:"./data/app.db"`
	KVBackend string `env:"KV_BACKEND" envDefault:"sqlite"` // sqlite | memory | redis
	RedisURL  string `env:"REDIS_URL"`
	DataDir   string `env:"DATA_DIR"`

	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"timeline_token"`

	DailyTZ  string `env:"DAILY_TZ" envDefault:"Local"`
	ShareURL string `env:"SHARE_URL" envDefault:"https://avi-trivia.netlify.app"`
	DevMode  bool   `env:"DEV_MODE" envDefault:"false"`

	ImagePrefetch            bool `env:"IMAGE_PREFETCH" envDefault:"false"`
	ImagePrefetchConcurrency int  `env:"IMAGE_PREFETCH_CONCURRENCY" envDefault:"4"`
}

// Load parses the environment and validates the enumerated fields.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.KVBackend = strings.ToLower(cfg.KVBackend)
	switch cfg.KVBackend {
	case "sqlite", "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("config: KV_BACKEND=redis needs REDIS_URL")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown KV_BACKEND %q", cfg.KVBackend)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if cfg.ImagePrefetchConcurrency < 1 {
		cfg.ImagePrefetchConcurrency = 1
	}
	return cfg, nil
}

// Location resolves DAILY_TZ; "Local" or empty means the server zone.
func (c Config) Location() (*time.Location, error) {
	if c.DailyTZ == "" || strings.EqualFold(c.DailyTZ, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DailyTZ)
	if err != nil {
		return nil, fmt.Errorf("config: DAILY_TZ: %w", err)
	}
	return loc, nil
}

func (c Config) Production() bool { return strings.EqualFold(c.AppEnv, "production") }

// TokenTTL is how long a login cookie stays valid.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
