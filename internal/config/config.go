package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server     ServerConfig     `envPrefix:"SERVER_"`
	ProductAPI ProductAPIConfig `envPrefix:"PRODUCT_API_"`
	Sync       SyncConfig       `envPrefix:"SYNC_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type ProductAPIConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:3001"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// SyncConfig tunes the synchronization engine. RefreshInterval of zero
// disables periodic refresh; MaxRetries of zero removes the retry cap.
type SyncConfig struct {
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"0"`
	RetryDelay      time.Duration `env:"RETRY_DELAY" envDefault:"2s"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"5"`
	PageSize        int           `env:"PAGE_SIZE" envDefault:"12"`
	AutoFetch       bool          `env:"AUTO_FETCH" envDefault:"true"`
	InitialQuery    string        `env:"INITIAL_QUERY"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
