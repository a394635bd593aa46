package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	HTTP struct {
		Port string `env:"HTTP_PORT" envDefault:"6060"`
	}

	Database struct {
		Path string `env:"SQLITE_PATH" envDefault:"./clinic.db"`
	}

	Auth struct {
		JWTSecret string        `env:"JWT_SECRET,required"`
		TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED"`
		Size    int  `env:"CACHE_SIZE" envDefault:"512"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
