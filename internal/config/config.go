// Package config loads server configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	JWT struct {
		Secret   string
		Lifetime time.Duration
	}
	BcryptCost int
}

// Load reads config from environment (CODECACHE_ prefix) and optional
// codecache.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CODECACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("codecache")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("jwt.lifetime", "24h")
	v.SetDefault("bcrypt.cost", 12)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.BcryptCost = v.GetInt("bcrypt.cost")

	lifetime, err := time.ParseDuration(v.GetString("jwt.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid CODECACHE_JWT_LIFETIME: %w", err)
	}
	cfg.JWT.Lifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("CODECACHE_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CODECACHE_DB_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("CODECACHE_JWT_SECRET is required")
	}

	return cfg, nil
}
