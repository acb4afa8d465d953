package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Progress store backends.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Catalog struct {
		// Path to a JSON question file; empty uses the bundled dataset.
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"catalog"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Progress struct {
		Store string `yaml:"store"`
	} `yaml:"progress"`
}

// Load reads YAML config from path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	c.Progress.Store = strings.ToLower(strings.TrimSpace(c.Progress.Store))
	if c.Progress.Store == "" {
		switch {
		case c.SQLite.Path != "":
			c.Progress.Store = StoreSQLite
		default:
			c.Progress.Store = StoreMemory
		}
	}
}

// Validate checks that the selected progress store has its connection settings.
func (c Config) Validate() error {
	switch c.Progress.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("progress store sqlite requires sqlite.path")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("progress store redis requires redis.addr")
		}
	case StorePostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("progress store postgres requires postgres.url")
		}
	default:
		return fmt.Errorf("unknown progress store %q", c.Progress.Store)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
