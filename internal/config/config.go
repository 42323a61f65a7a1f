// Package config loads service configuration from an optional YAML file
// merged with environment variables.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type ServerCfg struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type AuthCfg struct {
	Secret   string        `koanf:"secret"` // empty means a random per-process secret
	TokenTTL time.Duration `koanf:"token_ttl"`
}

type EngineCfg struct {
	InMemoryOnly bool `koanf:"in_memory_only"` // disable the partitioned backend
	ChunkRows    int  `koanf:"chunk_rows"`
	Workers      int  `koanf:"workers"`
}

type TelemetryCfg struct {
	Enabled bool `koanf:"enabled"`
	Port    int  `koanf:"port"`
}

type Config struct {
	Server    ServerCfg    `koanf:"server"`
	Auth      AuthCfg      `koanf:"auth"`
	Engine    EngineCfg    `koanf:"engine"`
	Telemetry TelemetryCfg `koanf:"telemetry"`
}

// Load merges YAML (if present) with env-vars
// (prefix `TABULAR__`, delimiter `__`).
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	_ = k.Load(env.Provider("TABULAR__", "__", nil), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = time.Minute
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 5 * time.Minute
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 30 * time.Minute
	}
	if c.Telemetry.Port == 0 {
		c.Telemetry.Port = 9100
	}
	// Engine.ChunkRows and Engine.Workers stay zero here; engine.NewCaps
	// resolves their defaults.
}
