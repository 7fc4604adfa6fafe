package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/session"
)

// Session backends selectable in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

const (
	defaultServeAddr = "127.0.0.1:8080"
	defaultRedisAddr = "localhost:6379"
)

// Config is the on-disk configuration read from config.toml.
//
//	[sessions]
//	backend    = "redis"
//	ttl        = "168h"
//	redis_addr = "localhost:6379"
//	redis_db   = 2
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Sessions SessionsConfig `toml:"sessions"`
	Serve    ServeConfig    `toml:"serve"`
}

// SessionsConfig selects where navigation trails are saved.
type SessionsConfig struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Sessions: SessionsConfig{
			Backend:   BackendFile,
			TTL:       Duration{session.DefaultTTL},
			RedisAddr: defaultRedisAddr,
		},
		Serve: ServeConfig{Addr: defaultServeAddr},
	}
}

// LoadConfig reads path on top of DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate checks field values that TOML decoding cannot.
func (c Config) Validate() error {
	switch c.Sessions.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Sessions.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "sessions.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown sessions.backend %q (use file, redis or none)", c.Sessions.Backend)
	}
	if c.Sessions.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sessions.ttl must not be negative")
	}
	if c.Sessions.RedisDB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sessions.redis_db must not be negative")
	}
	return nil
}
