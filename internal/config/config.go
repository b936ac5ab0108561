// Package config loads rotacheck settings from a config file, environment
// variables and defaults, in increasing order of precedence:
//
//	defaults < rotacheck.{yaml,json,toml} < ROTACHECK_* environment
//
// Nested keys map to environment variables with dots replaced by
// underscores, e.g. cache.backend is ROTACHECK_CACHE_BACKEND.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/errors"
)

const (
	appName   = "rotacheck"
	envPrefix = "ROTACHECK"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the resolved configuration.
type Config struct {
	Frame  court.Frame  `mapstructure:"frame"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// CacheConfig selects and sizes the memo backend.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RedisConfig holds the redis backend connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("frame.width", court.DefaultFrame.Width)
	v.SetDefault("frame.height", court.DefaultFrame.Height)

	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.size", 4096)
	v.SetDefault("cache.ttl", "10m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "rotacheck:")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdownTimeout", "10s")

	v.SetDefault("log.level", "info")
}

// Load resolves the configuration. If path is non-empty that file must
// exist; otherwise rotacheck.{yaml,json,toml} is looked up in the working
// directory and the user config directory, and a missing file is fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(appName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "error reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if err := errors.ValidateFrame(c.Frame.Width, c.Frame.Height); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be memory, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache size must not be negative, got %d", c.Cache.Size)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "log level")
	}
	return nil
}

// LogLevel returns the parsed log level, info if it cannot be parsed.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Transformer returns the coordinate transformer for the configured frame.
func (c *Config) Transformer() (*court.Transformer, error) {
	return court.NewTransformer(c.Frame)
}
