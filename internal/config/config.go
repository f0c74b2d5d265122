// Package config handles configuration loading for vndrate.
// It supports YAML config files, a .env file and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"  yaml:"source"`
	Cache   CacheConfig   `mapstructure:"cache"   yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig describes where the quote is scraped from.
type SourceConfig struct {
	URL      string        `mapstructure:"url"      yaml:"url"      validate:"required,url"`
	Selector string        `mapstructure:"selector" yaml:"selector" validate:"required"`
	Mode     string        `mapstructure:"mode"     yaml:"mode"     validate:"oneof=http browser"` // "http" or "browser"
	Timeout  time.Duration `mapstructure:"timeout"  yaml:"timeout"  validate:"gt=0"`
}

// CacheConfig selects and configures the rate store.
type CacheConfig struct {
	Backend string      `mapstructure:"backend" yaml:"backend" validate:"oneof=file redis"` // "file" or "redis"
	Path    string      `mapstructure:"path"    yaml:"path"    validate:"required_if=Backend file"`
	Redis   RedisConfig `mapstructure:"redis"   yaml:"redis"`
}

// RedisConfig holds Redis connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     yaml:"addr"     validate:"hostname_port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db"       yaml:"db"       validate:"gte=0"`
	Key      string `mapstructure:"key"      yaml:"key"      validate:"required"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (working directory)
//  2. ~/.vndrate/config.yaml (home directory)
//  3. /etc/vndrate/config.yaml (system)
//
// A .env file in the working directory is loaded into the environment first.
// Environment variables override config file values.
// Format: VNDRATE_<SECTION>_<KEY>, e.g., VNDRATE_CACHE_BACKEND
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".vndrate"))
	v.AddConfigPath("/etc/vndrate")

	bindEnv(v)

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("VNDRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.url", "https://www.google.com/finance/quote/USD-VND")
	v.SetDefault("source.selector", "div.YMlKec.fxKbKc")
	v.SetDefault("source.mode", "http")
	v.SetDefault("source.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.path", "./exchange_rate.json")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key", "vndrate:usd_vnd")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if pw := os.Getenv("VNDRATE_CACHE_REDIS_PASSWORD"); pw != "" {
		cfg.Cache.Redis.Password = pw
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" && cfg.Cache.Redis.Password == "" {
		cfg.Cache.Redis.Password = pw
	}
}

// loadDotEnv loads ./.env if present. Variables already set win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
