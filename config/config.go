// Package config provides Viper-based configuration management for weather-widget
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete weather-widget configuration
type Config struct {
	OpenWeatherMap OpenWeatherMapConfig `mapstructure:"openweathermap"`
	Forecast       ForecastConfig       `mapstructure:"forecast"`
	Preferences    PreferencesConfig    `mapstructure:"preferences"`
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Output         OutputConfig         `mapstructure:"output"`
}

// OpenWeatherMapConfig contains weather API settings
type OpenWeatherMapConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	IconBaseURL string        `mapstructure:"icon_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ForecastConfig controls how forecast dates are read
type ForecastConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// PreferencesConfig selects where the theme preference lives
type PreferencesConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	RedisURL string `mapstructure:"redis_url"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains terminal output settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured
var ErrMissingAPIKey = errors.New("OpenWeatherMap API key is not set (use WEATHER_OPENWEATHERMAP_API_KEY or OPENWEATHERMAP_API_KEY)")

// Load reads configuration from .env, the config file and environment variables.
// An empty cfgFile searches for .weather-widget.yaml in . and $HOME/.config/weather-widget.
func Load(cfgFile string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".weather-widget")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/weather-widget")
	}

	v.SetEnvPrefix("WEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("openweathermap.api_key", "WEATHER_OPENWEATHERMAP_API_KEY", "OPENWEATHERMAP_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given files into the environment.
// Missing files are skipped and existing variables are never overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// setDefaults configures default values. Every key needs a default so that
// environment-only values reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("openweathermap.api_key", "")
	v.SetDefault("openweathermap.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("openweathermap.icon_base_url", "http://openweathermap.org/img/wn/")
	v.SetDefault("openweathermap.timeout", 10*time.Second)

	v.SetDefault("forecast.timezone", "UTC")

	v.SetDefault("preferences.backend", "file")
	v.SetDefault("preferences.path", "")
	v.SetDefault("preferences.redis_url", "")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", c.Logging.Format)
	}

	switch strings.ToLower(c.Preferences.Backend) {
	case "memory", "file":
	case "sqlite":
		if c.Preferences.Path == "" {
			return fmt.Errorf("preferences.path is required for the sqlite backend")
		}
	case "redis":
		if c.Preferences.RedisURL == "" {
			return fmt.Errorf("preferences.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid preferences backend: %s (must be memory, file, sqlite, or redis)", c.Preferences.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.OpenWeatherMap.Timeout <= 0 {
		return fmt.Errorf("openweathermap.timeout must be positive")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// RequireAPIKey fails when commands that call the weather API have no key
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.OpenWeatherMap.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Location resolves the forecast timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Forecast.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid forecast timezone %q: %w", c.Forecast.Timezone, err)
	}
	return loc, nil
}
