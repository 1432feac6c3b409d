package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment selects which API host the client talks to
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

const envPrefix = "HEMA"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the content API configuration
type ServerConfig struct {
	Environment    Environment   `mapstructure:"environment"`
	DevelopmentURL string        `mapstructure:"development_url"`
	ProductionURL  string        `mapstructure:"production_url"`
	URL            string        `mapstructure:"url"` // Overrides both when set
	Timeout        time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds query cache tuning
type CacheConfig struct {
	StaleTime time.Duration `mapstructure:"stale_time"`
	GCTime    time.Duration `mapstructure:"gc_time"`
	Retry     int           `mapstructure:"retry"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	PageSize int `mapstructure:"page_size"` // Books fetched per page
}

// PlayerConfig holds the video player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // Empty for system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Environment:    EnvDevelopment,
			DevelopmentURL: "http://localhost:8080",
			ProductionURL:  "https://hema-lessons-api-564075903124.us-east1.run.app",
			Timeout:        30 * time.Second,
		},
		Cache: CacheConfig{
			StaleTime: 5 * time.Minute,
			GCTime:    5 * time.Minute,
			Retry:     2,
		},
		UI: UIConfig{
			PageSize: 20,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// BaseURL returns the API root for the configured environment
func (s ServerConfig) BaseURL() string {
	if s.URL != "" {
		return s.URL
	}
	if s.Environment == EnvProduction {
		return s.ProductionURL
	}
	return s.DevelopmentURL
}

// Validate checks the configuration for values the client cannot run with
func (c *Config) Validate() error {
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q (want %q or %q)", c.Server.Environment, EnvDevelopment, EnvProduction)
	}
	if c.Server.BaseURL() == "" {
		return errors.New("no API URL configured")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Cache.Retry < 0 {
		return fmt.Errorf("cache retry must not be negative, got %d", c.Cache.Retry)
	}
	if c.UI.PageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", c.UI.PageSize)
	}
	return nil
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "hema", "hema.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "hema", "hema.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "hema")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "hema")
	}
}

// setDefaults registers every key so environment overrides apply on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.environment", string(cfg.Server.Environment))
	v.SetDefault("server.development_url", cfg.Server.DevelopmentURL)
	v.SetDefault("server.production_url", cfg.Server.ProductionURL)
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)

	v.SetDefault("cache.stale_time", cfg.Cache.StaleTime)
	v.SetDefault("cache.gc_time", cfg.Cache.GCTime)
	v.SetDefault("cache.retry", cfg.Cache.Retry)

	v.SetDefault("ui.page_size", cfg.UI.PageSize)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// LoadConfig loads configuration from defaults, a .env file in the working
// directory, the config file and HEMA_* environment variables, in that order.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: HEMA_SERVER_ENVIRONMENT, HEMA_CACHE_RETRY, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
