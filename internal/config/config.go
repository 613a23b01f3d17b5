package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase = "gramconnect_config"
	envFileName    = ".env"

	// Environment variables that override the YAML values
	EnvDatabaseURL = "GRAMCONNECT_DATABASE_URL"
	EnvBaseURL     = "GRAMCONNECT_BASE_URL"

	DefaultRequestTimeout = 15 * time.Second
	DefaultAddr           = ":3000"
	DefaultBaseURL        = "http://localhost:3000"
	DefaultLogDir         = "logs"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `yaml:"url" validate:"required"`
}

// ClientConfig configures the terminal client
type ClientConfig struct {
	BaseURL        string        `yaml:"baseURL" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	// SessionDir holds the saved identity; empty means $HOME/.gramconnect
	SessionDir string `yaml:"sessionDir,omitempty"`
}

// NotificationsConfig enables email notifications through Gmail
type NotificationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Sender  string `yaml:"sender,omitempty" validate:"omitempty,email"`
}

// LoggingConfig configures the log file location
type LoggingConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Client        ClientConfig        `yaml:"client"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from gramconnect_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment.
// env="test" looks for gramconnect_config.test.yaml, falling back to gramconnect_config.yaml.
// Values from .env and the process environment override the file.
func LoadWithEnv(env string) (*Config, error) {
	if err := loadEnvFile(envFileName); err != nil {
		return nil, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Client.RequestTimeout < 0 {
		return fmt.Errorf("config validation failed: request timeouts must not be negative")
	}

	if cfg.Notifications.Enabled && cfg.Notifications.Sender == "" {
		return fmt.Errorf("config validation failed: notifications.sender is required when notifications are enabled")
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = DefaultBaseURL
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = DefaultLogDir
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.Client.BaseURL = v
	}
}

// loadEnvFile exports variables from path without overriding ones already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches the current directory, then the home directory
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, configFileBase+"."+env+".yaml")
	}
	names = append(names, configFileBase+".yaml")

	dirs := []string{"."}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir)
	}

	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
