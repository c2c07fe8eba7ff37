package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the explicit application configuration, injected into the
// components that need it instead of being looked up ambiently.
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri" env:"MONGO_URI"`
		Name string `yaml:"name" env:"MONGO_DB"`
	} `yaml:"database"`

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		ResetTokenExpiration string `yaml:"reset_token_expiration" env:"AUTH_RESET_TOKEN_EXPIRATION"`
	} `yaml:"auth"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Geocoder struct {
		BaseURL string `yaml:"base_url" env:"GEOCODER_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"GEOCODER_API_KEY"`
	} `yaml:"geocoder"`

	Upload struct {
		MaxSize int64 `yaml:"max_size" env:"UPLOAD_MAX_SIZE"`
	} `yaml:"upload"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional YAML file, overrides it
// with environment variables, and validates the result.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.BaseURL = "http://localhost:5000"
	config.Server.StoragePath = "public/uploads"

	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "devcampr"

	config.JWT.TokenExpiration = "720h"
	config.JWT.Issuer = "devcampr.app"

	config.Auth.ResetTokenExpiration = "10m"

	config.SMTP.Host = "localhost"
	config.SMTP.Port = 25
	config.SMTP.FromName = "DevCampr"
	config.SMTP.FromEmail = "noreply@devcampr.app"

	config.Geocoder.BaseURL = "https://www.mapquestapi.com/geocoding/v1"

	config.Upload.MaxSize = 1_000_000

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	if config.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Auth.ResetTokenExpiration); err != nil {
		return fmt.Errorf("invalid reset token expiration format: %w", err)
	}
	if config.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload max size must be positive")
	}
	return nil
}

// ParseDuration parses a duration string, falling back to a default.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
