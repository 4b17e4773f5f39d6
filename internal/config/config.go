package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

// Assets configures where uploaded media files live on disk and under which
// public path they are served.
type Assets struct {
	Root       string `yaml:"root"`
	PublicPath string `yaml:"publicPath"`
}

type Auth struct {
	JWTSecret        string `yaml:"jwtSecret"`
	TokenExpiryHours int    `yaml:"tokenExpiryHours"`
}

// Redis is optional; an empty address disables the statistics cache.
type Redis struct {
	Address string `yaml:"address"`
}

type ServiceConfig struct {
	Port     int      `yaml:"port"`
	Database Database `yaml:"database"`
	Assets   Assets   `yaml:"assets"`
	Auth     Auth     `yaml:"auth"`
	Redis    Redis    `yaml:"redis"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func applyDefaults(config *ServiceConfig) {
	if config.Port == 0 {
		config.Port = 5000
	}
	if config.Database.Type == "" {
		config.Database.Type = "sqlite"
	}
	if config.Assets.PublicPath == "" {
		config.Assets.PublicPath = "/backend-assets"
	}
	if config.Auth.TokenExpiryHours == 0 {
		config.Auth.TokenExpiryHours = 24
	}
}

func validate(config *ServiceConfig) error {
	if config.Database.ConnectionString == "" {
		return fmt.Errorf("database.connectionString must be set")
	}
	if config.Assets.Root == "" {
		return fmt.Errorf("assets.root must be set")
	}
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwtSecret must be set")
	}
	return nil
}
