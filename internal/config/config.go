package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mentorlink/mentorlink/internal/app/matching"
	"github.com/mentorlink/mentorlink/internal/pkg/cache"
	"github.com/mentorlink/mentorlink/internal/pkg/enrichment"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Host     string `yaml:"host" env:"REDIS_HOST"`
		Port     int    `yaml:"port" env:"REDIS_PORT"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		PoolSize int    `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Matching struct {
		Weights                  matching.FactorWeights `yaml:"weights"`
		AvailabilityCeilingHours float64                `yaml:"availability_ceiling_hours" env:"MATCHING_AVAILABILITY_CEILING_HOURS"`
		ExplanationThreshold     float64                `yaml:"explanation_threshold" env:"MATCHING_EXPLANATION_THRESHOLD"`
		MaxLifecycleRetries      int                    `yaml:"max_lifecycle_retries" env:"MATCHING_MAX_LIFECYCLE_RETRIES"`
	} `yaml:"matching"`

	Enrichment struct {
		BaseURL string `yaml:"base_url" env:"ENRICHMENT_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"ENRICHMENT_API_KEY"`
		Model   string `yaml:"model" env:"ENRICHMENT_MODEL"`
		Timeout string `yaml:"timeout" env:"ENRICHMENT_TIMEOUT"`
	} `yaml:"enrichment"`

	Storage struct {
		BasePath string `yaml:"base_path" env:"STORAGE_BASE_PATH"`
		BaseURL  string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	err := loadFromEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "mentorlink"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"

	// Redis defaults
	config.Redis.Host = "localhost"
	config.Redis.Port = 6379
	config.Redis.PoolSize = 10

	// JWT defaults
	config.JWT.Issuer = "mentorlink.app"

	// Matching defaults
	scorer := matching.DefaultScorerConfig()
	config.Matching.Weights = scorer.Weights
	config.Matching.AvailabilityCeilingHours = scorer.AvailabilityCeilingHours
	config.Matching.ExplanationThreshold = scorer.ExplanationThreshold
	config.Matching.MaxLifecycleRetries = 3

	// Enrichment defaults
	defaults := enrichment.DefaultConfig()
	config.Enrichment.BaseURL = defaults.BaseURL
	config.Enrichment.Model = defaults.Model
	config.Enrichment.Timeout = defaults.Timeout.String()

	// Storage defaults
	config.Storage.BasePath = "uploads"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime format: %w", err)
	}

	if config.Enrichment.Timeout != "" {
		if _, err := time.ParseDuration(config.Enrichment.Timeout); err != nil {
			return fmt.Errorf("invalid enrichment timeout format: %w", err)
		}
	}

	if config.Matching.MaxLifecycleRetries < 1 {
		return fmt.Errorf("matching max lifecycle retries must be at least 1")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// ScorerConfig converts the matching section into scorer parameters
func (c *Config) ScorerConfig() matching.ScorerConfig {
	return matching.ScorerConfig{
		Weights:                  c.Matching.Weights,
		AvailabilityCeilingHours: c.Matching.AvailabilityCeilingHours,
		ExplanationThreshold:     c.Matching.ExplanationThreshold,
	}
}

// CacheConfig converts the redis section into cache connection settings
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Host:     c.Redis.Host,
		Port:     c.Redis.Port,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		PoolSize: c.Redis.PoolSize,
	}
}

// EnrichmentConfig converts the enrichment section into client settings
func (c *Config) EnrichmentConfig() enrichment.Config {
	cfg := enrichment.DefaultConfig()
	if c.Enrichment.BaseURL != "" {
		cfg.BaseURL = c.Enrichment.BaseURL
	}
	cfg.APIKey = c.Enrichment.APIKey
	if c.Enrichment.Model != "" {
		cfg.Model = c.Enrichment.Model
	}
	if c.Enrichment.Timeout != "" {
		if timeout, err := time.ParseDuration(c.Enrichment.Timeout); err == nil {
			cfg.Timeout = timeout
		}
	}
	return cfg
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
