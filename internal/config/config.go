package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Storage     StorageConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Kafka       KafkaConfig
	Auth        AuthConfig
	Store       StoreConfig
}

// StorageConfig selects where collections are persisted
type StorageConfig struct {
	Backend string // STORAGE_BACKEND: file, memory, postgres or mongo
	DataDir string // DATA_DIR: directory used by the file backend
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
}

// KafkaConfig is used to publish order events; no brokers means events are only logged
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

// StoreConfig identifies the pickup store printed on orders and invoices
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
}

// Storage backends
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

const (
	devJWTSecret     = "dev-secret-change-in-production"
	devAdminPassword = "admin123"
)

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(getEnvOrViper("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(getEnvOrViper("STORAGE_BACKEND", BackendFile))),
			DataDir: getEnvOrViper("DATA_DIR", "./data"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      strings.TrimSpace(getEnvOrViper("MONGODB_URI", "mongodb://localhost:27017")),
			Database: getEnvOrViper("MONGODB_DATABASE", "storefront"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnvOrViper("KAFKA_BROKERS", "")),
			Topic:   getEnvOrViper("KAFKA_TOPIC", "storefront-order-events"),
		},
		Auth: AuthConfig{
			JWTSecret:     strings.TrimSpace(getEnvOrViper("JWT_SECRET", "")),
			TokenTTL:      ttl,
			AdminEmail:    strings.ToLower(strings.TrimSpace(getEnvOrViper("ADMIN_EMAIL", "admin@americantourister.com"))),
			AdminPassword: getEnvOrViper("ADMIN_PASSWORD", ""),
		},
		Store: StoreConfig{
			Name:    getEnvOrViper("STORE_NAME", "Vaishnavi Sales"),
			Address: getEnvOrViper("STORE_ADDRESS", "6-7-66, Raganna Darwaza, Main Road, Hanamkonda, Telangana 506011"),
			Phone:   getEnvOrViper("STORE_PHONE", "8374200125"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendPostgres, BackendMongo:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	// Development gets throwaway credentials, everything else must set them
	if c.Environment == "development" {
		if c.Auth.JWTSecret == "" {
			c.Auth.JWTSecret = devJWTSecret
		}
		if c.Auth.AdminPassword == "" {
			c.Auth.AdminPassword = devAdminPassword
		}
		return nil
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
