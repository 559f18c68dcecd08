package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"drivefund/utils"

	log "github.com/sirupsen/logrus"
)

const defaultJWTSecret = "your-super-secret-jwt-key-change-in-production"

type Config struct {
	// Server Configuration
	Port        string `env:"PORT" validate:"required,numeric"`
	Environment string `env:"ENVIRONMENT" validate:"required,environment"`
	Debug       bool   `env:"DEBUG"`
	LogLevel    string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`

	// Data source: "mongo" reads the platform database, "memory" serves an
	// in-process dataset for local runs.
	DataSource string `env:"DATA_SOURCE" validate:"required,data_source"`

	// Database Configuration
	MongoURI        string        `env:"MONGO_URI" validate:"required_if=DataSource mongo"`
	DBName          string        `env:"DB_NAME" validate:"required"`
	MaxPoolSize     uint64        `env:"MONGO_MAX_POOL_SIZE" validate:"gte=1"`
	MinPoolSize     uint64        `env:"MONGO_MIN_POOL_SIZE" validate:"ltefield=MaxPoolSize"`
	ConnectTimeout  time.Duration `env:"MONGO_CONNECT_TIMEOUT" validate:"gt=0"`
	MaxConnIdleTime time.Duration `env:"MONGO_MAX_CONN_IDLE_TIME"`

	// JWT Configuration
	JWTSecret string `env:"JWT_SECRET" validate:"required"`
	// Permission an admin token must carry to read analytics. Empty disables the check.
	AnalyticsPermission string `env:"ANALYTICS_PERMISSION"`

	// Security Configuration
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"`
	RateLimitEnabled   bool          `env:"RATE_LIMIT_ENABLED"`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS" validate:"gte=1"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" validate:"gt=0"`

	// Application Configuration
	AppName    string `env:"APP_NAME" validate:"required"`
	AppVersion string `env:"APP_VERSION" validate:"required"`

	// Analytics Configuration
	StatusVocabularyFile string `env:"STATUS_VOCABULARY_FILE"`
	MemorySeedFile       string `env:"MEMORY_SEED_FILE"`
}

var AppConfig *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	config := &Config{
		// Server Configuration
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvAsBool("DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DataSource: getEnv("DATA_SOURCE", "mongo"),

		// Database Configuration
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "drivefund"),
		MaxPoolSize:     uint64(getEnvAsInt("MONGO_MAX_POOL_SIZE", 100)),
		MinPoolSize:     uint64(getEnvAsInt("MONGO_MIN_POOL_SIZE", 10)),
		ConnectTimeout:  getEnvAsDuration("MONGO_CONNECT_TIMEOUT", "10s"),
		MaxConnIdleTime: getEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", "30s"),

		// JWT Configuration
		JWTSecret:           getEnv("JWT_SECRET", defaultJWTSecret),
		AnalyticsPermission: getEnv("ANALYTICS_PERMISSION", "analytics:read"),

		// Security Configuration
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:8080",
		}),
		RateLimitEnabled:  getEnvAsBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),

		// Application Configuration
		AppName:    getEnv("APP_NAME", "DriveFund Analytics"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		StatusVocabularyFile: getEnv("STATUS_VOCABULARY_FILE", ""),
		MemorySeedFile:       getEnv("MEMORY_SEED_FILE", ""),
	}

	// Set global config
	AppConfig = config

	// Log configuration in development
	if config.Debug {
		log.Printf("Configuration loaded: Environment=%s, Port=%s, Database=%s, DataSource=%s",
			config.Environment, config.Port, config.DBName, config.DataSource)
	}

	return config
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	if parsed, err := time.ParseDuration(defaultValue); err == nil {
		return parsed
	}
	return time.Minute
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesMemoryStore reports whether analytics reads are served in-process.
func (c *Config) UsesMemoryStore() bool {
	return c.DataSource == "memory"
}

// GetServerAddress returns the server address for listening
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.JWTSecret == defaultJWTSecret && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}

	if c.UsesMemoryStore() && c.IsProduction() {
		return fmt.Errorf("DATA_SOURCE=memory is not allowed in production")
	}

	return nil
}
