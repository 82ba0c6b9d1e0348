package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// LevelForEnvironment maps APP_ENV to the default log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port        int    `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`
	BaseURL     string `json:"base_url"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`
	DBPath      string `json:"db_path"`
	DatabaseURL string `json:"database_url"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret   string `json:"jwt_secret"`
	JWTTTLHours int    `json:"jwt_ttl_hours"`

	// API behaviour
	PageSize             int `json:"page_size"`
	MaxCookingTime       int `json:"max_cooking_time"`
	MaxIngredientAmount  int `json:"max_ingredient_amount"`
	ShortLinkTokenLength int `json:"short_link_token_length"`

	// Short link storage: "db" or "redis"
	ShortLinkStore string `json:"short_link_store"`
	RedisAddr      string `json:"redis_addr"`
	RedisPassword  string `json:"redis_password"`
	RedisDB        int    `json:"redis_db"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, BaseURL: %s, DBDriver: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, DatabaseURL: %s, LogLevel: %s, JWTSecret: [REDACTED], PageSize: %d, ShortLinkStore: %s, RedisAddr: %s, RedisPassword: [REDACTED]}",
		c.Port, c.Host, c.Environment, c.BaseURL, c.DBDriver, c.DBHost, c.DBName, c.DBUser, c.DBPath,
		maskDatabaseURL(c.DatabaseURL), c.LogLevel, c.PageSize, c.ShortLinkStore, c.RedisAddr)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		// Replace password with [REDACTED]
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates formats like DatabaseURL, URL_HOST and the numeric limits
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" {
		// validate URL with net/url
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	baseURL := strings.TrimRight(GetEnvWithDefault("URL_HOST", "https://localhost"), "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid URL_HOST format: %w", err)
	}

	config := &Config{
		Port:        port,
		Host:        GetEnvWithDefault("APP_HOST", "localhost"),
		Environment: GetEnvWithDefault("APP_ENV", "development"),
		BaseURL:     baseURL,

		DBDriver:    strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite")),
		DBHost:      GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:      GetEnvWithDefault("DB_PORT", "5432"),
		DBName:      GetEnvWithDefault("DB_NAME", "foodgram"),
		DBUser:      GetEnvWithDefault("DB_USER", "foodgram"),
		DBPassword:  GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:   GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:      GetEnvWithDefault("DB_PATH", "foodgram.sqlite"),
		DatabaseURL: dbURL,

		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),

		JWTSecret:   GetEnvWithDefault("JWT_SECRET", "secret"),
		JWTTTLHours: GetEnvAsType("JWT_TTL_HOURS", 24),

		PageSize:             GetEnvAsType("PAGE_SIZE", 6),
		MaxCookingTime:       GetEnvAsType("RECIPE_MAX_COOKING_TIME", 32000),
		MaxIngredientAmount:  GetEnvAsType("INGREDIENT_MAX_AMOUNT", 32000),
		ShortLinkTokenLength: GetEnvAsType("SHORT_LINK_LENGTH", 6),

		ShortLinkStore: strings.ToLower(GetEnvWithDefault("SHORTLINK_STORE", "db")),
		RedisAddr:      GetEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        GetEnvAsType("REDIS_DB", 0),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

func (c *Config) validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxCookingTime < 1 {
		return fmt.Errorf("RECIPE_MAX_COOKING_TIME must be positive, got %d", c.MaxCookingTime)
	}
	if c.MaxIngredientAmount < 1 {
		return fmt.Errorf("INGREDIENT_MAX_AMOUNT must be positive, got %d", c.MaxIngredientAmount)
	}
	if c.ShortLinkTokenLength < 4 || c.ShortLinkTokenLength > 32 {
		return fmt.Errorf("SHORT_LINK_LENGTH must be between 4 and 32, got %d", c.ShortLinkTokenLength)
	}
	switch c.ShortLinkStore {
	case "db", "redis":
	default:
		return fmt.Errorf("unsupported SHORTLINK_STORE: %s (supported: db, redis)", c.ShortLinkStore)
	}
	return nil
}

// LogrusLevel resolves the configured log level, falling back to the APP_ENV default
func (c *Config) LogrusLevel() logrus.Level {
	if os.Getenv("LOG_LEVEL") == "" {
		return LevelForEnvironment(c.Environment)
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using environment default", c.LogLevel)
		return LevelForEnvironment(c.Environment)
	}
	return level
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			log.Warnf("Environment variable %s is not an integer, using default value", key)
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
