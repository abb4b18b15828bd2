package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Session store backends
const (
	SessionStoreFile     = "file"
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

// APIConfig holds the remote SneakerX API settings
type APIConfig struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
}

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// SessionConfig selects where the persisted login flag lives
type SessionConfig struct {
	Store    string
	FilePath string
}

// JWTConfig holds JWT configuration for the sandbox API session cookie
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// SandboxConfig seeds the sandbox API
type SandboxConfig struct {
	AdminEmail    string
	AdminPassword string
	Seed          bool
}

// Config holds all configuration
type Config struct {
	ServiceName string
	API         APIConfig
	DB          DBConfig
	Server      ServerConfig
	Session     SessionConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Sandbox     SandboxConfig
}

// Load loads configuration from the optional .env file and environment variables
func Load(serviceName string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		API: APIConfig{
			BaseURL:  getEnv("API_BASE_URL", "http://localhost:4000/api/v1"),
			PageSize: getEnvAsInt("API_PAGE_SIZE", 10),
			Timeout:  getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		},
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "sneakerx_admin"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Session: SessionConfig{
			Store:    getEnv("SESSION_STORE", SessionStoreFile),
			FilePath: getEnv("SESSION_FILE", ".sneakerx-session.json"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "sneakerxsandboxkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
		Sandbox: SandboxConfig{
			AdminEmail:    getEnv("SANDBOX_ADMIN_EMAIL", "admin@sneakerx.test"),
			AdminPassword: getEnv("SANDBOX_ADMIN_PASSWORD", "admin123"),
			Seed:          getEnvAsBool("SANDBOX_SEED", true),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.API.PageSize <= 0 {
		return fmt.Errorf("API_PAGE_SIZE must be positive, got %d", c.API.PageSize)
	}
	switch c.Session.Store {
	case SessionStoreFile, SessionStorePostgres, SessionStoreMemory:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	return nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("api_base_url", c.API.BaseURL),
		zap.Int("page_size", c.API.PageSize),
		zap.Duration("api_timeout", c.API.Timeout),
		zap.String("session_store", c.Session.Store),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as gorm log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
