package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DB        DatabaseConfig
	App       AppConfig
	Auth      AuthConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

// DatabaseConfig holds configuration for the database
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	HTTPPort               string
	ShutdownTimeoutSeconds int
	RequestTimeoutSeconds  int
}

// AuthConfig holds the shared token-signing secret and token lifetime.
// The secret is passed explicitly to the auth service and the token
// verifier at construction; nothing reads it as hidden process state.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLSeconds int // 0 issues non-expiring tokens
}

// RedisConfig holds configuration for the Redis cache
type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	CacheTTL    int // seconds
}

// RateLimitConfig holds configuration for request rate limiting
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstCapacity     int
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string
	Format           string
	OutputPath       string
	SlowQuerySeconds float64
	EnableSampling   bool
	ServiceName      string
	ServiceVersion   string
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.DB.Host = viper.GetString("DB_HOST")
	config.DB.Port = viper.GetString("DB_PORT")
	config.DB.User = viper.GetString("DB_USER")
	config.DB.Password = viper.GetString("DB_PASSWORD")
	config.DB.Name = viper.GetString("DB_NAME")
	config.DB.SSLMode = viper.GetString("DB_SSLMODE")
	config.DB.MaxOpenConns = viper.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = viper.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = viper.GetInt("DB_CONN_MAX_LIFETIME_SECONDS")
	config.DB.ConnMaxIdleTime = viper.GetInt("DB_CONN_MAX_IDLE_TIME_SECONDS")

	config.App.HTTPPort = viper.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.RequestTimeoutSeconds = viper.GetInt("REQUEST_TIMEOUT_SECONDS")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTLSeconds = viper.GetInt("TOKEN_TTL_SECONDS")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.MaxRetries = viper.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = viper.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = viper.GetInt("REDIS_MIN_IDLE_CONN")
	config.Redis.CacheTTL = viper.GetInt("REDIS_CACHE_TTL_SECONDS")

	config.RateLimit.Enabled = viper.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = viper.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.BurstCapacity = viper.GetInt("RATE_LIMIT_BURST")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

// Validate checks that required configuration is present before any
// dependency is initialized.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.App.HTTPPort == "" {
		return errors.New("HTTP_PORT must be set")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "carpool")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_SECONDS", 300)
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)

	viper.SetDefault("HTTP_PORT", "8000")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)

	viper.SetDefault("TOKEN_TTL_SECONDS", 86400)

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_MAX_RETRIES", 3)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_MIN_IDLE_CONN", 2)
	viper.SetDefault("REDIS_CACHE_TTL_SECONDS", 300)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	viper.SetDefault("SERVICE_NAME", "carpool-service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}

// DSN returns the PostgreSQL Data Source Name
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}
