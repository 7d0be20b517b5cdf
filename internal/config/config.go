package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment
type Config struct {
	Env  string
	Port string

	DB DBConfig

	JWTSecret          string
	JWTAccessDuration  time.Duration
	JWTRefreshDuration time.Duration

	S3 S3Config

	// DefaultTimezone applies to stores without their own zone.
	DefaultTimezone    string
	StatusFeedInterval time.Duration

	AdminEmail    string
	AdminPassword string

	Telemetry TelemetryConfig
}

// TelemetryConfig holds the OpenTelemetry exporter settings
type TelemetryConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceName    string
	ServiceVersion string
}

// DBConfig holds the postgres connection settings
type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
}

// DSN builds the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// S3Config holds object storage settings; storage is disabled when incomplete
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

// Enabled reports whether enough settings are present to reach a bucket
func (c S3Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

// IsDevelopment reports whether the server runs in development mode
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadDotEnv loads a .env file if one exists. It reports whether a file was read.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:  getEnvOrDefault("ENV", "production"),
		Port: getEnvOrDefault("PORT", "8080"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnvOrDefault("DB_NAME", "goldlinks"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
			TimeZone: getEnvOrDefault("DB_TIMEZONE", "UTC"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnvOrDefault("S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
			UseSSL:    getEnvBool("S3_USE_SSL", true),
		},
		DefaultTimezone: getEnvOrDefault("DEFAULT_TIMEZONE", "America/New_York"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		Telemetry: TelemetryConfig{
			Enabled:        getEnvBool("ENABLE_TELEMETRY", false),
			Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "goldlinks-api"),
			ServiceVersion: getEnvOrDefault("OTEL_SERVICE_VERSION", "dev"),
		},
	}

	var err error
	if cfg.JWTAccessDuration, err = getEnvDuration("JWT_ACCESS_DURATION", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTRefreshDuration, err = getEnvDuration("JWT_REFRESH_DURATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.StatusFeedInterval, err = getEnvDuration("STATUS_FEED_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}

	return cfg, nil
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
