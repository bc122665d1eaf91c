package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Ingredient detection
	DetectionProvider    string
	RoboflowWorkflowURL  string
	RoboflowAPIKey       string
	DetectionTimeout     time.Duration
	DetectionRateLimit   int
	DetectionArchiveToS3 bool

	// AWS
	AWSRegion    string
	S3BucketName string

	// Progress tracking
	MetricsWindowDays int
	MetricsCacheTTL   time.Duration
	Timezone          string
	SummaryCron       string

	LogDir string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{Environment: env}
	loadCommon(cfg)

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCommon reads the non-sensitive settings shared by every environment
func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:4028"))

	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "nutrilife")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nutrilife.db")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)

	cfg.JWTTTL = getEnvDuration("JWT_TTL", 15*time.Minute)

	cfg.DetectionProvider = getEnv("DETECTION_PROVIDER", "roboflow")
	cfg.RoboflowWorkflowURL = os.Getenv("ROBOFLOW_WORKFLOW_URL")
	cfg.DetectionTimeout = getEnvDuration("DETECTION_TIMEOUT", 20*time.Second)
	cfg.DetectionRateLimit = getEnvInt("DETECTION_RATE_LIMIT", 30)
	cfg.DetectionArchiveToS3 = getEnvBool("DETECTION_ARCHIVE_S3", false)

	cfg.AWSRegion = getEnv("AWS_REGION", "ap-southeast-1")
	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "nutrilife-captures")

	cfg.MetricsWindowDays = getEnvInt("METRICS_WINDOW_DAYS", 7)
	cfg.MetricsCacheTTL = getEnvDuration("METRICS_CACHE_TTL", 10*time.Minute)
	cfg.Timezone = getEnv("APP_TIMEZONE", "UTC")
	cfg.SummaryCron = getEnv("SUMMARY_CRON", "5 0 * * *")

	cfg.LogDir = os.Getenv("LOG_DIR")
}

// loadCIConfig loads the sensitive values for CI from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
	cfg.RoboflowAPIKey = os.Getenv("ROBOFLOW_API_KEY")
}

// loadDevConfig prefers Docker secrets and falls back to the environment
func loadDevConfig(cfg *Config) {
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", cfg.DBUser)
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "postgres")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", "dev-jwt-secret")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", cfg.RedisURL)
	cfg.RoboflowAPIKey = secretOrEnv("roboflow_api_key", "ROBOFLOW_API_KEY", "")
}

// loadProdConfig loads the sensitive values for production using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	if user := readSecret("db_user"); user != "" {
		cfg.DBUser = user
	}
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}
	cfg.RoboflowAPIKey = readSecret("roboflow_api_key")
}

// Location resolves the configured timezone, defaulting to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envKey, fallback string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(envKey, fallback)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
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
