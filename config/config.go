package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Redis     RedisConfig
	Scraper   ScraperConfig
	Scheduler SchedulerConfig
	S3        S3Config
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// DatabaseConfig selects between the embedded SQLite file and a networked
// PostgreSQL server. The driver is fixed once at process start.
type DatabaseConfig struct {
	Driver        string // "sqlite" or "postgres"
	SQLitePath    string
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	BootstrapFile string // JSON export used to backfill an empty datastore
}

type SessionConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ScraperConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type SchedulerConfig struct {
	Enabled    bool
	Spec       string // cron expression for the daily traffic refresh
	BatchLimit int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:        getEnv("DB_DRIVER", "sqlite"),
			SQLitePath:    getEnv("DB_SQLITE_PATH", "data/app.db"),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "admin"),
			Password:      getEnv("DB_PASSWORD", "1234"),
			DBName:        getEnv("DB_NAME", "koctrack"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			BootstrapFile: getEnv("DB_BOOTSTRAP_FILE", ""),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", "memory"),
			TTL:     parseDuration(getEnv("SESSION_TTL", "12h"), 12*time.Hour),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		Scraper: ScraperConfig{
			Timeout: parseDuration(getEnv("SCRAPER_TIMEOUT", "20s"), 20*time.Second),
			UserAgent: getEnv("SCRAPER_USER_AGENT",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		},
		Scheduler: SchedulerConfig{
			Enabled:    getEnv("REFRESH_ENABLED", "true") == "true",
			Spec:       getEnv("REFRESH_CRON", "0 8 * * *"),
			BatchLimit: 100,
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-southeast-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
