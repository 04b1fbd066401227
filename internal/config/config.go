package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	ServerPort     string
	StorageBackend string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL   string
	StorageKey string

	NotificationPermission string
	DueDateCheckInterval   time.Duration
	LogLevel               string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		StorageBackend:         strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5431"),
		DBUser:                 getEnv("DB_USER", "taskboard_user"),
		DBPassword:             getEnv("DB_PASSWORD", "taskboard_pass"),
		DBName:                 getEnv("DB_NAME", "taskboard_db"),
		RedisURL:               getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StorageKey:             getEnv("STORAGE_KEY", "taskBoardData"),
		NotificationPermission: strings.ToLower(getEnv("NOTIFICATION_PERMISSION", "default")),
		DueDateCheckInterval:   getDuration("DUE_DATE_CHECK_INTERVAL", time.Minute),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warnf("⚠️  Invalid %s=%q, using %s", key, value, defaultVal)
		return defaultVal
	}
	return d
}
