package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
	SMTPAddr   string
	SMTPFrom   string
	LogLevel   string

	// Seed bootstrap account.
	SuperuserName  string
	SuperuserEmail string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is picked up when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/yamdb?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		SMTPAddr:   os.Getenv("SMTP_ADDR"), // empty means log-only mail delivery
		SMTPFrom:   getEnv("SMTP_FROM", "noreply@yamdb.local"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		SuperuserName:  getEnv("SUPERUSER_USERNAME", "admin"),
		SuperuserEmail: getEnv("SUPERUSER_EMAIL", "admin@yamdb.local"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
