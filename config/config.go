package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	DBPath   string
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     GetEnv("PORT", "3000"),
		Env:      GetEnv("ENV", "development"),
		DBPath:   GetEnv("DB_PATH", "./data/hatchling.db"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
