package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv        string
	Port          string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	JWTSecret     string
	TokenTTLHours int
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads the .env file once and falls back to process environment
// variables when the file is absent.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warn(".env file not found, relying on environment variables")
		}
		cfg = &Config{
			AppEnv:        getEnv("APP_ENV", "development"),
			Port:          getEnv("PORT", "8080"),
			DBUser:        os.Getenv("DB_USER"),
			DBPassword:    os.Getenv("DB_PASSWORD"),
			DBHost:        getEnv("DB_HOST", "localhost"),
			DBPort:        getEnv("DB_PORT", "3306"),
			DBName:        os.Getenv("DB_NAME"),
			JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
			TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 12),
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
