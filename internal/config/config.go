package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	// VerifyCode backs the static verification-code checker used until a real
	// SMS provider is wired in. See services.StaticCodeVerifier.
	VerifyCode string
}

func Load() *Config {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	return &Config{
		Port:       getEnv("PORT", "3000"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "workhour"),
		DBPassword: getEnv("DB_PASSWORD", "workhour"),
		DBName:     getEnv("DB_NAME", "workhour"),
		JWTSecret:  getEnv("JWT_SECRET", "default-secret-key-change-me"),
		VerifyCode: getEnv("VERIFY_CODE", "123456"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
