package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	StaticDir     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Addr:          getEnv("ADDR", ":8084"),
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres dbname=equipment_management sslmode=disable"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-insecure-key"),
		StaticDir:     getEnv("STATIC_DIR", "./static"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
