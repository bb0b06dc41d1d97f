package config

import (
	"log"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Environment      string
	JWTSecret        string
	DBPath           string
	EncryptionSecret string
	EncryptionMode   string // legacy, random_iv
	Timezone         string
	LateAfter        string // HH:MM:SS, a check-in strictly after this is late
	FullDayMinutes   int
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:             getEnvOrDefault("PORT", "3000"),
		Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		DBPath:           getEnvOrDefault("DB_PATH", "hr.db"),
		EncryptionSecret: mustGetEnv("ENCRYPTION_SECRET"),
		EncryptionMode:   getEnvOrDefault("ENCRYPTION_MODE", "legacy"),
		Timezone:         getEnvOrDefault("TIMEZONE", "Asia/Seoul"),
		LateAfter:        getEnvOrDefault("LATE_AFTER", "09:00:00"),
		FullDayMinutes:   getEnvIntOrDefault("FULL_DAY_MINUTES", 480),
	}
}
