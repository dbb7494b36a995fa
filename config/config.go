package config

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	MongoURI     string
	DBName       string
	PasetoSecret []byte
	WorkdayRule  string
	SeedAdmin    bool
}

// LoadConfig reads the .env file (when present) and environment variables
// into an AppConfig. The config is passed down explicitly; nothing in this
// package keeps process-wide state.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	secretBase64 := getEnv("PASETO_SECRET", "")
	if secretBase64 == "" {
		return nil, fmt.Errorf("PASETO_SECRET is not set")
	}

	secret, err := decodeBase64Key(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("PASETO_SECRET is not valid base64: %w", err)
	}
	if len(secret) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET must decode to exactly 32 bytes, got %d", len(secret))
	}

	return &AppConfig{
		Port:         getEnv("PORT", "3000"),
		MongoURI:     getEnv("MONGOSTRING", ""),
		DBName:       getEnv("DB_NAME", "hrms-db"),
		PasetoSecret: secret,
		WorkdayRule:  getEnv("WORKDAY_RULE", "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"),
		SeedAdmin:    getEnv("SEED_ADMIN", "true") == "true",
	}, nil
}

func decodeBase64Key(s string) ([]byte, error) {
	if key, err := base64.URLEncoding.DecodeString(s); err == nil {
		return key, nil
	}
	if key, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return key, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
