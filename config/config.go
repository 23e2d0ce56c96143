package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all process-wide settings. It is built once in main and
// passed down by injection; nothing below the wiring layer reads the
// environment directly.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	TokenTTL    time.Duration
	TokenIssuer string

	// BcryptCost trades login latency for offline-attack resistance.
	// 10 matches the cost the system has always used.
	BcryptCost int
}

// Load reads configuration from the environment. JWT_SECRET and MONGO_URI
// are mandatory; the process must not start without them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "eventhub"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Hour,
		TokenIssuer: "eventhub-api",
		BcryptCost:  10,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable is required")
	}

	if val := os.Getenv("JWT_EXP_MIN"); val != "" {
		mins, err := strconv.Atoi(val)
		if err != nil || mins <= 0 {
			return nil, errors.New("JWT_EXP_MIN must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(mins) * time.Minute
	}

	if val := os.Getenv("BCRYPT_COST"); val != "" {
		cost, err := strconv.Atoi(val)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, errors.New("BCRYPT_COST out of range")
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
