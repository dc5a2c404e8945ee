package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultGatewayTimeout = 10 * time.Second
	defaultCartIdleTTL    = 2 * time.Hour
	defaultCORSOrigin     = "http://localhost:3000"
)

type Config struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	AppPort        string
	AppEnv         string
	JWTSecret      string
	GatewayTimeout time.Duration
	CartIdleTTL    time.Duration
	CORSOrigin     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		AppPort:        os.Getenv("APP_PORT"),
		AppEnv:         os.Getenv("APP_ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		GatewayTimeout: parseDuration(os.Getenv("GATEWAY_TIMEOUT"), defaultGatewayTimeout),
		CartIdleTTL:    parseDuration(os.Getenv("CART_IDLE_TTL"), defaultCartIdleTTL),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = defaultCORSOrigin
	}

	return cfg
}

// parseDuration falls back to def for empty, malformed or non-positive values.
func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid duration %q, using %s", raw, def)
		return def
	}
	return d
}
