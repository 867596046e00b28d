package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the service.
type Config struct {
	Port            string // Service port (default: 8080)
	Environment     string // "production" or "development"
	MongoURI        string // MongoDB connection string
	DBName          string // Database name (default: localchef)
	JWTSecret       string // JWT secret for authentication
	StripeSecretKey string // Payment processor API key
	SiteDomain      string // Frontend origin for checkout redirects and CORS
}

// LoadConfig loads environment variables into Config struct and validates
// them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		Environment:     os.Getenv("APP_ENV"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          os.Getenv("DB_NAME"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		SiteDomain:      os.Getenv("SITE_DOMAIN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.DBName == "" {
		cfg.DBName = "localchef"
	}
	if cfg.SiteDomain == "" {
		cfg.SiteDomain = "http://localhost:5173"
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	return cfg, nil
}
