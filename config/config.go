package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every externally provided setting. It is built once in main
// and threaded to the components that need it; nothing else reads the
// process environment.
type Config struct {
	Port string
	Env  string

	MongoURL    string
	MongoDBName string

	RedisURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	PaystackSecretKey string
	PaystackBaseURL   string

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	FrontendURL string
}

// Load reads configuration from the environment (and an optional .env file)
// and validates that every required secret is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		Env:                getEnv("APP_ENV", "development"),
		MongoURL:           os.Getenv("MONGODB_URI"),
		MongoDBName:        getEnv("MONGODB_NAME", "storefront"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
		PaystackSecretKey:  os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:    getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		KafkaTopic:         getEnv("ORDER_EVENTS_TOPIC", "order.events"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
