package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Storage configuration
	PostgresURL string
	RedisAddr   string

	// Auth configuration
	JWTSecret string

	// Payment provider configuration
	PaymentProvider    string // "stripe" or "mock"
	StripeSecretKey    string
	ProviderTimeout    time.Duration
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// External collaborators
	NotificationsAddr string
	MailerAddr        string

	// Tracing
	JaegerEndpoint string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		PostgresURL: getEnv("POSTGRES_URL", "postgres://localhost:5432/venues?sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		PaymentProvider:    getEnv("PAYMENT_PROVIDER", "stripe"),
		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		ProviderTimeout:    getEnvAsDuration("PROVIDER_TIMEOUT", "10s"),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/payments/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/payments/cancel"),

		NotificationsAddr: getEnv("NOTIFICATIONS_ADDR", "http://localhost:8181"),
		MailerAddr:        getEnv("MAILER_ADDR", "http://localhost:8282"),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
	}
}

// Validate rejects configurations that would come up in an insecure or
// unusable state. An empty JWT secret would make every token signed with the
// empty key verify.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	switch c.PaymentProvider {
	case "stripe":
		if c.StripeSecretKey == "" {
			return errors.New("STRIPE_SECRET_KEY must be set when PAYMENT_PROVIDER is stripe")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown payment provider: %s", c.PaymentProvider)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	parsed, err := time.ParseDuration(value)
	if err != nil {
		parsed, _ = time.ParseDuration(fallback)
	}
	return parsed
}
