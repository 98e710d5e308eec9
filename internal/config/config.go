package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every environment-driven setting the storefront backend
// needs. Defaults are development values; production deployments override
// them through the environment.
type Config struct {
	Port string

	Database DatabaseConfig
	Stripe   StripeConfig
	SMTP     SMTPConfig
	Pricing  PricingConfig
	Sweeper  SweeperConfig

	SiteName string
	SiteURL  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

type PricingConfig struct {
	// Policy selects the checkout pricing policy: "flat" or "state".
	Policy string
}

type SweeperConfig struct {
	Enabled bool
	// Interval between sweeps of stale pending orders.
	Interval time.Duration
	// MaxAge a pending order may reach before the sweeper asks the payment
	// processor what actually happened to it.
	MaxAge time.Duration
	// AbandonAge is the cutoff after which a pending order that never got a
	// payment intent is written off as failed.
	AbandonAge time.Duration
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnvOrDefault("SMTP_PORT", "587"))
	sweepEnabled, _ := strconv.ParseBool(getEnvOrDefault("SWEEPER_ENABLED", "true"))

	return &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("DB_NAME", "storefront_db"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:      getEnvOrDefault("SMTP_HOST", "localhost"),
			Port:      smtpPort,
			User:      os.Getenv("SMTP_USER"),
			Password:  os.Getenv("SMTP_PASS"),
			FromEmail: getEnvOrDefault("FROM_EMAIL", "noreply@indkan.com"),
			FromName:  getEnvOrDefault("FROM_NAME", "INDKAN Sweet n Snacks"),
		},
		Pricing: PricingConfig{
			Policy: getEnvOrDefault("PRICING_POLICY", "flat"),
		},
		Sweeper: SweeperConfig{
			Enabled:    sweepEnabled,
			Interval:   getEnvDuration("SWEEPER_INTERVAL", 5*time.Minute),
			MaxAge:     getEnvDuration("SWEEPER_MAX_AGE", 30*time.Minute),
			AbandonAge: getEnvDuration("SWEEPER_ABANDON_AGE", 24*time.Hour),
		},
		SiteName: getEnvOrDefault("SITE_NAME", "INDKAN Sweet n Snacks"),
		SiteURL:  getEnvOrDefault("SITE_URL", "http://localhost:3000"),
	}
}

func (c DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Validate reports the env vars a deployment cannot run without.
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
