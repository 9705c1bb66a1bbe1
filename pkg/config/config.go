package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Staff authentication
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Public booking links (guest-facing confirm/cancel tokens)
	BookingTokenSecret string

	// Background automation
	AutomationTickInterval time.Duration

	// Rate limit applied to the public availability/booking endpoints,
	// in ulule/limiter notation (e.g. "30-M" = 30 requests per minute).
	PublicRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "table-reservation-app")
	viper.SetDefault("BOOKING_TOKEN_SECRET", "default_insecure_booking_secret_please_change_this_!@#$")
	viper.SetDefault("AUTOMATION_TICK_INTERVAL", "60s")
	viper.SetDefault("PUBLIC_RATE_LIMIT", "30-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.BookingTokenSecret = viper.GetString("BOOKING_TOKEN_SECRET")
	cfg.PublicRateLimit = viper.GetString("PUBLIC_RATE_LIMIT")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION (%q). Defaulting to 8h.\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = 8 * time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	tickInterval, err := time.ParseDuration(viper.GetString("AUTOMATION_TICK_INTERVAL"))
	if err != nil || tickInterval <= 0 {
		log.Printf("Warning: Invalid AUTOMATION_TICK_INTERVAL (%q). Defaulting to 60s.\n", viper.GetString("AUTOMATION_TICK_INTERVAL"))
		tickInterval = 60 * time.Second
	}
	cfg.AutomationTickInterval = tickInterval

	return cfg, nil
}
