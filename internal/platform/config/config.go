package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Reconciliation matching heuristics. These are operational tuning
	// values, not business contracts, so they live in configuration.
	ReconAmountTolerance decimal.Decimal
	ReconDayWindow       int

	// AgingThresholdDays is how far past due an open bill or invoice may be
	// before the period-close aging check flags it.
	AgingThresholdDays int

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-backend")
	viper.SetDefault("RECON_AMOUNT_TOLERANCE", "0.05")
	viper.SetDefault("RECON_DAY_WINDOW", 7)
	viper.SetDefault("AGING_THRESHOLD_DAYS", 90)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if !cfg.IsProduction && cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	expiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION (%v). Defaulting to 1h.\n", err)
		expiry = time.Hour
	}
	cfg.JWTExpiryDuration = expiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	tolerance, err := decimal.NewFromString(viper.GetString("RECON_AMOUNT_TOLERANCE"))
	if err != nil {
		log.Printf("Warning: Invalid RECON_AMOUNT_TOLERANCE (%v). Defaulting to 0.05.\n", err)
		tolerance = decimal.NewFromFloat(0.05)
	}
	cfg.ReconAmountTolerance = tolerance
	cfg.ReconDayWindow = viper.GetInt("RECON_DAY_WINDOW")
	cfg.AgingThresholdDays = viper.GetInt("AGING_THRESHOLD_DAYS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
