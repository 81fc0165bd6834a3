package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/finvela/bank_recon_svc/internal/utils/matching"
)

// Config holds application configuration. The matcher tuning values are
// deployment configuration, not code constants.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	Matching matching.Config

	IdempotencyRetention time.Duration

	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MATCH_DATE_TOLERANCE_DAYS", 3)
	viper.SetDefault("MATCH_DATE_DECAY_PER_DAY", 15)
	viper.SetDefault("MATCH_MIN_CONFIDENCE", 60)
	viper.SetDefault("MATCH_TEXT_BOOST_MAX", 10)
	viper.SetDefault("IDEMPOTENCY_RETENTION", "24h")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.Matching = matching.Config{
		DateToleranceDays: viper.GetInt("MATCH_DATE_TOLERANCE_DAYS"),
		DateDecayPerDay:   viper.GetInt("MATCH_DATE_DECAY_PER_DAY"),
		MinConfidence:     viper.GetInt("MATCH_MIN_CONFIDENCE"),
		TextBoostMax:      viper.GetInt("MATCH_TEXT_BOOST_MAX"),
	}
	if cfg.Matching.DateToleranceDays < 0 {
		log.Printf("Warning: MATCH_DATE_TOLERANCE_DAYS is negative (%d). Defaulting to 3.\n", cfg.Matching.DateToleranceDays)
		cfg.Matching.DateToleranceDays = 3
	}
	if cfg.Matching.MinConfidence < 0 || cfg.Matching.MinConfidence > 100 {
		log.Printf("Warning: MATCH_MIN_CONFIDENCE out of range (%d). Defaulting to 60.\n", cfg.Matching.MinConfidence)
		cfg.Matching.MinConfidence = 60
	}

	retentionStr := viper.GetString("IDEMPOTENCY_RETENTION")
	retention, err := time.ParseDuration(retentionStr)
	if err != nil {
		retention = 24 * time.Hour
		log.Printf("Warning: Invalid value for IDEMPOTENCY_RETENTION ('%s'). Defaulting to %s.\n", retentionStr, retention)
	}
	cfg.IdempotencyRetention = retention

	ratePeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	ratePeriod, err := time.ParseDuration(ratePeriodStr)
	if err != nil {
		ratePeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", ratePeriodStr, ratePeriod)
	}
	cfg.RateLimitPeriod = ratePeriod
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")

	return cfg, nil
}
