package config

import (
	"strings"
	"time"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	LogLevel           string
	LogFormat          string
	RedisURL           string
	RulesCacheTTL      time.Duration
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	// Rules seeded by ledger init.
	LedgerRules domain.LedgerRules
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	defaults := domain.DefaultLedgerRules()
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RULES_CACHE_TTL", "5m")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LEDGER_DEFAULT_DOMAIN", defaults.Domain.Default)
	viper.SetDefault("LEDGER_DEFAULT_LANGUAGE", defaults.Language.Default)
	viper.SetDefault("LEDGER_CODE_PATTERN", defaults.Codes.Pattern)
	viper.SetDefault("LEDGER_CODE_UPPERCASE", defaults.Codes.Uppercase)
	viper.SetDefault("LEDGER_PAGE_SIZE", defaults.PageSize)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.LogFormat = viper.GetString("LOG_FORMAT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	ttlStr := viper.GetString("RULES_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 5 * time.Minute
		log.Warn().Str("value", ttlStr).Dur("default", ttl).Msg("Invalid RULES_CACHE_TTL, using default")
	}
	cfg.RulesCacheTTL = ttl

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.LedgerRules = domain.LedgerRules{
		Domain:   domain.DomainRules{Default: viper.GetString("LEDGER_DEFAULT_DOMAIN")},
		Language: domain.LanguageRules{Default: viper.GetString("LEDGER_DEFAULT_LANGUAGE")},
		Codes: domain.CodeRules{
			Pattern:   viper.GetString("LEDGER_CODE_PATTERN"),
			Uppercase: viper.GetBool("LEDGER_CODE_UPPERCASE"),
		},
		PageSize: viper.GetInt("LEDGER_PAGE_SIZE"),
	}
	if err := validator.New().Struct(cfg.LedgerRules); err != nil {
		return nil, err
	}

	return cfg, nil
}
