package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const insecureDefaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	LogLevel       string
	MigrationsPath string
	Location       *time.Location // Calendar days (due dates, overdue checks) are evaluated here

	JWTSecret                  string
	JWTExpiryDuration          time.Duration
	JWTIssuer                  string
	RefreshTokenExpiryDuration time.Duration

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter format, e.g. "5-M"
	APIRateLimit       string

	ExchangeRateURL     string
	ExchangeRateTimeout time.Duration
	ExchangeRateTTL     time.Duration

	BackupDir           string
	BackupRetentionDays int
	BackupCron          string
	BackupCleanupCron   string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("TIMEZONE", "Europe/Istanbul")
	v.SetDefault("JWT_SECRET", insecureDefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "cek-senet-app")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "300-M")
	v.SetDefault("EXCHANGE_RATE_URL", "https://www.tcmb.gov.tr/kurlar/today.xml")
	v.SetDefault("EXCHANGE_RATE_TIMEOUT", "5s")
	v.SetDefault("EXCHANGE_RATE_TTL", "1h")
	v.SetDefault("BACKUP_DIR", "backups")
	v.SetDefault("BACKUP_RETENTION_DAYS", 30)
	v.SetDefault("BACKUP_CRON", "0 3 * * *")
	v.SetDefault("BACKUP_CLEANUP_CRON", "30 3 * * *")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		GoogleClientID:      v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:   v.GetString("GOOGLE_REDIRECT_URL"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:      v.GetString("LOGIN_RATE_LIMIT"),
		APIRateLimit:        v.GetString("API_RATE_LIMIT"),
		ExchangeRateURL:     v.GetString("EXCHANGE_RATE_URL"),
		BackupDir:           v.GetString("BACKUP_DIR"),
		BackupRetentionDays: v.GetInt("BACKUP_RETENTION_DAYS"),
		BackupCron:          v.GetString("BACKUP_CRON"),
		BackupCleanupCron:   v.GetString("BACKUP_CLEANUP_CRON"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == insecureDefaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", v.GetString("TIMEZONE"), err)
	}
	cfg.Location = loc

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_EXPIRY_DURATION", &cfg.JWTExpiryDuration},
		{"REFRESH_TOKEN_EXPIRY_DURATION", &cfg.RefreshTokenExpiryDuration},
		{"EXCHANGE_RATE_TIMEOUT", &cfg.ExchangeRateTimeout},
		{"EXCHANGE_RATE_TTL", &cfg.ExchangeRateTTL},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid duration for %s: %q", d.key, v.GetString(d.key))
		}
		*d.dst = parsed
	}

	for _, key := range []string{"LOGIN_RATE_LIMIT", "API_RATE_LIMIT"} {
		if _, err := limiter.NewRateFromFormatted(v.GetString(key)); err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", key, err)
		}
	}
	for _, key := range []string{"BACKUP_CRON", "BACKUP_CLEANUP_CRON"} {
		if _, err := cron.ParseStandard(v.GetString(key)); err != nil {
			return nil, fmt.Errorf("invalid cron expression for %s: %w", key, err)
		}
	}
	if cfg.BackupRetentionDays <= 0 {
		return nil, fmt.Errorf("BACKUP_RETENTION_DAYS must be positive, got %d", cfg.BackupRetentionDays)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
