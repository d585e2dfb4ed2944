package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"openhouse/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Environment      string
	LogLevel         string
	DBUrl            string
	AttendancePolicy domain.AttendancePolicy
	Mailer           MailerConfig
}

// MailerConfig selects and configures the outgoing mail provider.
type MailerConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is authoritative and .env may be absent.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	policy, err := domain.ParseAttendancePolicy(os.Getenv("ATTENDANCE_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("ATTENDANCE_POLICY: %w", err)
	}

	insecure := false
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		insecure, err = strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("SES_INSECURE_SKIP_VERIFY: %w", err)
		}
	}

	cfg := &Config{
		Environment:      env,
		LogLevel:         os.Getenv("LOG_LEVEL"),
		DBUrl:            os.Getenv("DATABASE_URL"),
		AttendancePolicy: policy,
		Mailer: MailerConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			InsecureSkipVerify: insecure,
		},
	}

	// Set defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "noop"
	}
	if cfg.Mailer.FromName == "" {
		cfg.Mailer.FromName = "Open House"
	}

	return cfg, nil
}
