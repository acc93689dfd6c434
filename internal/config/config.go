package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the trip service.
// Environment variables are automatically parsed from the VOYAGE_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	// Derived or override driver
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration (local target)
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// Conversation defaults
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"English"`

	// Cost research
	ResearchCacheTTLSeconds int `envconfig:"RESEARCH_CACHE_TTL_SECONDS" default:"3600"`
	ResearchTimeoutSeconds  int `envconfig:"RESEARCH_TIMEOUT_SECONDS" default:"10"`

	// External collaborator endpoints; empty values degrade the feature path
	// to its in-repo fallback instead of failing startup.
	NLPServiceURL           string `envconfig:"NLP_SERVICE_URL" default:""`
	ResearchServiceURL      string `envconfig:"RESEARCH_SERVICE_URL" default:""`
	TransportServiceURL     string `envconfig:"TRANSPORT_SERVICE_URL" default:""`
	NLPTimeoutSeconds       int    `envconfig:"NLP_TIMEOUT_SECONDS" default:"5"`
	TransportTimeoutSeconds int    `envconfig:"TRANSPORT_TIMEOUT_SECONDS" default:"10"`

	// OTP delivery (Fast2SMS); empty key falls back to console delivery
	Fast2SMSAPIKey string `envconfig:"FAST2SMS_API_KEY" default:""`

	// Notification channels
	TwilioAccountSID     string `envconfig:"TWILIO_ACCOUNT_SID" default:""`
	TwilioAuthToken      string `envconfig:"TWILIO_AUTH_TOKEN" default:""`
	TwilioPhoneNumber    string `envconfig:"TWILIO_PHONE_NUMBER" default:""`
	TwilioWhatsAppNumber string `envconfig:"TWILIO_WHATSAPP_NUMBER" default:""`
	SMTPHost             string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort             int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPEmail            string `envconfig:"SMTP_EMAIL" default:""`
	SMTPPassword         string `envconfig:"SMTP_PASSWORD" default:""`
	FromEmail            string `envconfig:"FROM_EMAIL" default:""`
	FromName             string `envconfig:"FROM_NAME" default:"Voyage Security Alerts"`

	// Event bus / dispatcher
	EventBusBuffer int `envconfig:"EVENT_BUS_BUFFER" default:"64"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	// An empty SQLitePath is resolved to the per-user data directory at
	// store construction, not here; config stays free of filesystem access.

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with VOYAGE_
// Example: VOYAGE_HTTP_PORT, VOYAGE_RESEARCH_SERVICE_URL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VOYAGE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Int("research_cache_ttl_seconds", cfg.ResearchCacheTTLSeconds).
		Int("research_timeout_seconds", cfg.ResearchTimeoutSeconds).
		Str("nlp_service_configured", boolString(cfg.NLPServiceURL != "")).
		Str("research_service_configured", boolString(cfg.ResearchServiceURL != "")).
		Str("transport_service_configured", boolString(cfg.TransportServiceURL != "")).
		Str("postgres_dsn_present", boolString(cfg.PostgresDSN != "")).
		Msg("Configuration loaded")

	return &cfg, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
	}

	cfg.HTTPPort = 8080
	cfg.BuildTarget = "local"
	cfg.DBDriver = "auto"
	cfg.SQLitePath = ":memory:"
	cfg.DefaultLanguage = "English"

	cfg.ResearchCacheTTLSeconds = 3600
	cfg.ResearchTimeoutSeconds = 2
	cfg.NLPTimeoutSeconds = 2
	cfg.TransportTimeoutSeconds = 2
	cfg.EventBusBuffer = 16

	cfg.HealthIntervalSeconds = 1
	cfg.HealthProbeTimeoutSeconds = 1
	cfg.BootstrapTimeoutSeconds = 1

	cfg.SMTPHost = "smtp.gmail.com"
	cfg.SMTPPort = 587
	cfg.FromName = "Voyage Security Alerts"

	if err := cfg.ResolveDefaults(); err != nil {
		panic(err)
	}
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
