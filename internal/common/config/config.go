// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	GrowthLab    GrowthLabConfig   `mapstructure:"growth_lab"`
	Enquiry      EnquiryConfig     `mapstructure:"enquiry"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Metrics      MetricsConfig     `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	TrustedProxies  []string `mapstructure:"trusted_proxies"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Port    int    `mapstructure:"port"` // 0 serves metrics on the API listener
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// --- Specific Configuration Sections ---

// GrowthLabConfig holds the defaults the projection endpoint fills in for
// omitted fields.
type GrowthLabConfig struct {
	DefaultMaturity         string   `mapstructure:"default_maturity"`
	DefaultMonthlyEnquiries int      `mapstructure:"default_monthly_enquiries"`
	DefaultMonthlyBudget    int      `mapstructure:"default_monthly_budget"`
	DefaultTimeframe        int      `mapstructure:"default_timeframe"`
	DefaultServices         []string `mapstructure:"default_services"`
}

// EnquiryConfig holds settings for the enquiry relay.
type EnquiryConfig struct {
	Provider       string   `mapstructure:"provider"` // "resend" or "ses"
	From           string   `mapstructure:"from"`
	Recipients     []string `mapstructure:"recipients"`
	Subject        string   `mapstructure:"subject"`
	Cooldown       int      `mapstructure:"cooldown"` // milliseconds
	Timeout        int      `mapstructure:"timeout"`  // milliseconds
	NotifyIdealFit bool     `mapstructure:"notify_ideal_fit"`
}

// IntegrationConfig holds settings for the email provider and AWS services.
type IntegrationConfig struct {
	Resend struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"resend"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled     bool   `mapstructure:"enabled"`
			TopicARN    string `mapstructure:"topic_arn"`
			PhoneNumber string `mapstructure:"phone_number"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
