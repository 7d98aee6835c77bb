// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default enquiry routing, matching the studio's public contact details.
const (
	DefaultEnquiryFrom      = "Sleek Studio London <onboarding@resend.dev>"
	DefaultEnquiryRecipient = "sleek.studiolondon@gmail.com"
	DefaultEnquirySubject   = "New Enquiry — Sleek Studio London"
	DefaultResendBaseURL    = "https://api.resend.com"

	ProviderResend = "resend"
	ProviderSES    = "ses"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath("../../../configs")
	v.AddConfigPath(".")
	if rootDir := findProjectRoot(); rootDir != "" {
		v.AddConfigPath(filepath.Join(rootDir, "configs"))
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// 1. base config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// 2. environment overlay, optional
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// Enable ENV override like ENQUIRY_PROVIDER
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("enquiry.notify_ideal_fit", true)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from the first location that has one.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests in test/e2e/
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Integrations.Resend.APIKey == "" {
		if val := os.Getenv("RESEND_API_KEY"); val != "" {
			cfg.Integrations.Resend.APIKey = val
		}
	}

	if cfg.Integrations.AWS.SNS.TopicARN == "" {
		if val := os.Getenv("SNS_TOPIC_ARN"); val != "" {
			cfg.Integrations.AWS.SNS.TopicARN = val
		}
	}
	if cfg.Integrations.AWS.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Integrations.AWS.Region = val
		}
	}

	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "studio-growth"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Growth Lab defaults mirror the lab's initial control positions
	if cfg.GrowthLab.DefaultMaturity == "" {
		cfg.GrowthLab.DefaultMaturity = "growing"
	}
	if cfg.GrowthLab.DefaultMonthlyEnquiries == 0 {
		cfg.GrowthLab.DefaultMonthlyEnquiries = 6
	}
	if cfg.GrowthLab.DefaultMonthlyBudget == 0 {
		cfg.GrowthLab.DefaultMonthlyBudget = 9500
	}
	if cfg.GrowthLab.DefaultTimeframe == 0 {
		cfg.GrowthLab.DefaultTimeframe = 6
	}
	if cfg.GrowthLab.DefaultServices == nil {
		cfg.GrowthLab.DefaultServices = []string{"social", "website"}
	}

	// Enquiry defaults
	if cfg.Enquiry.Provider == "" {
		cfg.Enquiry.Provider = ProviderResend
	}
	if cfg.Enquiry.From == "" {
		cfg.Enquiry.From = DefaultEnquiryFrom
	}
	if len(cfg.Enquiry.Recipients) == 0 {
		cfg.Enquiry.Recipients = []string{DefaultEnquiryRecipient}
	}
	if cfg.Enquiry.Subject == "" {
		cfg.Enquiry.Subject = DefaultEnquirySubject
	}
	if cfg.Enquiry.Cooldown == 0 {
		cfg.Enquiry.Cooldown = 8000
	}
	if cfg.Enquiry.Timeout == 0 {
		cfg.Enquiry.Timeout = 10000
	}

	if cfg.Integrations.Resend.BaseURL == "" {
		cfg.Integrations.Resend.BaseURL = DefaultResendBaseURL
	}
	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "eu-west-2"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validateConfig validates critical configuration fields. A missing email
// API key is not an error here: the relay reports it per request.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch cfg.Enquiry.Provider {
	case ProviderResend:
	case ProviderSES:
		if !cfg.Integrations.AWS.SES.Enabled {
			return fmt.Errorf("integrations.aws.ses.enabled is required when enquiry.provider is ses")
		}
	default:
		return fmt.Errorf("enquiry.provider must be %q or %q", ProviderResend, ProviderSES)
	}

	if cfg.Metrics.Port < 0 || cfg.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 0 and 65535")
	}
	if cfg.Metrics.Port != 0 && cfg.Metrics.Port == cfg.Server.Port {
		return fmt.Errorf("metrics.port must differ from server.port")
	}

	if cfg.Enquiry.Cooldown < 0 {
		return fmt.Errorf("enquiry.cooldown must not be negative")
	}

	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when redis is enabled")
	}

	if cfg.Integrations.AWS.SNS.Enabled && cfg.Integrations.AWS.SNS.TopicARN == "" && cfg.Integrations.AWS.SNS.PhoneNumber == "" {
		return fmt.Errorf("integrations.aws.sns.topic_arn or phone_number is required when sns is enabled")
	}

	return nil
}
