// internal/handlers/communication/enquiry-relay/config.go
package enquiryrelay

import (
	"time"

	"studio-growth/internal/common/config"
)

type Config struct {
	Provider       string
	From           string
	Recipients     []string
	Subject        string
	Cooldown       time.Duration
	Timeout        time.Duration
	NotifyIdealFit bool
}

// LoadConfig converts the enquiry config section.
func LoadConfig(cfg config.EnquiryConfig) *Config {
	return &Config{
		Provider:       cfg.Provider,
		From:           cfg.From,
		Recipients:     cfg.Recipients,
		Subject:        cfg.Subject,
		Cooldown:       config.GetDuration(cfg.Cooldown),
		Timeout:        config.GetDuration(cfg.Timeout),
		NotifyIdealFit: cfg.NotifyIdealFit,
	}
}
