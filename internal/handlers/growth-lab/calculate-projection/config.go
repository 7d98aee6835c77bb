// internal/handlers/growth-lab/calculate-projection/config.go
package calculateprojection

import (
	"fmt"

	"studio-growth/internal/common/config"
	"studio-growth/internal/growthlab"
)

// Config holds the values substituted for fields a request omits.
type Config struct {
	DefaultMaturity         growthlab.Maturity
	DefaultMonthlyEnquiries int
	DefaultMonthlyBudget    int
	DefaultTimeframe        int
	DefaultServices         []growthlab.Service
}

// LoadConfig converts the growth_lab config section, rejecting defaults the
// engine would not accept from a request.
func LoadConfig(cfg config.GrowthLabConfig) (*Config, error) {
	maturity, err := growthlab.ParseMaturity(cfg.DefaultMaturity)
	if err != nil {
		return nil, fmt.Errorf("growth_lab.default_maturity: %w", err)
	}

	services := make([]growthlab.Service, 0, len(cfg.DefaultServices))
	for _, s := range cfg.DefaultServices {
		svc, err := growthlab.ParseService(s)
		if err != nil {
			return nil, fmt.Errorf("growth_lab.default_services: %w", err)
		}
		services = append(services, svc)
	}

	c := &Config{
		DefaultMaturity:         maturity,
		DefaultMonthlyEnquiries: cfg.DefaultMonthlyEnquiries,
		DefaultMonthlyBudget:    cfg.DefaultMonthlyBudget,
		DefaultTimeframe:        cfg.DefaultTimeframe,
		DefaultServices:         services,
	}
	if err := checkDomain(c.DefaultMonthlyEnquiries, c.DefaultMonthlyBudget, c.DefaultTimeframe); err != nil {
		return nil, fmt.Errorf("growth_lab defaults: %w", err)
	}
	return c, nil
}

// DefaultConfig mirrors the lab's initial control positions.
func DefaultConfig() *Config {
	return &Config{
		DefaultMaturity:         growthlab.MaturityGrowing,
		DefaultMonthlyEnquiries: 6,
		DefaultMonthlyBudget:    9500,
		DefaultTimeframe:        6,
		DefaultServices:         []growthlab.Service{growthlab.ServiceSocial, growthlab.ServiceWebsite},
	}
}
