// internal/handlers/growth-lab/calculate-projection/models.go
package calculateprojection

import "studio-growth/internal/growthlab"

// Input is the projection request. Nil fields take the configured default;
// an explicit empty services list selects no services.
type Input struct {
	Maturity         *string   `json:"maturity,omitempty"`
	MonthlyEnquiries *int      `json:"monthlyEnquiries,omitempty"`
	MonthlyBudget    *int      `json:"monthlyBudget,omitempty"`
	TimeframeMonths  *int      `json:"timeframeMonths,omitempty"`
	Services         *[]string `json:"services,omitempty"`
}

// Output is the projection response.
type Output struct {
	Profile       growthlab.StudioProfile    `json:"profile"`
	Investment    growthlab.InvestmentInput  `json:"investment"`
	Services      []growthlab.Service        `json:"services"`
	Result        growthlab.ProjectionResult `json:"result"`
	ContactQuery  map[string]string          `json:"contactQuery"`
	ContactHref   string                     `json:"contactHref"`
	TimelineHrefs []TimelineHref             `json:"timelineHrefs"`
}

// TimelineHref is the contact hand-off link for one horizon.
type TimelineHref struct {
	Months int    `json:"months"`
	Href   string `json:"href"`
}

// Bounds describes a slider control.
type Bounds struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

type MaturityOption struct {
	ID         growthlab.Maturity `json:"id"`
	Label      string             `json:"label"`
	Multiplier float64            `json:"multiplier"`
}

// Defaults are the initial control positions.
type Defaults struct {
	Maturity         growthlab.Maturity  `json:"maturity"`
	MonthlyEnquiries int                 `json:"monthlyEnquiries"`
	MonthlyBudget    int                 `json:"monthlyBudget"`
	TimeframeMonths  int                 `json:"timeframeMonths"`
	Services         []growthlab.Service `json:"services"`
}

// OptionsOutput describes the lab controls.
type OptionsOutput struct {
	Maturities       []MaturityOption          `json:"maturities"`
	Timeframes       []int                     `json:"timeframes"`
	Services         []growthlab.ServiceOption `json:"services"`
	MonthlyEnquiries Bounds                    `json:"monthlyEnquiries"`
	MonthlyBudget    Bounds                    `json:"monthlyBudget"`
	Defaults         Defaults                  `json:"defaults"`
}
