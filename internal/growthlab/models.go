package growthlab

import "fmt"

// Maturity is the business stage of a prospective client studio.
type Maturity string

const (
	MaturityNew         Maturity = "new"
	MaturityGrowing     Maturity = "growing"
	MaturityEstablished Maturity = "established"
)

// Multiplier returns the growth multiplier for the maturity tier.
// Unknown values fall back to the Growing tier.
func (m Maturity) Multiplier() float64 {
	switch m {
	case MaturityNew:
		return 0.90
	case MaturityEstablished:
		return 1.12
	default:
		return 1.00
	}
}

// Label is the human-readable name shown in the lab and forwarded to the contact page.
func (m Maturity) Label() string {
	switch m {
	case MaturityNew:
		return "New studio"
	case MaturityEstablished:
		return "Established studio"
	default:
		return "Growing studio"
	}
}

func (m Maturity) Valid() bool {
	switch m {
	case MaturityNew, MaturityGrowing, MaturityEstablished:
		return true
	}
	return false
}

// ParseMaturity accepts the identifier form ("growing").
func ParseMaturity(s string) (Maturity, error) {
	m := Maturity(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown maturity %q", s)
	}
	return m, nil
}

// Service is one of the four fixed service tags.
type Service string

const (
	ServiceSocial   Service = "social"
	ServiceWebsite  Service = "website"
	ServiceBranding Service = "branding"
	ServiceSEO      Service = "seo"
)

// Impact is the multiplicative effect a service has on each projected dimension.
type Impact struct {
	Visibility  float64 `json:"visibility"`
	Enquiries   float64 `json:"enquiries"`
	Positioning float64 `json:"positioning"`
}

// ServiceOption describes a selectable service in the Growth Lab.
type ServiceOption struct {
	ID     Service `json:"id"`
	Label  string  `json:"label"`
	Detail string  `json:"detail"`
	Impact Impact  `json:"impact"`
}

// ServiceOptions is ordered; the order drives folding, labels and the primary lever.
var ServiceOptions = []ServiceOption{
	{
		ID:     ServiceSocial,
		Label:  "Social Media",
		Detail: "Editorial content cadence and community growth.",
		Impact: Impact{Visibility: 1.22, Enquiries: 1.1, Positioning: 1.05},
	},
	{
		ID:     ServiceWebsite,
		Label:  "Website",
		Detail: "Conversion-led experience with refined lead capture.",
		Impact: Impact{Visibility: 1.18, Enquiries: 1.35, Positioning: 1.12},
	},
	{
		ID:     ServiceBranding,
		Label:  "Branding",
		Detail: "Luxury positioning and elevated studio narrative.",
		Impact: Impact{Visibility: 1.12, Enquiries: 1.18, Positioning: 1.35},
	},
	{
		ID:     ServiceSEO,
		Label:  "SEO",
		Detail: "High-intent visibility for London-based clients.",
		Impact: Impact{Visibility: 1.3, Enquiries: 1.25, Positioning: 1.08},
	},
}

// ParseService accepts the identifier form ("seo").
func ParseService(s string) (Service, error) {
	for _, opt := range ServiceOptions {
		if string(opt.ID) == s {
			return opt.ID, nil
		}
	}
	return "", fmt.Errorf("unknown service %q", s)
}

// ServiceSelection is the set of toggled services.
type ServiceSelection map[Service]bool

// NewServiceSelection builds a selection from the given tags.
func NewServiceSelection(services ...Service) ServiceSelection {
	sel := make(ServiceSelection, len(services))
	for _, s := range services {
		sel[s] = true
	}
	return sel
}

func (s ServiceSelection) Has(svc Service) bool {
	return s[svc]
}

// Count returns the number of selected services.
func (s ServiceSelection) Count() int {
	n := 0
	for _, opt := range ServiceOptions {
		if s[opt.ID] {
			n++
		}
	}
	return n
}

// Labels returns the labels of the selected services in catalogue order.
func (s ServiceSelection) Labels() []string {
	labels := make([]string, 0, len(ServiceOptions))
	for _, opt := range ServiceOptions {
		if s[opt.ID] {
			labels = append(labels, opt.Label)
		}
	}
	return labels
}

// StudioProfile is the current baseline of the studio.
type StudioProfile struct {
	Maturity         Maturity `json:"maturity"`
	MonthlyEnquiries int      `json:"monthlyEnquiries"`
}

// InvestmentInput is the planned spend and horizon.
type InvestmentInput struct {
	MonthlyBudget   int `json:"monthlyBudget"`
	TimeframeMonths int `json:"timeframeMonths"`
}

// Input domains enforced by the lab controls.
const (
	MinMonthlyEnquiries = 2
	MaxMonthlyEnquiries = 24
	MinMonthlyBudget    = 3500
	MaxMonthlyBudget    = 15000
	BudgetStep          = 250
)

// Timeframes are the projection horizons in months.
var Timeframes = []int{3, 6, 12}

// Qualification is the sales-readiness tier derived from the fit score.
type Qualification string

const (
	QualificationIdealFit        Qualification = "ideal_fit"
	QualificationStrongPotential Qualification = "strong_potential"
	QualificationFoundational    Qualification = "foundational"
)

// Label is the display text used on the lab and in enquiry summaries.
func (q Qualification) Label() string {
	switch q {
	case QualificationIdealFit:
		return "Ideal Fit"
	case QualificationStrongPotential:
		return "Strong Growth Potential"
	default:
		return "Foundational Stage"
	}
}

// ServiceFactor is the folded impact of the selected services.
type ServiceFactor = Impact

// TimelinePoint is the projection for a single horizon.
type TimelinePoint struct {
	Months           int `json:"months"`
	Enquiries        int `json:"enquiries"`
	VisibilityIndex  int `json:"visibilityIndex"`
	PositioningScore int `json:"positioningScore"`
	VisibilityLift   int `json:"visibilityLift"`
}

// Range is an inclusive min/max estimate.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Advisory holds the presentation copy selected for a projection.
type Advisory struct {
	QualificationMessage string               `json:"qualificationMessage"`
	StrategyNotes        []string             `json:"strategyNotes"`
	StrategicFocus       string               `json:"strategicFocus"`
	WhyThisWorks         string               `json:"whyThisWorks"`
	ShortTermImpact      string               `json:"shortTermImpact"`
	LongTermAdvantage    string               `json:"longTermAdvantage"`
	GrowthLeverage       string               `json:"growthLeverage"`
	ConfidenceNote       string               `json:"confidenceNote"`
	PositioningTier      string               `json:"positioningTier"`
	PackageLabel         string               `json:"packageLabel"`
	EstimatedPriority    string               `json:"estimatedPriority"`
	PrimaryGrowthLever   string               `json:"primaryGrowthLever"`
	GrowthArchitecture   []ArchitecturePillar `json:"growthArchitecture"`
}

// ArchitecturePillar is one block of the recommended growth architecture.
type ArchitecturePillar struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ProjectionResult is the immutable output of Project.
type ProjectionResult struct {
	BudgetFactor       float64         `json:"budgetFactor"`
	MaturityFactor     float64         `json:"maturityFactor"`
	ServiceFactor      ServiceFactor   `json:"serviceFactor"`
	VisibilityRate     float64         `json:"visibilityRate"`
	EnquiryRate        float64         `json:"enquiryRate"`
	Timeline           []TimelinePoint `json:"timeline"`
	Active             TimelinePoint   `json:"active"`
	PositioningScore   int             `json:"positioningScore"`
	CloseRate          float64         `json:"closeRate"`
	AvgProjectValue    int             `json:"avgProjectValue"`
	AnnualLeads        int             `json:"annualLeads"`
	AnnualProjects     int             `json:"annualProjects"`
	Revenue            Range           `json:"revenue"`
	CostPerLead        Range           `json:"costPerLead"`
	FitScore           int             `json:"fitScore"`
	Qualification      Qualification   `json:"qualification"`
	QualificationLabel string          `json:"qualificationLabel"`
	ServiceCount       int             `json:"serviceCount"`
	Advisory           Advisory        `json:"advisory"`
}
