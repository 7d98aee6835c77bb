package growthlab

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvise_ReferenceScenario(t *testing.T) {
	profile, investment, services := defaultInputs()

	advisory := Project(profile, investment, services).Advisory

	assert.Equal(t, "Your studio has the budget and positioning depth to unlock premium growth quickly.", advisory.QualificationMessage)
	assert.Equal(t, []string{
		"Prioritise the conversion-led site experience to capture higher-intent enquiries.",
		"Brand positioning will elevate perceived value and improve close rates.",
		"SEO will stabilise inbound visibility beyond paid or social channels.",
		"Maintain a calm, editorial social cadence to reinforce authority.",
	}, advisory.StrategyNotes)
	assert.Equal(t, "Balanced improvement across two strategic levers.", advisory.StrategicFocus)
	assert.Equal(t, "A targeted improvement creates momentum without diluting strategic focus.", advisory.WhyThisWorks)
	assert.Equal(t, "Momentum builds with steady enquiry lift and stronger positioning signals.", advisory.ShortTermImpact)
	assert.Equal(t, "A refined digital footprint builds a resilient, referral-ready reputation.", advisory.LongTermAdvantage)
	assert.Equal(t, "Conversion-focused design turns elevated visibility into qualified enquiries.", advisory.GrowthLeverage)
	assert.Equal(t, "Strong alignment between investment, service mix, and positioning maturity.", advisory.ConfidenceNote)
	assert.Equal(t, "Elevated Positioning", advisory.PositioningTier)
	assert.Equal(t, "Balanced", advisory.PackageLabel)
	assert.Equal(t, "Balanced lift across two levers", advisory.EstimatedPriority)
	assert.Equal(t, "Social Media", advisory.PrimaryGrowthLever)
	require.Len(t, advisory.GrowthArchitecture, 4)
	assert.Equal(t, "Core Visibility Engine", advisory.GrowthArchitecture[0].Title)
	assert.Equal(t, "Calibrated visibility across search-led discovery and curated studio presence.", advisory.GrowthArchitecture[0].Detail)
	assert.Equal(t, "Positioning calibration to strengthen authority cues.", advisory.GrowthArchitecture[2].Detail)
	assert.Equal(t, "Focused sequencing to build momentum without dilution.", advisory.GrowthArchitecture[3].Detail)
}

func TestAdvise_Conditions(t *testing.T) {
	tests := []struct {
		name      string
		services  ServiceSelection
		timeframe int
		check     func(*testing.T, Advisory)
	}{
		{
			name:      "website and branding",
			services:  NewServiceSelection(ServiceWebsite, ServiceBranding),
			timeframe: 3,
			check: func(t *testing.T, a Advisory) {
				assert.Equal(t, whyWebsiteBranding, a.WhyThisWorks)
				assert.Equal(t, "Expect measurable clarity and early visibility lift within the first quarter.", a.ShortTermImpact)
				assert.Equal(t, "Positioning confidence supports premium pricing and higher-fit projects.", a.LongTermAdvantage)
				assert.Equal(t, "Website", a.PrimaryGrowthLever)
			},
		},
		{
			name:      "search and social",
			services:  NewServiceSelection(ServiceSEO, ServiceSocial),
			timeframe: 12,
			check: func(t *testing.T, a Advisory) {
				assert.Equal(t, whySEOSocial, a.WhyThisWorks)
				assert.Equal(t, leverageSEO, a.GrowthLeverage)
				assert.Equal(t, "Compounding visibility and brand authority support sustained growth.", a.ShortTermImpact)
			},
		},
		{
			name:      "no services",
			services:  ServiceSelection{},
			timeframe: 6,
			check: func(t *testing.T, a Advisory) {
				assert.Equal(t, whyDefault, a.WhyThisWorks)
				assert.Equal(t, leverageDefault, a.GrowthLeverage)
				assert.Equal(t, "Focused", a.PackageLabel)
				assert.Equal(t, "Focused refinement in a single priority area.", a.StrategicFocus)
				assert.Equal(t, defaultGrowthLever, a.PrimaryGrowthLever)
				assert.Equal(t, "Baseline visibility foundation to stabilise inbound awareness.", a.GrowthArchitecture[0].Detail)
			},
		},
		{
			name:      "three services",
			services:  NewServiceSelection(ServiceSEO, ServiceBranding, ServiceWebsite),
			timeframe: 6,
			check: func(t *testing.T, a Advisory) {
				assert.Equal(t, "Comprehensive", a.PackageLabel)
				assert.Equal(t, "Integrated visibility and conversion lift", a.EstimatedPriority)
				assert.Equal(t, "Sequenced rollouts that compound visibility and enquiry velocity.", a.GrowthArchitecture[3].Detail)
				assert.Equal(t, "Website", a.PrimaryGrowthLever)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Project(
				StudioProfile{Maturity: MaturityGrowing, MonthlyEnquiries: 6},
				InvestmentInput{MonthlyBudget: 9500, TimeframeMonths: tt.timeframe},
				tt.services,
			)
			tt.check(t, result.Advisory)
		})
	}
}

func TestPositioningTier(t *testing.T) {
	assert.Equal(t, "Elevated Positioning", PositioningTier(85))
	assert.Equal(t, "Refined Positioning", PositioningTier(84))
	assert.Equal(t, "Refined Positioning", PositioningTier(70))
	assert.Equal(t, "Foundational Positioning", PositioningTier(69))
}

func TestContactQuery(t *testing.T) {
	profile, investment, services := defaultInputs()
	result := Project(profile, investment, services)

	q := ContactQuery(profile, investment, services, result, 12)

	assert.Equal(t, "9500", q.Get("budget"))
	assert.Equal(t, "12", q.Get("timeframe"))
	assert.Equal(t, "Balanced", q.Get("package"))
	assert.Equal(t, "Growing studio", q.Get("maturity"))
	assert.Equal(t, "6", q.Get("enquiries"))
	assert.Equal(t, "Social Media, Website", q.Get("services"))
	assert.Equal(t, "Ideal Fit", q.Get("fit"))
	assert.Equal(t, "Social Media, Website", q.Get("strategy"))
}

func TestContactHref_NoServices(t *testing.T) {
	profile, investment, _ := defaultInputs()
	services := ServiceSelection{}
	result := Project(profile, investment, services)

	href := ContactHref(profile, investment, services, result, 6)

	require.Contains(t, href, "/contact?")
	parsed, err := url.ParseQuery(href[len("/contact?"):])
	require.NoError(t, err)
	assert.Equal(t, "Focused foundation", parsed.Get("strategy"))
	assert.Equal(t, "", parsed.Get("services"))
	assert.Equal(t, "Focused", parsed.Get("package"))
}

func TestFormatGBP(t *testing.T) {
	assert.Equal(t, "£9,500", FormatGBP(9500))
	assert.Equal(t, "£244,608", FormatGBP(244608))
	assert.Equal(t, "96", FormatNumber(96))
}
