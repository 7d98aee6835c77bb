package growthlab

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const focusedFoundation = "Focused foundation"

var printer = message.NewPrinter(language.BritishEnglish)

// ContactQuery flattens a projection into the key/value set the contact
// page reads to pre-fill an enquiry. months overrides the timeframe so each
// timeline point can link to its own hand-off.
func ContactQuery(profile StudioProfile, investment InvestmentInput, services ServiceSelection, result ProjectionResult, months int) url.Values {
	labels := strings.Join(services.Labels(), ", ")
	strategy := labels
	if strategy == "" {
		strategy = focusedFoundation
	}

	return url.Values{
		"budget":    {strconv.Itoa(investment.MonthlyBudget)},
		"timeframe": {strconv.Itoa(months)},
		"package":   {PackageLabel(services)},
		"maturity":  {profile.Maturity.Label()},
		"enquiries": {strconv.Itoa(profile.MonthlyEnquiries)},
		"services":  {labels},
		"fit":       {result.QualificationLabel},
		"strategy":  {strategy},
	}
}

// ContactHref is the relative contact-page link for a projection.
func ContactHref(profile StudioProfile, investment InvestmentInput, services ServiceSelection, result ProjectionResult, months int) string {
	return "/contact?" + ContactQuery(profile, investment, services, result, months).Encode()
}

// FormatNumber groups thousands the way the site displays figures ("9,500").
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatGBP renders a pound amount ("£9,500").
func FormatGBP(n int) string {
	return "£" + FormatNumber(n)
}
