// internal/handlers/communication/enquiry-relay/email.go
package enquiryrelay

import (
	"strings"

	"studio-growth/internal/contact"
)

const notProvided = "Not provided"

func orNotProvided(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notProvided
	}
	return s
}

// buildTextBody renders the plain-text email for the studio inbox. Name,
// email and message are expected to be trimmed already.
func buildTextBody(in *Input) string {
	consent := "No"
	if in.Consent {
		consent = "Yes"
	}

	lines := []string{
		"New enquiry received",
		"",
		"Name: " + in.Name,
		"Email: " + in.Email,
		"Studio: " + orNotProvided(in.Studio),
		"Project type: " + orNotProvided(in.ProjectType),
		"Estimated budget: " + orNotProvided(in.EstimatedBudget),
		"Timeline: " + orNotProvided(in.Timeline),
		"Website/Instagram: " + orNotProvided(in.Website),
		"Company website (honeypot): " + orNotProvided(in.CompanyWebsite),
		"Consent: " + consent,
		"",
		"Message:",
		in.Message,
	}

	if lab := in.GrowthLab; lab != nil {
		budget := notProvided
		if lab.Budget != nil {
			budget = "GBP " + contact.FormatBudget(*lab.Budget)
		}
		lines = append(lines,
			"",
			"Growth Lab context:",
			"Package: "+orNotProvided(lab.PackageLabel),
			"Timeframe: "+orNotProvided(lab.Timeframe)+" months",
			"Maturity: "+orNotProvided(lab.Maturity),
			"Fit: "+orNotProvided(lab.Fit),
			"Strategy: "+orNotProvided(lab.Strategy),
			"Budget: "+budget,
		)
	}

	return strings.Join(lines, "\n")
}

// alertText is the short SMS/topic message for a high-fit enquiry.
func alertText(in *Input, reference string) string {
	var b strings.Builder
	b.WriteString("New Ideal Fit enquiry from ")
	b.WriteString(in.Name)
	if studio := strings.TrimSpace(in.Studio); studio != "" {
		b.WriteString(" (" + studio + ")")
	}
	if lab := in.GrowthLab; lab != nil && strings.TrimSpace(lab.PackageLabel) != "" {
		b.WriteString(", " + strings.TrimSpace(lab.PackageLabel) + " package")
	}
	b.WriteString(". Ref " + reference)
	return b.String()
}
