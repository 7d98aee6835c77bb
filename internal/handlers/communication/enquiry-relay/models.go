// internal/handlers/communication/enquiry-relay/models.go
package enquiryrelay

import "studio-growth/internal/contact"

// Input is the enquiry payload posted by the contact page. Null fields
// decode as empty values.
type Input struct {
	contact.Form
	GrowthLab *contact.LabContext `json:"growthLab"`
}

type Output struct {
	OK        bool   `json:"ok"`
	Reference string `json:"reference"`
}

// Message is a provider-neutral outbound email.
type Message struct {
	From      string
	To        []string
	ReplyTo   string
	Subject   string
	Text      string
	Reference string
}

// Qualification label that triggers a studio alert.
const idealFitLabel = "Ideal Fit"

// Reference header attached to outbound mail.
const referenceHeader = "X-Entity-Ref-ID"
