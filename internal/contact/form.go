// Package contact holds the enquiry form model: field validation, the Growth
// Lab context forwarded from a projection, and the message prefill.
package contact

import (
	"strings"
	"unicode/utf8"

	"studio-growth/internal/common/validation"
)

// MinMessageLength is the minimum trimmed message length the form accepts.
const MinMessageLength = 20

// Field validation messages.
const (
	MsgNameRequired       = "Please enter your full name."
	MsgEmailRequired      = "Please enter your email address."
	MsgEmailInvalid       = "Please enter a valid email address."
	MsgProjectTypeMissing = "Please select a project type."
	MsgBudgetMissing      = "Please select an estimated budget."
	MsgMessageRequired    = "Please share project goals so we can respond with relevant guidance."
	MsgMessageTooShort    = "Please provide a little more detail (at least 20 characters)."
	MsgConsentRequired    = "Consent is required so we can contact you about this enquiry."
)

// Form is the enquiry form as the visitor fills it in.
type Form struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Studio          string `json:"studio"`
	ProjectType     string `json:"projectType"`
	EstimatedBudget string `json:"estimatedBudget"`
	Timeline        string `json:"timeline"`
	Website         string `json:"website"`
	CompanyWebsite  string `json:"companyWebsite"`
	Message         string `json:"message"`
	Consent         bool   `json:"consent"`
}

// FieldErrors maps a form field's JSON name to its message.
type FieldErrors map[string]string

// ValidateForm checks the form the way the contact page does before it
// submits. An empty map means the form can be sent.
func ValidateForm(f Form) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = MsgNameRequired
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !validation.ValidateEmail(email):
		errs["email"] = MsgEmailInvalid
	}

	if f.ProjectType == "" {
		errs["projectType"] = MsgProjectTypeMissing
	}
	if f.EstimatedBudget == "" {
		errs["estimatedBudget"] = MsgBudgetMissing
	}

	message := strings.TrimSpace(f.Message)
	switch {
	case message == "":
		errs["message"] = MsgMessageRequired
	case utf8.RuneCountInString(message) < MinMessageLength:
		errs["message"] = MsgMessageTooShort
	}

	if !f.Consent {
		errs["consent"] = MsgConsentRequired
	}

	return errs
}
