// internal/handlers/communication/enquiry-relay/validation.go
package enquiryrelay

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/validation"
)

// decodeInput parses the body and rejects payloads whose fields have the
// wrong JSON types.
func decodeInput(schema *validation.Schema, body []byte) (*Input, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return nil, apperrors.NewInvalidRequestBodyError("malformed JSON")
	}

	result, err := schema.ValidateBytes(body)
	if err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidRequestBodyError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err.Error())
	}
	return &input, nil
}

// checkSubmission applies the honeypot and required-field rules in order
// and trims the fields the email is built from.
func checkSubmission(in *Input) error {
	if strings.TrimSpace(in.CompanyWebsite) != "" {
		return apperrors.NewSpamDetectedError()
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" || in.Email == "" || in.Message == "" {
		return apperrors.NewValidationFailedError(apperrors.MsgRequiredFields, "name, email or message missing")
	}
	if !validation.ValidateEmail(in.Email) {
		return apperrors.NewValidationFailedError(apperrors.MsgInvalidEmail, "invalid email format")
	}
	return nil
}
