// internal/handlers/growth-lab/calculate-projection/validation.go
package calculateprojection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/validation"
	"studio-growth/internal/growthlab"
)

const rootField = "(root)"

// decodeInput checks the body against the endpoint schema and decodes it.
// An empty body is treated as an empty object.
func decodeInput(schema *validation.Schema, body []byte) (*Input, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, apperrors.NewInvalidRequestBodyError("malformed JSON")
	}

	result, err := schema.ValidateBytes(body)
	if err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err.Error())
	}
	if !result.Valid {
		first := result.Errors[0]
		details := strings.Join(result.GetErrorMessages(), "; ")
		if first.Field == rootField {
			return nil, apperrors.NewInvalidRequestBodyError(details)
		}
		return nil, apperrors.NewInvalidProjectionInputError(topLevelField(first.Field), details)
	}

	var input Input
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, apperrors.NewInvalidRequestBodyError(err.Error())
	}
	return &input, nil
}

// topLevelField reduces "services.1" to "services".
func topLevelField(field string) string {
	if i := strings.IndexByte(field, '.'); i >= 0 {
		return field[:i]
	}
	return field
}

// checkDomain enforces the control domains for values that did not come
// through the request schema.
func checkDomain(monthlyEnquiries, monthlyBudget, timeframe int) error {
	if monthlyEnquiries < growthlab.MinMonthlyEnquiries || monthlyEnquiries > growthlab.MaxMonthlyEnquiries {
		return fmt.Errorf("monthly enquiries %d outside [%d, %d]",
			monthlyEnquiries, growthlab.MinMonthlyEnquiries, growthlab.MaxMonthlyEnquiries)
	}
	if monthlyBudget < growthlab.MinMonthlyBudget || monthlyBudget > growthlab.MaxMonthlyBudget ||
		monthlyBudget%growthlab.BudgetStep != 0 {
		return fmt.Errorf("monthly budget %d outside [%d, %d] step %d",
			monthlyBudget, growthlab.MinMonthlyBudget, growthlab.MaxMonthlyBudget, growthlab.BudgetStep)
	}
	for _, t := range growthlab.Timeframes {
		if t == timeframe {
			return nil
		}
	}
	return fmt.Errorf("timeframe %d not one of %v", timeframe, growthlab.Timeframes)
}
