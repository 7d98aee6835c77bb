package contact

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults for lab context fields missing from the hand-off query.
const (
	DefaultPackageLabel = "Custom"
	DefaultTimeframe    = "6"
	DefaultMaturity     = "Growing studio"
	DefaultFit          = "Strong Potential"
)

var printer = message.NewPrinter(language.BritishEnglish)

// LabContext is the Growth Lab summary carried from a projection to an
// enquiry. Budget is nil when it was not supplied or is not a number.
type LabContext struct {
	Budget       *float64 `json:"budget"`
	PackageLabel string   `json:"packageLabel"`
	Timeframe    string   `json:"timeframe"`
	Maturity     string   `json:"maturity"`
	Fit          string   `json:"fit"`
	Strategy     string   `json:"strategy"`
}

// ParseLabContext reads the contact hand-off query. It returns nil when
// none of budget, package or strategy is present.
func ParseLabContext(q url.Values) *LabContext {
	budget := q.Get("budget")
	pkg := q.Get("package")
	strategy := q.Get("strategy")
	if budget == "" && pkg == "" && strategy == "" {
		return nil
	}

	return &LabContext{
		Budget:       parseBudget(budget),
		PackageLabel: valueOr(q, "package", DefaultPackageLabel),
		Timeframe:    valueOr(q, "timeframe", DefaultTimeframe),
		Maturity:     valueOr(q, "maturity", DefaultMaturity),
		Fit:          valueOr(q, "fit", DefaultFit),
		Strategy:     valueOr(q, "strategy", ""),
	}
}

// valueOr falls back only when the key is absent; an explicit empty value is kept.
func valueOr(q url.Values, key, fallback string) string {
	if _, ok := q[key]; !ok {
		return fallback
	}
	return q.Get(key)
}

func parseBudget(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MessagePrefill is the enquiry message seeded from a lab context.
func MessagePrefill(lc *LabContext) string {
	if lc == nil {
		return ""
	}
	return fmt.Sprintf("Growth Lab summary:\nPackage: %s\nTimeframe: %s months\nMaturity: %s\nFit: %s\nStrategy: %s",
		lc.PackageLabel, lc.Timeframe, lc.Maturity, lc.Fit, lc.Strategy)
}

// FormatBudget groups thousands ("9,500"). Fractional budgets keep up to
// three decimals.
func FormatBudget(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
