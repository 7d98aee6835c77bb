package growthlab

import "math"

const (
	baselineBudget       = 9000.0
	minBudgetFactor      = 0.7
	maxBudgetFactor      = 1.6
	baseVisibilityRate   = 0.035
	baseEnquiryRate      = 0.03
	visibilityMaturityUp = 0.08
	enquiryMaturityUp    = 0.05
	baseVisibilityIndex  = 100.0
	basePositioning      = 58.0
	budgetPositioning    = 12.0
	minPositioning       = 45
	maxPositioning       = 96

	baseCloseRate         = 0.12
	brandingCloseBonus    = 0.03
	websiteCloseBonus     = 0.02
	establishedCloseBonus = 0.02
	baseProjectValue      = 14000.0
	brandingValueUplift   = 1.22
	websiteValueUplift    = 1.12
	minAnnualLeads        = 24
	minAnnualProjects     = 3

	revenueLow      = 0.85
	revenueHigh     = 1.2
	costPerLeadLow  = 0.82
	costPerLeadHigh = 1.18

	minFitScore         = 50
	maxFitScore         = 96
	idealFitThreshold   = 82
	strongFitThreshold  = 70
	enquiryVolumeBonus  = 4
	enquiryVolumeCutoff = 8
)

// Project evaluates the Growth Lab heuristics. Inputs are expected to be
// inside the lab's control domains; out-of-domain values are not rejected,
// only clamped where the formulas clamp. Project is pure and safe for
// concurrent use.
func Project(profile StudioProfile, investment InvestmentInput, services ServiceSelection) ProjectionResult {
	budgetFactor := BudgetFactor(investment.MonthlyBudget)
	maturityFactor := profile.Maturity.Multiplier()
	factor := FoldServices(services)

	visibilityRate := baseVisibilityRate * budgetFactor * factor.Visibility * (maturityFactor + visibilityMaturityUp)
	enquiryRate := baseEnquiryRate * budgetFactor * factor.Enquiries * (maturityFactor + enquiryMaturityUp)

	timeline := make([]TimelinePoint, 0, len(Timeframes))
	for _, months := range Timeframes {
		visibilityIndex := projectMetric(baseVisibilityIndex, visibilityRate, months)
		timeline = append(timeline, TimelinePoint{
			Months:           months,
			Enquiries:        projectMetric(float64(profile.MonthlyEnquiries), enquiryRate, months),
			VisibilityIndex:  visibilityIndex,
			PositioningScore: positioningScore(factor.Positioning, maturityFactor, budgetFactor, months),
			VisibilityLift:   round(float64(visibilityIndex-100) / 100 * 100),
		})
	}

	active := activePoint(timeline, investment.TimeframeMonths)
	serviceCount := services.Count()

	closeRate := baseCloseRate
	if services.Has(ServiceBranding) {
		closeRate += brandingCloseBonus
	}
	if services.Has(ServiceWebsite) {
		closeRate += websiteCloseBonus
	}
	if profile.Maturity == MaturityEstablished {
		closeRate += establishedCloseBonus
	}

	projectValue := baseProjectValue
	if services.Has(ServiceBranding) {
		projectValue *= brandingValueUplift
	}
	if services.Has(ServiceWebsite) {
		projectValue *= websiteValueUplift
	}
	avgProjectValue := round(projectValue)

	annualLeads := max(minAnnualLeads, active.Enquiries*12)
	annualProjects := max(minAnnualProjects, round(float64(annualLeads)*closeRate))

	revenue := float64(annualProjects * avgProjectValue)
	costPerLead := float64(round(float64(investment.MonthlyBudget) / float64(max(1, annualLeads))))

	bonus := 0
	if profile.MonthlyEnquiries >= enquiryVolumeCutoff {
		bonus = enquiryVolumeBonus
	}
	fitScore := clamp(
		round(float64(active.PositioningScore)*0.6+budgetFactor*18+float64(serviceCount*6+bonus)),
		minFitScore, maxFitScore,
	)
	qualification := Classify(fitScore)

	result := ProjectionResult{
		BudgetFactor:       budgetFactor,
		MaturityFactor:     maturityFactor,
		ServiceFactor:      factor,
		VisibilityRate:     visibilityRate,
		EnquiryRate:        enquiryRate,
		Timeline:           timeline,
		Active:             active,
		PositioningScore:   active.PositioningScore,
		CloseRate:          closeRate,
		AvgProjectValue:    avgProjectValue,
		AnnualLeads:        annualLeads,
		AnnualProjects:     annualProjects,
		Revenue:            Range{Min: round(revenue * revenueLow), Max: round(revenue * revenueHigh)},
		CostPerLead:        Range{Min: round(costPerLead * costPerLeadLow), Max: round(costPerLead * costPerLeadHigh)},
		FitScore:           fitScore,
		Qualification:      qualification,
		QualificationLabel: qualification.Label(),
		ServiceCount:       serviceCount,
	}
	result.Advisory = Advise(profile, investment, services, result)
	return result
}

// BudgetFactor scales the monthly budget against the 9000 baseline.
func BudgetFactor(monthlyBudget int) float64 {
	return clampFloat(float64(monthlyBudget)/baselineBudget, minBudgetFactor, maxBudgetFactor)
}

// FoldServices multiplies the impact triples of the selected services.
// Unselected services contribute a neutral 1.0.
func FoldServices(services ServiceSelection) ServiceFactor {
	factor := ServiceFactor{Visibility: 1, Enquiries: 1, Positioning: 1}
	for _, opt := range ServiceOptions {
		if !services.Has(opt.ID) {
			continue
		}
		factor.Visibility *= opt.Impact.Visibility
		factor.Enquiries *= opt.Impact.Enquiries
		factor.Positioning *= opt.Impact.Positioning
	}
	return factor
}

// Classify maps a fit score to its qualification tier.
func Classify(fitScore int) Qualification {
	switch {
	case fitScore >= idealFitThreshold:
		return QualificationIdealFit
	case fitScore >= strongFitThreshold:
		return QualificationStrongPotential
	default:
		return QualificationFoundational
	}
}

func positioningScore(positioning, maturityFactor, budgetFactor float64, months int) int {
	raw := basePositioning*positioning*maturityFactor + budgetFactor*budgetPositioning + float64(months)
	return clamp(round(raw), minPositioning, maxPositioning)
}

func projectMetric(start, rate float64, months int) int {
	return round(start * math.Pow(1+rate, float64(months)))
}

// activePoint falls back to the 6-month point for an unknown timeframe.
func activePoint(timeline []TimelinePoint, months int) TimelinePoint {
	for _, p := range timeline {
		if p.Months == months {
			return p
		}
	}
	return timeline[1]
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func clampFloat(value, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, value))
}
