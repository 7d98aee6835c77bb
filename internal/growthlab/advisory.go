package growthlab

// Advisory copy is selected from fixed tables keyed by the same discrete
// conditions the formulas use. Nothing here is computed.

var qualificationMessages = map[Qualification]string{
	QualificationIdealFit:        "Your studio has the budget and positioning depth to unlock premium growth quickly.",
	QualificationStrongPotential: "A focused plan will build momentum while strengthening brand authority.",
	QualificationFoundational:    "A measured foundation phase will set the stage for sustainable growth.",
}

var confidenceNotes = map[Qualification]string{
	QualificationIdealFit:        "Strong alignment between investment, service mix, and positioning maturity.",
	QualificationStrongPotential: "Solid fundamentals with room to strengthen visibility and conversion.",
	QualificationFoundational:    "Foundational work will create the stability needed for scale.",
}

// toggleCopy holds the text for a condition being true or false.
type toggleCopy struct {
	on  string
	off string
}

func (c toggleCopy) pick(cond bool) string {
	if cond {
		return c.on
	}
	return c.off
}

var strategyNotes = []struct {
	service Service
	copy    toggleCopy
}{
	{ServiceWebsite, toggleCopy{
		on:  "Prioritise the conversion-led site experience to capture higher-intent enquiries.",
		off: "A refined website experience is the fastest way to raise enquiry quality.",
	}},
	{ServiceBranding, toggleCopy{
		on:  "Leverage the brand narrative to support premium pricing conversations.",
		off: "Brand positioning will elevate perceived value and improve close rates.",
	}},
	{ServiceSEO, toggleCopy{
		on:  "Sustain visibility gains with local search optimisation and editorial content.",
		off: "SEO will stabilise inbound visibility beyond paid or social channels.",
	}},
	{ServiceSocial, toggleCopy{
		on:  "Maintain a calm, editorial social cadence to reinforce authority.",
		off: "Strategic social storytelling will keep the studio top of mind.",
	}},
}

// breadth is the service-count bucket shared by several tables.
type breadth int

const (
	breadthFocused breadth = iota
	breadthBalanced
	breadthIntegrated
)

func breadthOf(serviceCount int) breadth {
	switch {
	case serviceCount >= 3:
		return breadthIntegrated
	case serviceCount == 2:
		return breadthBalanced
	default:
		return breadthFocused
	}
}

var strategicFocus = map[breadth]string{
	breadthIntegrated: "Integrated visibility, conversion, and brand authority.",
	breadthBalanced:   "Balanced improvement across two strategic levers.",
	breadthFocused:    "Focused refinement in a single priority area.",
}

var packageLabels = map[breadth]string{
	breadthIntegrated: "Comprehensive",
	breadthBalanced:   "Balanced",
	breadthFocused:    "Focused",
}

var estimatedPriority = map[breadth]string{
	breadthIntegrated: "Integrated visibility and conversion lift",
	breadthBalanced:   "Balanced lift across two levers",
	breadthFocused:    "Focused strategic refinement",
}

// horizon is the timeframe bucket.
type horizon int

const (
	horizonQuarter horizon = iota
	horizonHalf
	horizonYear
)

func horizonOf(months int) horizon {
	switch {
	case months <= 3:
		return horizonQuarter
	case months <= 6:
		return horizonHalf
	default:
		return horizonYear
	}
}

var shortTermImpact = map[horizon]string{
	horizonQuarter: "Expect measurable clarity and early visibility lift within the first quarter.",
	horizonHalf:    "Momentum builds with steady enquiry lift and stronger positioning signals.",
	horizonYear:    "Compounding visibility and brand authority support sustained growth.",
}

const (
	whyWebsiteBranding = "Aligned brand clarity and conversion design lift both enquiry quality and close rates."
	whySEOSocial       = "Visibility compounds when organic search and editorial social storytelling reinforce one another."
	whyDefault         = "A targeted improvement creates momentum without diluting strategic focus."

	leverageWebsite = "Conversion-focused design turns elevated visibility into qualified enquiries."
	leverageSEO     = "Compounded visibility raises inbound demand without diluting brand tone."
	leverageDefault = "Focused refinement keeps the strategy lean while building credibility."

	defaultGrowthLever = "Foundational clarity"
)

var longTermAdvantage = toggleCopy{
	on:  "Positioning confidence supports premium pricing and higher-fit projects.",
	off: "A refined digital footprint builds a resilient, referral-ready reputation.",
}

var architecture = []struct {
	title string
	copy  toggleCopy
	when  func(ServiceSelection) bool
}{
	{
		title: "Core Visibility Engine",
		copy: toggleCopy{
			on:  "Calibrated visibility across search-led discovery and curated studio presence.",
			off: "Baseline visibility foundation to stabilise inbound awareness.",
		},
		when: func(s ServiceSelection) bool { return s.Has(ServiceSEO) || s.Has(ServiceSocial) },
	},
	{
		title: "Conversion Foundation",
		copy: toggleCopy{
			on:  "Conversion-led experience that qualifies and converts premium enquiries.",
			off: "Conversion hygiene improvements to support higher-fit leads.",
		},
		when: func(s ServiceSelection) bool { return s.Has(ServiceWebsite) },
	},
	{
		title: "Authority Signal Layer",
		copy: toggleCopy{
			on:  "Luxury positioning signals that justify premium pricing and trust.",
			off: "Positioning calibration to strengthen authority cues.",
		},
		when: func(s ServiceSelection) bool { return s.Has(ServiceBranding) },
	},
	{
		title: "Momentum Accelerator",
		copy: toggleCopy{
			on:  "Sequenced rollouts that compound visibility and enquiry velocity.",
			off: "Focused sequencing to build momentum without dilution.",
		},
		when: func(s ServiceSelection) bool { return s.Count() >= 3 },
	},
}

// PositioningTier names the band a positioning score falls in.
func PositioningTier(score int) string {
	switch {
	case score >= 85:
		return "Elevated Positioning"
	case score >= 70:
		return "Refined Positioning"
	default:
		return "Foundational Positioning"
	}
}

// PackageLabel is the recommended service level for a selection.
func PackageLabel(services ServiceSelection) string {
	return packageLabels[breadthOf(services.Count())]
}

// Advise selects the advisory copy for a computed projection.
func Advise(_ StudioProfile, investment InvestmentInput, services ServiceSelection, result ProjectionResult) Advisory {
	notes := make([]string, 0, len(strategyNotes))
	for _, n := range strategyNotes {
		notes = append(notes, n.copy.pick(services.Has(n.service)))
	}

	why := whyDefault
	switch {
	case services.Has(ServiceWebsite) && services.Has(ServiceBranding):
		why = whyWebsiteBranding
	case services.Has(ServiceSEO) && services.Has(ServiceSocial):
		why = whySEOSocial
	}

	leverage := leverageDefault
	switch {
	case services.Has(ServiceWebsite):
		leverage = leverageWebsite
	case services.Has(ServiceSEO):
		leverage = leverageSEO
	}

	pillars := make([]ArchitecturePillar, 0, len(architecture))
	for _, a := range architecture {
		pillars = append(pillars, ArchitecturePillar{Title: a.title, Detail: a.copy.pick(a.when(services))})
	}

	lever := defaultGrowthLever
	if labels := services.Labels(); len(labels) > 0 {
		lever = labels[0]
	}

	b := breadthOf(result.ServiceCount)
	return Advisory{
		QualificationMessage: qualificationMessages[result.Qualification],
		StrategyNotes:        notes,
		StrategicFocus:       strategicFocus[b],
		WhyThisWorks:         why,
		ShortTermImpact:      shortTermImpact[horizonOf(investment.TimeframeMonths)],
		LongTermAdvantage:    longTermAdvantage.pick(services.Has(ServiceBranding)),
		GrowthLeverage:       leverage,
		ConfidenceNote:       confidenceNotes[result.Qualification],
		PositioningTier:      PositioningTier(result.PositioningScore),
		PackageLabel:         packageLabels[b],
		EstimatedPriority:    estimatedPriority[b],
		PrimaryGrowthLever:   lever,
		GrowthArchitecture:   pillars,
	}
}
