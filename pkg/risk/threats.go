package risk

import (
	"math"
	"sort"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/format"
)

// Threat severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// Threat names.
const (
	ThreatRehabOverrun = "Rehab cost overrun"
	ThreatPermitDelay  = "Permit delay"
	ThreatARVDecline   = "ARV decline"
)

// Probabilities assigned to the threats the engine derives itself.
const (
	RehabOverrunThreatProbability = 40.0
	ARVDeclineThreatProbability   = 30.0
)

// Thresholds above which a factor becomes a threat.
const (
	RehabOverrunThreatPercent   = 20.0
	ARVDeclineThreatPercent     = -5.0
	HiddenCostThreatProbability = 15.0
)

// Threat is one named risk with its dollar impact.
type Threat struct {
	Name        string  `json:"name" yaml:"name"`
	Probability float64 `json:"probability" yaml:"probability"`
	Impact      string  `json:"impact" yaml:"impact"`
	Cost        float64 `json:"cost" yaml:"cost"`
	Severity    string  `json:"severity" yaml:"severity"`
}

// ExpectedLoss is the probability-weighted cost of the threat.
func (t Threat) ExpectedLoss() float64 {
	return t.Probability / constants.PercentageMultiplier * t.Cost
}

// ThreatInputs are the figures the threat ranking is drawn from.
type ThreatInputs struct {
	RehabTotal          float64
	RehabOverrunPercent float64
	ARV                 float64
	ARVShiftPercent     float64
	PermitDelay         *TimelineRisk
	HiddenCosts         []HiddenCost
	// DelayCostPerDay prices the permit delay; 0 uses the $50/day default.
	DelayCostPerDay float64
}

func newThreat(name string, probability, cost float64) Threat {
	t := Threat{
		Name:        name,
		Probability: probability,
		Impact:      format.Currency(cost),
		Cost:        cost,
		Severity:    SeverityMedium,
	}
	if t.ExpectedLoss() >= constants.HighSeverityExpectedLoss {
		t.Severity = SeverityHigh
	}
	return t
}

// Threats lists every applicable threat, largest expected loss first.
func Threats(in ThreatInputs) []Threat {
	var threats []Threat

	if in.RehabOverrunPercent > RehabOverrunThreatPercent {
		cost := in.RehabTotal * in.RehabOverrunPercent / constants.PercentageMultiplier
		threats = append(threats, newThreat(ThreatRehabOverrun, RehabOverrunThreatProbability, cost))
	}

	if in.PermitDelay != nil {
		cost := in.PermitDelay.Days * delayCost(in.DelayCostPerDay)
		threats = append(threats, newThreat(ThreatPermitDelay, in.PermitDelay.Probability, cost))
	}

	if in.ARVShiftPercent < ARVDeclineThreatPercent {
		cost := in.ARV * math.Abs(in.ARVShiftPercent) / constants.PercentageMultiplier
		threats = append(threats, newThreat(ThreatARVDecline, ARVDeclineThreatProbability, cost))
	}

	for _, hc := range in.HiddenCosts {
		if hc.Probability > HiddenCostThreatProbability {
			threats = append(threats, newThreat(hc.Name, hc.Probability, hc.Impact))
		}
	}

	sort.SliceStable(threats, func(i, j int) bool {
		return threats[i].Probability*threats[i].Cost > threats[j].Probability*threats[j].Cost
	})
	return threats
}

// TopThreats returns the three largest threats.
func TopThreats(in ThreatInputs) []Threat {
	threats := Threats(in)
	if len(threats) > constants.MaxThreats {
		threats = threats[:constants.MaxThreats]
	}
	return threats
}
