// Package risk derives probability-weighted analytics from a set of scenario
// outcomes: expected value, loss probability, the cumulative probability
// curve, a composite risk score and the largest threats to a deal.
//
// Probabilities are expressed 0-100. They are not required to sum to 100;
// keeping them meaningful is the caller's responsibility.
package risk

import (
	"sort"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/profit"
	"gonum.org/v1/gonum/floats"
)

// Entry is one weighted scenario outcome.
type Entry struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	Profit      float64 `json:"profit" yaml:"profit"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// CurvePoint is the cumulative probability of earning at least Threshold.
type CurvePoint struct {
	Threshold   float64 `json:"threshold" yaml:"threshold"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// CurveRange bounds the probability curve.
type CurveRange struct {
	Min   float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max   float64 `json:"max" yaml:"max" mapstructure:"max"`
	Steps int     `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// DefaultCurveRange returns the -50,000..200,000 range in 50 steps.
func DefaultCurveRange() CurveRange {
	return CurveRange{
		Min:   constants.CurveMinProfit,
		Max:   constants.CurveMaxProfit,
		Steps: constants.CurveSteps,
	}
}

// Profile is the risk picture of a deal.
type Profile struct {
	ExpectedValue       float64      `json:"expectedValue" yaml:"expectedValue"`
	LossProbability     float64      `json:"lossProbability" yaml:"lossProbability"`
	BreakEvenConfidence float64      `json:"breakEvenConfidence" yaml:"breakEvenConfidence"`
	ProbabilityCurve    []CurvePoint `json:"probabilityCurve" yaml:"probabilityCurve"`
	RiskScore           float64      `json:"riskScore" yaml:"riskScore"`
	Threats             []Threat     `json:"threats" yaml:"threats"`
}

// Options carries the externally supplied inputs of a risk assessment.
type Options struct {
	// ARVShiftPercent is the market appreciation being assessed, negative
	// for a decline.
	ARVShiftPercent float64
	// PermitDelay is an optional permit delay risk.
	PermitDelay *TimelineRisk
	HiddenCosts []HiddenCost
	Curve       CurveRange
	// DelayCostPerDay prices delays; 0 uses the $50/day default.
	DelayCostPerDay float64
}

// ExpectedValue returns the probability-weighted profit.
func ExpectedValue(entries []Entry) float64 {
	profits := make([]float64, len(entries))
	probabilities := make([]float64, len(entries))
	for i, e := range entries {
		profits[i] = e.Profit
		probabilities[i] = e.Probability / constants.PercentageMultiplier
	}
	return floats.Dot(profits, probabilities)
}

// LossProbability returns the summed probability of the losing entries.
func LossProbability(entries []Entry) float64 {
	total := 0.0
	for _, e := range entries {
		if e.Profit < 0 {
			total += e.Probability
		}
	}
	return total
}

// BreakEvenConfidence returns the summed probability of the entries that at
// least break even.
func BreakEvenConfidence(entries []Entry) float64 {
	total := 0.0
	for _, e := range entries {
		if e.Profit >= 0 {
			total += e.Probability
		}
	}
	return total
}

// ProbabilityCurve returns, for each threshold min + i*(max-min)/steps with
// i = 0..steps, the summed probability of entries whose profit is at least
// the threshold. It returns nil when steps is not positive.
func ProbabilityCurve(entries []Entry, r CurveRange) []CurvePoint {
	if r.Steps <= 0 {
		return nil
	}

	// Sorted descending so each threshold only extends the previous sum.
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Profit > sorted[j].Profit })

	step := (r.Max - r.Min) / float64(r.Steps)
	points := make([]CurvePoint, r.Steps+1)
	for i := range points {
		threshold := r.Min + float64(i)*step
		cumulative := 0.0
		for _, e := range sorted {
			if e.Profit < threshold {
				break
			}
			cumulative += e.Probability
		}
		points[i] = CurvePoint{Threshold: threshold, Probability: cumulative}
	}
	return points
}

// Assess builds the risk profile of d from its metrics and scenario entries.
func Assess(d deal.Deal, m profit.DealMetrics, entries []Entry, opts Options) Profile {
	curve := opts.Curve
	if curve.Steps <= 0 {
		curve = DefaultCurveRange()
	}

	lossProbability := LossProbability(entries)

	return Profile{
		ExpectedValue:       ExpectedValue(entries),
		LossProbability:     lossProbability,
		BreakEvenConfidence: BreakEvenConfidence(entries),
		ProbabilityCurve:    ProbabilityCurve(entries, curve),
		RiskScore: Score(Factors{
			LossProbability:     lossProbability,
			ROI:                 m.ROI,
			RehabOverrunPercent: d.RehabOverrunPercent,
			HoldingMonths:       m.HoldingMonths,
			ARVShiftPercent:     opts.ARVShiftPercent,
		}),
		Threats: TopThreats(ThreatInputs{
			RehabTotal:          m.Rehab.Total,
			RehabOverrunPercent: d.RehabOverrunPercent,
			ARV:                 m.ARV,
			ARVShiftPercent:     opts.ARVShiftPercent,
			PermitDelay:         opts.PermitDelay,
			HiddenCosts:         opts.HiddenCosts,
			DelayCostPerDay:     opts.DelayCostPerDay,
		}),
	}
}
