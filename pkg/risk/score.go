package risk

import "github.com/iwvelando/flip-forecast/pkg/mathutil"

// Factors are the inputs of the composite risk score.
type Factors struct {
	LossProbability     float64 `json:"lossProbability" yaml:"lossProbability"`
	ROI                 float64 `json:"roi" yaml:"roi"`
	RehabOverrunPercent float64 `json:"rehabOverrunPercent" yaml:"rehabOverrunPercent"`
	HoldingMonths       float64 `json:"holdingMonths" yaml:"holdingMonths"`
	ARVShiftPercent     float64 `json:"arvShiftPercent" yaml:"arvShiftPercent"`
}

// Score returns the 0-100 composite risk score, higher being riskier. Loss
// probability carries 40% of the weight and the ROI, overrun, holding period
// and ARV shift tiers add fixed bonuses.
func Score(f Factors) float64 {
	score := 0.4 * f.LossProbability

	switch {
	case f.ROI < 10:
		score += 20
	case f.ROI < 15:
		score += 10
	}

	switch {
	case f.RehabOverrunPercent > 30:
		score += 15
	case f.RehabOverrunPercent > 20:
		score += 8
	}

	switch {
	case f.HoldingMonths > 8:
		score += 15
	case f.HoldingMonths > 6:
		score += 8
	}

	if f.ARVShiftPercent < -10 {
		score += 10
	}

	return mathutil.Clamp(mathutil.Finite(score), 0, 100)
}
