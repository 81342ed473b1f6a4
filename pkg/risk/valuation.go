package risk

import (
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/profit"
)

// MinARVInputs are the stresses applied when solving for the minimum ARV.
type MinARVInputs struct {
	TargetProfit float64 `json:"targetProfit" yaml:"targetProfit" mapstructure:"targetProfit"`
	// RehabOverrunPercent inflates the rehab total.
	RehabOverrunPercent float64 `json:"rehabOverrunPercent" yaml:"rehabOverrunPercent" mapstructure:"rehabOverrunPercent"`
	// ExtraMonths extends holding costs at the deal's monthly rate.
	ExtraMonths float64 `json:"extraMonths" yaml:"extraMonths" mapstructure:"extraMonths"`
}

// MinARV returns the sale price needed to earn in.TargetProfit on d. Selling,
// acquisition and financing costs are taken as computed in m.
func MinARV(d deal.Deal, m profit.DealMetrics, in MinARVInputs) float64 {
	rehab := m.Rehab.Total * (1 + in.RehabOverrunPercent/constants.PercentageMultiplier)
	holding := d.MonthlyHoldingCost() * (m.HoldingMonths + in.ExtraMonths)

	return d.PurchasePrice +
		m.Acquisition.FeesOnly +
		m.Financing.Total +
		rehab +
		holding +
		m.Selling.Total +
		in.TargetProfit
}

// MaxAllowableOffer returns arv*factor - rehab. A factor of 0 uses the
// conventional 0.70.
func MaxAllowableOffer(arv, rehab, factor float64) float64 {
	if factor == 0 {
		factor = constants.WholesaleFactor
	}
	return arv*factor - rehab
}
