// Package score computes the 0-100 composite deal-quality score and the risk
// tier derived from it.
package score

import (
	"math"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
)

// Tier is the coarse risk rating attached to a score.
type Tier string

// Risk tiers.
const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Weights of the four sub-scores.
const (
	ROIWeight      = 0.30
	CashFlowWeight = 0.20
	RiskWeight     = 0.30
	MarketWeight   = 0.20
)

// Score combines ROI, a monthly cash-flow proxy, a risk input (100 = worst) and
// a market input into an integer in [0, 100].
func Score(roi, monthlyCashFlow, riskScore, marketScore float64) int {
	roiScore := mathutil.Clamp(mathutil.Finite(roi)/constants.ROIForFullScore*100, 0, 100)
	cashFlowScore := mathutil.Clamp(mathutil.Finite(monthlyCashFlow)/constants.CashFlowForFullScore*100, 0, 100)
	safetyScore := 100 - mathutil.Clamp(mathutil.Finite(riskScore), 0, 100)
	market := mathutil.Clamp(mathutil.Finite(marketScore), 0, 100)

	weighted := ROIWeight*roiScore + CashFlowWeight*cashFlowScore + RiskWeight*safetyScore + MarketWeight*market
	return int(math.Round(weighted))
}

// CashFlowProxy stands in for monthly rental cash flow: a twelfth of a positive
// net profit, else 0.
func CashFlowProxy(netProfit float64) float64 {
	if netProfit > 0 {
		return netProfit / constants.MonthsPerYear
	}
	return 0
}

// TierFor maps a deal score to a risk tier.
func TierFor(score int) Tier {
	switch {
	case score > constants.LowRiskScoreFloor:
		return TierLow
	case score > constants.MediumRiskScoreFloor:
		return TierMedium
	default:
		return TierHigh
	}
}
