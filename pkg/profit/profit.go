// Package profit aggregates the five cost categories of a deal into total
// project cost, profit, ROI and the composite score.
package profit

import (
	"math"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/costs"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
	"github.com/iwvelando/flip-forecast/pkg/score"
)

// Breakdown is each cost slice as a percent of total project cost plus
// selling costs. The six slices sum to 100 when the denominator is non-zero.
type Breakdown struct {
	Purchase        float64 `json:"purchase" yaml:"purchase"`
	AcquisitionFees float64 `json:"acquisitionFees" yaml:"acquisitionFees"`
	Financing       float64 `json:"financing" yaml:"financing"`
	Rehab           float64 `json:"rehab" yaml:"rehab"`
	Holding         float64 `json:"holding" yaml:"holding"`
	Selling         float64 `json:"selling" yaml:"selling"`
}

// DealMetrics is the full derived picture of one deal.
type DealMetrics struct {
	costs.Set `yaml:",inline"`

	HoldingMonths     float64    `json:"holdingMonths" yaml:"holdingMonths"`
	ARV               float64    `json:"arv" yaml:"arv"`
	TotalCashInvested float64    `json:"totalCashInvested" yaml:"totalCashInvested"`
	TotalProjectCost  float64    `json:"totalProjectCost" yaml:"totalProjectCost"`
	GrossProfit       float64    `json:"grossProfit" yaml:"grossProfit"`
	NetProfit         float64    `json:"netProfit" yaml:"netProfit"`
	ROI               float64    `json:"roi" yaml:"roi"`
	AnnualizedROI     float64    `json:"annualizedRoi" yaml:"annualizedRoi"`
	ProfitMargin      float64    `json:"profitMargin" yaml:"profitMargin"`
	CashFlowProxy     float64    `json:"cashFlowProxy" yaml:"cashFlowProxy"`
	Score             int        `json:"score" yaml:"score"`
	Risk              score.Tier `json:"risk" yaml:"risk"`
	Percentages       Breakdown  `json:"percentages" yaml:"percentages"`
}

// Evaluate runs the five calculators without overrides and aggregates them.
func Evaluate(d deal.Deal) DealMetrics {
	return EvaluateWith(d, costs.Override{})
}

// EvaluateWith aggregates the category outputs computed under o. ARV is
// scaled by o.ARVAdjustmentPercent so selling costs and profit see the same
// sale price.
func EvaluateWith(d deal.Deal, o costs.Override) DealMetrics {
	set := costs.Calculate(d, o)
	arv := mathutil.Grow(d.ARV, o.ARVAdjustmentPercent)
	months := o.MonthsFor(d)

	m := DealMetrics{
		Set:           set,
		HoldingMonths: months,
		ARV:           arv,
	}

	m.TotalCashInvested = set.Acquisition.Total + set.Rehab.Total
	m.TotalProjectCost = d.PurchasePrice + set.Acquisition.FeesOnly + set.Financing.Total + set.Rehab.Total + set.Holding.Total
	m.GrossProfit = arv - m.TotalProjectCost
	m.NetProfit = m.GrossProfit - set.Selling.Total
	m.ROI = mathutil.SafeDivide(m.NetProfit, m.TotalCashInvested) * 100
	m.AnnualizedROI = AnnualizedROI(m.ROI, months)
	m.ProfitMargin = mathutil.SafeDivide(m.NetProfit, arv) * 100
	m.CashFlowProxy = score.CashFlowProxy(m.NetProfit)

	m.Score = score.Score(m.ROI, m.CashFlowProxy, riskInput(d), marketInput(d))
	m.Risk = score.TierFor(m.Score)

	denominator := m.TotalProjectCost + set.Selling.Total
	m.Percentages = Breakdown{
		Purchase:        mathutil.CalculatePercentage(d.PurchasePrice, denominator),
		AcquisitionFees: mathutil.CalculatePercentage(set.Acquisition.FeesOnly, denominator),
		Financing:       mathutil.CalculatePercentage(set.Financing.Total, denominator),
		Rehab:           mathutil.CalculatePercentage(set.Rehab.Total, denominator),
		Holding:         mathutil.CalculatePercentage(set.Holding.Total, denominator),
		Selling:         mathutil.CalculatePercentage(set.Selling.Total, denominator),
	}

	return m
}

// AnnualizedROI compounds roi earned over months to a 12-month period. It is
// 0 when roi is 0 or months is not positive, and -100 when the period lost
// everything.
func AnnualizedROI(roi, months float64) float64 {
	if roi == 0 || months <= 0 {
		return 0
	}
	growth := 1 + roi/constants.PercentageMultiplier
	if growth <= 0 {
		return -100
	}
	return (math.Pow(growth, constants.MonthsPerYear/months) - 1) * 100
}

func riskInput(d deal.Deal) float64 {
	if d.RiskScore != nil {
		return *d.RiskScore
	}
	return constants.DefaultRiskScore
}

func marketInput(d deal.Deal) float64 {
	if d.MarketScore != nil {
		return *d.MarketScore
	}
	return constants.DefaultMarketScore
}
