package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/flip-forecast/pkg/deal"
)

// ValidateDeal returns warnings for inputs that compute but probably do not
// mean what the user intended.
func ValidateDeal(name string, d deal.Deal) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' ", name)+fmt.Sprintf(format, args...))
	}

	if d.ARV <= 0 {
		warn("has no positive ARV (%.2f) - profit will be negative", d.ARV)
	} else if d.ARV < d.PurchasePrice {
		warn("has ARV below purchase price (%.2f < %.2f)", d.ARV, d.PurchasePrice)
	}

	if d.HoldingMonths <= 0 {
		warn("has no holding period - financing and holding costs will be 0")
	}

	if d.DownPaymentPercent < 0 || d.DownPaymentPercent > 100 {
		warn("has down payment outside 0-100%% (%.2f)", d.DownPaymentPercent)
	}

	percents := map[string]float64{
		"contingencyPercent":        d.ContingencyPercent,
		"realtorCommission":         d.RealtorCommission,
		"closingCostsSelling":       d.ClosingCostsSelling,
		"transferTaxRate":           d.TransferTaxRate,
		"buyerFinancingFallthrough": d.BuyerFinancingFallthrough,
	}
	for _, field := range SortedKeys(percents) {
		if v := percents[field]; v > 100 {
			warn("has %s above 100%% (%.2f)", field, v)
		}
	}

	amounts := map[string]float64{
		"purchasePrice":      d.PurchasePrice,
		"rehabCosts":         d.RehabCosts,
		"permitFees":         d.PermitFees,
		"propertyTax":        d.PropertyTax,
		"insurance":          d.Insurance,
		"utilities":          d.Utilities,
		"hoa":                d.HOA,
		"lawnMaintenance":    d.LawnMaintenance,
		"stagingCost":        d.StagingCost,
		"marketingCost":      d.MarketingCost,
		"inspectionCost":     d.InspectionCost,
		"appraisalCost":      d.AppraisalCost,
		"titleInsurance":     d.TitleInsurance,
		"closingCostsBuying": d.ClosingCostsBuying,
	}
	for _, field := range SortedKeys(amounts) {
		if v := amounts[field]; v < 0 {
			warn("has negative %s (%.2f)", field, v)
		}
	}

	if d.RiskScore != nil && (*d.RiskScore < 0 || *d.RiskScore > 100) {
		warn("has riskScore outside 0-100 (%.2f) - it will be clamped", *d.RiskScore)
	}
	if d.MarketScore != nil && (*d.MarketScore < 0 || *d.MarketScore > 100) {
		warn("has marketScore outside 0-100 (%.2f) - it will be clamped", *d.MarketScore)
	}

	return warnings
}

// ValidateWeights warns when scenario weights do not total 100.
func ValidateWeights(weights map[string]float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-100) > 1e-9 {
		return fmt.Sprintf("Scenario weights total %.2f%% instead of 100%% - expected value will be scaled accordingly", total)
	}
	return ""
}

// NamedDeal pairs a deal with the name used in warnings.
type NamedDeal struct {
	Name string
	Deal deal.Deal
}

// DealValidator validates a set of deals and their scenario weights.
type DealValidator struct {
	Deals   []NamedDeal
	Weights map[string]float64
}

// ValidateAll returns every warning in deal order, then the weight warning.
func (v *DealValidator) ValidateAll() []string {
	var warnings []string
	for _, nd := range v.Deals {
		warnings = append(warnings, ValidateDeal(nd.Name, nd.Deal)...)
	}
	if v.Weights != nil {
		if w := ValidateWeights(v.Weights); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
