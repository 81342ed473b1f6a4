// Package costs implements the five cost category calculators of a
// fix-and-flip deal: acquisition, financing, rehab, holding and selling.
//
// Every calculator is a pure function of a deal.Deal and an Override. Missing
// inputs are zero and no calculator returns an error.
package costs

import "github.com/iwvelando/flip-forecast/pkg/deal"

// Category names.
const (
	CategoryAcquisition = "acquisition"
	CategoryFinancing   = "financing"
	CategoryRehab       = "rehab"
	CategoryHolding     = "holding"
	CategorySelling     = "selling"
)

// LineItem is one named amount within a category. Informational items are
// reported but do not count toward the category total.
type LineItem struct {
	Key           string  `json:"key" yaml:"key"`
	Label         string  `json:"label" yaml:"label"`
	Amount        float64 `json:"amount" yaml:"amount"`
	Informational bool    `json:"informational,omitempty" yaml:"informational,omitempty"`
}

// CostCategory is the output of a category calculator.
type CostCategory struct {
	Name  string     `json:"name" yaml:"name"`
	Items []LineItem `json:"items" yaml:"items"`
	Total float64    `json:"total" yaml:"total"`
	// FeesOnly is the total less any part of the purchase price (the
	// acquisition down payment). Equal to Total for the other categories.
	FeesOnly float64 `json:"feesOnly" yaml:"feesOnly"`
}

// Amount returns the amount of the line item with the given key, or 0.
func (c CostCategory) Amount(key string) float64 {
	for _, item := range c.Items {
		if item.Key == key {
			return item.Amount
		}
	}
	return 0
}

// Override carries the optional per-call adjustments used by the scenario
// engine. The zero value means "no override" for every field.
type Override struct {
	// Months replaces Deal.HoldingMonths for financing and holding costs.
	Months *float64
	// RehabOverrunPercent replaces Deal.RehabOverrunPercent. A pointer to 0
	// forces no overrun.
	RehabOverrunPercent *float64
	// ARVAdjustmentPercent scales ARV before selling costs are applied.
	ARVAdjustmentPercent float64
}

// Calculator is the shared signature of the five category calculators.
type Calculator func(deal.Deal, Override) CostCategory

// MonthsFor returns the holding months in effect under the override.
func (o Override) MonthsFor(d deal.Deal) float64 {
	if o.Months != nil {
		return *o.Months
	}
	return d.HoldingMonths
}

// OverrunFor returns the rehab overrun percent in effect under the override.
func (o Override) OverrunFor(d deal.Deal) float64 {
	if o.RehabOverrunPercent != nil {
		return *o.RehabOverrunPercent
	}
	return d.RehabOverrunPercent
}

// Float returns a pointer to v, for building overrides.
func Float(v float64) *float64 {
	return &v
}

func newCategory(name string, items []LineItem) CostCategory {
	total := 0.0
	for _, item := range items {
		if !item.Informational {
			total += item.Amount
		}
	}
	return CostCategory{Name: name, Items: items, Total: total, FeesOnly: total}
}
