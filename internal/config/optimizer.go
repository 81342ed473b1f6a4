package config

import (
	"fmt"
	"strings"
)

const (
	OptimizerFieldPurchasePrice = "purchasePrice"
	OptimizerFieldRehabCosts    = "rehabCosts"

	OptimizerKindNetProfit = "net_profit"
	OptimizerKindROI       = "roi"

	defaultTolerance     = 1.0
	defaultMaxIterations = 50
)

// OptimizerConfig defines a max-offer search: the largest value of Field for
// which the deal's Kind metric still reaches Target.
type OptimizerConfig struct {
	Field         string   `yaml:"field,omitempty" mapstructure:"field"`
	Kind          string   `yaml:"kind,omitempty" mapstructure:"kind"`
	Target        float64  `yaml:"target,omitempty" mapstructure:"target"`
	Min           *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max           *float64 `yaml:"max,omitempty" mapstructure:"max"`
	Tolerance     float64  `yaml:"tolerance,omitempty" mapstructure:"tolerance"`
	MaxIterations int      `yaml:"maxIterations,omitempty" mapstructure:"maxIterations"`
}

// CanonicalOptimizerField returns the canonical identifier for an optimizer field.
func CanonicalOptimizerField(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OptimizerFieldPurchasePrice
	}
	switch strings.ToLower(trimmed) {
	case "purchaseprice", "purchase_price", "purchase-price", "price", "offer":
		return OptimizerFieldPurchasePrice
	case "rehabcosts", "rehab_costs", "rehab-costs", "rehab":
		return OptimizerFieldRehabCosts
	default:
		return strings.ToLower(trimmed)
	}
}

// CanonicalOptimizerKind returns the canonical identifier for an optimizer kind.
func CanonicalOptimizerKind(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "net_profit", "netprofit", "net-profit", "profit":
		return OptimizerKindNetProfit
	case "roi":
		return OptimizerKindROI
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// Normalize ensures defaults and canonical values are applied before validation.
func (o *OptimizerConfig) Normalize() {
	if o == nil {
		return
	}
	o.Field = CanonicalOptimizerField(o.Field)
	o.Kind = CanonicalOptimizerKind(o.Kind)

	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
}

// Validate returns an error when the optimizer configuration is unsupported.
func (o *OptimizerConfig) Validate() error {
	if o == nil {
		return fmt.Errorf("optimizer configuration cannot be nil")
	}

	o.Normalize()

	switch o.Field {
	case OptimizerFieldPurchasePrice, OptimizerFieldRehabCosts:
		// supported fields
	default:
		return fmt.Errorf("optimizer field %q is not supported", o.Field)
	}
	switch o.Kind {
	case OptimizerKindNetProfit, OptimizerKindROI:
	default:
		return fmt.Errorf("optimizer kind %q is not supported", o.Kind)
	}

	if o.Min != nil && *o.Min < 0 {
		return fmt.Errorf("optimizer minimum %.2f must not be negative", *o.Min)
	}
	if o.Max != nil && *o.Max <= 0 {
		return fmt.Errorf("optimizer maximum %.2f must be positive", *o.Max)
	}
	if o.Min != nil && o.Max != nil && *o.Min >= *o.Max {
		return fmt.Errorf("optimizer minimum %.2f must be less than maximum %.2f", *o.Min, *o.Max)
	}

	return nil
}

// Bounds returns the search interval. A missing minimum is 0 and a missing
// maximum is the fallback, normally the deal's ARV.
func (o *OptimizerConfig) Bounds(fallbackMax float64) (float64, float64, error) {
	lower := 0.0
	if o.Min != nil {
		lower = *o.Min
	}
	upper := fallbackMax
	if o.Max != nil {
		upper = *o.Max
	}
	if upper <= lower {
		return 0, 0, fmt.Errorf("optimizer bounds %.2f to %.2f are empty", lower, upper)
	}
	return lower, upper, nil
}
