// Package scenario re-evaluates a deal under parameterized deltas: rehab
// overrun, holding-period shift, market appreciation and permit delay.
package scenario

import (
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/costs"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/profit"
)

// Preset names.
const (
	PresetBase   = "base"
	PresetBest   = "best"
	PresetWorstA = "worstA"
	PresetWorstB = "worstB"
	PresetCustom = "custom"
)

// Adjustment is the delta applied to a deal. A nil RehabOverrunPercent keeps
// the deal's own overrun; any value, including 0, replaces it.
type Adjustment struct {
	Name                      string   `json:"name" yaml:"name"`
	RehabOverrunPercent       *float64 `json:"rehabOverrunPercent,omitempty" yaml:"rehabOverrunPercent,omitempty"`
	HoldingPeriodAdjustment   float64  `json:"holdingPeriodAdjustment" yaml:"holdingPeriodAdjustment"`
	MarketAppreciationPercent float64  `json:"marketAppreciationPercent" yaml:"marketAppreciationPercent"`
	PermitDelayDays           float64  `json:"permitDelayDays" yaml:"permitDelayDays"`
}

// Result is a deal re-evaluated under an adjustment.
type Result struct {
	Name       string     `json:"name" yaml:"name"`
	Adjustment Adjustment `json:"adjustment" yaml:"adjustment"`

	profit.DealMetrics `yaml:",inline"`
}

var presets = map[string]Adjustment{
	PresetBase: {Name: PresetBase},
	PresetBest: {
		Name:                      PresetBest,
		RehabOverrunPercent:       costs.Float(-10),
		HoldingPeriodAdjustment:   -1,
		MarketAppreciationPercent: 5,
	},
	PresetWorstA: {
		Name:                      PresetWorstA,
		RehabOverrunPercent:       costs.Float(25),
		HoldingPeriodAdjustment:   3,
		MarketAppreciationPercent: -10,
	},
	PresetWorstB: {
		Name:                      PresetWorstB,
		RehabOverrunPercent:       costs.Float(20),
		HoldingPeriodAdjustment:   3,
		MarketAppreciationPercent: -10,
		PermitDelayDays:           60,
	},
}

var presetOrder = []string{PresetBase, PresetBest, PresetWorstA, PresetWorstB}

// Preset returns the named preset and whether it exists.
func Preset(name string) (Adjustment, bool) {
	adj, ok := presets[name]
	if !ok {
		return Adjustment{}, false
	}
	if adj.RehabOverrunPercent != nil {
		adj.RehabOverrunPercent = costs.Float(*adj.RehabOverrunPercent)
	}
	return adj, true
}

// Presets returns every named preset in a stable order.
func Presets() []Adjustment {
	out := make([]Adjustment, 0, len(presetOrder))
	for _, name := range presetOrder {
		adj, _ := Preset(name)
		out = append(out, adj)
	}
	return out
}

// Custom builds a free-form adjustment. Pass a nil overrun to keep the deal's.
func Custom(rehabOverrunPercent *float64, holdingPeriodAdjustment, marketAppreciationPercent, permitDelayDays float64) Adjustment {
	return Adjustment{
		Name:                      PresetCustom,
		RehabOverrunPercent:       rehabOverrunPercent,
		HoldingPeriodAdjustment:   holdingPeriodAdjustment,
		MarketAppreciationPercent: marketAppreciationPercent,
		PermitDelayDays:           permitDelayDays,
	}
}

// Months returns the holding period in effect for d under the adjustment.
func (a Adjustment) Months(d deal.Deal) float64 {
	return d.HoldingMonths + a.HoldingPeriodAdjustment + a.PermitDelayDays/constants.DaysPerMonth
}

// Override converts the adjustment into calculator overrides for d.
func (a Adjustment) Override(d deal.Deal) costs.Override {
	return costs.Override{
		Months:               costs.Float(a.Months(d)),
		RehabOverrunPercent:  a.RehabOverrunPercent,
		ARVAdjustmentPercent: a.MarketAppreciationPercent,
	}
}

// Apply re-evaluates d under adj. ROI stays measured against acquisition plus
// rehab cash so results compare with the unadjusted metrics.
func Apply(d deal.Deal, adj Adjustment) Result {
	name := adj.Name
	if name == "" {
		name = PresetCustom
	}
	return Result{
		Name:        name,
		Adjustment:  adj,
		DealMetrics: profit.EvaluateWith(d, adj.Override(d)),
	}
}

// Compare applies each adjustment to d in order.
func Compare(d deal.Deal, adjustments ...Adjustment) []Result {
	results := make([]Result, 0, len(adjustments))
	for _, adj := range adjustments {
		results = append(results, Apply(d, adj))
	}
	return results
}

// CompareAll applies every named preset to d.
func CompareAll(d deal.Deal) []Result {
	return Compare(d, Presets()...)
}
