package scenario

import (
	"github.com/iwvelando/flip-forecast/pkg/costs"
	"github.com/iwvelando/flip-forecast/pkg/deal"
)

// Worst-case stress names.
const (
	StressMarketCrash          = "marketCrash"
	StressMajorRepair          = "majorRepair"
	StressExtendedTimeline     = "extendedTimeline"
	StressFinancingFallthrough = "financingFallthrough"
)

// Stress magnitudes. The major-repair overrun is added on top of the deal's
// own overrun so the stress never improves on the base case.
const (
	MarketCrashPercent         = -15.0
	MajorRepairOverrunPoints   = 50.0
	ExtendedTimelineMonths     = 6.0
	FallthroughRelistMonths    = 2.0
	FallthroughPriceCutPercent = -5.0
)

// WorstCase holds the four single-factor stress results of a deal.
type WorstCase struct {
	MarketCrash          Result `json:"marketCrash" yaml:"marketCrash"`
	MajorRepair          Result `json:"majorRepair" yaml:"majorRepair"`
	ExtendedTimeline     Result `json:"extendedTimeline" yaml:"extendedTimeline"`
	FinancingFallthrough Result `json:"financingFallthrough" yaml:"financingFallthrough"`
}

// Results returns the stresses in a stable order.
func (w WorstCase) Results() []Result {
	return []Result{w.MarketCrash, w.MajorRepair, w.ExtendedTimeline, w.FinancingFallthrough}
}

// SimulateWorstCase stresses d one factor at a time.
func SimulateWorstCase(d deal.Deal) WorstCase {
	return WorstCase{
		MarketCrash: Apply(d, Adjustment{
			Name:                      StressMarketCrash,
			MarketAppreciationPercent: MarketCrashPercent,
		}),
		MajorRepair: Apply(d, Adjustment{
			Name:                StressMajorRepair,
			RehabOverrunPercent: costs.Float(d.RehabOverrunPercent + MajorRepairOverrunPoints),
		}),
		ExtendedTimeline: Apply(d, Adjustment{
			Name:                    StressExtendedTimeline,
			HoldingPeriodAdjustment: ExtendedTimelineMonths,
		}),
		FinancingFallthrough: Apply(d, Adjustment{
			Name:                      StressFinancingFallthrough,
			HoldingPeriodAdjustment:   FallthroughRelistMonths,
			MarketAppreciationPercent: FallthroughPriceCutPercent,
		}),
	}
}
