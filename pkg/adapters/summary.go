package adapters

import (
	"github.com/iwvelando/flip-forecast/pkg/profit"
	"github.com/iwvelando/flip-forecast/pkg/score"
)

// Summary is the subset of metrics a persistence layer stores alongside a
// deal for filtering and sorting.
type Summary struct {
	Score     int        `json:"score" yaml:"score"`
	Risk      score.Tier `json:"risk" yaml:"risk"`
	NetProfit float64    `json:"netProfit" yaml:"netProfit"`
	ROI       float64    `json:"roi" yaml:"roi"`
}

// SummaryOf extracts the persisted summary fields from m.
func SummaryOf(m profit.DealMetrics) Summary {
	return Summary{
		Score:     m.Score,
		Risk:      m.Risk,
		NetProfit: m.NetProfit,
		ROI:       m.ROI,
	}
}

// Map returns the summary keyed the way stored deal records name them.
func (s Summary) Map() map[string]interface{} {
	return map[string]interface{}{
		"score":      s.Score,
		"risk_level": string(s.Risk),
		"net_profit": s.NetProfit,
		"roi":        s.ROI,
	}
}
