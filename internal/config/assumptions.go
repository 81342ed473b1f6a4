package config

import (
	"strings"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/exit"
	"github.com/iwvelando/flip-forecast/pkg/risk"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
)

// Assumptions are the analysis-wide inputs that are not part of any single
// deal. Every field is optional in the configuration file.
type Assumptions struct {
	// RiskScore and MarketScore stand in for the external scorers when a
	// deal carries no override of its own.
	RiskScore   float64 `yaml:"riskScore" mapstructure:"riskScore"`
	MarketScore float64 `yaml:"marketScore" mapstructure:"marketScore"`

	// Weights are scenario probabilities in percent, keyed by preset name.
	Weights map[string]float64 `yaml:"weights" mapstructure:"weights"`

	Exit            exit.Options          `yaml:"exit" mapstructure:"exit"`
	DelayCostPerDay float64               `yaml:"delayCostPerDay" mapstructure:"delayCostPerDay"`
	Curve           risk.CurveRange       `yaml:"curve" mapstructure:"curve"`
	MonteCarlo      risk.SimulationConfig `yaml:"monteCarlo" mapstructure:"monteCarlo"`
	MinARV          risk.MinARVInputs     `yaml:"minArv" mapstructure:"minArv"`
}

// DefaultAssumptions returns the assumptions used when the configuration is
// silent.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RiskScore:       constants.DefaultRiskScore,
		MarketScore:     constants.DefaultMarketScore,
		Weights:         risk.DefaultWeights(),
		Exit:            exit.DefaultOptions(),
		DelayCostPerDay: constants.DelayCostPerDay,
		Curve:           risk.DefaultCurveRange(),
		MonteCarlo:      risk.DefaultSimulationConfig(),
	}
}

// Normalize restores defaults for settings that cannot be meaningfully zero
// and maps weight keys back onto preset names. Configuration keys arrive
// lower-cased, so worsta becomes worstA again.
func (a *Assumptions) Normalize() {
	defaults := DefaultAssumptions()

	if len(a.Weights) == 0 {
		a.Weights = defaults.Weights
	} else {
		a.Weights = NormalizeWeights(a.Weights)
	}
	if a.DelayCostPerDay < 0 {
		a.DelayCostPerDay = defaults.DelayCostPerDay
	}
	if a.Curve.Steps <= 0 || a.Curve.Max <= a.Curve.Min {
		a.Curve = defaults.Curve
	}
	if a.MonteCarlo.Iterations <= 0 {
		a.MonteCarlo.Iterations = defaults.MonteCarlo.Iterations
	}
}

// NormalizeWeights returns a copy of weights with every key matching a preset
// name case-insensitively replaced by the preset's spelling. Weights that
// collapse onto the same preset are summed.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for key, weight := range weights {
		name := strings.TrimSpace(key)
		for _, adj := range scenario.Presets() {
			if strings.EqualFold(name, adj.Name) {
				name = adj.Name
				break
			}
		}
		out[name] += weight
	}
	return out
}

// ResolveDeal fills the optional score inputs of d from the assumptions.
// Scores the deal already carries are kept.
func (a Assumptions) ResolveDeal(d deal.Deal) deal.Deal {
	if d.RiskScore == nil {
		d.RiskScore = deal.Float(a.RiskScore)
	}
	if d.MarketScore == nil {
		d.MarketScore = deal.Float(a.MarketScore)
	}
	return d
}

// RiskOptions builds the risk assessment inputs for one configured deal.
func (a Assumptions) RiskOptions(dc DealConfig, hidden []risk.HiddenCost, arvShiftPercent float64) risk.Options {
	return risk.Options{
		ARVShiftPercent: arvShiftPercent,
		PermitDelay:     dc.PermitDelay,
		HiddenCosts:     hidden,
		Curve:           a.Curve,
		DelayCostPerDay: a.DelayCostPerDay,
	}
}
