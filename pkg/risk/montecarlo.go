package risk

import (
	"math/rand/v2"
	"sort"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/costs"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimulationConfig shapes a Monte Carlo run. Rehab overrun is drawn from a
// triangular distribution; market appreciation and holding shift are normal.
type SimulationConfig struct {
	Iterations int    `json:"iterations" yaml:"iterations" mapstructure:"iterations"`
	Seed       uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	OverrunLow  float64 `json:"overrunLow" yaml:"overrunLow" mapstructure:"overrunLow"`
	OverrunMode float64 `json:"overrunMode" yaml:"overrunMode" mapstructure:"overrunMode"`
	OverrunHigh float64 `json:"overrunHigh" yaml:"overrunHigh" mapstructure:"overrunHigh"`

	AppreciationMean   float64 `json:"appreciationMean" yaml:"appreciationMean" mapstructure:"appreciationMean"`
	AppreciationStdDev float64 `json:"appreciationStdDev" yaml:"appreciationStdDev" mapstructure:"appreciationStdDev"`

	HoldingShiftMean   float64 `json:"holdingShiftMean" yaml:"holdingShiftMean" mapstructure:"holdingShiftMean"`
	HoldingShiftStdDev float64 `json:"holdingShiftStdDev" yaml:"holdingShiftStdDev" mapstructure:"holdingShiftStdDev"`
}

// DefaultSimulationConfig returns a 2000 iteration run seeded with 42.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Iterations:         constants.DefaultMonteCarloIterations,
		Seed:               constants.DefaultMonteCarloSeed,
		OverrunLow:         0,
		OverrunMode:        10,
		OverrunHigh:        40,
		AppreciationMean:   0,
		AppreciationStdDev: 5,
		HoldingShiftMean:   0,
		HoldingShiftStdDev: 1.5,
	}
}

// Simulation summarizes the sampled net profits.
type Simulation struct {
	Iterations      int     `json:"iterations" yaml:"iterations"`
	Seed            uint64  `json:"seed" yaml:"seed"`
	Mean            float64 `json:"mean" yaml:"mean"`
	StdDev          float64 `json:"stdDev" yaml:"stdDev"`
	Min             float64 `json:"min" yaml:"min"`
	P5              float64 `json:"p5" yaml:"p5"`
	P50             float64 `json:"p50" yaml:"p50"`
	P95             float64 `json:"p95" yaml:"p95"`
	Max             float64 `json:"max" yaml:"max"`
	LossProbability float64 `json:"lossProbability" yaml:"lossProbability"`
}

// MonteCarlo samples adjustments and evaluates each through the scenario
// engine. The same config and deal always produce the same summary.
func MonteCarlo(d deal.Deal, cfg SimulationConfig) Simulation {
	if cfg.Iterations <= 0 {
		cfg.Iterations = constants.DefaultMonteCarloIterations
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	overrun := overrunSampler(cfg)
	appreciation := normalSampler(cfg.AppreciationMean, cfg.AppreciationStdDev)
	holding := normalSampler(cfg.HoldingShiftMean, cfg.HoldingShiftStdDev)

	profits := make([]float64, cfg.Iterations)
	losses := 0
	for i := range profits {
		shift := holding(uniform(rng))
		if d.HoldingMonths+shift < 0 {
			shift = -d.HoldingMonths
		}
		adj := scenario.Custom(costs.Float(overrun(uniform(rng))), shift, appreciation(uniform(rng)), 0)
		profits[i] = scenario.Apply(d, adj).NetProfit
		if profits[i] < 0 {
			losses++
		}
	}

	sort.Float64s(profits)
	mean, std := stat.MeanStdDev(profits, nil)

	return Simulation{
		Iterations:      cfg.Iterations,
		Seed:            cfg.Seed,
		Mean:            mean,
		StdDev:          mathutil.Finite(std),
		Min:             profits[0],
		P5:              stat.Quantile(0.05, stat.Empirical, profits, nil),
		P50:             stat.Quantile(0.50, stat.Empirical, profits, nil),
		P95:             stat.Quantile(0.95, stat.Empirical, profits, nil),
		Max:             profits[len(profits)-1],
		LossProbability: float64(losses) / float64(len(profits)) * constants.PercentageMultiplier,
	}
}

// uniform draws from the open interval (0, 1) so quantiles stay finite.
func uniform(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

func overrunSampler(cfg SimulationConfig) func(float64) float64 {
	low, mode, high := cfg.OverrunLow, cfg.OverrunMode, cfg.OverrunHigh
	if low >= high || mode < low || mode > high {
		return func(float64) float64 { return mode }
	}
	tri := distuv.NewTriangle(low, high, mode, nil)
	return tri.Quantile
}

func normalSampler(mean, stdDev float64) func(float64) float64 {
	if stdDev <= 0 {
		return func(float64) float64 { return mean }
	}
	return distuv.Normal{Mu: mean, Sigma: stdDev}.Quantile
}
