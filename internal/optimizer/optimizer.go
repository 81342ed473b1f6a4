package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/format"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
	"github.com/iwvelando/flip-forecast/pkg/optimization"
	"github.com/iwvelando/flip-forecast/pkg/profit"
	"go.uber.org/zap"
)

// ScopeDeal marks summaries produced for a configured deal.
const ScopeDeal = "deal"

const targetEpsilon = 1e-6

type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type evaluation struct {
	value    float64
	achieved float64
	target   float64
}

func (e evaluation) feasible() bool {
	return e.achieved >= e.target-targetEpsilon
}

func (e evaluation) headroom() float64 {
	return e.achieved - e.target
}

// Result summarizes max-offer searches keyed by deal name.
type Result struct {
	Summaries map[string]optimization.Summary
}

// Empty indicates whether any searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the matching analysis reports.
func (r Result) Apply(reports []analysis.Report) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range reports {
		summary, ok := r.Summaries[reports[i].Name]
		if !ok {
			continue
		}
		s := summary
		reports[i].MaxOffer = &s
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes every max-offer directive. Directives that fail validation are
// skipped with a warning; the configuration is never modified.
func (r *Runner) Run() (*Result, error) {
	summaries := make(map[string]optimization.Summary)

	for i, dc := range r.conf.Deals {
		if dc.MaxOffer == nil {
			continue
		}
		name := dc.DisplayName(i)
		cfg := *dc.MaxOffer
		if err := cfg.Validate(); err != nil {
			r.logger.Warn("skipping max offer search",
				zap.String("op", "optimizer.Run"),
				zap.String("deal", name),
				zap.Error(err),
			)
			continue
		}

		summary, err := Search(name, r.conf.Assumptions.ResolveDeal(dc.Deal), cfg)
		if err != nil {
			return nil, fmt.Errorf("deal %s: %w", name, err)
		}
		summaries[name] = summary

		r.logger.Info("optimizer searched deal field",
			zap.String("op", "optimizer.Run"),
			zap.String("deal", name),
			zap.String("field", summary.Field),
			zap.String("kind", summary.Kind),
			zap.Float64("target", summary.Target),
			zap.Float64("originalNumeric", summary.Original),
			zap.String("originalDisplay", summary.OriginalDisplay),
			zap.Float64("optimizedNumeric", summary.Value),
			zap.String("optimizedDisplay", summary.ValueDisplay),
			zap.Float64("achieved", summary.Achieved),
			zap.Float64("headroom", summary.Headroom),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

// Search finds the largest value of cfg.Field within its bounds for which d
// still reaches cfg.Target. Profit falls as the field grows, so the search
// bisects between a feasible lower bound and an infeasible upper bound.
func Search(name string, d deal.Deal, cfg config.OptimizerConfig) (optimization.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return optimization.Summary{}, err
	}
	original, err := fieldValue(d, cfg.Field)
	if err != nil {
		return optimization.Summary{}, err
	}
	minVal, maxVal, err := cfg.Bounds(d.ARV)
	if err != nil {
		return optimization.Summary{}, err
	}

	evaluate := func(value float64) evaluation {
		value = mathutil.Clamp(mathutil.Round(value), minVal, maxVal)
		return evaluation{
			value:    value,
			achieved: metric(setFieldValue(d, cfg.Field, value), cfg.Kind),
			target:   cfg.Target,
		}
	}

	summary := optimization.Summary{
		Scope:           ScopeDeal,
		TargetName:      name,
		Field:           cfg.Field,
		Kind:            cfg.Kind,
		Target:          cfg.Target,
		Original:        original,
		OriginalDisplay: format.Currency(original),
	}
	finish := func(eval evaluation, iterations int, converged bool, notes ...string) optimization.Summary {
		summary.Value = eval.value
		summary.ValueDisplay = format.Currency(eval.value)
		summary.Achieved = eval.achieved
		summary.Headroom = eval.headroom()
		summary.Iterations = iterations
		summary.Converged = converged
		summary.Notes = notes
		return summary
	}

	lowerEval := evaluate(minVal)
	if !lowerEval.feasible() {
		note := fmt.Sprintf(
			"unable to reach %s %s within bounds %s to %s",
			kindLabel(cfg.Kind),
			formatTarget(cfg.Kind, cfg.Target),
			format.Currency(minVal),
			format.Currency(maxVal),
		)
		return finish(lowerEval, 0, false, note), nil
	}

	upperEval := evaluate(maxVal)
	if upperEval.feasible() {
		note := fmt.Sprintf("target is still met at the upper bound %s", format.Currency(maxVal))
		return finish(upperEval, 0, true, note), nil
	}

	iterations := 0
	best := lowerEval
	lower := lowerEval.value
	upper := upperEval.value
	for iterations < cfg.MaxIterations && math.Abs(upper-lower) > cfg.Tolerance {
		evalMid := evaluate(lower + (upper-lower)/2)
		if evalMid.value == lower || evalMid.value == upper {
			break
		}
		iterations++
		if evalMid.feasible() {
			best = evalMid
			lower = evalMid.value
		} else {
			upper = evalMid.value
		}
	}

	if math.Abs(upper-lower) > cfg.Tolerance && iterations >= cfg.MaxIterations {
		note := fmt.Sprintf("stopped after %d iterations with %s left to search", iterations, format.Currency(upper-lower))
		return finish(best, iterations, false, note), nil
	}
	return finish(best, iterations, true), nil
}

func metric(d deal.Deal, kind string) float64 {
	m := profit.Evaluate(d)
	if kind == config.OptimizerKindROI {
		return m.ROI
	}
	return m.NetProfit
}

func fieldValue(d deal.Deal, field string) (float64, error) {
	switch config.CanonicalOptimizerField(field) {
	case config.OptimizerFieldPurchasePrice:
		return d.PurchasePrice, nil
	case config.OptimizerFieldRehabCosts:
		return d.RehabCosts, nil
	default:
		return 0, fmt.Errorf("optimizer field %q is not supported", field)
	}
}

func setFieldValue(d deal.Deal, field string, value float64) deal.Deal {
	switch config.CanonicalOptimizerField(field) {
	case config.OptimizerFieldPurchasePrice:
		d.PurchasePrice = value
	case config.OptimizerFieldRehabCosts:
		d.RehabCosts = value
	}
	return d
}

func kindLabel(kind string) string {
	if kind == config.OptimizerKindROI {
		return "ROI"
	}
	return "net profit"
}

func formatTarget(kind string, target float64) string {
	if kind == config.OptimizerKindROI {
		return format.Percent(target)
	}
	return format.Currency(target)
}
