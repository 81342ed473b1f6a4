package optimizer

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/profit"
	"go.uber.org/zap"
)

// exampleDeal nets 149000 - 1.064*purchasePrice and 75600 - 1.1*rehabCosts.
func exampleDeal() deal.Deal {
	return deal.Deal{
		PurchasePrice:       100000,
		ARV:                 200000,
		DownPaymentPercent:  20,
		RehabCosts:          30000,
		ContingencyPercent:  10,
		HoldingMonths:       6,
		HardMoneyRate:       12,
		HardMoneyPoints:     2,
		RealtorCommission:   6,
		ClosingCostsSelling: 3,
	}
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       config.OptimizerConfig
		expected  float64
		original  float64
		tolerance float64
	}{
		{
			name:      "purchase price for net profit",
			cfg:       config.OptimizerConfig{Target: 30000},
			expected:  119000 / 1.064,
			original:  100000,
			tolerance: 1,
		},
		{
			name:      "purchase price for ROI",
			cfg:       config.OptimizerConfig{Kind: config.OptimizerKindROI, Target: 50},
			expected:  132500 / 1.172,
			original:  100000,
			tolerance: 1,
		},
		{
			name:      "rehab budget for net profit",
			cfg:       config.OptimizerConfig{Field: "rehab", Target: 30000, Tolerance: 0.5},
			expected:  45600 / 1.1,
			original:  30000,
			tolerance: 0.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := Search("Elm", exampleDeal(), tc.cfg)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if !summary.Converged {
				t.Fatalf("expected converged search, notes %v", summary.Notes)
			}
			if summary.Value > tc.expected || tc.expected-summary.Value > tc.tolerance {
				t.Fatalf("expected value within %.2f below %.2f, got %.2f", tc.tolerance, tc.expected, summary.Value)
			}
			if summary.Headroom < 0 || !summary.Feasible() {
				t.Fatalf("expected the chosen value to meet the target, headroom %.4f", summary.Headroom)
			}
			if summary.Original != tc.original {
				t.Fatalf("expected original %.2f, got %.2f", tc.original, summary.Original)
			}
			if summary.Iterations == 0 || summary.Iterations > 50 {
				t.Fatalf("unexpected iteration count %d", summary.Iterations)
			}
			if summary.Scope != ScopeDeal || summary.TargetName != "Elm" {
				t.Fatalf("unexpected summary identity %q %q", summary.Scope, summary.TargetName)
			}
		})
	}
}

func TestSearchMatchesEvaluation(t *testing.T) {
	summary, err := Search("Elm", exampleDeal(), config.OptimizerConfig{Target: 30000})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	d := exampleDeal()
	d.PurchasePrice = summary.Value
	m := profit.Evaluate(d)
	if math.Abs(m.NetProfit-summary.Achieved) > 1e-9 {
		t.Fatalf("achieved %.4f does not match re-evaluated profit %.4f", summary.Achieved, m.NetProfit)
	}
	if !strings.HasPrefix(summary.ValueDisplay, "$111,84") {
		t.Fatalf("unexpected display %q", summary.ValueDisplay)
	}
	if summary.OriginalDisplay != "$100,000.00" {
		t.Fatalf("unexpected original display %q", summary.OriginalDisplay)
	}
}

func TestSearchBoundaries(t *testing.T) {
	t.Run("target unreachable", func(t *testing.T) {
		summary, err := Search("Elm", exampleDeal(), config.OptimizerConfig{Target: 200000})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if summary.Converged {
			t.Fatal("expected a non-converged search")
		}
		if summary.Value != 0 {
			t.Fatalf("expected the lower bound, got %.2f", summary.Value)
		}
		if math.Abs(summary.Headroom-(149000-200000)) > 1e-6 {
			t.Fatalf("unexpected headroom %.2f", summary.Headroom)
		}
		if len(summary.Notes) != 1 || !strings.Contains(summary.Notes[0], "unable to reach net profit $200,000.00") {
			t.Fatalf("unexpected notes %v", summary.Notes)
		}
	})

	t.Run("target met at upper bound", func(t *testing.T) {
		summary, err := Search("Elm", exampleDeal(), config.OptimizerConfig{Target: 30000, Max: floatPtr(90000)})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if !summary.Converged || summary.Value != 90000 || summary.Iterations != 0 {
			t.Fatalf("expected the upper bound without iterating, got %+v", summary)
		}
		if len(summary.Notes) != 1 || !strings.Contains(summary.Notes[0], "upper bound $90,000.00") {
			t.Fatalf("unexpected notes %v", summary.Notes)
		}
	})

	t.Run("iteration budget exhausted", func(t *testing.T) {
		summary, err := Search("Elm", exampleDeal(), config.OptimizerConfig{Target: 30000, MaxIterations: 2})
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if summary.Converged || summary.Iterations != 2 {
			t.Fatalf("expected 2 iterations without convergence, got %+v", summary)
		}
		if !summary.Feasible() {
			t.Fatal("the best value so far must still meet the target")
		}
	})

	t.Run("invalid directive", func(t *testing.T) {
		if _, err := Search("Elm", exampleDeal(), config.OptimizerConfig{Kind: "irr"}); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("empty bounds", func(t *testing.T) {
		if _, err := Search("Elm", deal.Deal{}, config.OptimizerConfig{}); err == nil {
			t.Fatal("expected an error when the deal has no ARV to bound the search")
		}
	})
}

func TestRunnerRunAndApply(t *testing.T) {
	conf := &config.Configuration{
		Assumptions: config.DefaultAssumptions(),
		Deals: []config.DealConfig{
			{Name: "Elm", Deal: exampleDeal(), MaxOffer: &config.OptimizerConfig{Target: 30000}},
			{Name: "Oak", Deal: exampleDeal()},
			{Name: "Ash", Deal: exampleDeal(), MaxOffer: &config.OptimizerConfig{Field: "arv"}},
		},
	}

	if _, err := NewRunner(nil, nil); err == nil {
		t.Fatal("expected an error for a nil configuration")
	}
	runner, err := NewRunner(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("failed to create optimizer runner: %v", err)
	}

	result, err := runner.Run()
	if err != nil {
		t.Fatalf("optimizer run failed: %v", err)
	}
	if result.Empty() || len(result.Summaries) != 1 {
		t.Fatalf("expected one summary, got %v", result.Summaries)
	}
	if conf.Deals[0].PurchasePrice != 100000 {
		t.Fatalf("the configuration must not be modified, purchase price %.2f", conf.Deals[0].PurchasePrice)
	}

	reports, err := analysis.Run(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("analysis run failed: %v", err)
	}
	result.Apply(reports)
	if reports[0].MaxOffer == nil || !reports[0].MaxOffer.Converged {
		t.Fatalf("expected a max offer attached to Elm")
	}
	if reports[1].MaxOffer != nil || reports[2].MaxOffer != nil {
		t.Fatalf("only Elm carries a valid directive")
	}

	Result{}.Apply(reports)
	if !(Result{}).Empty() {
		t.Fatal("zero result should be empty")
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
