package config

import (
	"strings"
	"testing"
)

func TestCanonicalOptimizerField(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty defaults to purchase price", input: "", expected: OptimizerFieldPurchasePrice},
		{name: "purchase price casing", input: "PurchasePrice", expected: OptimizerFieldPurchasePrice},
		{name: "purchase price snake case", input: "purchase_price", expected: OptimizerFieldPurchasePrice},
		{name: "offer shorthand", input: "offer", expected: OptimizerFieldPurchasePrice},
		{name: "rehab variations", input: "REHAB-COSTS", expected: OptimizerFieldRehabCosts},
		{name: "unknown lowered", input: "Custom", expected: "custom"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := CanonicalOptimizerField(tc.input)
			if actual != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, actual)
			}
		})
	}
}

func TestOptimizerConfigNormalize(t *testing.T) {
	cfg := &OptimizerConfig{Kind: "Profit"}
	cfg.Normalize()

	if cfg.Field != OptimizerFieldPurchasePrice {
		t.Fatalf("expected field %q, got %q", OptimizerFieldPurchasePrice, cfg.Field)
	}
	if cfg.Kind != OptimizerKindNetProfit {
		t.Fatalf("expected kind %q, got %q", OptimizerKindNetProfit, cfg.Kind)
	}
	if cfg.Tolerance != defaultTolerance {
		t.Fatalf("expected tolerance %.2f, got %.2f", defaultTolerance, cfg.Tolerance)
	}
	if cfg.MaxIterations != defaultMaxIterations {
		t.Fatalf("expected %d iterations, got %d", defaultMaxIterations, cfg.MaxIterations)
	}

	var nilConfig *OptimizerConfig
	nilConfig.Normalize()
}

func TestOptimizerConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     *OptimizerConfig
		wantErr string
	}{
		{name: "defaults", cfg: &OptimizerConfig{}},
		{name: "roi with bounds", cfg: &OptimizerConfig{Kind: "ROI", Min: floatPtr(50000), Max: floatPtr(150000)}},
		{name: "nil", cfg: nil, wantErr: "cannot be nil"},
		{name: "unknown field", cfg: &OptimizerConfig{Field: "arv"}, wantErr: "field \"arv\""},
		{name: "unknown kind", cfg: &OptimizerConfig{Kind: "irr"}, wantErr: "kind \"irr\""},
		{name: "negative min", cfg: &OptimizerConfig{Min: floatPtr(-1)}, wantErr: "must not be negative"},
		{name: "zero max", cfg: &OptimizerConfig{Max: floatPtr(0)}, wantErr: "must be positive"},
		{name: "inverted bounds", cfg: &OptimizerConfig{Min: floatPtr(10), Max: floatPtr(5)}, wantErr: "must be less than"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestOptimizerConfigBounds(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           OptimizerConfig
		fallback      float64
		lower, upper  float64
		expectFailure bool
	}{
		{name: "fallback maximum", cfg: OptimizerConfig{}, fallback: 200000, lower: 0, upper: 200000},
		{name: "explicit bounds", cfg: OptimizerConfig{Min: floatPtr(50000), Max: floatPtr(120000)}, fallback: 200000, lower: 50000, upper: 120000},
		{name: "empty interval", cfg: OptimizerConfig{Min: floatPtr(250000)}, fallback: 200000, expectFailure: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lower, upper, err := tc.cfg.Bounds(tc.fallback)
			if tc.expectFailure {
				if err == nil {
					t.Fatal("expected an error for an empty interval")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lower != tc.lower || upper != tc.upper {
				t.Fatalf("expected bounds %.2f-%.2f, got %.2f-%.2f", tc.lower, tc.upper, lower, upper)
			}
		})
	}
}

func floatPtr(value float64) *float64 {
	return &value
}
