package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/internal/optimizer"
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/output"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"github.com/iwvelando/flip-forecast/pkg/testutil"
	"go.uber.org/zap"
)

const exampleConfig = "../../" + constants.ExampleConfigFile

// runPipeline loads a configuration and runs it exactly as the analyze
// command does.
func runPipeline(t testing.TB, path string) []analysis.Report {
	t.Helper()
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	runner, err := optimizer.NewRunner(logger, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	result, err := runner.Run()
	if err != nil {
		t.Fatalf("optimizer Run() error = %v", err)
	}

	reports, err := analysis.Run(logger, *conf)
	if err != nil {
		t.Fatalf("analysis Run() error = %v", err)
	}
	result.Apply(reports)
	return reports
}

// TestExampleBaseline checks the example file against hand-computed values
// for the Elm Street deal.
func TestExampleBaseline(t *testing.T) {
	reports := runPipeline(t, exampleConfig)
	if len(reports) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(reports))
	}

	elm := testutil.FindReport(reports, "Elm Street")
	if elm == nil {
		t.Fatal("Elm Street missing from reports")
	}

	baselineChecks := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"net profit", elm.Metrics.NetProfit, 42600, 0.01},
		{"total project cost", elm.Metrics.TotalProjectCost, 139400, 0.01},
		{"roi", elm.Metrics.ROI, 78.02, 0.01},
		{"score", float64(elm.Metrics.Score), 79, 0},
		{"expected value", elm.Risk.Profile.ExpectedValue, 39560, 0.01},
		{"max allowable offer", elm.Risk.MaxAllowableOffer, 107000, 0.01},
		{"wholesale spread", elm.Exit.Wholesale.Spread, 7000, 0.01},
		{"timeline probability", elm.Risk.Timeline.Probability30Plus, 70, 0.01},
		{"max offer", elm.MaxOffer.Value, 119000 / 1.064, 1},
	}
	for _, check := range baselineChecks {
		if math.Abs(check.got-check.expected) > check.tolerance {
			t.Errorf("%s: expected %.2f, got %.2f", check.name, check.expected, check.got)
		}
	}

	slow := testutil.FindScenario(elm.Scenarios, "slow sale")
	if slow == nil {
		t.Fatal("custom scenario missing")
	}
	if slow.HoldingMonths != 10 {
		t.Errorf("slow sale should hold for 10 months, got %.1f", slow.HoldingMonths)
	}
	if slow.NetProfit >= elm.Metrics.NetProfit {
		t.Errorf("a longer hold must cost money: %.2f >= %.2f", slow.NetProfit, elm.Metrics.NetProfit)
	}
}

func TestScenarioOrdering(t *testing.T) {
	for _, r := range runPipeline(t, exampleConfig) {
		base := testutil.FindScenario(r.Scenarios, scenario.PresetBase)
		best := testutil.FindScenario(r.Scenarios, scenario.PresetBest)
		worst := testutil.FindScenario(r.Scenarios, scenario.PresetWorstB)
		if base == nil || best == nil || worst == nil {
			t.Fatalf("%s: missing presets", r.Name)
		}

		if math.Abs(base.NetProfit-r.Metrics.NetProfit) > 1e-9 {
			t.Errorf("%s: base preset %.2f differs from the deal's own profit %.2f", r.Name, base.NetProfit, r.Metrics.NetProfit)
		}
		if !(best.NetProfit > base.NetProfit && base.NetProfit > worst.NetProfit) {
			t.Errorf("%s: expected best > base > worstB, got %.2f, %.2f, %.2f", r.Name, best.NetProfit, base.NetProfit, worst.NetProfit)
		}
		if r.WorstCase.MarketCrash.NetProfit >= r.Metrics.NetProfit {
			t.Errorf("%s: a market crash must lower profit", r.Name)
		}
	}
}

func TestOutputFormats(t *testing.T) {
	reports := runPipeline(t, exampleConfig)

	var pretty bytes.Buffer
	output.PrettyFormat(&pretty, reports)
	for _, want := range []string{"--- Results for deal Elm Street ---", "--- Results for deal Oak Avenue duplex ---", "Monte Carlo ("} {
		if !strings.Contains(pretty.String(), want) {
			t.Errorf("pretty output missing %q", want)
		}
	}

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, reports); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CSV output is invalid: %v", err)
	}
	if len(records) != len(reports)+1 {
		t.Fatalf("expected %d CSV rows, got %d", len(reports)+1, len(records))
	}
	for i, record := range records {
		if len(record) != len(records[0]) {
			t.Errorf("row %d has %d columns, header has %d", i, len(record), len(records[0]))
		}
	}
}

// TestDataConsistency runs the pipeline repeatedly and expects identical
// reports every time.
func TestDataConsistency(t *testing.T) {
	first := runPipeline(t, exampleConfig)
	for i := 0; i < 3; i++ {
		again := runPipeline(t, exampleConfig)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced different reports", i+2)
		}
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("FLIP_OUTPUT_FORMAT", "csv")
	t.Setenv("FLIP_LOGGING_LEVEL", "warn")

	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Output.Format != "csv" || conf.Logging.Level != "warn" {
		t.Fatalf("expected environment overrides, got %+v %+v", conf.Output, conf.Logging)
	}
}
