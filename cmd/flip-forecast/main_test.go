package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/flip-forecast/internal/config"
)

const testDeals = `
logging:
  level: error
deals:
  - name: Elm Street
    address: 12 Elm St
    purchasePrice: 100000
    arv: 200000
    downPaymentPercent: 20
    rehabCosts: 30000
    contingencyPercent: 10
    holdingMonths: 6
    hardMoneyRate: 12
    hardMoneyPoints: 2
    realtorCommission: 6
    closingCostsSelling: 3
    scenarios:
      - name: slow sale
        holdingPeriodAdjustment: 4
    maxOffer:
      target: 30000
  - name: Oak Avenue
    purchasePrice: 80000
    arv: 150000
    holdingMonths: 4
`

func writeDeals(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deals.yaml")
	if err := os.WriteFile(path, []byte(testDeals), 0600); err != nil {
		t.Fatalf("failed to write deals file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", ""))
	err := root.Execute()
	return out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"JSON warning", config.LoggingConfig{Level: "warning", Format: "json"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "verbose"}, "error", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected an error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flip.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("written to file")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("an empty path must be ignored, got %v", err)
	}
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("a missing file must be ignored, got %v", err)
	}

	const key = "FLIP_ENV_FILE_TEST"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=csv\n"), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile() error = %v", err)
	}
	if got := os.Getenv(key); got != "csv" {
		t.Fatalf("expected %s=csv, got %q", key, got)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDeals(t)

	out, err := execute(t, "analyze", "--config", path, "--output-format", "csv")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v\n%s", err, out)
	}
	if len(records) != 3 {
		t.Fatalf("expected a header and 2 rows, got %d", len(records))
	}

	maxOffer := -1
	for i, h := range records[0] {
		if h == "max offer" {
			maxOffer = i
		}
	}
	if maxOffer < 0 {
		t.Fatal("missing max offer column")
	}
	if records[1][1] != "Elm Street" || !strings.HasPrefix(records[1][maxOffer], "1118") {
		t.Fatalf("expected Elm Street with a max offer near 111,840, got %v", records[1])
	}
	if records[2][maxOffer] != "" {
		t.Fatalf("Oak Avenue has no max offer search, got %q", records[2][maxOffer])
	}
}

func TestAnalyzeCommandExampleFile(t *testing.T) {
	out, err := execute(t, "analyze", "--config", "../../deals.yaml.example", "--log-level", "error")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"--- Results for deal Elm Street ---", "--- Results for deal Oak Avenue duplex ---", "Optimization adjustments:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	path := writeDeals(t)

	tests := []struct {
		name   string
		args   []string
		expect string
	}{
		{"Missing config", []string{"analyze", "--config", filepath.Join(t.TempDir(), "none.yaml")}, "failed to load configuration"},
		{"Invalid output format", []string{"analyze", "--config", path, "--output-format", "xml"}, "expected output format"},
		{"Invalid log level", []string{"analyze", "--config", path, "--log-level", "loud"}, "invalid log level"},
		{"Unexpected argument", []string{"analyze", "extra", "--config", path}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error but got nil")
			}
			if !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error containing %q, got %v", tt.expect, err)
			}
		})
	}
}

func TestScenarioCommand(t *testing.T) {
	path := writeDeals(t)

	out, err := execute(t, "scenario", "--config", path, "--preset", "slow sale")
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if !strings.Contains(out, "--- Scenario slow sale ---") || !strings.Contains(out, "Oak Avenue") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("Oak Avenue has no slow sale scenario:\n%s", out)
	}

	out, err = execute(t, "scenario", "--config", path)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if !strings.Contains(out, "--- Scenario worstB ---") {
		t.Fatalf("expected the worstB default:\n%s", out)
	}

	if _, err := execute(t, "scenario", "--config", path, "--preset", "stormy"); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestRunServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := &rootOptions{logLevel: "error"}
	if err := runServe(ctx, opts, filepath.Join(t.TempDir(), "missing.yaml"), "127.0.0.1:0"); err != nil {
		t.Fatalf("runServe() error = %v", err)
	}
}

func TestRunServeInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("maxUploadSize: lots"), 0600); err != nil {
		t.Fatalf("failed to write server config: %v", err)
	}
	if err := runServe(context.Background(), &rootOptions{}, path, ""); err == nil {
		t.Fatal("expected an error for an invalid server config")
	}
}
