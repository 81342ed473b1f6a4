// Package output provides utilities for formatting and displaying deal analysis reports.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/flip-forecast/internal/analysis"
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders reports in the named format.
func Write(w io.Writer, format string, reports []analysis.Report) error {
	switch format {
	case constants.OutputFormatPretty:
		PrettyFormat(w, reports)
		return nil
	case constants.OutputFormatCSV:
		return CsvFormat(w, reports)
	case constants.OutputFormatYAML:
		return YamlFormat(w, reports)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, reports []analysis.Report) {
	p := message.NewPrinter(language.English)
	for i, r := range reports {
		m := r.Metrics
		_, _ = fmt.Fprintf(w, "--- Results for deal %s ---\n", r.Name)
		_, _ = fmt.Fprintf(w, "ID: %s\n", r.ID)
		_, _ = p.Fprintf(w, "Purchase $%.2f | ARV $%.2f | Holding %.1f months\n", r.Deal.PurchasePrice, m.ARV, m.HoldingMonths)

		_, _ = fmt.Fprintf(w, "Category    | Total\n")
		_, _ = fmt.Fprintf(w, "________    | _____\n")
		for _, c := range m.Categories() {
			_, _ = p.Fprintf(w, "%-11s | $%.2f\n", c.Name, c.Total)
		}
		_, _ = p.Fprintf(w, "Total project cost: $%.2f\n", m.TotalProjectCost)
		_, _ = p.Fprintf(w, "Net profit: $%.2f | ROI %.2f%% | Annualized %.2f%% | Margin %.2f%%\n", m.NetProfit, m.ROI, m.AnnualizedROI, m.ProfitMargin)
		_, _ = fmt.Fprintf(w, "Deal score: %d (%s risk)\n", m.Score, m.Risk)

		_, _ = fmt.Fprintf(w, "Scenario        | Net Profit    | ROI\n")
		_, _ = fmt.Fprintf(w, "________        | __________    | ___\n")
		for _, s := range r.Scenarios {
			_, _ = p.Fprintf(w, "%-15s | $%.2f | %.2f%%\n", s.Name, s.NetProfit, s.ROI)
		}
		_, _ = fmt.Fprintf(w, "Worst case:\n")
		for _, s := range r.WorstCase.Results() {
			_, _ = p.Fprintf(w, "  %s: $%.2f\n", s.Name, s.NetProfit)
		}

		profile := r.Risk.Profile
		_, _ = p.Fprintf(w, "Expected value: $%.2f | Loss probability %.1f%% | Break-even confidence %.1f%% | Risk score %.1f\n",
			profile.ExpectedValue, profile.LossProbability, profile.BreakEvenConfidence, profile.RiskScore)
		if len(profile.Threats) > 0 {
			_, _ = fmt.Fprintf(w, "Top threats:\n")
			for _, threat := range profile.Threats {
				_, _ = p.Fprintf(w, "  %s: %.1f%% chance, %s impact (%s)\n", threat.Name, threat.Probability, threat.Impact, threat.Severity)
			}
		}
		mc := r.Risk.MonteCarlo
		_, _ = p.Fprintf(w, "Monte Carlo (%d runs): P5 $%.2f | P50 $%.2f | P95 $%.2f | Loss %.1f%%\n", mc.Iterations, mc.P5, mc.P50, mc.P95, mc.LossProbability)
		_, _ = p.Fprintf(w, "Minimum ARV: $%.2f | MAO $%.2f (conservative $%.2f)\n", r.Risk.MinARV, r.Risk.MaxAllowableOffer, r.Risk.ConservativeOffer)

		ex := r.Exit
		_, _ = p.Fprintf(w, "Exit: flip $%.2f | wholesale spread $%.2f | BRRRR cash flow $%.2f/month\n", ex.Flip.Profit, ex.Wholesale.Spread, ex.BRRRR.MonthlyCashFlow)

		if r.MaxOffer != nil {
			s := r.MaxOffer
			_, _ = fmt.Fprintf(w, "Optimization adjustments:\n")
			status := "converged"
			if !s.Converged {
				status = "not converged"
			}
			_, _ = fmt.Fprintf(w, "  %s (%s): %s -> %s, %s after %d iterations\n", s.TargetName, s.Field, s.OriginalDisplay, s.ValueDisplay, status, s.Iterations)
			for _, note := range s.Notes {
				_, _ = fmt.Fprintf(w, "    note: %s\n", note)
			}
		}

		if len(r.Warnings) > 0 {
			_, _ = fmt.Fprintf(w, "Warnings:\n")
			for _, warning := range r.Warnings {
				_, _ = fmt.Fprintf(w, "  %s\n", warning)
			}
		}

		if i < len(reports)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// ScenarioFormat prints one line per deal for the named scenario. Deals that
// do not carry the scenario are listed as missing. It returns an error when
// no deal carries it.
func ScenarioFormat(w io.Writer, name string, reports []analysis.Report) error {
	p := message.NewPrinter(language.English)
	found := false

	_, _ = fmt.Fprintf(w, "--- Scenario %s ---\n", name)
	_, _ = fmt.Fprintf(w, "%-20s | %-13s | %-8s | %-6s | %s\n", "Deal", "Net Profit", "ROI", "Months", "Score")
	for _, r := range reports {
		res, ok := r.ScenarioResult(name)
		if !ok {
			_, _ = fmt.Fprintf(w, "%-20s | missing\n", r.Name)
			continue
		}
		found = true
		_, _ = p.Fprintf(w, "%-20s | $%.2f | %.2f%% | %.1f | %d (%s)\n", r.Name, res.NetProfit, res.ROI, res.HoldingMonths, res.Score, res.Risk)
	}

	if !found {
		return fmt.Errorf("no deal has a scenario named %q", name)
	}
	return nil
}

var csvPresets = []string{scenario.PresetBase, scenario.PresetBest, scenario.PresetWorstA, scenario.PresetWorstB}

// CsvFormat outputs one row per deal in comma-separated value format.
func CsvFormat(w io.Writer, reports []analysis.Report) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "name", "purchase price", "arv", "total project cost", "net profit", "roi",
		"annualized roi", "score", "risk", "expected value", "loss probability", "risk score",
		"max allowable offer", "monte carlo p5", "monte carlo p50", "monte carlo p95",
	}
	for _, name := range csvPresets {
		header = append(header, fmt.Sprintf("net profit (%s)", name))
	}
	header = append(header, "max offer", "warnings")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		m := r.Metrics
		row := []string{
			r.ID,
			r.Name,
			amount(r.Deal.PurchasePrice),
			amount(m.ARV),
			amount(m.TotalProjectCost),
			amount(m.NetProfit),
			amount(m.ROI),
			amount(m.AnnualizedROI),
			strconv.Itoa(m.Score),
			string(m.Risk),
			amount(r.Risk.Profile.ExpectedValue),
			amount(r.Risk.Profile.LossProbability),
			amount(r.Risk.Profile.RiskScore),
			amount(r.Risk.MaxAllowableOffer),
			amount(r.Risk.MonteCarlo.P5),
			amount(r.Risk.MonteCarlo.P50),
			amount(r.Risk.MonteCarlo.P95),
		}
		for _, name := range csvPresets {
			value := ""
			if res, ok := r.ScenarioResult(name); ok {
				value = amount(res.NetProfit)
			}
			row = append(row, value)
		}
		maxOffer := ""
		if r.MaxOffer != nil {
			maxOffer = amount(r.MaxOffer.Value)
		}
		row = append(row, maxOffer, strings.Join(r.Warnings, "; "))
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// YamlFormat outputs the full reports as a YAML document.
func YamlFormat(w io.Writer, reports []analysis.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return encoder.Close()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
