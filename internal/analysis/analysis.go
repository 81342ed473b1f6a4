// Package analysis runs configured deals through the cost, profit, scenario,
// risk and exit calculations and collects the results into reports.
package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iwvelando/flip-forecast/internal/config"
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/exit"
	"github.com/iwvelando/flip-forecast/pkg/optimization"
	"github.com/iwvelando/flip-forecast/pkg/profit"
	"github.com/iwvelando/flip-forecast/pkg/risk"
	"github.com/iwvelando/flip-forecast/pkg/scenario"
	"github.com/iwvelando/flip-forecast/pkg/validation"
	"go.uber.org/zap"
)

// dealNamespace scopes deal IDs so the same property always maps to the same ID.
var dealNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/iwvelando/flip-forecast/deal"))

// Report holds everything computed for one deal.
type Report struct {
	ID        string                `json:"id" yaml:"id"`
	Name      string                `json:"name" yaml:"name"`
	Deal      deal.Deal             `json:"deal" yaml:"deal"`
	Metrics   profit.DealMetrics    `json:"metrics" yaml:"metrics"`
	Scenarios []scenario.Result     `json:"scenarios" yaml:"scenarios"`
	WorstCase scenario.WorstCase    `json:"worstCase" yaml:"worstCase"`
	Risk      RiskReport            `json:"risk" yaml:"risk"`
	Exit      exit.Comparison       `json:"exit" yaml:"exit"`
	Warnings  []string              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	MaxOffer  *optimization.Summary `json:"maxOffer,omitempty" yaml:"maxOffer,omitempty"`
}

// RiskReport groups the probabilistic view of a deal.
type RiskReport struct {
	Entries           []risk.Entry      `json:"entries" yaml:"entries"`
	Profile           risk.Profile      `json:"profile" yaml:"profile"`
	HiddenCosts       []risk.HiddenCost `json:"hiddenCosts" yaml:"hiddenCosts"`
	Timeline          risk.Collision    `json:"timeline" yaml:"timeline"`
	MonteCarlo        risk.Simulation   `json:"monteCarlo" yaml:"monteCarlo"`
	MinARV            float64           `json:"minArv" yaml:"minArv"`
	MaxAllowableOffer float64           `json:"maxAllowableOffer" yaml:"maxAllowableOffer"`
	ConservativeOffer float64           `json:"conservativeOffer" yaml:"conservativeOffer"`
}

// ScenarioResult returns the scenario with the given name.
func (r Report) ScenarioResult(name string) (scenario.Result, bool) {
	for _, res := range r.Scenarios {
		if res.Name == name {
			return res, true
		}
	}
	return scenario.Result{}, false
}

// DealID returns the stable identifier of a property. Address and zip are
// compared case-insensitively; a deal without an address is identified by
// its name.
func DealID(name string, d deal.Deal) string {
	key := strings.ToLower(strings.TrimSpace(d.Address))
	if key == "" {
		key = "name:" + strings.ToLower(strings.TrimSpace(name))
	}
	key += "|" + strings.TrimSpace(d.Zip)
	return uuid.NewSHA1(dealNamespace, []byte(key)).String()
}

// Run analyzes every configured deal in order.
func Run(logger *zap.Logger, conf config.Configuration) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(conf.Deals) == 0 {
		return nil, fmt.Errorf("no deals configured")
	}

	reports := make([]Report, 0, len(conf.Deals))
	for i, dc := range conf.Deals {
		name := dc.DisplayName(i)
		report := Analyze(name, dc, conf.Assumptions)

		logger.Debug(fmt.Sprintf("analyzed deal %s", name),
			zap.String("op", "analysis.Run"),
			zap.String("id", report.ID),
			zap.Float64("netProfit", report.Metrics.NetProfit),
			zap.Float64("roi", report.Metrics.ROI),
			zap.Int("score", report.Metrics.Score),
			zap.Float64("expectedValue", report.Risk.Profile.ExpectedValue),
			zap.Int("warnings", len(report.Warnings)),
		)
		reports = append(reports, report)
	}

	return reports, nil
}

// Analyze evaluates one deal under the given assumptions.
func Analyze(name string, dc config.DealConfig, a config.Assumptions) Report {
	d := a.ResolveDeal(dc.Deal)
	m := profit.Evaluate(d)

	presets := scenario.CompareAll(d)
	results := make([]scenario.Result, 0, len(presets)+len(dc.Scenarios))
	results = append(results, presets...)
	results = append(results, scenario.Compare(d, dc.Scenarios...)...)
	entries := risk.EntriesFromResults(presets, a.Weights)

	hidden := risk.HiddenCosts(d, dc.Property)

	return Report{
		ID:        DealID(name, d),
		Name:      name,
		Deal:      d,
		Metrics:   m,
		Scenarios: results,
		WorstCase: scenario.SimulateWorstCase(d),
		Risk: RiskReport{
			Entries:           entries,
			Profile:           risk.Assess(d, m, entries, a.RiskOptions(dc, hidden, dc.ARVShiftPercent)),
			HiddenCosts:       hidden,
			Timeline:          risk.TimelineCollision(dc.TimelineRisks, a.DelayCostPerDay),
			MonteCarlo:        risk.MonteCarlo(d, a.MonteCarlo),
			MinARV:            risk.MinARV(d, m, a.MinARV),
			MaxAllowableOffer: risk.MaxAllowableOffer(d.ARV, m.Rehab.Total, a.Exit.WholesaleFactor),
			ConservativeOffer: risk.MaxAllowableOffer(d.ARV, m.Rehab.Total, constants.ConservativeWholesaleFactor),
		},
		Exit:     exit.Compare(d, m, a.Exit),
		Warnings: validation.ValidateDeal(name, d),
	}
}
