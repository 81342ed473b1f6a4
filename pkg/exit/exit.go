// Package exit compares the three exit strategies for a deal: flip,
// wholesale and BRRRR (buy, rehab, rent, refinance, repeat).
package exit

import (
	"math"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/loans"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
	"github.com/iwvelando/flip-forecast/pkg/profit"
)

// Options are the market assumptions of the comparison. Every field is used
// as given, so a zero rate or ratio means zero; start from DefaultOptions to
// change only some of them.
type Options struct {
	WholesaleFactor     float64 `json:"wholesaleFactor" yaml:"wholesaleFactor" mapstructure:"wholesaleFactor"`
	RefinancePercent    float64 `json:"refinancePercent" yaml:"refinancePercent" mapstructure:"refinancePercent"`
	MortgageRate        float64 `json:"mortgageRate" yaml:"mortgageRate" mapstructure:"mortgageRate"`
	MortgageTermMonths  int     `json:"mortgageTermMonths" yaml:"mortgageTermMonths" mapstructure:"mortgageTermMonths"`
	RentRatio           float64 `json:"rentRatio" yaml:"rentRatio" mapstructure:"rentRatio"`
	ExpenseRatio        float64 `json:"expenseRatio" yaml:"expenseRatio" mapstructure:"expenseRatio"`
	ClosingEstimate     float64 `json:"closingEstimate" yaml:"closingEstimate" mapstructure:"closingEstimate"`
	AppreciationPercent float64 `json:"appreciationPercent" yaml:"appreciationPercent" mapstructure:"appreciationPercent"`
	ProjectionYears     int     `json:"projectionYears" yaml:"projectionYears" mapstructure:"projectionYears"`
}

// DefaultOptions returns 70% wholesale, 75% LTV refinance at 7% over 30
// years, 0.8% rent, 40% expenses and 3% closing.
func DefaultOptions() Options {
	return Options{
		WholesaleFactor:     constants.WholesaleFactor,
		RefinancePercent:    constants.DefaultRefinancePercent,
		MortgageRate:        constants.DefaultMortgageRate,
		MortgageTermMonths:  constants.DefaultMortgageTermMonths,
		RentRatio:           constants.DefaultRentRatio,
		ExpenseRatio:        constants.DefaultExpenseRatio,
		ClosingEstimate:     constants.DefaultClosingEstimate,
		AppreciationPercent: constants.DefaultAppreciationPercent,
		ProjectionYears:     constants.DefaultProjectionYears,
	}
}

// mortgageTerm returns the refinance term, falling back to the default for a
// term that cannot amortize.
func (o Options) mortgageTerm() int {
	if o.MortgageTermMonths <= 0 {
		return constants.DefaultMortgageTermMonths
	}
	return o.MortgageTermMonths
}

// Flip is selling the renovated property.
type Flip struct {
	Profit float64  `json:"profit" yaml:"profit"`
	ROI    float64  `json:"roi" yaml:"roi"`
	Months float64  `json:"months" yaml:"months"`
	Pros   []string `json:"pros" yaml:"pros"`
}

// Wholesale is assigning the contract before rehab.
type Wholesale struct {
	MaxAllowableOffer float64  `json:"maxAllowableOffer" yaml:"maxAllowableOffer"`
	Spread            float64  `json:"spread" yaml:"spread"`
	Viable            bool     `json:"viable" yaml:"viable"`
	Pros              []string `json:"pros" yaml:"pros"`
}

// BRRRR is renting the property after a cash-out refinance.
type BRRRR struct {
	RefinanceAmount  float64          `json:"refinanceAmount" yaml:"refinanceAmount"`
	TotalInvested    float64          `json:"totalInvested" yaml:"totalInvested"`
	CapitalRecovered float64          `json:"capitalRecovered" yaml:"capitalRecovered"`
	MonthlyRent      float64          `json:"monthlyRent" yaml:"monthlyRent"`
	MonthlyMortgage  float64          `json:"monthlyMortgage" yaml:"monthlyMortgage"`
	MonthlyExpenses  float64          `json:"monthlyExpenses" yaml:"monthlyExpenses"`
	MonthlyCashFlow  float64          `json:"monthlyCashFlow" yaml:"monthlyCashFlow"`
	AnnualCashFlow   float64          `json:"annualCashFlow" yaml:"annualCashFlow"`
	Projection       []ProjectionYear `json:"projection" yaml:"projection"`
	Pros             []string         `json:"pros" yaml:"pros"`
}

// Comparison holds the three strategies side by side.
type Comparison struct {
	Flip      Flip      `json:"flip" yaml:"flip"`
	Wholesale Wholesale `json:"wholesale" yaml:"wholesale"`
	BRRRR     BRRRR     `json:"brrrr" yaml:"brrrr"`
}

var (
	flipPros = []string{
		"Fastest return of capital",
		"No landlord responsibilities",
		"Profit realized at sale",
	}
	wholesalePros = []string{
		"No rehab or financing required",
		"Minimal capital at risk",
		"Quick assignment fee",
	}
	brrrrPros = []string{
		"Capital recycled through refinance",
		"Ongoing rental cash flow",
		"Long-term appreciation and equity",
	}
)

func pros(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Compare evaluates every exit strategy for d using its computed metrics.
func Compare(d deal.Deal, m profit.DealMetrics, opts Options) Comparison {
	return Comparison{
		Flip:      FlipExit(m),
		Wholesale: WholesaleExit(d, m, opts),
		BRRRR:     BRRRRExit(d, m, opts),
	}
}

// FlipExit reports the aggregator's own profit.
func FlipExit(m profit.DealMetrics) Flip {
	return Flip{
		Profit: m.NetProfit,
		ROI:    m.ROI,
		Months: m.HoldingMonths,
		Pros:   pros(flipPros),
	}
}

// WholesaleExit computes the assignment spread, (arv*factor - rehab) less
// the purchase price. The spread is floored at 0: a negative spread means
// no deal rather than a loss, and so does one under a cent.
func WholesaleExit(d deal.Deal, m profit.DealMetrics, opts Options) Wholesale {
	mao := d.ARV*opts.WholesaleFactor - m.Rehab.Total
	spread := math.Max(0, mao-d.PurchasePrice)
	return Wholesale{
		MaxAllowableOffer: mao,
		Spread:            spread,
		Viable:            !mathutil.IsZero(spread),
		Pros:              pros(wholesalePros),
	}
}

// BRRRRExit refinances at opts.RefinancePercent of ARV and rents the
// property under the rent and expense ratios.
func BRRRRExit(d deal.Deal, m profit.DealMetrics, opts Options) BRRRR {
	term := opts.mortgageTerm()
	refi := d.ARV * opts.RefinancePercent / constants.PercentageMultiplier
	invested := (d.PurchasePrice + m.Rehab.Total) * (1 + opts.ClosingEstimate)
	rent := d.ARV * opts.RentRatio
	mortgage := loans.CalculateMonthlyPayment(refi, 0, opts.MortgageRate, term)
	expenses := rent * opts.ExpenseRatio
	cashFlow := rent - mortgage - expenses

	b := BRRRR{
		RefinanceAmount:  refi,
		TotalInvested:    invested,
		CapitalRecovered: refi - invested,
		MonthlyRent:      rent,
		MonthlyMortgage:  mortgage,
		MonthlyExpenses:  expenses,
		MonthlyCashFlow:  cashFlow,
		AnnualCashFlow:   cashFlow * constants.MonthsPerYear,
		Pros:             pros(brrrrPros),
	}
	b.Projection = Project(d.ARV, loans.LoanConfig{
		Name:         "refinance",
		Principal:    refi,
		InterestRate: opts.MortgageRate,
		Term:         term,
	}, b.AnnualCashFlow, opts.AppreciationPercent, opts.ProjectionYears)
	return b
}
