package exit

import (
	"math"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/loans"
)

// ProjectionYear is the state of a refinanced rental at the end of a year.
type ProjectionYear struct {
	Year               int     `json:"year" yaml:"year"`
	PropertyValue      float64 `json:"propertyValue" yaml:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance" yaml:"loanBalance"`
	Equity             float64 `json:"equity" yaml:"equity"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow" yaml:"cumulativeCashFlow"`
}

// Project follows a refinanced rental for years, appreciating value at
// appreciationPercent a year and amortizing the loan month by month.
func Project(value float64, loan loans.LoanConfig, annualCashFlow, appreciationPercent float64, years int) []ProjectionYear {
	if years <= 0 {
		return nil
	}

	projection := make([]ProjectionYear, years)
	for i := range projection {
		year := i + 1
		balance := loans.RemainingBalance(loan, year*constants.MonthsPerYear)
		propertyValue := value * math.Pow(1+appreciationPercent/constants.PercentageMultiplier, float64(year))
		projection[i] = ProjectionYear{
			Year:               year,
			PropertyValue:      propertyValue,
			LoanBalance:        balance,
			Equity:             propertyValue - balance,
			CumulativeCashFlow: annualCashFlow * float64(year),
		}
	}
	return projection
}
