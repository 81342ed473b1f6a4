// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
)

// Payment holds the values for a given payment.
type Payment struct {
	Month              int     `json:"month" yaml:"month"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - downPayment) / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return (principal - downPayment) * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// LoanConfig represents loan configuration parameters
type LoanConfig struct {
	Name         string
	Principal    float64
	InterestRate float64
	Term         int
}

// GenerateSchedule creates the amortization schedule of a loan for up to
// months payments (the full term when months is not positive). Month numbers
// start at 1.
func GenerateSchedule(loan LoanConfig, months int) []Payment {
	if loan.Term <= 0 {
		return nil
	}
	if months <= 0 || months > loan.Term {
		months = loan.Term
	}

	monthlyPayment := CalculateMonthlyPayment(loan.Principal, 0, loan.InterestRate, loan.Term)
	schedule := make([]Payment, 0, months)
	remaining := loan.Principal

	for month := 1; month <= months; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(remaining, loan.InterestRate)
		current.Principal = monthlyPayment - current.Interest

		if month == loan.Term || mathutil.Round(remaining-current.Principal) == 0 {
			// We will get machine error otherwise so just set to 0.
			current.RemainingPrincipal = 0.00
			schedule = append(schedule, current)
			break
		}
		current.RemainingPrincipal = remaining - current.Principal
		schedule = append(schedule, current)
		remaining = current.RemainingPrincipal
	}

	return schedule
}

// RemainingBalance returns the principal left after the given number of
// payments.
func RemainingBalance(loan LoanConfig, payments int) float64 {
	if payments <= 0 {
		return loan.Principal
	}
	schedule := GenerateSchedule(loan, payments)
	if len(schedule) == 0 {
		return loan.Principal
	}
	return schedule[len(schedule)-1].RemainingPrincipal
}
