package costs

import (
	"math"
	"testing"

	"github.com/iwvelando/flip-forecast/pkg/deal"
)

const tolerance = 1e-6

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

func assertAmount(t *testing.T, label string, got, expected float64) {
	t.Helper()
	if math.Abs(got-expected) > tolerance {
		t.Errorf("%s = %.6f, expected %.6f", label, got, expected)
	}
}

func TestExampleDealCategories(t *testing.T) {
	d := exampleDeal()

	rehab := Rehab(d, Override{})
	assertAmount(t, "Rehab.total", rehab.Total, 33000)
	assertAmount(t, "Rehab.contingency", rehab.Amount(KeyContingency), 3000)
	assertAmount(t, "Rehab.overrun", rehab.Amount(KeyOverrun), 0)
	assertAmount(t, "Rehab.permitFees", rehab.Amount(KeyPermitFees), 0)

	acquisition := Acquisition(d, Override{})
	assertAmount(t, "Acquisition.downPayment", acquisition.Amount(KeyDownPayment), 20000)
	assertAmount(t, "Acquisition.hardMoneyPoints", acquisition.Amount(KeyHardMoneyPoints), 1600)
	assertAmount(t, "Acquisition.total", acquisition.Total, 21600)
	assertAmount(t, "Acquisition.feesOnly", acquisition.FeesOnly, 1600)

	financing := Financing(d, Override{})
	assertAmount(t, "Financing.loanAmount", financing.Amount(KeyLoanAmount), 80000)
	assertAmount(t, "Financing.monthlyInterest", financing.Amount(KeyMonthlyInterest), 800)
	assertAmount(t, "Financing.totalInterest", financing.Amount(KeyTotalInterest), 4800)
	assertAmount(t, "Financing.total", financing.Total, 4800)

	selling := Selling(d, Override{})
	assertAmount(t, "Selling.realtorCommission", selling.Amount(KeyRealtorCommission), 12000)
	assertAmount(t, "Selling.closingCostsSelling", selling.Amount(KeyClosingCostsSelling), 6000)
	assertAmount(t, "Selling.total", selling.Total, 18000)
}

func TestAcquisitionLineItems(t *testing.T) {
	d := deal.Deal{
		PurchasePrice:      250000,
		DownPaymentPercent: 10,
		HardMoneyPoints:    3,
		InspectionCost:     500,
		AppraisalCost:      450,
		TitleInsurance:     1200,
		ClosingCostsBuying: 2000,
		TransferTaxRate:    1,
	}

	got := Acquisition(d, Override{})

	// 25000 down + 6750 points + 500 + 450 + 1200 + 2000 + 2500 transfer tax
	assertAmount(t, "total", got.Total, 38400)
	assertAmount(t, "feesOnly", got.FeesOnly, 13400)
	assertAmount(t, "transferTax", got.Amount(KeyTransferTax), 2500)
	assertAmount(t, "loanAmount", got.Amount(KeyLoanAmount), 225000)
}

func TestMonthsOverride(t *testing.T) {
	d := exampleDeal()
	d.PropertyTax = 200
	d.Insurance = 100
	d.Utilities = 150
	d.HOA = 0
	d.LawnMaintenance = 50

	tests := []struct {
		name             string
		override         Override
		expectedHolding  float64
		expectedInterest float64
	}{
		{"Deal months", Override{}, 3000, 4800},
		{"Extended", Override{Months: Float(9)}, 4500, 7200},
		{"Fractional months", Override{Months: Float(7.5)}, 3750, 6000},
		{"Zero months", Override{Months: Float(0)}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holding := Holding(d, tt.override)
			financing := Financing(d, tt.override)
			assertAmount(t, "Holding.total", holding.Total, tt.expectedHolding)
			assertAmount(t, "Financing.total", financing.Total, tt.expectedInterest)
			assertAmount(t, "Holding.monthlyHolding", holding.Amount(KeyMonthlyHolding), 500)
		})
	}
}

func TestRehabOverrunOverride(t *testing.T) {
	d := exampleDeal()
	d.RehabOverrunPercent = 15
	d.PermitFees = 1500

	tests := []struct {
		name     string
		override Override
		expected float64
	}{
		{"Deal overrun applies without override", Override{}, 30000 + 4500 + 3000 + 1500},
		{"Explicit zero forces no overrun", Override{RehabOverrunPercent: Float(0)}, 30000 + 3000 + 1500},
		{"Negative overrun reduces rehab", Override{RehabOverrunPercent: Float(-10)}, 30000 - 3000 + 3000 + 1500},
		{"Larger overrun", Override{RehabOverrunPercent: Float(25)}, 30000 + 7500 + 3000 + 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rehab(d, tt.override)
			assertAmount(t, "Rehab.total", got.Total, tt.expected)
		})
	}
}

func TestSellingAdjustedARV(t *testing.T) {
	d := exampleDeal()
	d.StagingCost = 2000
	d.MarketingCost = 500
	d.BuyerFinancingFallthrough = 1

	got := Selling(d, Override{ARVAdjustmentPercent: -10})

	assertAmount(t, "adjustedArv", got.Amount(KeyAdjustedARV), 180000)
	assertAmount(t, "realtorCommission", got.Amount(KeyRealtorCommission), 10800)
	assertAmount(t, "closingCostsSelling", got.Amount(KeyClosingCostsSelling), 5400)
	assertAmount(t, "fallthroughCost", got.Amount(KeyFallthrough), 1800)
	assertAmount(t, "total", got.Total, 10800+5400+2000+500+1800)
}

func TestZeroDealProducesZeroTotals(t *testing.T) {
	calculators := map[string]Calculator{
		CategoryAcquisition: Acquisition,
		CategoryFinancing:   Financing,
		CategoryRehab:       Rehab,
		CategoryHolding:     Holding,
		CategorySelling:     Selling,
	}

	for name, calculate := range calculators {
		t.Run(name, func(t *testing.T) {
			got := calculate(deal.Deal{}, Override{})
			if got.Name != name {
				t.Errorf("category name = %q, expected %q", got.Name, name)
			}
			if got.Total != 0 || got.FeesOnly != 0 {
				t.Errorf("expected zero totals, got total=%v feesOnly=%v", got.Total, got.FeesOnly)
			}
		})
	}
}

func TestCalculateOrder(t *testing.T) {
	set := Calculate(exampleDeal(), Override{})
	expected := []string{CategoryAcquisition, CategoryFinancing, CategoryRehab, CategoryHolding, CategorySelling}
	for i, category := range set.Categories() {
		if category.Name != expected[i] {
			t.Errorf("category %d = %q, expected %q", i, category.Name, expected[i])
		}
	}
	if set.Rehab.Amount("unknown") != 0 {
		t.Error("expected unknown line item to read as 0")
	}
}
