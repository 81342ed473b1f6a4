package costs

import (
	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
)

// Line item keys.
const (
	KeyDownPayment         = "downPayment"
	KeyLoanAmount          = "loanAmount"
	KeyHardMoneyPoints     = "hardMoneyPoints"
	KeyInspection          = "inspectionCost"
	KeyAppraisal           = "appraisalCost"
	KeyTitleInsurance      = "titleInsurance"
	KeyClosingCostsBuying  = "closingCostsBuying"
	KeyTransferTax         = "transferTax"
	KeyMonthlyInterest     = "monthlyInterest"
	KeyTotalInterest       = "totalInterest"
	KeyBaseRehab           = "baseRehab"
	KeyOverrun             = "overrun"
	KeyContingency         = "contingency"
	KeyPermitFees          = "permitFees"
	KeyMonthlyHolding      = "monthlyHolding"
	KeyPropertyTax         = "propertyTax"
	KeyInsurance           = "insurance"
	KeyUtilities           = "utilities"
	KeyHOA                 = "hoa"
	KeyLawnMaintenance     = "lawnMaintenance"
	KeyAdjustedARV         = "adjustedArv"
	KeyRealtorCommission   = "realtorCommission"
	KeyClosingCostsSelling = "closingCostsSelling"
	KeyStaging             = "stagingCost"
	KeyMarketing           = "marketingCost"
	KeyFallthrough         = "fallthroughCost"
)

// Acquisition computes the cash needed to close: down payment, hard money
// points, inspection, appraisal, title, buyer closing costs and transfer tax.
// FeesOnly excludes the down payment so the purchase price is not counted
// twice by the aggregator. The override is ignored.
func Acquisition(d deal.Deal, _ Override) CostCategory {
	downPayment := mathutil.ApplyPercentage(d.PurchasePrice, d.DownPaymentPercent)
	loanAmount := d.PurchasePrice - downPayment

	category := newCategory(CategoryAcquisition, []LineItem{
		{Key: KeyDownPayment, Label: "Down payment", Amount: downPayment},
		{Key: KeyLoanAmount, Label: "Loan amount", Amount: loanAmount, Informational: true},
		{Key: KeyHardMoneyPoints, Label: "Hard money points", Amount: mathutil.ApplyPercentage(loanAmount, d.HardMoneyPoints)},
		{Key: KeyInspection, Label: "Inspection", Amount: d.InspectionCost},
		{Key: KeyAppraisal, Label: "Appraisal", Amount: d.AppraisalCost},
		{Key: KeyTitleInsurance, Label: "Title insurance", Amount: d.TitleInsurance},
		{Key: KeyClosingCostsBuying, Label: "Closing costs (buying)", Amount: d.ClosingCostsBuying},
		{Key: KeyTransferTax, Label: "Transfer tax", Amount: mathutil.ApplyPercentage(d.PurchasePrice, d.TransferTaxRate)},
	})
	category.FeesOnly = category.Total - downPayment
	return category
}

// Financing computes hard money interest over the holding period.
func Financing(d deal.Deal, o Override) CostCategory {
	loanAmount := d.PurchasePrice * (1 - d.DownPaymentPercent/100)
	monthlyInterest := loanAmount * d.HardMoneyRate / 100 / 12
	months := o.MonthsFor(d)

	return newCategory(CategoryFinancing, []LineItem{
		{Key: KeyLoanAmount, Label: "Loan amount", Amount: loanAmount, Informational: true},
		{Key: KeyMonthlyInterest, Label: "Monthly interest", Amount: monthlyInterest, Informational: true},
		{Key: KeyTotalInterest, Label: "Total interest", Amount: monthlyInterest * months},
	})
}

// Rehab computes the renovation budget with overrun, contingency and permits.
func Rehab(d deal.Deal, o Override) CostCategory {
	base := d.RehabCosts

	return newCategory(CategoryRehab, []LineItem{
		{Key: KeyBaseRehab, Label: "Base rehab", Amount: base},
		{Key: KeyOverrun, Label: "Overrun", Amount: mathutil.ApplyPercentage(base, o.OverrunFor(d))},
		{Key: KeyContingency, Label: "Contingency", Amount: mathutil.ApplyPercentage(base, d.ContingencyPercent)},
		{Key: KeyPermitFees, Label: "Permit fees", Amount: d.PermitFees},
	})
}

// Holding computes carrying costs accrued over the holding period.
func Holding(d deal.Deal, o Override) CostCategory {
	months := o.MonthsFor(d)

	return newCategory(CategoryHolding, []LineItem{
		{Key: KeyMonthlyHolding, Label: "Monthly holding", Amount: d.MonthlyHoldingCost(), Informational: true},
		{Key: KeyPropertyTax, Label: "Property tax", Amount: d.PropertyTax * months},
		{Key: KeyInsurance, Label: "Insurance", Amount: d.Insurance * months},
		{Key: KeyUtilities, Label: "Utilities", Amount: d.Utilities * months},
		{Key: KeyHOA, Label: "HOA", Amount: d.HOA * months},
		{Key: KeyLawnMaintenance, Label: "Lawn maintenance", Amount: d.LawnMaintenance * months},
	})
}

// Selling computes disposition costs against the possibly adjusted ARV.
func Selling(d deal.Deal, o Override) CostCategory {
	adjustedARV := mathutil.Grow(d.ARV, o.ARVAdjustmentPercent)

	return newCategory(CategorySelling, []LineItem{
		{Key: KeyAdjustedARV, Label: "Adjusted ARV", Amount: adjustedARV, Informational: true},
		{Key: KeyRealtorCommission, Label: "Realtor commission", Amount: mathutil.ApplyPercentage(adjustedARV, d.RealtorCommission)},
		{Key: KeyClosingCostsSelling, Label: "Closing costs (selling)", Amount: mathutil.ApplyPercentage(adjustedARV, d.ClosingCostsSelling)},
		{Key: KeyStaging, Label: "Staging", Amount: d.StagingCost},
		{Key: KeyMarketing, Label: "Marketing", Amount: d.MarketingCost},
		{Key: KeyFallthrough, Label: "Financing fallthrough reserve", Amount: mathutil.ApplyPercentage(adjustedARV, d.BuyerFinancingFallthrough)},
	})
}

// Set holds the five category outputs of one evaluation.
type Set struct {
	Acquisition CostCategory `json:"acquisition" yaml:"acquisition"`
	Financing   CostCategory `json:"financing" yaml:"financing"`
	Rehab       CostCategory `json:"rehab" yaml:"rehab"`
	Holding     CostCategory `json:"holding" yaml:"holding"`
	Selling     CostCategory `json:"selling" yaml:"selling"`
}

// Calculate runs all five calculators under the same override.
func Calculate(d deal.Deal, o Override) Set {
	return Set{
		Acquisition: Acquisition(d, o),
		Financing:   Financing(d, o),
		Rehab:       Rehab(d, o),
		Holding:     Holding(d, o),
		Selling:     Selling(d, o),
	}
}

// Categories returns the set in display order.
func (s Set) Categories() []CostCategory {
	return []CostCategory{s.Acquisition, s.Financing, s.Rehab, s.Holding, s.Selling}
}
