// Package deal defines the input record describing one fix-and-flip
// opportunity. A Deal is supplied fresh on every call and never mutated by the
// engine; every numeric field defaults to 0 when absent.
package deal

// Deal holds the purchase, financing, rehab, holding and sale terms of a
// property. Percent fields are expressed 0-100. Monthly carrying costs are per
// month and multiplied by the holding period.
type Deal struct {
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Zip     string `json:"zip,omitempty" yaml:"zip,omitempty"`

	// Purchase and sale
	PurchasePrice float64 `json:"purchasePrice" yaml:"purchasePrice"`
	ARV           float64 `json:"arv" yaml:"arv"`

	// Financing
	DownPaymentPercent float64 `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	HardMoneyRate      float64 `json:"hardMoneyRate" yaml:"hardMoneyRate"`
	HardMoneyPoints    float64 `json:"hardMoneyPoints" yaml:"hardMoneyPoints"`

	// Rehab
	RehabCosts          float64 `json:"rehabCosts" yaml:"rehabCosts"`
	RehabOverrunPercent float64 `json:"rehabOverrunPercent" yaml:"rehabOverrunPercent"`
	ContingencyPercent  float64 `json:"contingencyPercent" yaml:"contingencyPercent"`
	PermitFees          float64 `json:"permitFees" yaml:"permitFees"`

	// Holding
	HoldingMonths   float64 `json:"holdingMonths" yaml:"holdingMonths"`
	PropertyTax     float64 `json:"propertyTax" yaml:"propertyTax"`
	Insurance       float64 `json:"insurance" yaml:"insurance"`
	Utilities       float64 `json:"utilities" yaml:"utilities"`
	HOA             float64 `json:"hoa" yaml:"hoa"`
	LawnMaintenance float64 `json:"lawnMaintenance" yaml:"lawnMaintenance"`

	// Selling
	RealtorCommission         float64 `json:"realtorCommission" yaml:"realtorCommission"`
	ClosingCostsSelling       float64 `json:"closingCostsSelling" yaml:"closingCostsSelling"`
	StagingCost               float64 `json:"stagingCost" yaml:"stagingCost"`
	MarketingCost             float64 `json:"marketingCost" yaml:"marketingCost"`
	BuyerFinancingFallthrough float64 `json:"buyerFinancingFallthrough" yaml:"buyerFinancingFallthrough"`

	// Acquisition
	TransferTaxRate    float64 `json:"transferTaxRate" yaml:"transferTaxRate"`
	InspectionCost     float64 `json:"inspectionCost" yaml:"inspectionCost"`
	AppraisalCost      float64 `json:"appraisalCost" yaml:"appraisalCost"`
	TitleInsurance     float64 `json:"titleInsurance" yaml:"titleInsurance"`
	ClosingCostsBuying float64 `json:"closingCostsBuying" yaml:"closingCostsBuying"`

	// Optional scorer inputs. Nil falls back to the placeholder scores.
	RiskScore   *float64 `json:"riskScore,omitempty" yaml:"riskScore,omitempty"`
	MarketScore *float64 `json:"marketScore,omitempty" yaml:"marketScore,omitempty"`
}

// PropertyIntelligence is optional enrichment supplied by market and property
// data providers. It only feeds the hidden-cost estimator.
type PropertyIntelligence struct {
	YearBuilt    int     `json:"yearBuilt,omitempty" yaml:"yearBuilt,omitempty"`
	PropertyType string  `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	RoofAge      int     `json:"roofAge,omitempty" yaml:"roofAge,omitempty"`
	SquareFeet   float64 `json:"squareFeet,omitempty" yaml:"squareFeet,omitempty"`
	MarketScore  float64 `json:"marketScore,omitempty" yaml:"marketScore,omitempty"`
}

// MonthlyHoldingCost sums the monthly carrying costs.
func (d Deal) MonthlyHoldingCost() float64 {
	return d.PropertyTax + d.Insurance + d.Utilities + d.HOA + d.LawnMaintenance
}

// Float returns a pointer to v, for the optional score overrides.
func Float(v float64) *float64 {
	return &v
}
