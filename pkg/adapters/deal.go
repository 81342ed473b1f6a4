// Package adapters maps loosely shaped external records onto the engine's
// types. Field names are matched case-insensitively with underscores and
// dashes ignored, so rehabCosts, rehab_costs and RehabCosts are the same
// field. Values that are missing or not numeric become 0.
package adapters

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/flip-forecast/pkg/deal"
)

type floatSetter func(*deal.Deal, float64)

var dealFields = map[string]floatSetter{
	"purchaseprice":             func(d *deal.Deal, v float64) { d.PurchasePrice = v },
	"arv":                       func(d *deal.Deal, v float64) { d.ARV = v },
	"downpaymentpercent":        func(d *deal.Deal, v float64) { d.DownPaymentPercent = v },
	"hardmoneyrate":             func(d *deal.Deal, v float64) { d.HardMoneyRate = v },
	"hardmoneypoints":           func(d *deal.Deal, v float64) { d.HardMoneyPoints = v },
	"rehabcosts":                func(d *deal.Deal, v float64) { d.RehabCosts = v },
	"rehaboverrunpercent":       func(d *deal.Deal, v float64) { d.RehabOverrunPercent = v },
	"contingencypercent":        func(d *deal.Deal, v float64) { d.ContingencyPercent = v },
	"permitfees":                func(d *deal.Deal, v float64) { d.PermitFees = v },
	"holdingmonths":             func(d *deal.Deal, v float64) { d.HoldingMonths = v },
	"propertytax":               func(d *deal.Deal, v float64) { d.PropertyTax = v },
	"insurance":                 func(d *deal.Deal, v float64) { d.Insurance = v },
	"utilities":                 func(d *deal.Deal, v float64) { d.Utilities = v },
	"hoa":                       func(d *deal.Deal, v float64) { d.HOA = v },
	"lawnmaintenance":           func(d *deal.Deal, v float64) { d.LawnMaintenance = v },
	"realtorcommission":         func(d *deal.Deal, v float64) { d.RealtorCommission = v },
	"closingcostsselling":       func(d *deal.Deal, v float64) { d.ClosingCostsSelling = v },
	"stagingcost":               func(d *deal.Deal, v float64) { d.StagingCost = v },
	"marketingcost":             func(d *deal.Deal, v float64) { d.MarketingCost = v },
	"buyerfinancingfallthrough": func(d *deal.Deal, v float64) { d.BuyerFinancingFallthrough = v },
	"transfertaxrate":           func(d *deal.Deal, v float64) { d.TransferTaxRate = v },
	"inspectioncost":            func(d *deal.Deal, v float64) { d.InspectionCost = v },
	"appraisalcost":             func(d *deal.Deal, v float64) { d.AppraisalCost = v },
	"titleinsurance":            func(d *deal.Deal, v float64) { d.TitleInsurance = v },
	"closingcostsbuying":        func(d *deal.Deal, v float64) { d.ClosingCostsBuying = v },
}

// aliases maps alternative field names onto the canonical ones. A canonical
// key wins over its aliases when a record carries both.
var aliases = map[string]string{
	"afterrepairvalue": "arv",
	"downpayment":      "downpaymentpercent",
	"rehabcost":        "rehabcosts",
	"rehabbudget":      "rehabcosts",
	"holdingperiod":    "holdingmonths",
	"propertytaxes":    "propertytax",
	"hoafees":          "hoa",
	"zipcode":          "zip",
	"postalcode":       "zip",
	"sqft":             "squarefeet",
	"squarefootage":    "squarefeet",
	"type":             "propertytype",
}

// canonicalKeys resolves every key of record, returning the canonical names
// in sorted order with the original key that supplies each.
func canonicalKeys(record map[string]interface{}) ([]string, map[string]string) {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	source := make(map[string]string, len(keys))
	fromAlias := make(map[string]bool, len(keys))
	for _, key := range keys {
		name := normalizeKey(key)
		canonical, isAlias := aliases[name]
		if !isAlias {
			canonical = name
		}
		if _, ok := source[canonical]; ok {
			// Only a canonical key may replace an earlier alias.
			if isAlias || !fromAlias[canonical] {
				continue
			}
		}
		source[canonical] = key
		fromAlias[canonical] = isAlias
	}

	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, source
}

// normalizeKey folds a field name to lower case without separators.
func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.TrimSpace(key) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// DealFromMap builds a Deal from a decoded JSON or YAML object. Unknown
// keys are ignored.
func DealFromMap(record map[string]interface{}) deal.Deal {
	var d deal.Deal
	names, source := canonicalKeys(record)
	for _, name := range names {
		value := record[source[name]]
		if set, ok := dealFields[name]; ok {
			set(&d, CoerceFloat(value))
			continue
		}
		switch name {
		case "address":
			d.Address = coerceString(value)
		case "zip":
			d.Zip = coerceString(value)
		case "riskscore":
			if v, ok := parseFloat(value); ok {
				d.RiskScore = deal.Float(v)
			}
		case "marketscore":
			if v, ok := parseFloat(value); ok {
				d.MarketScore = deal.Float(v)
			}
		}
	}
	return d
}

// PropertyIntelligenceFromMap reads the optional enrichment record.
func PropertyIntelligenceFromMap(record map[string]interface{}) deal.PropertyIntelligence {
	var pi deal.PropertyIntelligence
	names, source := canonicalKeys(record)
	for _, name := range names {
		value := record[source[name]]
		switch name {
		case "yearbuilt":
			pi.YearBuilt = int(CoerceFloat(value))
		case "propertytype":
			pi.PropertyType = coerceString(value)
		case "roofage":
			pi.RoofAge = int(CoerceFloat(value))
		case "squarefeet":
			pi.SquareFeet = CoerceFloat(value)
		case "marketscore":
			pi.MarketScore = CoerceFloat(value)
		}
	}
	return pi
}

// CoerceFloat converts a loosely typed value to a float64. Strings may carry
// a currency symbol, thousands separators or a trailing percent sign.
// Anything unparseable, NaN or infinite becomes 0.
func CoerceFloat(value interface{}) float64 {
	v, _ := parseFloat(value)
	return v
}

func parseFloat(value interface{}) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
