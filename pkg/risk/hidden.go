package risk

import (
	"strings"

	"github.com/iwvelando/flip-forecast/pkg/deal"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
)

// HiddenCost is a latent repair with its updated probability, dollar impact
// and the national base rate it was derived from.
type HiddenCost struct {
	Name        string  `json:"name" yaml:"name"`
	Probability float64 `json:"probability" yaml:"probability"`
	Impact      float64 `json:"impact" yaml:"impact"`
	BaseProb    float64 `json:"baseProb" yaml:"baseProb"`
}

// Hidden cost names.
const (
	HiddenStructural = "Structural damage"
	HiddenPermit     = "Permit rework"
	HiddenRoof       = "Roof replacement"
	HiddenPlumbing   = "Sewer line and plumbing"
	HiddenElectrical = "Electrical rewiring"
	HiddenHazmat     = "Lead or asbestos abatement"
	HiddenHOA        = "HOA special assessment"
)

// MaxHiddenCostProbability caps an updated probability.
const MaxHiddenCostProbability = 95.0

// MedianSquareFeet is the home size the base impacts are quoted for.
const MedianSquareFeet = 1500.0

type prior struct {
	name     string
	baseProb float64
	impact   float64
}

// National base rates, in percent.
var priors = []prior{
	{HiddenStructural, 12, 15000},
	{HiddenPermit, 15, 4500},
	{HiddenRoof, 10, 12000},
	{HiddenPlumbing, 14, 6500},
	{HiddenElectrical, 8, 9000},
	{HiddenHazmat, 6, 7500},
	{HiddenHOA, 20, 3500},
}

// HiddenCosts applies age and type multipliers to the national base rates.
// Unknown attributes (zero year, zero roof age, empty type) leave the base
// rate unchanged. The HOA assessment only applies to condos and townhouses.
//
// Roof and electrical impacts scale with square footage when it is known, and
// permit rework repays the deal's permit fees.
func HiddenCosts(d deal.Deal, pi deal.PropertyIntelligence) []HiddenCost {
	year := pi.YearBuilt
	builtBefore := func(y int) bool { return year > 0 && year < y }

	costs := make([]HiddenCost, 0, len(priors))
	for _, p := range priors {
		multiplier := 1.0
		impact := p.impact

		switch p.name {
		case HiddenStructural:
			if builtBefore(1980) {
				multiplier *= 1.5
			}
			if builtBefore(1970) {
				multiplier *= 1.3
			}
		case HiddenPermit:
			if builtBefore(1980) {
				multiplier *= 1.2
			}
			impact += d.PermitFees
		case HiddenRoof:
			switch {
			case pi.RoofAge >= 20:
				multiplier *= 2.5
			case pi.RoofAge >= 15:
				multiplier *= 1.5
			}
			impact = scaleByArea(impact, pi.SquareFeet)
		case HiddenPlumbing:
			if builtBefore(1970) {
				multiplier *= 1.4
			}
		case HiddenElectrical:
			if builtBefore(1950) {
				multiplier *= 2.0
			}
			impact = scaleByArea(impact, pi.SquareFeet)
		case HiddenHazmat:
			if builtBefore(1978) {
				multiplier *= 2.0
			}
		case HiddenHOA:
			if !sharesHOA(pi.PropertyType) {
				continue
			}
		}

		costs = append(costs, HiddenCost{
			Name:        p.name,
			Probability: mathutil.Clamp(p.baseProb*multiplier, 0, MaxHiddenCostProbability),
			Impact:      impact,
			BaseProb:    p.baseProb,
		})
	}
	return costs
}

func sharesHOA(propertyType string) bool {
	switch strings.ToLower(strings.TrimSpace(propertyType)) {
	case "condo", "condominium", "townhouse", "townhome":
		return true
	}
	return false
}

func scaleByArea(impact, squareFeet float64) float64 {
	if squareFeet <= 0 {
		return impact
	}
	return impact * squareFeet / MedianSquareFeet
}
