package risk

import (
	"github.com/iwvelando/flip-forecast/pkg/constants"
	"github.com/iwvelando/flip-forecast/pkg/mathutil"
)

// Common timeline risk names.
const (
	TimelinePermit     = "permit"
	TimelineContractor = "contractor"
	TimelineInspection = "inspection"
)

// TimelineRisk is a named delay with its probability and length in days.
type TimelineRisk struct {
	Name        string  `json:"name" yaml:"name" mapstructure:"name"`
	Probability float64 `json:"probability" yaml:"probability" mapstructure:"probability"`
	Days        float64 `json:"days" yaml:"days" mapstructure:"days"`
}

// Collision is the combined effect of several delay risks.
type Collision struct {
	// Probability30Plus approximates the chance of a 30+ day cumulative
	// delay as the summed probability of every risk of 20 days or more.
	Probability30Plus float64 `json:"probability30Plus" yaml:"probability30Plus"`
	TotalDays         float64 `json:"totalDays" yaml:"totalDays"`
	Cost              float64 `json:"cost" yaml:"cost"`
	ROIImpactPercent  float64 `json:"roiImpactPercent" yaml:"roiImpactPercent"`
}

// TimelineCollision combines delay risks. Delay days are priced at
// costPerDay, or $50/day when costPerDay is not positive.
func TimelineCollision(risks []TimelineRisk, costPerDay float64) Collision {
	var c Collision
	for _, r := range risks {
		if r.Days >= constants.LongDelayDays {
			c.Probability30Plus += r.Probability
		}
		c.TotalDays += r.Days
	}
	c.Probability30Plus = mathutil.Clamp(c.Probability30Plus, 0, 100)
	c.Cost = c.TotalDays * delayCost(costPerDay)
	c.ROIImpactPercent = c.Cost / constants.ROIImpactBase * constants.ROIImpactScale
	return c
}

func delayCost(costPerDay float64) float64 {
	if costPerDay > 0 {
		return costPerDay
	}
	return constants.DelayCostPerDay
}
