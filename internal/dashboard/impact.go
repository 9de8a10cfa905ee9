package dashboard

import (
	"math"

	"github.com/ziadkadry99/molview/internal/molecule"
	"github.com/ziadkadry99/molview/internal/simulation"
)

// Impact is the estimated agricultural impact of deploying a molecule.
type Impact struct {
	FarmersReached       int `json:"farmers_reached"`
	YieldIncrease        int `json:"yield_increase"`
	CostReduction        int `json:"cost_reduction"`
	EnvironmentalBenefit int `json:"environmental_benefit"`
}

type impactScale struct {
	farmers, yield, cost float64
	environment          int
}

var impactByCategory = map[molecule.Category]impactScale{
	molecule.CategoryPesticide: {50000, 25, 30, 80},
	molecule.CategoryNutrient:  {75000, 35, 20, 60},
}

var defaultImpact = impactScale{25000, 15, 15, 40}

// EstimateImpact scales the activity score by the entry's category. Results
// that are missing or unsuccessful estimate no impact.
func EstimateImpact(entry molecule.Entry, o *simulation.Overlay) Impact {
	if o == nil || !o.Success {
		return Impact{}
	}
	sc, ok := impactByCategory[entry.Category]
	if !ok {
		sc = defaultImpact
	}
	score := ActivityScore(o)
	return Impact{
		FarmersReached:       int(math.Floor(score * sc.farmers)),
		YieldIncrease:        int(math.Floor(score * sc.yield)),
		CostReduction:        int(math.Floor(score * sc.cost)),
		EnvironmentalBenefit: sc.environment,
	}
}
