package planning

import (
	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// ChaseInput holds the inputs of a chase-strategy MPS computation.
type ChaseInput struct {
	// Demand is the forecast demand, one value per period.
	Demand entities.Series
	// InitialInventory is on-hand stock at the start of period 1.
	InitialInventory decimal.Decimal
	// SafetyStock is the end-of-period target, one value per period. Its
	// length must equal the demand's.
	SafetyStock entities.Series
	// Scrap inflates net production needs into gross quantities.
	Scrap entities.ScrapRate
	// Observer, when set, receives per-period events.
	Observer Observer
}

func (in *ChaseInput) validate() error {
	if len(in.Demand) == 0 {
		return invalidParamf("demand must cover at least one period")
	}
	if len(in.SafetyStock) != len(in.Demand) {
		return invalidParamf("safety stock has %d periods, demand has %d", len(in.SafetyStock), len(in.Demand))
	}
	return nil
}

// ChasePlan computes a master production schedule under the chase strategy:
// each period produces exactly what it needs to cover that period's demand
// plus its safety stock target, net of carried inventory and inflated for
// scrap. Inventory carries sequentially: inventory_initial[t+1] is
// inventory_final[t].
func ChasePlan(in ChaseInput) (*entities.ProductionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	n := len(in.Demand)
	in.Observer.notify(Event{Plan: KindChaseMPS, Kind: EventPlanStarted, Fields: map[string]decimal.Decimal{
		"periods": decimal.NewFromInt(int64(n)),
	}})

	initial := make(entities.Series, n)
	safety := make(entities.Series, n)
	production := make(entities.Series, n)
	available := make(entities.Series, n)
	demand := make(entities.Series, n)
	final := make(entities.Series, n)

	carry := in.InitialInventory
	for t := 0; t < n; t++ {
		initial[t] = carry
		demand[t] = in.Demand[t]
		safety[t] = in.SafetyStock[t]

		netNeed := demand[t].Add(safety[t]).Sub(carry)
		if netNeed.Sign() < 0 {
			netNeed = decimal.Zero
		}
		production[t] = in.Scrap.GrossFromNet(netNeed)
		available[t] = carry.Add(production[t])
		final[t] = available[t].Sub(demand[t])
		carry = final[t]

		in.Observer.notify(Event{Plan: KindChaseMPS, Kind: EventPeriodComputed, Period: t + 1, Fields: map[string]decimal.Decimal{
			"net_need":         netNeed,
			"gross_production": production[t],
			"inventory_final":  final[t],
		}})
	}

	plan, err := entities.NewProductionPlan(map[entities.PlanRow]entities.Series{
		entities.PlanRowInventoryInitial:   initial,
		entities.PlanRowSafetyStock:        safety,
		entities.PlanRowGrossProduction:    production,
		entities.PlanRowInventoryAvailable: available,
		entities.PlanRowDemand:             demand,
		entities.PlanRowInventoryFinal:     final,
	})
	if err != nil {
		return nil, err
	}

	in.Observer.notify(Event{Plan: KindChaseMPS, Kind: EventPlanFinished})
	return plan, nil
}
