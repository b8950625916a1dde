package planning

import (
	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// LevelInput holds the inputs of a level-strategy MPS computation.
type LevelInput struct {
	// Demand is the forecast demand, one value per period. Its length must
	// equal Periods: the demand series defines the horizon, so no padding
	// applies here.
	Demand entities.Series
	// InitialInventory is on-hand stock at the start of period 1.
	InitialInventory decimal.Decimal
	// TerminalSafetyStock is the inventory target at the end of the horizon.
	TerminalSafetyStock decimal.Decimal
	// Scrap inflates net production needs into gross quantities.
	Scrap entities.ScrapRate
	// Periods is the horizon length N.
	Periods int
	// Observer, when set, receives per-period events. The computation is
	// unaffected by it.
	Observer Observer
}

func (in *LevelInput) validate() error {
	if in.Periods <= 0 {
		return invalidParamf("number of periods must be positive, got %d", in.Periods)
	}
	if len(in.Demand) != in.Periods {
		return invalidParamf("demand has %d periods, want %d", len(in.Demand), in.Periods)
	}
	return nil
}

// LevelPlan computes a master production schedule under the level strategy:
// one constant gross production quantity applied to every period.
//
// The constant is derived once from the aggregate:
//
//	total_net = max(0, sum(demand) + terminal_safety_stock - initial_inventory)
//	gross     = ceil((total_net / N) / (1 - scrap))
//
// The per-period ceiling is deliberate: production load is equal in every
// period, so the realized terminal inventory may overshoot the target.
func LevelPlan(in LevelInput) (*entities.ProductionPlan, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	totalNet := in.Demand.Sum().Add(in.TerminalSafetyStock).Sub(in.InitialInventory)
	if totalNet.Sign() < 0 {
		totalNet = decimal.Zero
	}
	netPerPeriod := totalNet.Div(decimal.NewFromInt(int64(in.Periods)))
	gross := in.Scrap.GrossFromNet(netPerPeriod)

	in.Observer.notify(Event{Plan: KindLevelMPS, Kind: EventPlanStarted, Fields: map[string]decimal.Decimal{
		"total_net":        totalNet,
		"net_per_period":   netPerPeriod,
		"gross_per_period": gross,
	}})

	n := in.Periods
	initial := make(entities.Series, n)
	production := make(entities.Series, n)
	available := make(entities.Series, n)
	demand := make(entities.Series, n)
	final := make(entities.Series, n)

	carry := in.InitialInventory
	for t := 0; t < n; t++ {
		initial[t] = carry
		production[t] = gross
		available[t] = carry.Add(gross)
		demand[t] = in.Demand[t]
		final[t] = available[t].Sub(demand[t])
		carry = final[t]

		in.Observer.notify(Event{Plan: KindLevelMPS, Kind: EventPeriodComputed, Period: t + 1, Fields: map[string]decimal.Decimal{
			"inventory_initial": initial[t],
			"gross_production":  production[t],
			"inventory_final":   final[t],
		}})
	}

	plan, err := entities.NewProductionPlan(map[entities.PlanRow]entities.Series{
		entities.PlanRowInventoryInitial:   initial,
		entities.PlanRowGrossProduction:    production,
		entities.PlanRowInventoryAvailable: available,
		entities.PlanRowDemand:             demand,
		entities.PlanRowInventoryFinal:     final,
	})
	if err != nil {
		return nil, err
	}

	in.Observer.notify(Event{Plan: KindLevelMPS, Kind: EventPlanFinished})
	return plan, nil
}
