package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/application/services"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/planning"
	"github.com/mherran/prodplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Item master: desks are netted with one period of lead time, legs are
	// ordered in fixed lots of 500.
	lfl, err := entities.NewLotForLot(decimal.NewFromInt(1))
	if err != nil {
		fmt.Printf("setup failed: %v\n", err)
		return
	}
	foq, err := entities.NewFixedOrderQuantity(decimal.NewFromInt(500))
	if err != nil {
		fmt.Printf("setup failed: %v\n", err)
		return
	}

	items := memory.NewItemRepository(2)
	mustAdd(items, &entities.Item{
		ID:               "DESK",
		Description:      "Finished desk",
		Strategy:         entities.StrategyMRP,
		LeadTime:         1,
		LotPolicy:        lfl,
		InitialInventory: decimal.NewFromInt(300),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockAbsolute,
			Value: decimal.NewFromInt(100),
		},
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
	})
	mustAdd(items, &entities.Item{
		ID:               "LEG",
		Description:      "Desk leg",
		Strategy:         entities.StrategyMRP,
		LeadTime:         1,
		LotPolicy:        foq,
		InitialInventory: decimal.NewFromInt(2000),
	})

	// Four desk legs per desk.
	bom := memory.NewBOMRepository(1)
	edge, err := entities.NewBOMEdge("DESK", "LEG", decimal.NewFromInt(4))
	if err != nil {
		fmt.Printf("setup failed: %v\n", err)
		return
	}
	bom.AddEdge(edge)

	demands := memory.NewDemandRepository()
	demands.SetDemand("DESK", entities.SeriesFromInts(800, 1200, 900, 1100))

	planner := services.NewPlanningService(nil)
	explosion := services.NewExplosionService(items, bom, demands, planner)

	results, err := explosion.Explode(ctx, 4)
	if err != nil {
		fmt.Printf("planning failed: %v\n", err)
		return
	}

	for _, res := range results {
		fmt.Printf("%s (%s)\n", res.ItemID, res.Strategy)
		releases, err := res.MRPTable.Row(entities.MRPRowPlannedOrderRelease)
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		for t, qty := range releases {
			if qty.Sign() > 0 {
				fmt.Printf("  release %s in period %d\n", qty, t+1)
			}
		}
		if res.OverdueReleases.Sign() > 0 {
			fmt.Printf("  overdue before period 1: %s\n", res.OverdueReleases)
		}
	}

	// The same netting is available without repositories for one-off runs.
	single, err := planning.MRPPlan(planning.MRPInput{
		GrossRequirements: entities.SeriesFromInts(800, 1200, 900, 1100),
		InitialInventory:  decimal.NewFromInt(300),
		SafetyStock:       decimal.NewFromInt(100),
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
		LeadTime:          1,
		Policy:            lfl,
	})
	if err != nil {
		fmt.Printf("netting failed: %v\n", err)
		return
	}
	fmt.Printf("single-item releases: %v\n", single.Releases.Strings())
}

func mustAdd(repo *memory.ItemRepository, item *entities.Item) {
	if err := repo.AddItem(item); err != nil {
		panic(err)
	}
}
