package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/infrastructure/repositories/memory"
)

func mrpItem(t *testing.T, id entities.ItemID, leadTime int, initial, safety int64, receipts entities.Series) *entities.Item {
	t.Helper()
	return &entities.Item{
		ID:               id,
		Strategy:         entities.StrategyMRP,
		LeadTime:         leadTime,
		LotPolicy:        mustPolicy(t, "LFL", 1),
		Scrap:            mustScrap(t, 0),
		InitialInventory: decimal.NewFromInt(initial),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockAbsolute,
			Value: decimal.NewFromInt(safety),
		},
		ScheduledReceipts: receipts,
	}
}

func TestExplode_ParentReleasesFeedChildRequirements(t *testing.T) {
	items := memory.NewItemRepository(2)
	require.NoError(t, items.AddItem(mrpItem(t, "DESK", 1, 300, 100, entities.SeriesFromInts(500, 0, 0, 250))))
	require.NoError(t, items.AddItem(mrpItem(t, "LEG", 0, 0, 0, nil)))

	bom := memory.NewBOMRepository(1)
	edge, err := entities.NewBOMEdge("DESK", "LEG", decimal.NewFromInt(4))
	require.NoError(t, err)
	bom.AddEdge(edge)

	demands := memory.NewDemandRepository()
	demands.SetDemand("DESK", entities.SeriesFromInts(800, 1200, 900, 1100))

	service := NewExplosionService(items, bom, demands, NewPlanningService(nil))
	results, err := service.Explode(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Parent planned first.
	assert.Equal(t, entities.ItemID("DESK"), results[0].ItemID)
	requireSeries(t, results[0].Releases, 1200, 900, 850, 0)

	// Child gross requirements are the parent's releases times four, and
	// with zero lead time its receipts land in the same periods.
	assert.Equal(t, entities.ItemID("LEG"), results[1].ItemID)
	gross, err := results[1].MRPTable.Row(entities.MRPRowGrossRequirements)
	require.NoError(t, err)
	requireSeries(t, gross, 4800, 3600, 3400, 0)
	requireSeries(t, results[1].Required, 4800, 3600, 3400, 0)
}

func TestExplode_IndependentDemandAddsToExplodedRequirements(t *testing.T) {
	items := memory.NewItemRepository(2)
	require.NoError(t, items.AddItem(mrpItem(t, "PARENT", 0, 0, 0, nil)))
	require.NoError(t, items.AddItem(mrpItem(t, "CHILD", 0, 0, 0, nil)))

	bom := memory.NewBOMRepository(1)
	edge, err := entities.NewBOMEdge("PARENT", "CHILD", decimal.NewFromInt(2))
	require.NoError(t, err)
	bom.AddEdge(edge)

	demands := memory.NewDemandRepository()
	demands.SetDemand("PARENT", entities.SeriesFromInts(10, 20))
	demands.SetDemand("CHILD", entities.SeriesFromInts(5, 5))

	service := NewExplosionService(items, bom, demands, NewPlanningService(nil))
	results, err := service.Explode(context.Background(), 2)
	require.NoError(t, err)

	gross, err := results[1].MRPTable.Row(entities.MRPRowGrossRequirements)
	require.NoError(t, err)
	requireSeries(t, gross, 25, 45)
}

func TestExplode_RejectsCycles(t *testing.T) {
	items := memory.NewItemRepository(2)
	require.NoError(t, items.AddItem(mrpItem(t, "A", 0, 0, 0, nil)))
	require.NoError(t, items.AddItem(mrpItem(t, "B", 0, 0, 0, nil)))

	bom := memory.NewBOMRepository(2)
	ab, err := entities.NewBOMEdge("A", "B", decimal.NewFromInt(1))
	require.NoError(t, err)
	ba, err := entities.NewBOMEdge("B", "A", decimal.NewFromInt(1))
	require.NoError(t, err)
	bom.AddEdge(ab)
	bom.AddEdge(ba)

	service := NewExplosionService(items, bom, memory.NewDemandRepository(), NewPlanningService(nil))
	_, err = service.Explode(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestExplode_RejectsUnknownEdgeItems(t *testing.T) {
	items := memory.NewItemRepository(1)
	require.NoError(t, items.AddItem(mrpItem(t, "A", 0, 0, 0, nil)))

	bom := memory.NewBOMRepository(1)
	edge, err := entities.NewBOMEdge("A", "GHOST", decimal.NewFromInt(1))
	require.NoError(t, err)
	bom.AddEdge(edge)

	service := NewExplosionService(items, bom, memory.NewDemandRepository(), NewPlanningService(nil))
	_, err = service.Explode(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown child item")
}

func TestExplode_CancelledContext(t *testing.T) {
	items := memory.NewItemRepository(1)
	require.NoError(t, items.AddItem(mrpItem(t, "A", 0, 0, 0, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewExplosionService(items, memory.NewBOMRepository(0), memory.NewDemandRepository(), NewPlanningService(nil))
	_, err := service.Explode(ctx, 2)
	require.ErrorIs(t, err, context.Canceled)
}
