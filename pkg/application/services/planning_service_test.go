package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

func mustScrap(t *testing.T, frac float64) entities.ScrapRate {
	t.Helper()
	scrap, err := entities.NewScrapRate(frac)
	require.NoError(t, err)
	return scrap
}

func mustPolicy(t *testing.T, kind string, param int64) entities.LotSizingPolicy {
	t.Helper()
	policy, err := entities.ParseLotPolicy(kind, decimal.NewFromInt(param))
	require.NoError(t, err)
	return policy
}

func requireSeries(t *testing.T, got entities.Series, want ...int64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.True(t, got[i].Equal(decimal.NewFromInt(w)),
			"period %d = %s, want %d", i+1, got[i], w)
	}
}

func TestPlanItem_LevelStrategy(t *testing.T) {
	item := &entities.Item{
		ID:       "TABLE",
		Strategy: entities.StrategyLevel,
		Scrap:    mustScrap(t, 0.05),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockAbsolute,
			Value: decimal.NewFromInt(50),
		},
	}

	result, err := NewPlanningService(nil).PlanItem(item, entities.SeriesFromInts(800, 1000, 700, 700))
	require.NoError(t, err)

	require.NotNil(t, result.Plan)
	requireSeries(t, result.Required, 856, 856, 856, 856)
	assert.Equal(t, "level", result.Strategy)
}

func TestPlanItem_ChasePerPeriodSafetyStock(t *testing.T) {
	item := &entities.Item{
		ID:       "CHAIR",
		Strategy: entities.StrategyChase,
		Scrap:    mustScrap(t, 0),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockPercentPerPeriod,
			Value: decimal.NewFromFloat(0.1),
		},
	}

	result, err := NewPlanningService(nil).PlanItem(item, entities.SeriesFromInts(100, 200))
	require.NoError(t, err)

	// ss = [10, 20]; t1 produces 110 ending at 10, t2 needs 200+20-10 = 210.
	requireSeries(t, result.Required, 110, 210)

	final, err := result.Plan.Row(entities.PlanRowInventoryFinal)
	require.NoError(t, err)
	requireSeries(t, final, 10, 20)
}

func TestPlanItem_MRPStrategy(t *testing.T) {
	item := &entities.Item{
		ID:               "DESK",
		Strategy:         entities.StrategyMRP,
		LeadTime:         1,
		LotPolicy:        mustPolicy(t, "LFL", 1),
		Scrap:            mustScrap(t, 0),
		InitialInventory: decimal.NewFromInt(300),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockAbsolute,
			Value: decimal.NewFromInt(100),
		},
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
	}

	result, err := NewPlanningService(nil).PlanItem(item, entities.SeriesFromInts(800, 1200, 900, 1100))
	require.NoError(t, err)

	require.NotNil(t, result.MRPTable)
	requireSeries(t, result.Required, 100, 1200, 900, 850)
	requireSeries(t, result.Releases, 1200, 900, 850, 0)
	assert.True(t, result.OverdueReleases.Equal(decimal.NewFromInt(100)),
		"overdue = %s, want 100", result.OverdueReleases)
}

func TestPlanItem_MemoizesIdenticalInputs(t *testing.T) {
	item := &entities.Item{
		ID:       "TABLE",
		Strategy: entities.StrategyLevel,
		Scrap:    mustScrap(t, 0),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockAbsolute,
			Value: decimal.NewFromInt(50),
		},
	}
	service := NewPlanningService(nil)

	first, err := service.PlanItem(item, entities.SeriesFromInts(100, 100))
	require.NoError(t, err)
	second, err := service.PlanItem(item, entities.SeriesFromInts(100, 100))
	require.NoError(t, err)

	assert.Same(t, first, second, "identical inputs should hit the cache")

	third, err := service.PlanItem(item, entities.SeriesFromInts(100, 200))
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestPlanItem_PerPeriodModeRejectedForScalarStrategies(t *testing.T) {
	item := &entities.Item{
		ID:       "TABLE",
		Strategy: entities.StrategyLevel,
		Scrap:    mustScrap(t, 0),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  entities.SafetyStockPercentPerPeriod,
			Value: decimal.NewFromFloat(0.1),
		},
	}

	_, err := NewPlanningService(nil).PlanItem(item, entities.SeriesFromInts(100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-period")
}
