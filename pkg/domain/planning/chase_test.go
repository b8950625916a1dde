package planning

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

func TestChasePlan_TracksDemandPlusSafetyStock(t *testing.T) {
	// Demand [300,500,900,1500], 10% per-period safety stock, 15% scrap,
	// 400 on hand:
	//   t1: net = max(0, 300+30-400) = 0,   gross = 0,    final = 100
	//   t2: net = 500+50-100 = 450,         gross = 530,  final = 130
	//   t3: net = 900+90-130 = 860,         gross = 1012, final = 242
	//   t4: net = 1500+150-242 = 1408,      gross = 1657, final = 399
	safety, err := SafetyStockPerPeriod(entities.SeriesFromInts(300, 500, 900, 1500), 0.10)
	if err != nil {
		t.Fatalf("SafetyStockPerPeriod failed: %v", err)
	}

	plan, err := ChasePlan(ChaseInput{
		Demand:           entities.SeriesFromInts(300, 500, 900, 1500),
		InitialInventory: decimal.NewFromInt(400),
		SafetyStock:      safety,
		Scrap:            mustScrap(t, 0.15),
	})
	if err != nil {
		t.Fatalf("ChasePlan failed: %v", err)
	}

	wantGross := []int64{0, 530, 1012, 1657}
	wantFinal := []int64{100, 130, 242, 399}

	production, _ := plan.Row(entities.PlanRowGrossProduction)
	final, _ := plan.Row(entities.PlanRowInventoryFinal)
	for i := range wantGross {
		if !production[i].Equal(decimal.NewFromInt(wantGross[i])) {
			t.Errorf("gross production period %d = %s, want %d", i+1, production[i], wantGross[i])
		}
		if !final[i].Equal(decimal.NewFromInt(wantFinal[i])) {
			t.Errorf("final inventory period %d = %s, want %d", i+1, final[i], wantFinal[i])
		}
	}

	if !plan.HasRow(entities.PlanRowSafetyStock) {
		t.Error("chase plan should carry the safety stock row")
	}
}

func TestChasePlan_InventoryContinuity(t *testing.T) {
	plan, err := ChasePlan(ChaseInput{
		Demand:           entities.SeriesFromInts(8000, 7500, 10000),
		InitialInventory: decimal.NewFromInt(500),
		SafetyStock:      entities.SeriesFromInts(800, 750, 1000),
		Scrap:            mustScrap(t, 0.05),
	})
	if err != nil {
		t.Fatalf("ChasePlan failed: %v", err)
	}

	initial, _ := plan.Row(entities.PlanRowInventoryInitial)
	final, _ := plan.Row(entities.PlanRowInventoryFinal)
	for tI := 1; tI < plan.Periods(); tI++ {
		if !initial[tI].Equal(final[tI-1]) {
			t.Errorf("period %d: initial %s != previous final %s", tI+1, initial[tI], final[tI-1])
		}
	}
}

func TestChasePlan_ScrapInflatesGross(t *testing.T) {
	demand := entities.SeriesFromInts(1000)
	noScrap, err := ChasePlan(ChaseInput{
		Demand:      demand,
		SafetyStock: entities.ZeroSeries(1),
		Scrap:       mustScrap(t, 0),
	})
	if err != nil {
		t.Fatalf("ChasePlan failed: %v", err)
	}
	withScrap, err := ChasePlan(ChaseInput{
		Demand:      demand,
		SafetyStock: entities.ZeroSeries(1),
		Scrap:       mustScrap(t, 0.2),
	})
	if err != nil {
		t.Fatalf("ChasePlan failed: %v", err)
	}

	plain, _ := noScrap.Value(entities.PlanRowGrossProduction, 1)
	inflated, _ := withScrap.Value(entities.PlanRowGrossProduction, 1)
	if !plain.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("zero scrap gross = %s, want 1000", plain)
	}
	if !inflated.GreaterThan(plain) {
		t.Errorf("scrap should inflate gross: %s <= %s", inflated, plain)
	}
	if !inflated.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("20%% scrap gross = %s, want 1250", inflated)
	}
}

func TestChasePlan_Validation(t *testing.T) {
	_, err := ChasePlan(ChaseInput{
		Demand:      entities.SeriesFromInts(10, 20),
		SafetyStock: entities.SeriesFromInts(1),
		Scrap:       mustScrap(t, 0),
	})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("length mismatch: err = %v, want ErrInvalidParameter", err)
	}

	_, err = ChasePlan(ChaseInput{
		Demand:      entities.Series{},
		SafetyStock: entities.Series{},
		Scrap:       mustScrap(t, 0),
	})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty demand: err = %v, want ErrInvalidParameter", err)
	}
}
