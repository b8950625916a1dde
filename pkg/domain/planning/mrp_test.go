package planning

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

func mustLFL(t *testing.T, minimum int64) entities.LotSizingPolicy {
	t.Helper()
	p, err := entities.NewLotForLot(decimal.NewFromInt(minimum))
	if err != nil {
		t.Fatalf("NewLotForLot failed: %v", err)
	}
	return p
}

func mustFOQ(t *testing.T, size int64) entities.LotSizingPolicy {
	t.Helper()
	p, err := entities.NewFixedOrderQuantity(decimal.NewFromInt(size))
	if err != nil {
		t.Fatalf("NewFixedOrderQuantity failed: %v", err)
	}
	return p
}

func assertSeriesEqual(t *testing.T, label string, got entities.Series, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d periods, want %d", label, len(got), len(want))
	}
	for i, w := range want {
		if !got[i].Equal(decimal.NewFromInt(w)) {
			t.Errorf("%s period %d = %s, want %d", label, i+1, got[i], w)
		}
	}
}

func TestMRPPlan_NettingRecurrence(t *testing.T) {
	// Classic single-item run: 300 on hand, safety stock 100, receipts in
	// periods 1 and 4, one period of lead time, lot for lot.
	//   t1: pab_before=800, net=100,  receipt=100,  release period 0 dropped, PAB=100
	//   t2: pab_before=100, net=1200, receipt=1200, release[1]=1200,          PAB=100
	//   t3: pab_before=100, net=900,  receipt=900,  release[2]=900,           PAB=100
	//   t4: pab_before=350, net=850,  receipt=850,  release[3]=850,           PAB=100
	result, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(800, 1200, 900, 1100),
		InitialInventory:  decimal.NewFromInt(300),
		SafetyStock:       decimal.NewFromInt(100),
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
		LeadTime:          1,
		Policy:            mustLFL(t, 1),
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	table := result.Table
	pab, _ := table.Row(entities.MRPRowProjectedAvailable)
	net, _ := table.Row(entities.MRPRowNetRequirements)
	receipts, _ := table.Row(entities.MRPRowPlannedOrderReceipt)
	releases, _ := table.Row(entities.MRPRowPlannedOrderRelease)

	assertSeriesEqual(t, "net requirements", net, []int64{100, 1200, 900, 850})
	assertSeriesEqual(t, "planned order receipt", receipts, []int64{100, 1200, 900, 850})
	assertSeriesEqual(t, "projected available", pab, []int64{100, 100, 100, 100})
	assertSeriesEqual(t, "planned order release", releases, []int64{1200, 900, 850, 0})
	assertSeriesEqual(t, "release series", result.Releases, []int64{1200, 900, 850, 0})

	// Period 1's receipt implied a release in period 0; it is dropped from
	// the series but surfaced in the overdue total.
	if !result.OverdueReleases.Equal(decimal.NewFromInt(100)) {
		t.Errorf("OverdueReleases = %s, want 100", result.OverdueReleases)
	}
}

func TestMRPPlan_LeadTimeConservation(t *testing.T) {
	result, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(800, 1200, 900, 1100, 1000, 1300, 700, 1000),
		InitialInventory:  decimal.NewFromInt(300),
		SafetyStock:       decimal.NewFromInt(100),
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
		LeadTime:          2,
		Policy:            mustLFL(t, 1),
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	receipts, _ := result.Table.Row(entities.MRPRowPlannedOrderReceipt)

	// Receipts whose implied release period is >= 1 must appear, in total,
	// as releases; earlier ones are excluded by design.
	inHorizon := decimal.Zero
	for tI, receipt := range receipts {
		if tI+1-2 >= 1 {
			inHorizon = inHorizon.Add(receipt)
		}
	}
	if !result.Releases.Sum().Equal(inHorizon) {
		t.Errorf("release total %s != in-horizon receipt total %s", result.Releases.Sum(), inHorizon)
	}
	if !result.OverdueReleases.Add(inHorizon).Equal(receipts.Sum()) {
		t.Errorf("overdue %s + in-horizon %s != receipt total %s",
			result.OverdueReleases, inHorizon, receipts.Sum())
	}
}

func TestMRPPlan_FixedOrderQuantityAlignment(t *testing.T) {
	result, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(0, 150, 0, 900),
		InitialInventory:  decimal.NewFromInt(80),
		SafetyStock:       decimal.NewFromInt(10),
		ScheduledReceipts: entities.Series{},
		LeadTime:          2,
		Policy:            mustFOQ(t, 400),
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	lot := decimal.NewFromInt(400)
	receipts, _ := result.Table.Row(entities.MRPRowPlannedOrderReceipt)
	for tI, receipt := range receipts {
		if receipt.IsZero() {
			continue
		}
		if !receipt.Mod(lot).IsZero() {
			t.Errorf("period %d receipt %s is not a multiple of %s", tI+1, receipt, lot)
		}
	}

	//   t2: net = 150+10-80 = 80,   receipt = 400 (one lot),  release period 0 dropped
	//   t4: net = 900+10-330 = 580, receipt = 800 (two lots), release[2] = 800
	assertSeriesEqual(t, "planned order receipt", receipts, []int64{0, 400, 0, 800})
	assertSeriesEqual(t, "release series", result.Releases, []int64{0, 800, 0, 0})
	if !result.OverdueReleases.Equal(decimal.NewFromInt(400)) {
		t.Errorf("OverdueReleases = %s, want 400 (period-2 lot released before horizon)", result.OverdueReleases)
	}
}

func TestMRPPlan_ZeroLeadTimeReleasesInPlace(t *testing.T) {
	result, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(50, 60),
		InitialInventory:  decimal.Zero,
		SafetyStock:       decimal.Zero,
		LeadTime:          0,
		Policy:            mustLFL(t, 0),
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	assertSeriesEqual(t, "release series", result.Releases, []int64{50, 60})
	if !result.OverdueReleases.IsZero() {
		t.Errorf("OverdueReleases = %s, want 0", result.OverdueReleases)
	}
}

func TestMRPPlan_ScheduledReceiptAlignment(t *testing.T) {
	in := MRPInput{
		GrossRequirements: entities.SeriesFromInts(100, 100, 100),
		InitialInventory:  decimal.Zero,
		SafetyStock:       decimal.Zero,
		ScheduledReceipts: entities.SeriesFromInts(100),
		LeadTime:          0,
		Policy:            mustLFL(t, 0),
	}

	// Default pad: the short receipt series is extended with zeros.
	result, err := MRPPlan(in)
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}
	sr, _ := result.Table.Row(entities.MRPRowScheduledReceipts)
	assertSeriesEqual(t, "scheduled receipts", sr, []int64{100, 0, 0})
	assertSeriesEqual(t, "net requirements", mustRow(t, result.Table, entities.MRPRowNetRequirements), []int64{0, 100, 100})

	// Strict alignment turns the same mismatch into an error.
	in.Align = entities.AlignStrict
	if _, err := MRPPlan(in); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("strict align: err = %v, want ErrInvalidParameter", err)
	}
}

func mustRow(t *testing.T, table *entities.MRPTable, row entities.MRPRow) entities.Series {
	t.Helper()
	s, err := table.Row(row)
	if err != nil {
		t.Fatalf("Row(%s) failed: %v", row, err)
	}
	return s
}

func TestMRPPlan_Validation(t *testing.T) {
	base := MRPInput{
		GrossRequirements: entities.SeriesFromInts(100),
		Policy:            mustLFL(t, 1),
	}

	bad := base
	bad.GrossRequirements = entities.Series{}
	if _, err := MRPPlan(bad); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty horizon: err = %v, want ErrInvalidParameter", err)
	}

	bad = base
	bad.LeadTime = -1
	if _, err := MRPPlan(bad); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative lead time: err = %v, want ErrInvalidParameter", err)
	}

	bad = base
	bad.Policy = nil
	if _, err := MRPPlan(bad); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("nil policy: err = %v, want ErrInvalidParameter", err)
	}
}

func TestMRPPlan_NetRequirementsNeverNegative(t *testing.T) {
	result, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(0, 0, 10, 0),
		InitialInventory:  decimal.NewFromInt(1000),
		SafetyStock:       decimal.NewFromInt(20),
		LeadTime:          1,
		Policy:            mustLFL(t, 1),
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	net, _ := result.Table.Row(entities.MRPRowNetRequirements)
	for tI, v := range net {
		if v.Sign() < 0 {
			t.Errorf("net requirement period %d = %s, want >= 0", tI+1, v)
		}
	}
}

func TestMRPPlan_ObserverSeesOverdueReleases(t *testing.T) {
	var overdueEvents []Event
	_, err := MRPPlan(MRPInput{
		GrossRequirements: entities.SeriesFromInts(500, 0),
		InitialInventory:  decimal.Zero,
		SafetyStock:       decimal.Zero,
		LeadTime:          1,
		Policy:            mustLFL(t, 1),
		Observer: func(e Event) {
			if e.Kind == EventOverdueRelease {
				overdueEvents = append(overdueEvents, e)
			}
		},
	})
	if err != nil {
		t.Fatalf("MRPPlan failed: %v", err)
	}

	if len(overdueEvents) != 1 {
		t.Fatalf("got %d overdue events, want 1", len(overdueEvents))
	}
	if overdueEvents[0].Period != 1 {
		t.Errorf("overdue event period = %d, want 1", overdueEvents[0].Period)
	}
	if !overdueEvents[0].Fields["quantity"].Equal(decimal.NewFromInt(500)) {
		t.Errorf("overdue quantity = %s, want 500", overdueEvents[0].Fields["quantity"])
	}
}

func TestMRPPlan_Idempotent(t *testing.T) {
	in := MRPInput{
		GrossRequirements: entities.SeriesFromInts(800, 1200, 900, 1100),
		InitialInventory:  decimal.NewFromInt(300),
		SafetyStock:       decimal.NewFromInt(100),
		ScheduledReceipts: entities.SeriesFromInts(500, 0, 0, 250),
		LeadTime:          1,
		Policy:            mustLFL(t, 1),
	}

	first, err := MRPPlan(in)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := MRPPlan(in)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for _, row := range first.Table.Rows() {
		a := mustRow(t, first.Table, row)
		b := mustRow(t, second.Table, row)
		for i := range a {
			if !a[i].Equal(b[i]) {
				t.Errorf("row %q period %d differs between runs: %s vs %s", row, i+1, a[i], b[i])
			}
		}
	}
}
