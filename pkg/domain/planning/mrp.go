// Package planning implements the arithmetic planning core: safety stock
// derivation, the level and chase master production schedules, and the MRP
// time-phased netting recurrence. Every function is pure; results are
// immutable and identical inputs always yield identical outputs.
package planning

import (
	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// MRPInput holds the inputs of a single-item netting run.
type MRPInput struct {
	// GrossRequirements is the demand to net against, one value per period.
	// Its length defines the horizon.
	GrossRequirements entities.Series
	// InitialInventory is the projected available balance before period 1.
	InitialInventory decimal.Decimal
	// SafetyStock is the absolute floor the balance must not plan below.
	SafetyStock decimal.Decimal
	// ScheduledReceipts are quantities already on order, arriving before
	// netting in their period. A length mismatch against the horizon is
	// reconciled per Align.
	ScheduledReceipts entities.Series
	// LeadTime is the whole number of periods between an order's release
	// and its receipt.
	LeadTime int
	// Policy sizes planned order receipts from positive net requirements.
	Policy entities.LotSizingPolicy
	// Align controls scheduled receipt length reconciliation. The zero
	// value, AlignPad, keeps the historical zero-pad/truncate contract.
	Align entities.AlignPolicy
	// Observer, when set, receives per-period events.
	Observer Observer
}

func (in *MRPInput) validate() error {
	if len(in.GrossRequirements) == 0 {
		return invalidParamf("gross requirements must cover at least one period")
	}
	if in.LeadTime < 0 {
		return invalidParamf("lead time must be non-negative, got %d", in.LeadTime)
	}
	if in.Policy == nil {
		return invalidParamf("a lot sizing policy is required")
	}
	return nil
}

// MRPResult is the complete output of a netting run.
type MRPResult struct {
	// Table carries all six standard rows over the horizon.
	Table *entities.MRPTable
	// Releases is the planned order release series, indexed by release
	// period. It is the input to a dependent item's gross requirements.
	Releases entities.Series
	// OverdueReleases totals the receipts whose implied release period fell
	// before period 1 and was therefore dropped from the release series.
	OverdueReleases decimal.Decimal
}

// MRPPlan runs the time-phased netting recurrence over periods 1..N. The
// recurrence is strictly sequential: each period's computation depends on
// the previous period's projected available balance.
//
// Per period t:
//
//	pab_before = PAB[t-1] + scheduled_receipts[t]
//	net[t]     = max(0, gross[t] + safety_stock - pab_before)
//	receipt[t] = 0 if net[t] = 0, else Policy.Apply(net[t])
//	release[t - lead_time] += receipt[t]   (dropped when t - lead_time < 1)
//	PAB[t]     = pab_before - gross[t] + receipt[t]
//
// Releases that would fall before the horizon start are not retried or
// clamped to period 1; they are dropped from the series and accumulated in
// OverdueReleases so callers can surface them.
func MRPPlan(in MRPInput) (*MRPResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	n := len(in.GrossRequirements)
	receipts, err := in.ScheduledReceipts.Align(n, in.Align)
	if err != nil {
		return nil, invalidParamf("scheduled receipts: %v", err)
	}

	in.Observer.notify(Event{Plan: KindMRP, Kind: EventPlanStarted, Fields: map[string]decimal.Decimal{
		"periods":      decimal.NewFromInt(int64(n)),
		"lead_time":    decimal.NewFromInt(int64(in.LeadTime)),
		"safety_stock": in.SafetyStock,
	}})

	gross := in.GrossRequirements.Clone()
	pab := make(entities.Series, n)
	net := make(entities.Series, n)
	planned := make(entities.Series, n)
	releases := entities.ZeroSeries(n)
	overdue := decimal.Zero

	balance := in.InitialInventory
	for t := 0; t < n; t++ {
		pabBefore := balance.Add(receipts[t])

		netReq := gross[t].Add(in.SafetyStock).Sub(pabBefore)
		if netReq.Sign() < 0 {
			netReq = decimal.Zero
		}
		net[t] = netReq

		receipt := decimal.Zero
		if netReq.Sign() > 0 {
			receipt = in.Policy.Apply(netReq)
		}
		planned[t] = receipt

		releasePeriod := t + 1 - in.LeadTime
		if receipt.Sign() > 0 && releasePeriod < 1 {
			overdue = overdue.Add(receipt)
			in.Observer.notify(Event{Plan: KindMRP, Kind: EventOverdueRelease, Period: t + 1, Fields: map[string]decimal.Decimal{
				"quantity":       receipt,
				"release_period": decimal.NewFromInt(int64(releasePeriod)),
			}})
		} else if releasePeriod >= 1 {
			releases[releasePeriod-1] = releases[releasePeriod-1].Add(receipt)
		}

		balance = pabBefore.Sub(gross[t]).Add(receipt)
		pab[t] = balance

		in.Observer.notify(Event{Plan: KindMRP, Kind: EventPeriodComputed, Period: t + 1, Fields: map[string]decimal.Decimal{
			"net_requirement":       netReq,
			"planned_order_receipt": receipt,
			"projected_available":   balance,
		}})
	}

	table, err := entities.NewMRPTable(map[entities.MRPRow]entities.Series{
		entities.MRPRowGrossRequirements:   gross,
		entities.MRPRowScheduledReceipts:   receipts,
		entities.MRPRowProjectedAvailable:  pab,
		entities.MRPRowNetRequirements:     net,
		entities.MRPRowPlannedOrderReceipt: planned,
		entities.MRPRowPlannedOrderRelease: releases,
	})
	if err != nil {
		return nil, err
	}

	in.Observer.notify(Event{Plan: KindMRP, Kind: EventPlanFinished, Fields: map[string]decimal.Decimal{
		"overdue_releases": overdue,
	}})

	return &MRPResult{Table: table, Releases: releases, OverdueReleases: overdue}, nil
}
