// Package dto carries the result structures the application services hand
// to their callers.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// ItemPlanResult is the complete planning output for one item.
type ItemPlanResult struct {
	ItemID      entities.ItemID `json:"item_id"`
	Description string          `json:"description,omitempty"`
	Strategy    string          `json:"strategy"`

	// Plan is set for level and chase items.
	Plan *entities.ProductionPlan `json:"plan,omitempty"`
	// MRPTable and Releases are set for mrp items.
	MRPTable *entities.MRPTable `json:"mrp_table,omitempty"`
	Releases entities.Series    `json:"releases,omitempty"`
	// OverdueReleases totals planned receipts whose implied release fell
	// before the horizon start.
	OverdueReleases decimal.Decimal `json:"overdue_releases"`

	// Required is the per-period load the item puts on its production line:
	// gross production for MPS items, planned order receipts for MRP items.
	Required entities.Series `json:"required"`
	// Feed is what dependent items consume: gross production for MPS items,
	// planned order releases for MRP items.
	Feed entities.Series `json:"-"`
}

// CapacityLine is the capacity balance for one item over the horizon.
type CapacityLine struct {
	ItemID   entities.ItemID `json:"item_id"`
	Required entities.Series `json:"required"`
	Capacity entities.Series `json:"capacity"`
	// Balance is capacity - required per period; negative values are deficits.
	Balance entities.Series `json:"balance"`
	// Deficit totals the shortfalls (negative balances) across the horizon,
	// expressed as a positive quantity.
	Deficit decimal.Decimal `json:"deficit"`
}

// CapacityReport compares required production against per-period capacity
// limits for every item that declared one.
type CapacityReport struct {
	Lines        []CapacityLine  `json:"lines"`
	TotalDeficit decimal.Decimal `json:"total_deficit"`
	Feasible     bool            `json:"feasible"`
}

// PlanRunResult is the output of a full scenario run.
type PlanRunResult struct {
	RunID    string            `json:"run_id"`
	Elapsed  time.Duration     `json:"elapsed_ns"`
	Items    []*ItemPlanResult `json:"items"`
	Capacity *CapacityReport   `json:"capacity,omitempty"`
}
