package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ItemID identifies a planned item.
type ItemID string

// PlanStrategy selects how an item's plan is computed.
type PlanStrategy int

const (
	// StrategyLevel spreads one constant gross production quantity across
	// the horizon.
	StrategyLevel PlanStrategy = iota
	// StrategyChase produces each period exactly what that period needs.
	StrategyChase
	// StrategyMRP runs the time-phased netting recurrence.
	StrategyMRP
)

func (s PlanStrategy) String() string {
	switch s {
	case StrategyLevel:
		return "level"
	case StrategyChase:
		return "chase"
	case StrategyMRP:
		return "mrp"
	default:
		return "Unknown"
	}
}

// ParsePlanStrategy parses the external strategy name.
func ParsePlanStrategy(name string) (PlanStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "level":
		return StrategyLevel, nil
	case "chase":
		return StrategyChase, nil
	case "mrp":
		return StrategyMRP, nil
	default:
		return 0, fmt.Errorf("unknown plan strategy %q (want level, chase or mrp)", name)
	}
}

// SafetyStockMode selects how an item's safety stock target is derived.
type SafetyStockMode int

const (
	// SafetyStockAbsolute uses the configured value directly.
	SafetyStockAbsolute SafetyStockMode = iota
	// SafetyStockPercentPerPeriod targets a percentage of each period's demand.
	SafetyStockPercentPerPeriod
	// SafetyStockPercentTerminal targets a percentage of the final period's demand.
	SafetyStockPercentTerminal
	// SafetyStockPercentAverage targets a percentage of the mean demand.
	SafetyStockPercentAverage
)

func (m SafetyStockMode) String() string {
	switch m {
	case SafetyStockAbsolute:
		return "absolute"
	case SafetyStockPercentPerPeriod:
		return "percent_per_period"
	case SafetyStockPercentTerminal:
		return "percent_terminal"
	case SafetyStockPercentAverage:
		return "percent_average"
	default:
		return "Unknown"
	}
}

// ParseSafetyStockMode parses the external mode name.
func ParseSafetyStockMode(name string) (SafetyStockMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "absolute", "":
		return SafetyStockAbsolute, nil
	case "percent_per_period":
		return SafetyStockPercentPerPeriod, nil
	case "percent_terminal":
		return SafetyStockPercentTerminal, nil
	case "percent_average":
		return SafetyStockPercentAverage, nil
	default:
		return 0, fmt.Errorf("unknown safety stock mode %q", name)
	}
}

// SafetyStockSpec couples a derivation mode with its parameter: an absolute
// quantity, or a percentage in [0,1] for the percent modes.
type SafetyStockSpec struct {
	Mode  SafetyStockMode
	Value decimal.Decimal
}

// Item is one row of the item master: everything the planners need to know
// about a single planned item.
type Item struct {
	ID                ItemID
	Description       string
	Strategy          PlanStrategy
	LeadTime          int
	LotPolicy         LotSizingPolicy // nil unless Strategy is StrategyMRP
	Scrap             ScrapRate
	InitialInventory  decimal.Decimal
	SafetyStock       SafetyStockSpec
	ScheduledReceipts Series
	Capacity          Series // optional per-period capacity limit; empty = unconstrained
}

// Validate checks the item master row for internally inconsistent data.
func (i *Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id cannot be empty")
	}
	if i.LeadTime < 0 {
		return fmt.Errorf("item %s: lead time must be non-negative, got %d", i.ID, i.LeadTime)
	}
	if i.Strategy == StrategyMRP && i.LotPolicy == nil {
		return fmt.Errorf("item %s: mrp strategy requires a lot sizing policy", i.ID)
	}
	return nil
}

// BOMEdge declares that one unit of the parent consumes QtyPer units of the
// child, linking the parent's planned order releases to the child's gross
// requirements.
type BOMEdge struct {
	Parent ItemID
	Child  ItemID
	QtyPer decimal.Decimal
}

// NewBOMEdge validates and builds a BOM edge.
func NewBOMEdge(parent, child ItemID, qtyPer decimal.Decimal) (BOMEdge, error) {
	if parent == "" || child == "" {
		return BOMEdge{}, fmt.Errorf("BOM edge needs both parent and child ids")
	}
	if parent == child {
		return BOMEdge{}, fmt.Errorf("BOM edge %s cannot reference itself", parent)
	}
	if qtyPer.Sign() <= 0 {
		return BOMEdge{}, fmt.Errorf("BOM edge %s->%s: qty per must be positive, got %s", parent, child, qtyPer)
	}
	return BOMEdge{Parent: parent, Child: child, QtyPer: qtyPer}, nil
}
