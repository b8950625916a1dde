package entities

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanRow identifies a row of a master production schedule table. The set is
// closed; lookups by arbitrary strings are not possible.
type PlanRow int

const (
	PlanRowInventoryInitial PlanRow = iota
	PlanRowSafetyStock
	PlanRowGrossProduction
	PlanRowInventoryAvailable
	PlanRowDemand
	PlanRowInventoryFinal
)

func (r PlanRow) String() string {
	switch r {
	case PlanRowInventoryInitial:
		return "Initial Inventory"
	case PlanRowSafetyStock:
		return "Safety Stock"
	case PlanRowGrossProduction:
		return "Gross Production"
	case PlanRowInventoryAvailable:
		return "Available Inventory"
	case PlanRowDemand:
		return "Demand"
	case PlanRowInventoryFinal:
		return "Final Inventory"
	default:
		return "Unknown"
	}
}

// planRowOrder is the presentation order of MPS rows.
var planRowOrder = []PlanRow{
	PlanRowInventoryInitial,
	PlanRowSafetyStock,
	PlanRowGrossProduction,
	PlanRowInventoryAvailable,
	PlanRowDemand,
	PlanRowInventoryFinal,
}

// ProductionPlan is the immutable result of one MPS computation: a table of
// per-period rows over periods 1..N. Level plans omit the safety stock row;
// chase plans carry it.
type ProductionPlan struct {
	periods int
	rows    map[PlanRow]Series
}

// NewProductionPlan validates row lengths and builds a plan table. Every
// provided row must have the same length.
func NewProductionPlan(rows map[PlanRow]Series) (*ProductionPlan, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("production plan needs at least one row")
	}
	periods := -1
	for kind, row := range rows {
		if periods == -1 {
			periods = len(row)
		} else if len(row) != periods {
			return nil, fmt.Errorf("row %q has %d periods, want %d", kind, len(row), periods)
		}
	}
	copied := make(map[PlanRow]Series, len(rows))
	for kind, row := range rows {
		copied[kind] = row.Clone()
	}
	return &ProductionPlan{periods: periods, rows: copied}, nil
}

// Periods returns the horizon length N.
func (p *ProductionPlan) Periods() int {
	return p.periods
}

// HasRow reports whether the plan carries the given row.
func (p *ProductionPlan) HasRow(row PlanRow) bool {
	_, ok := p.rows[row]
	return ok
}

// Row returns a copy of the full row.
func (p *ProductionPlan) Row(row PlanRow) (Series, error) {
	s, ok := p.rows[row]
	if !ok {
		return nil, fmt.Errorf("plan has no row %q", row)
	}
	return s.Clone(), nil
}

// Value returns the quantity at (row, period), 1-indexed.
func (p *ProductionPlan) Value(row PlanRow, period int) (decimal.Decimal, error) {
	s, ok := p.rows[row]
	if !ok {
		return decimal.Zero, fmt.Errorf("plan has no row %q", row)
	}
	return s.Value(period)
}

// Rows returns the plan's rows in presentation order.
func (p *ProductionPlan) Rows() []PlanRow {
	out := make([]PlanRow, 0, len(p.rows))
	for _, kind := range planRowOrder {
		if _, ok := p.rows[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

// MarshalJSON renders the table as an ordered list of labelled rows.
func (p *ProductionPlan) MarshalJSON() ([]byte, error) {
	type jsonRow struct {
		Row    string   `json:"row"`
		Values []string `json:"values"`
	}
	out := struct {
		Periods int       `json:"periods"`
		Rows    []jsonRow `json:"rows"`
	}{Periods: p.periods}
	for _, kind := range p.Rows() {
		out.Rows = append(out.Rows, jsonRow{Row: kind.String(), Values: p.rows[kind].Strings()})
	}
	return json.Marshal(out)
}
