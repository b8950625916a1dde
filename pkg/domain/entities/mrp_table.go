package entities

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MRPRow identifies a row of a time-phased netting table.
type MRPRow int

const (
	MRPRowGrossRequirements MRPRow = iota
	MRPRowScheduledReceipts
	MRPRowProjectedAvailable
	MRPRowNetRequirements
	MRPRowPlannedOrderReceipt
	MRPRowPlannedOrderRelease
)

func (r MRPRow) String() string {
	switch r {
	case MRPRowGrossRequirements:
		return "Gross Requirements"
	case MRPRowScheduledReceipts:
		return "Scheduled Receipts"
	case MRPRowProjectedAvailable:
		return "Projected Available"
	case MRPRowNetRequirements:
		return "Net Requirements"
	case MRPRowPlannedOrderReceipt:
		return "Planned Order Receipt"
	case MRPRowPlannedOrderRelease:
		return "Planned Order Release"
	default:
		return "Unknown"
	}
}

// mrpRowOrder is the presentation order of MRP rows.
var mrpRowOrder = []MRPRow{
	MRPRowGrossRequirements,
	MRPRowScheduledReceipts,
	MRPRowProjectedAvailable,
	MRPRowNetRequirements,
	MRPRowPlannedOrderReceipt,
	MRPRowPlannedOrderRelease,
}

// MRPTable is the immutable result of one netting run: all six standard rows
// over periods 1..N.
type MRPTable struct {
	periods int
	rows    map[MRPRow]Series
}

// NewMRPTable validates that all six rows are present with equal lengths.
func NewMRPTable(rows map[MRPRow]Series) (*MRPTable, error) {
	if len(rows) != len(mrpRowOrder) {
		return nil, fmt.Errorf("MRP table needs all %d rows, got %d", len(mrpRowOrder), len(rows))
	}
	periods := -1
	for _, kind := range mrpRowOrder {
		row, ok := rows[kind]
		if !ok {
			return nil, fmt.Errorf("MRP table is missing row %q", kind)
		}
		if periods == -1 {
			periods = len(row)
		} else if len(row) != periods {
			return nil, fmt.Errorf("row %q has %d periods, want %d", kind, len(row), periods)
		}
	}
	copied := make(map[MRPRow]Series, len(rows))
	for kind, row := range rows {
		copied[kind] = row.Clone()
	}
	return &MRPTable{periods: periods, rows: copied}, nil
}

// Periods returns the horizon length N.
func (t *MRPTable) Periods() int {
	return t.periods
}

// Row returns a copy of the full row.
func (t *MRPTable) Row(row MRPRow) (Series, error) {
	s, ok := t.rows[row]
	if !ok {
		return nil, fmt.Errorf("MRP table has no row %q", row)
	}
	return s.Clone(), nil
}

// Value returns the quantity at (row, period), 1-indexed.
func (t *MRPTable) Value(row MRPRow, period int) (decimal.Decimal, error) {
	s, ok := t.rows[row]
	if !ok {
		return decimal.Zero, fmt.Errorf("MRP table has no row %q", row)
	}
	return s.Value(period)
}

// Rows returns the table's rows in presentation order.
func (t *MRPTable) Rows() []MRPRow {
	out := make([]MRPRow, len(mrpRowOrder))
	copy(out, mrpRowOrder)
	return out
}

// MarshalJSON renders the table as an ordered list of labelled rows.
func (t *MRPTable) MarshalJSON() ([]byte, error) {
	type jsonRow struct {
		Row    string   `json:"row"`
		Values []string `json:"values"`
	}
	out := struct {
		Periods int       `json:"periods"`
		Rows    []jsonRow `json:"rows"`
	}{Periods: t.periods}
	for _, kind := range mrpRowOrder {
		out.Rows = append(out.Rows, jsonRow{Row: kind.String(), Values: t.rows[kind].Strings()})
	}
	return json.Marshal(out)
}
