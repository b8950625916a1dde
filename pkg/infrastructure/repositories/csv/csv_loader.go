// Package csv loads planning data from CSV files, for planners who keep
// their item master and period series in spreadsheets.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

var itemsHeader = []string{
	"item_id", "description", "strategy", "lead_time", "lot_policy",
	"lot_param", "scrap_rate", "initial_inventory", "safety_stock_mode",
	"safety_stock_value",
}

// LoadItems loads the item master from a CSV file. Scheduled receipts and
// capacity series live in their own files and are attached by the caller.
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("items file %s: %w", filename, err)
	}
	if err := validateHeader(records[0], itemsHeader); err != nil {
		return nil, fmt.Errorf("items file %s: %w", filename, err)
	}

	var items []*entities.Item
	for i, record := range records[1:] {
		if len(record) != len(itemsHeader) {
			return nil, fmt.Errorf("items row %d: expected %d columns, got %d", i+2, len(itemsHeader), len(record))
		}
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadSeries loads a per-item period series file (demand, scheduled
// receipts or capacity). The header is item_id followed by one column per
// period: p1, p2, ...
func (l *Loader) LoadSeries(filename string) (map[entities.ItemID]entities.Series, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("series file %s: %w", filename, err)
	}
	header := records[0]
	if len(header) < 2 || strings.TrimSpace(header[0]) != "item_id" {
		return nil, fmt.Errorf("series file %s: header must be item_id,p1,p2,...", filename)
	}
	for i, col := range header[1:] {
		if want := fmt.Sprintf("p%d", i+1); strings.TrimSpace(col) != want {
			return nil, fmt.Errorf("series file %s: column %d must be %q, got %q", filename, i+2, want, col)
		}
	}

	out := make(map[entities.ItemID]entities.Series)
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("series row %d: expected %d columns, got %d", i+2, len(header), len(record))
		}
		id := entities.ItemID(strings.TrimSpace(record[0]))
		if id == "" {
			return nil, fmt.Errorf("series row %d: empty item_id", i+2)
		}
		series := make(entities.Series, len(record)-1)
		for j, cell := range record[1:] {
			v, err := decimal.NewFromString(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("series row %d, period %d: %w", i+2, j+1, err)
			}
			series[j] = v
		}
		out[id] = series
	}
	return out, nil
}

var bomHeader = []string{"parent", "child", "qty_per"}

// LoadBOM loads parent->child BOM edges from a CSV file.
func (l *Loader) LoadBOM(filename string) ([]entities.BOMEdge, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("BOM file %s: %w", filename, err)
	}
	if err := validateHeader(records[0], bomHeader); err != nil {
		return nil, fmt.Errorf("BOM file %s: %w", filename, err)
	}

	var edges []entities.BOMEdge
	for i, record := range records[1:] {
		if len(record) != len(bomHeader) {
			return nil, fmt.Errorf("BOM row %d: expected %d columns, got %d", i+2, len(bomHeader), len(record))
		}
		qtyPer, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("BOM row %d: qty_per: %w", i+2, err)
		}
		edge, err := entities.NewBOMEdge(
			entities.ItemID(strings.TrimSpace(record[0])),
			entities.ItemID(strings.TrimSpace(record[1])),
			qtyPer,
		)
		if err != nil {
			return nil, fmt.Errorf("BOM row %d: %w", i+2, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func parseItem(record []string) (*entities.Item, error) {
	strategy, err := entities.ParsePlanStrategy(record[2])
	if err != nil {
		return nil, err
	}

	leadTime, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("lead_time: %w", err)
	}

	var lotPolicy entities.LotSizingPolicy
	if kind := strings.TrimSpace(record[4]); kind != "" {
		param, err := decimal.NewFromString(strings.TrimSpace(record[5]))
		if err != nil {
			return nil, fmt.Errorf("lot_param: %w", err)
		}
		lotPolicy, err = entities.ParseLotPolicy(kind, param)
		if err != nil {
			return nil, err
		}
	}

	scrapFrac, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
	if err != nil {
		return nil, fmt.Errorf("scrap_rate: %w", err)
	}
	scrap, err := entities.NewScrapRate(scrapFrac)
	if err != nil {
		return nil, err
	}

	initial, err := decimal.NewFromString(strings.TrimSpace(record[7]))
	if err != nil {
		return nil, fmt.Errorf("initial_inventory: %w", err)
	}

	mode, err := entities.ParseSafetyStockMode(record[8])
	if err != nil {
		return nil, err
	}
	ssValue, err := decimal.NewFromString(strings.TrimSpace(record[9]))
	if err != nil {
		return nil, fmt.Errorf("safety_stock_value: %w", err)
	}

	item := &entities.Item{
		ID:               entities.ItemID(strings.TrimSpace(record[0])),
		Description:      strings.TrimSpace(record[1]),
		Strategy:         strategy,
		LeadTime:         leadTime,
		LotPolicy:        lotPolicy,
		Scrap:            scrap,
		InitialInventory: initial,
		SafetyStock:      entities.SafetyStockSpec{Mode: mode, Value: ssValue},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("must have header and at least one data row")
	}
	return records, nil
}

func validateHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("header mismatch. Expected: %v, Got: %v", want, got)
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return fmt.Errorf("header mismatch. Expected: %v, Got: %v", want, got)
		}
	}
	return nil
}
