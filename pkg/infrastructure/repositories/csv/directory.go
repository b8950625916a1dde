package csv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/infrastructure/repositories/memory"
)

// Dataset is a full planning run loaded from a directory of CSV files.
type Dataset struct {
	Items   *memory.ItemRepository
	BOM     *memory.BOMRepository
	Demands *memory.DemandRepository
	// Horizon is the longest demand series; shorter series are reconciled
	// by the planners' alignment rules.
	Horizon int
}

// LoadDirectory loads a scenario from a directory containing items.csv and
// demand.csv, plus optional receipts.csv, capacity.csv and bom.csv.
func (l *Loader) LoadDirectory(dir string) (*Dataset, error) {
	items, err := l.LoadItems(filepath.Join(dir, "items.csv"))
	if err != nil {
		return nil, err
	}

	demandSeries, err := l.LoadSeries(filepath.Join(dir, "demand.csv"))
	if err != nil {
		return nil, err
	}

	receipts, err := l.optionalSeries(filepath.Join(dir, "receipts.csv"))
	if err != nil {
		return nil, err
	}
	capacities, err := l.optionalSeries(filepath.Join(dir, "capacity.csv"))
	if err != nil {
		return nil, err
	}

	horizon := 0
	for _, series := range demandSeries {
		if len(series) > horizon {
			horizon = len(series)
		}
	}
	if horizon == 0 {
		return nil, fmt.Errorf("demand.csv declares no periods")
	}

	itemRepo := memory.NewItemRepository(len(items))
	demandRepo := memory.NewDemandRepository()
	for _, item := range items {
		if series, ok := receipts[item.ID]; ok {
			item.ScheduledReceipts = series
		}
		if series, ok := capacities[item.ID]; ok {
			item.Capacity = series
		}
		if err := itemRepo.AddItem(item); err != nil {
			return nil, err
		}
		if series, ok := demandSeries[item.ID]; ok {
			aligned, err := series.Align(horizon, entities.AlignPad)
			if err != nil {
				return nil, err
			}
			demandRepo.SetDemand(item.ID, aligned)
		}
	}
	for id := range demandSeries {
		if _, err := itemRepo.GetItem(id); err != nil {
			return nil, fmt.Errorf("demand.csv references unknown item %s", id)
		}
	}

	bomRepo := memory.NewBOMRepository(0)
	bomPath := filepath.Join(dir, "bom.csv")
	if _, err := os.Stat(bomPath); err == nil {
		edges, err := l.LoadBOM(bomPath)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			if _, err := itemRepo.GetItem(edge.Parent); err != nil {
				return nil, fmt.Errorf("bom.csv references unknown item %s", edge.Parent)
			}
			if _, err := itemRepo.GetItem(edge.Child); err != nil {
				return nil, fmt.Errorf("bom.csv references unknown item %s", edge.Child)
			}
			bomRepo.AddEdge(edge)
		}
	}

	return &Dataset{
		Items:   itemRepo,
		BOM:     bomRepo,
		Demands: demandRepo,
		Horizon: horizon,
	}, nil
}

func (l *Loader) optionalSeries(path string) (map[entities.ItemID]entities.Series, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return l.LoadSeries(path)
}
