// Package scenario loads full planning runs from YAML files: horizon, item
// master, demand and receipt series, BOM edges and capacity limits.
package scenario

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/infrastructure/repositories/memory"
)

// File is one scenario as declared on disk.
type File struct {
	// Name identifies the scenario in logs and reports.
	Name string `yaml:"name"`

	// Description explains what the scenario models.
	Description string `yaml:"description,omitempty"`

	// Horizon is the number of planning periods N.
	Horizon int `yaml:"horizon"`

	// Items is the item master.
	Items []ItemSpec `yaml:"items"`

	// BOM declares parent->child quantity relationships. A parent's planned
	// releases (or gross production) explode into its children's gross
	// requirements.
	BOM []EdgeSpec `yaml:"bom,omitempty"`
}

// ItemSpec is one item master row as declared in YAML.
type ItemSpec struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description,omitempty"`

	// Strategy is level, chase or mrp.
	Strategy string `yaml:"strategy"`

	LeadTime int `yaml:"lead_time,omitempty"`

	// LotPolicy is required for mrp items: kind LFL with a minimum, or FOQ
	// with a lot size, both carried in param.
	LotPolicy *LotPolicySpec `yaml:"lot_policy,omitempty"`

	ScrapRate        float64 `yaml:"scrap_rate,omitempty"`
	InitialInventory float64 `yaml:"initial_inventory,omitempty"`

	SafetyStock SafetyStockSpec `yaml:"safety_stock,omitempty"`

	ScheduledReceipts []float64 `yaml:"scheduled_receipts,omitempty"`
	Demand            []float64 `yaml:"demand,omitempty"`
	Capacity          []float64 `yaml:"capacity,omitempty"`
}

// LotPolicySpec names a lot sizing policy and its parameter.
type LotPolicySpec struct {
	Kind  string  `yaml:"kind"`
	Param float64 `yaml:"param"`
}

// SafetyStockSpec names a safety stock derivation mode and its parameter:
// an absolute quantity, or a percentage in [0,1] for the percent modes.
type SafetyStockSpec struct {
	Mode  string  `yaml:"mode,omitempty"`
	Value float64 `yaml:"value,omitempty"`
}

// EdgeSpec is one BOM edge as declared in YAML.
type EdgeSpec struct {
	Parent string  `yaml:"parent"`
	Child  string  `yaml:"child"`
	QtyPer float64 `yaml:"qty_per"`
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks the declared scenario before any repository is built.
// Unknown strategy, lot policy or safety stock mode strings are errors, not
// silent defaults.
func (f *File) Validate() error {
	if f.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", f.Horizon)
	}
	if len(f.Items) == 0 {
		return fmt.Errorf("scenario declares no items")
	}

	seen := make(map[string]bool, len(f.Items))
	for i, spec := range f.Items {
		if spec.ID == "" {
			return fmt.Errorf("item %d: id cannot be empty", i+1)
		}
		if seen[spec.ID] {
			return fmt.Errorf("duplicate item id %q", spec.ID)
		}
		seen[spec.ID] = true
		if len(spec.Demand) > 0 && len(spec.Demand) != f.Horizon {
			return fmt.Errorf("item %s: demand has %d periods, horizon is %d", spec.ID, len(spec.Demand), f.Horizon)
		}
		if _, err := spec.toItem(); err != nil {
			return fmt.Errorf("item %s: %w", spec.ID, err)
		}
	}

	for _, edge := range f.BOM {
		if !seen[edge.Parent] {
			return fmt.Errorf("BOM edge %s->%s: unknown parent item", edge.Parent, edge.Child)
		}
		if !seen[edge.Child] {
			return fmt.Errorf("BOM edge %s->%s: unknown child item", edge.Parent, edge.Child)
		}
	}
	return nil
}

// Repositories builds the in-memory repositories the planning services read
// from.
func (f *File) Repositories() (*memory.ItemRepository, *memory.BOMRepository, *memory.DemandRepository, error) {
	items := memory.NewItemRepository(len(f.Items))
	demands := memory.NewDemandRepository()

	for _, spec := range f.Items {
		item, err := spec.toItem()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("item %s: %w", spec.ID, err)
		}
		if err := items.AddItem(item); err != nil {
			return nil, nil, nil, err
		}
		if len(spec.Demand) > 0 {
			demands.SetDemand(item.ID, entities.SeriesFromFloats(spec.Demand...))
		}
	}

	bom := memory.NewBOMRepository(len(f.BOM))
	for _, spec := range f.BOM {
		edge, err := entities.NewBOMEdge(
			entities.ItemID(spec.Parent),
			entities.ItemID(spec.Child),
			decimal.NewFromFloat(spec.QtyPer),
		)
		if err != nil {
			return nil, nil, nil, err
		}
		bom.AddEdge(edge)
	}

	return items, bom, demands, nil
}

func (spec *ItemSpec) toItem() (*entities.Item, error) {
	strategy, err := entities.ParsePlanStrategy(spec.Strategy)
	if err != nil {
		return nil, err
	}

	var lotPolicy entities.LotSizingPolicy
	if spec.LotPolicy != nil {
		lotPolicy, err = entities.ParseLotPolicy(spec.LotPolicy.Kind, decimal.NewFromFloat(spec.LotPolicy.Param))
		if err != nil {
			return nil, err
		}
	}

	scrap, err := entities.NewScrapRate(spec.ScrapRate)
	if err != nil {
		return nil, err
	}

	mode, err := entities.ParseSafetyStockMode(spec.SafetyStock.Mode)
	if err != nil {
		return nil, err
	}

	item := &entities.Item{
		ID:               entities.ItemID(spec.ID),
		Description:      spec.Description,
		Strategy:         strategy,
		LeadTime:         spec.LeadTime,
		LotPolicy:        lotPolicy,
		Scrap:            scrap,
		InitialInventory: decimal.NewFromFloat(spec.InitialInventory),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  mode,
			Value: decimal.NewFromFloat(spec.SafetyStock.Value),
		},
		ScheduledReceipts: entities.SeriesFromFloats(spec.ScheduledReceipts...),
		Capacity:          entities.SeriesFromFloats(spec.Capacity...),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}
