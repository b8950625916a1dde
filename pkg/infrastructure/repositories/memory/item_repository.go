// Package memory provides in-memory implementations of the domain
// repository contracts. Scenario and CSV loaders fill them; the planning
// services read from them.
package memory

import (
	"fmt"

	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/repositories"
)

// ItemRepository provides in-memory item master storage. Items keep their
// insertion order, which makes listing deterministic.
type ItemRepository struct {
	items    []*entities.Item
	itemsMap map[entities.ItemID]int
}

// NewItemRepository creates a new in-memory item repository.
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]*entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.ItemID]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// AddItem validates and adds an item. A duplicate id is an error.
func (r *ItemRepository) AddItem(item *entities.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, exists := r.itemsMap[item.ID]; exists {
		return fmt.Errorf("duplicate item: %s", item.ID)
	}
	r.itemsMap[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// GetItem returns the item master row for the given id.
func (r *ItemRepository) GetItem(id entities.ItemID) (*entities.Item, error) {
	index, exists := r.itemsMap[id]
	if !exists {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return r.items[index], nil
}

// ListItems returns all items in insertion order.
func (r *ItemRepository) ListItems() []*entities.Item {
	out := make([]*entities.Item, len(r.items))
	copy(out, r.items)
	return out
}
