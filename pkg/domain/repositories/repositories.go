// Package repositories declares the data access contracts the planning
// services depend on. Implementations live under pkg/infrastructure.
package repositories

import (
	"github.com/mherran/prodplan/pkg/domain/entities"
)

// ItemRepository provides access to the item master.
type ItemRepository interface {
	// GetItem returns the item master row for the given id.
	GetItem(id entities.ItemID) (*entities.Item, error)
	// ListItems returns all items in a deterministic order.
	ListItems() []*entities.Item
}

// BOMRepository provides access to parent->child quantity relationships.
type BOMRepository interface {
	// EdgesFrom returns the edges whose parent is the given item.
	EdgesFrom(parent entities.ItemID) []entities.BOMEdge
	// Edges returns every declared edge.
	Edges() []entities.BOMEdge
}

// DemandRepository provides each item's independent demand series.
type DemandRepository interface {
	// DemandFor returns the demand series for the item, if any was declared.
	DemandFor(id entities.ItemID) (entities.Series, bool)
}
