package memory

import (
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/repositories"
)

// DemandRepository provides in-memory storage of each item's independent
// demand series.
type DemandRepository struct {
	demands map[entities.ItemID]entities.Series
}

// NewDemandRepository creates a new in-memory demand repository.
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		demands: make(map[entities.ItemID]entities.Series),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// SetDemand records the independent demand series for an item, replacing
// any previous one.
func (r *DemandRepository) SetDemand(id entities.ItemID, demand entities.Series) {
	r.demands[id] = demand.Clone()
}

// DemandFor returns the demand series for the item, if any was declared.
func (r *DemandRepository) DemandFor(id entities.ItemID) (entities.Series, bool) {
	demand, exists := r.demands[id]
	if !exists {
		return nil, false
	}
	return demand.Clone(), true
}
