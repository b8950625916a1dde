package memory

import (
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/repositories"
)

// BOMRepository provides in-memory storage of parent->child BOM edges,
// indexed by parent for the explosion's downward pass.
type BOMRepository struct {
	edges   []entities.BOMEdge
	indexes map[entities.ItemID][]int
}

// NewBOMRepository creates a new in-memory BOM repository.
func NewBOMRepository(expectedEdges int) *BOMRepository {
	return &BOMRepository{
		edges:   make([]entities.BOMEdge, 0, expectedEdges),
		indexes: make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// AddEdge adds a BOM edge. Edges are assumed already validated through
// entities.NewBOMEdge.
func (r *BOMRepository) AddEdge(edge entities.BOMEdge) {
	index := len(r.edges)
	r.edges = append(r.edges, edge)
	r.indexes[edge.Parent] = append(r.indexes[edge.Parent], index)
}

// EdgesFrom returns the edges whose parent is the given item.
func (r *BOMRepository) EdgesFrom(parent entities.ItemID) []entities.BOMEdge {
	indexes, exists := r.indexes[parent]
	if !exists {
		return nil
	}
	out := make([]entities.BOMEdge, 0, len(indexes))
	for _, index := range indexes {
		out = append(out, r.edges[index])
	}
	return out
}

// Edges returns every declared edge in insertion order.
func (r *BOMRepository) Edges() []entities.BOMEdge {
	out := make([]entities.BOMEdge, len(r.edges))
	copy(out, r.edges)
	return out
}
