package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/repositories"
)

// ExplosionService plans every item of a scenario in dependency order. A
// parent's plan must complete before any child's netting begins: each BOM
// edge adds the parent's feed series, scaled by quantity per unit, to the
// child's gross requirements. Cycles are rejected before any computation.
type ExplosionService struct {
	items   repositories.ItemRepository
	bom     repositories.BOMRepository
	demands repositories.DemandRepository
	planner *PlanningService
}

// NewExplosionService creates an explosion service over the given repositories.
func NewExplosionService(
	items repositories.ItemRepository,
	bom repositories.BOMRepository,
	demands repositories.DemandRepository,
	planner *PlanningService,
) *ExplosionService {
	return &ExplosionService{
		items:   items,
		bom:     bom,
		demands: demands,
		planner: planner,
	}
}

// Explode plans all items over the given horizon, parents before children,
// and returns the results in planning order.
func (s *ExplosionService) Explode(ctx context.Context, horizon int) ([]*dto.ItemPlanResult, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	order, err := s.planningOrder()
	if err != nil {
		return nil, err
	}

	// Dependent requirements accumulated from already-planned parents.
	dependent := make(map[entities.ItemID]entities.Series)

	results := make([]*dto.ItemPlanResult, 0, len(order))
	for _, item := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gross, err := s.grossRequirements(item, horizon, dependent[item.ID])
		if err != nil {
			return nil, err
		}

		result, err := s.planner.PlanItem(item, gross)
		if err != nil {
			return nil, err
		}
		results = append(results, result)

		// Push this item's feed down every declared edge.
		for _, edge := range s.bom.EdgesFrom(item.ID) {
			child := dependent[edge.Child]
			if child == nil {
				child = entities.ZeroSeries(horizon)
			}
			for t := 0; t < horizon && t < len(result.Feed); t++ {
				child[t] = child[t].Add(result.Feed[t].Mul(edge.QtyPer))
			}
			dependent[edge.Child] = child
		}
	}

	return results, nil
}

// grossRequirements combines an item's independent demand with the
// requirements exploded from its parents.
func (s *ExplosionService) grossRequirements(
	item *entities.Item,
	horizon int,
	exploded entities.Series,
) (entities.Series, error) {
	gross := entities.ZeroSeries(horizon)

	if demand, ok := s.demands.DemandFor(item.ID); ok {
		aligned, err := demand.Align(horizon, entities.AlignStrict)
		if err != nil {
			return nil, fmt.Errorf("item %s demand: %w", item.ID, err)
		}
		gross = aligned
	}

	for t := 0; t < horizon && t < len(exploded); t++ {
		gross[t] = gross[t].Add(exploded[t])
	}
	return gross, nil
}

// planningOrder topologically sorts the items parents-first using Kahn's
// algorithm. An error is returned when the BOM contains a cycle or an edge
// references an unknown item.
func (s *ExplosionService) planningOrder() ([]*entities.Item, error) {
	items := s.items.ListItems()
	byID := make(map[entities.ItemID]*entities.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	inDegree := make(map[entities.ItemID]int, len(items))
	for _, item := range items {
		inDegree[item.ID] = 0
	}
	for _, edge := range s.bom.Edges() {
		if _, ok := byID[edge.Parent]; !ok {
			return nil, fmt.Errorf("BOM edge %s->%s: unknown parent item", edge.Parent, edge.Child)
		}
		if _, ok := byID[edge.Child]; !ok {
			return nil, fmt.Errorf("BOM edge %s->%s: unknown child item", edge.Parent, edge.Child)
		}
		inDegree[edge.Child]++
	}

	// Roots first, in a deterministic order.
	queue := make([]entities.ItemID, 0, len(items))
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	order := make([]*entities.Item, 0, len(items))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, byID[current])

		released := make([]entities.ItemID, 0)
		for _, edge := range s.bom.EdgesFrom(current) {
			inDegree[edge.Child]--
			if inDegree[edge.Child] == 0 {
				released = append(released, edge.Child)
			}
		}
		sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
		queue = append(queue, released...)
	}

	if len(order) != len(items) {
		remaining := make([]string, 0)
		for id, degree := range inDegree {
			if degree > 0 {
				remaining = append(remaining, string(id))
			}
		}
		sort.Strings(remaining)
		return nil, fmt.Errorf("BOM contains a cycle involving: %v", remaining)
	}

	return order, nil
}
