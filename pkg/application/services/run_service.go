package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/repositories"
)

// RunService executes a complete scenario: every item planned in BOM
// dependency order, followed by the capacity balance for the items that
// declared a limit.
type RunService struct {
	items     repositories.ItemRepository
	explosion *ExplosionService
	capacity  *CapacityService
}

// NewRunService creates a run service over the given collaborators.
func NewRunService(
	items repositories.ItemRepository,
	explosion *ExplosionService,
	capacity *CapacityService,
) *RunService {
	return &RunService{
		items:     items,
		explosion: explosion,
		capacity:  capacity,
	}
}

// Run plans all items over the horizon and assembles the run result. The
// capacity report is attached only when at least one item declared a
// capacity limit.
func (s *RunService) Run(ctx context.Context, horizon int) (*dto.PlanRunResult, error) {
	start := time.Now()

	results, err := s.explosion.Explode(ctx, horizon)
	if err != nil {
		return nil, err
	}

	run := &dto.PlanRunResult{
		RunID: uuid.NewString(),
		Items: results,
	}

	capacities := make(map[entities.ItemID]entities.Series)
	for _, item := range s.items.ListItems() {
		if len(item.Capacity) > 0 {
			capacities[item.ID] = item.Capacity
		}
	}
	if len(capacities) > 0 {
		report, err := s.capacity.Report(results, capacities)
		if err != nil {
			return nil, err
		}
		run.Capacity = report
	}

	run.Elapsed = time.Since(start)
	return run, nil
}
