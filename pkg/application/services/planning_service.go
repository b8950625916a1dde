// Package services orchestrates the planning core over repository data:
// per-item plan computation, multi-level explosion, and capacity reporting.
package services

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/planning"
)

// PlanningService computes one item's plan from its master data and a gross
// requirement series. Results are memoized: the planners are pure, so
// identical inputs always yield identical outputs and can be cached by a
// digest of the input tuple. The service is safe for concurrent use.
type PlanningService struct {
	observer planning.Observer

	mu    sync.RWMutex
	cache map[uint64]*dto.ItemPlanResult
}

// NewPlanningService creates a planning service. The observer may be nil.
func NewPlanningService(observer planning.Observer) *PlanningService {
	return &PlanningService{
		observer: observer,
		cache:    make(map[uint64]*dto.ItemPlanResult),
	}
}

// PlanItem computes the plan for one item against the given gross
// requirement/demand series. For MPS strategies the series is the forecast
// demand; for MRP it is the gross requirements (independent demand plus any
// exploded parent releases).
func (s *PlanningService) PlanItem(item *entities.Item, gross entities.Series) (*dto.ItemPlanResult, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	key := planDigest(item, gross)
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err := s.computePlan(item, gross)
	if err != nil {
		return nil, fmt.Errorf("planning item %s: %w", item.ID, err)
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()
	return result, nil
}

func (s *PlanningService) computePlan(item *entities.Item, gross entities.Series) (*dto.ItemPlanResult, error) {
	result := &dto.ItemPlanResult{
		ItemID:          item.ID,
		Description:     item.Description,
		Strategy:        item.Strategy.String(),
		OverdueReleases: decimal.Zero,
	}

	switch item.Strategy {
	case entities.StrategyLevel:
		target, err := scalarSafetyStock(item, gross)
		if err != nil {
			return nil, err
		}
		plan, err := planning.LevelPlan(planning.LevelInput{
			Demand:              gross,
			InitialInventory:    item.InitialInventory,
			TerminalSafetyStock: target,
			Scrap:               item.Scrap,
			Periods:             len(gross),
			Observer:            s.observer,
		})
		if err != nil {
			return nil, err
		}
		result.Plan = plan
		production, err := plan.Row(entities.PlanRowGrossProduction)
		if err != nil {
			return nil, err
		}
		result.Required = production
		result.Feed = production

	case entities.StrategyChase:
		safety, err := perPeriodSafetyStock(item, gross)
		if err != nil {
			return nil, err
		}
		plan, err := planning.ChasePlan(planning.ChaseInput{
			Demand:           gross,
			InitialInventory: item.InitialInventory,
			SafetyStock:      safety,
			Scrap:            item.Scrap,
			Observer:         s.observer,
		})
		if err != nil {
			return nil, err
		}
		result.Plan = plan
		production, err := plan.Row(entities.PlanRowGrossProduction)
		if err != nil {
			return nil, err
		}
		result.Required = production
		result.Feed = production

	case entities.StrategyMRP:
		target, err := scalarSafetyStock(item, gross)
		if err != nil {
			return nil, err
		}
		mrp, err := planning.MRPPlan(planning.MRPInput{
			GrossRequirements: gross,
			InitialInventory:  item.InitialInventory,
			SafetyStock:       target,
			ScheduledReceipts: item.ScheduledReceipts,
			LeadTime:          item.LeadTime,
			Policy:            item.LotPolicy,
			Observer:          s.observer,
		})
		if err != nil {
			return nil, err
		}
		result.MRPTable = mrp.Table
		result.Releases = mrp.Releases
		result.OverdueReleases = mrp.OverdueReleases
		receipts, err := mrp.Table.Row(entities.MRPRowPlannedOrderReceipt)
		if err != nil {
			return nil, err
		}
		result.Required = receipts
		result.Feed = mrp.Releases

	default:
		return nil, fmt.Errorf("unsupported plan strategy %q", item.Strategy)
	}

	return result, nil
}

// scalarSafetyStock derives a single safety stock target for level and mrp
// items. The per-period mode has no scalar meaning and is rejected.
func scalarSafetyStock(item *entities.Item, demand entities.Series) (decimal.Decimal, error) {
	spec := item.SafetyStock
	switch spec.Mode {
	case entities.SafetyStockAbsolute:
		return spec.Value, nil
	case entities.SafetyStockPercentTerminal:
		return planning.SafetyStockTerminal(demand, spec.Value.InexactFloat64())
	case entities.SafetyStockPercentAverage:
		return planning.SafetyStockAverage(demand, spec.Value.InexactFloat64())
	case entities.SafetyStockPercentPerPeriod:
		return decimal.Zero, fmt.Errorf("safety stock mode %s needs a per-period target; use the chase strategy", spec.Mode)
	default:
		return decimal.Zero, fmt.Errorf("unsupported safety stock mode %q", spec.Mode)
	}
}

// perPeriodSafetyStock derives the chase strategy's per-period targets.
// Scalar modes repeat their value across the horizon.
func perPeriodSafetyStock(item *entities.Item, demand entities.Series) (entities.Series, error) {
	spec := item.SafetyStock
	if spec.Mode == entities.SafetyStockPercentPerPeriod {
		return planning.SafetyStockPerPeriod(demand, spec.Value.InexactFloat64())
	}
	target, err := scalarSafetyStock(item, demand)
	if err != nil {
		return nil, err
	}
	out := make(entities.Series, len(demand))
	for i := range out {
		out[i] = target
	}
	return out, nil
}

// planDigest hashes the full input tuple of one item plan.
func planDigest(item *entities.Item, gross entities.Series) uint64 {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d|%s|%s|%d|%s|",
		item.ID, item.Strategy, item.LeadTime, item.Scrap,
		item.InitialInventory, item.SafetyStock.Mode, item.SafetyStock.Value)
	if item.LotPolicy != nil {
		b.WriteString(item.LotPolicy.String())
	}
	b.WriteString("|")
	b.WriteString(strings.Join(item.ScheduledReceipts.Strings(), ","))
	b.WriteString("|")
	b.WriteString(strings.Join(gross.Strings(), ","))

	h := fnv.New64a()
	_, _ = h.Write([]byte(b.String()))
	return h.Sum64()
}
