package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
)

// CapacityService compares each item's required production against an
// externally supplied per-period capacity limit and reports the signed
// balance. It is pure reporting on top of computed plans; it never alters
// them.
type CapacityService struct{}

// NewCapacityService creates a capacity service.
func NewCapacityService() *CapacityService {
	return &CapacityService{}
}

// Report builds the capacity balance for every planned item that declared a
// capacity limit. Required load is gross production for MPS items and
// planned order receipts for MRP items; balance is capacity minus required
// per period, and each line's deficit totals the shortfalls as a positive
// quantity.
func (s *CapacityService) Report(
	results []*dto.ItemPlanResult,
	capacities map[entities.ItemID]entities.Series,
) (*dto.CapacityReport, error) {
	report := &dto.CapacityReport{TotalDeficit: decimal.Zero}

	for _, res := range results {
		limit, ok := capacities[res.ItemID]
		if !ok || len(limit) == 0 {
			continue
		}
		aligned, err := limit.Align(len(res.Required), entities.AlignPad)
		if err != nil {
			return nil, fmt.Errorf("item %s capacity: %w", res.ItemID, err)
		}

		balance := make(entities.Series, len(res.Required))
		deficit := decimal.Zero
		for t := range res.Required {
			balance[t] = aligned[t].Sub(res.Required[t])
			if balance[t].Sign() < 0 {
				deficit = deficit.Add(balance[t].Neg())
			}
		}

		report.Lines = append(report.Lines, dto.CapacityLine{
			ItemID:   res.ItemID,
			Required: res.Required.Clone(),
			Capacity: aligned,
			Balance:  balance,
			Deficit:  deficit,
		})
		report.TotalDeficit = report.TotalDeficit.Add(deficit)
	}

	report.Feasible = report.TotalDeficit.IsZero()
	return report, nil
}
