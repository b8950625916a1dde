package planning

import (
	"github.com/shopspring/decimal"

	"github.com/mherran/prodplan/pkg/domain/entities"
)

// SafetyStockPerPeriod derives a per-period safety stock target:
// ceil(demand[t] * pct) for every period. Intended for chase plans.
func SafetyStockPerPeriod(demand entities.Series, pct float64) (entities.Series, error) {
	p, err := safetyPct(pct)
	if err != nil {
		return nil, err
	}
	out := make(entities.Series, len(demand))
	for i, d := range demand {
		out[i] = d.Mul(p).Ceil()
	}
	return out, nil
}

// SafetyStockTerminal derives a scalar target from the final period's
// demand: ceil(demand[N] * pct). Intended for level plans. Returns zero for
// an empty demand series.
func SafetyStockTerminal(demand entities.Series, pct float64) (decimal.Decimal, error) {
	p, err := safetyPct(pct)
	if err != nil {
		return decimal.Zero, err
	}
	if len(demand) == 0 {
		return decimal.Zero, nil
	}
	return demand[len(demand)-1].Mul(p).Ceil(), nil
}

// SafetyStockAverage derives a scalar target from the mean demand:
// ceil(mean(demand) * pct). Returns zero for an empty demand series.
func SafetyStockAverage(demand entities.Series, pct float64) (decimal.Decimal, error) {
	p, err := safetyPct(pct)
	if err != nil {
		return decimal.Zero, err
	}
	if len(demand) == 0 {
		return decimal.Zero, nil
	}
	return demand.Mean().Mul(p).Ceil(), nil
}

func safetyPct(pct float64) (decimal.Decimal, error) {
	p := decimal.NewFromFloat(pct)
	if p.Sign() < 0 || p.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, invalidParamf("safety stock percentage must be in [0,1], got %s", p)
	}
	return p, nil
}
