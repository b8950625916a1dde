package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ScrapRate is the fraction of gross production lost to defects. It must lie
// in [0,1); a rate of 1 or more would make every net need unsatisfiable.
type ScrapRate struct {
	frac decimal.Decimal
}

// NewScrapRate validates and builds a scrap rate from a fraction, e.g. 0.05
// for 5% losses.
func NewScrapRate(frac float64) (ScrapRate, error) {
	d := decimal.NewFromFloat(frac)
	if d.Sign() < 0 || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ScrapRate{}, fmt.Errorf("scrap rate must be in [0,1), got %s", d)
	}
	return ScrapRate{frac: d}, nil
}

// Value returns the scrap fraction.
func (s ScrapRate) Value() decimal.Decimal {
	return s.frac
}

// GrossFromNet converts a net production need into the gross quantity that
// must be started so that, after scrap losses, the net need is met:
// gross = ceil(net / (1 - scrap)). A non-positive net need yields zero.
func (s ScrapRate) GrossFromNet(net decimal.Decimal) decimal.Decimal {
	if net.Sign() <= 0 {
		return decimal.Zero
	}
	yield := decimal.NewFromInt(1).Sub(s.frac)
	return net.Div(yield).Ceil()
}

func (s ScrapRate) String() string {
	return s.frac.String()
}
