package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Series is an ordered sequence of quantities, one per planning period.
// Periods are 1-indexed at the API surface; Value(1) is the first element.
type Series []decimal.Decimal

// AlignPolicy controls how a series whose length differs from the planning
// horizon is reconciled against it.
type AlignPolicy int

const (
	// AlignPad zero-pads a short series and truncates a long one. This is
	// the historical contract for scheduled receipts.
	AlignPad AlignPolicy = iota
	// AlignStrict rejects any length mismatch.
	AlignStrict
)

func (a AlignPolicy) String() string {
	switch a {
	case AlignPad:
		return "pad"
	case AlignStrict:
		return "strict"
	default:
		return "Unknown"
	}
}

// SeriesFromInts builds a series from integer period values.
func SeriesFromInts(values ...int64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = decimal.NewFromInt(v)
	}
	return s
}

// SeriesFromFloats builds a series from floating-point period values.
func SeriesFromFloats(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = decimal.NewFromFloat(v)
	}
	return s
}

// ZeroSeries builds a series of n zero quantities.
func ZeroSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = decimal.Zero
	}
	return s
}

// ParseSeries parses a comma-separated list of quantities, e.g. "800,1000,700".
func ParseSeries(text string) (Series, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Series{}, nil
	}
	parts := strings.Split(text, ",")
	s := make(Series, len(parts))
	for i, part := range parts {
		v, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("series element %d: %w", i+1, err)
		}
		s[i] = v
	}
	return s, nil
}

// Value returns the quantity for the given 1-indexed period.
func (s Series) Value(period int) (decimal.Decimal, error) {
	if period < 1 || period > len(s) {
		return decimal.Zero, fmt.Errorf("period %d out of range 1..%d", period, len(s))
	}
	return s[period-1], nil
}

// Sum returns the total over all periods.
func (s Series) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(v)
	}
	return total
}

// Mean returns the arithmetic mean over all periods, or zero for an empty series.
func (s Series) Mean() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s.Sum().Div(decimal.NewFromInt(int64(len(s))))
}

// Clone returns an independent copy of the series.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Align reconciles the series length against the horizon n according to the
// policy. AlignPad zero-pads or truncates; AlignStrict errors on mismatch.
func (s Series) Align(n int, policy AlignPolicy) (Series, error) {
	if n < 0 {
		return nil, fmt.Errorf("horizon must be non-negative, got %d", n)
	}
	if len(s) == n {
		return s.Clone(), nil
	}
	if policy == AlignStrict {
		return nil, fmt.Errorf("series length %d does not match horizon %d", len(s), n)
	}
	out := ZeroSeries(n)
	copy(out, s)
	return out, nil
}

// Strings renders every period value, trimming trailing zeros.
func (s Series) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.String()
	}
	return out
}
