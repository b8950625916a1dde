package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LotSizingPolicy maps a positive net requirement to a planned order receipt
// quantity. The set of policies is closed: values can only be built through
// the validating constructors, so an unknown policy is unrepresentable.
type LotSizingPolicy interface {
	// Apply sizes an order for a positive net requirement. Callers must not
	// invoke it for a zero net requirement; that period receives no order.
	Apply(net decimal.Decimal) decimal.Decimal
	String() string

	sealedLotPolicy()
}

// LotForLot orders exactly the net requirement, raised to a minimum order
// quantity when one is set.
type LotForLot struct {
	minimum decimal.Decimal
}

// NewLotForLot builds a lot-for-lot policy with the given minimum order
// quantity. A zero minimum means no floor.
func NewLotForLot(minimum decimal.Decimal) (LotForLot, error) {
	if minimum.Sign() < 0 {
		return LotForLot{}, fmt.Errorf("lot-for-lot minimum must be non-negative, got %s", minimum)
	}
	return LotForLot{minimum: minimum}, nil
}

// Minimum returns the minimum order quantity.
func (p LotForLot) Minimum() decimal.Decimal {
	return p.minimum
}

// Apply returns max(net, minimum).
func (p LotForLot) Apply(net decimal.Decimal) decimal.Decimal {
	if net.LessThan(p.minimum) {
		return p.minimum
	}
	return net
}

func (p LotForLot) String() string {
	return fmt.Sprintf("LFL(min=%s)", p.minimum)
}

func (p LotForLot) sealedLotPolicy() {}

// FixedOrderQuantity orders in exact multiples of a fixed lot size.
type FixedOrderQuantity struct {
	lotSize decimal.Decimal
}

// NewFixedOrderQuantity builds a fixed-order-quantity policy. The lot size
// must be strictly positive.
func NewFixedOrderQuantity(lotSize decimal.Decimal) (FixedOrderQuantity, error) {
	if lotSize.Sign() <= 0 {
		return FixedOrderQuantity{}, fmt.Errorf("fixed order quantity lot size must be positive, got %s", lotSize)
	}
	return FixedOrderQuantity{lotSize: lotSize}, nil
}

// LotSize returns the fixed lot size.
func (p FixedOrderQuantity) LotSize() decimal.Decimal {
	return p.lotSize
}

// Apply returns ceil(net / lotSize) * lotSize.
func (p FixedOrderQuantity) Apply(net decimal.Decimal) decimal.Decimal {
	lots := net.Div(p.lotSize).Ceil()
	return lots.Mul(p.lotSize)
}

func (p FixedOrderQuantity) String() string {
	return fmt.Sprintf("FOQ(size=%s)", p.lotSize)
}

func (p FixedOrderQuantity) sealedLotPolicy() {}

// ParseLotPolicy builds a policy from its external representation, as found
// in scenario files: kind "LFL" with a minimum quantity, or "FOQ" with a lot
// size. Unknown kinds are rejected rather than defaulted.
func ParseLotPolicy(kind string, param decimal.Decimal) (LotSizingPolicy, error) {
	switch strings.ToUpper(strings.TrimSpace(kind)) {
	case "LFL", "LOT-FOR-LOT":
		return NewLotForLot(param)
	case "FOQ", "FIXED":
		return NewFixedOrderQuantity(param)
	default:
		return nil, fmt.Errorf("unknown lot sizing policy %q (want LFL or FOQ)", kind)
	}
}
