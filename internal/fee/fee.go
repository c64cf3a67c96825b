// Package fee prices the flat commission charged on every order.
package fee

import (
	"tradeledger/internal/model"

	"github.com/shopspring/decimal"
)

var defaultFee = decimal.RequireFromString("9.95")

// Policy holds one flat fee per order type. The amount never depends on
// quantity or price.
type Policy struct {
	Buy  decimal.Decimal
	Sell decimal.Decimal
}

// Default charges 9.95 on both sides.
func Default() Policy {
	return Policy{Buy: defaultFee, Sell: defaultFee}
}

// Of returns the fee for an order of type t. Unknown types cost nothing.
func (p Policy) Of(t model.OrderType) decimal.Decimal {
	switch t {
	case model.OrderTypeBuy:
		return model.Round(p.Buy)
	case model.OrderTypeSell:
		return model.Round(p.Sell)
	default:
		return decimal.Zero
	}
}

// Valid reports whether neither fee is negative.
func (p Policy) Valid() bool {
	return !p.Buy.IsNegative() && !p.Sell.IsNegative()
}
