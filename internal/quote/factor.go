package quote

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// RandomFactor returns a price multiplier between 0.90 and 1.10.
func RandomFactor(r *rand.Rand) decimal.Decimal {
	pct := r.Float64() * 0.1
	if r.IntN(2) == 0 {
		pct = -pct
	}
	return decimal.NewFromFloat(1 + pct).Round(2)
}
