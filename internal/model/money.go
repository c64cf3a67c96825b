package model

import "github.com/shopspring/decimal"

// Scale is the number of decimal places kept for every money amount.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// Round rounds a money amount to two places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Notional is price times quantity rounded to cents.
func Notional(price decimal.Decimal, quantity float64) decimal.Decimal {
	return Round(price.Mul(decimal.NewFromFloat(quantity)))
}

// Average divides total by count with two-decimal half-up rounding.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), Scale)
}

// Gain is current minus open, in cents.
func Gain(current, open decimal.Decimal) decimal.Decimal {
	return Round(current.Sub(open))
}

// GainPercent is (current/open - 1) * 100; zero when open is zero.
func GainPercent(current, open decimal.Decimal) decimal.Decimal {
	if open.IsZero() {
		return decimal.Zero
	}
	return current.DivRound(open, Scale).Sub(decimal.NewFromInt(1)).Mul(hundred)
}
