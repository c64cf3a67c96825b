package exception

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var _ error = (*InsufficientFundsError)(nil)

// InsufficientFundsError reports a debit that exceeds the account balance.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s, required: %s, available: %s",
		ErrInsufficientFunds.Error(), Display(e.Required), Display(e.Available))
}

// Is makes errors.Is(err, ErrInsufficientFunds) hold.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Display formats a two-decimal amount as US dollars.
func Display(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), money.USD).Display()
}
