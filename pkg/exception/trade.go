package exception

import "errors"

var (
	ErrBadRequest         = errors.New("trade: bad request")
	ErrNotFound           = errors.New("trade: not found")
	ErrForbidden          = errors.New("trade: forbidden")
	ErrInsufficientFunds  = errors.New("trade: insufficient funds")
	ErrAlreadyCompleted   = errors.New("trade: order already completed")
	ErrAlreadyCancelled   = errors.New("trade: order already cancelled")
	ErrHoldingAlreadySold = errors.New("trade: holding already sold")
)
