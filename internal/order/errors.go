package order

import (
	"errors"

	"tradeledger/pkg/exception"
)

func isNotFound(err error) bool {
	return errors.Is(err, exception.ErrNotFound)
}

func isHoldingSold(err error) bool {
	return errors.Is(err, exception.ErrHoldingAlreadySold)
}
