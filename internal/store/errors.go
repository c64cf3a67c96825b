package store

import (
	"errors"

	"tradeledger/pkg/exception"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// lookupError maps a missing row to exception.ErrNotFound and keeps every
// other failure as is.
func lookupError(err error) error {
	if isNotFound(err) {
		return exception.ErrNotFound
	}
	return err
}
