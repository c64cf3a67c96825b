package order

import (
	"tradeledger/internal/model"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
)

// Transition validates an order status change.
//
//	open   -> closed | cancelled
//	closed -> completed
func Transition(from, to model.OrderStatus) error {
	switch from {
	case model.OrderStatusOpen:
		if to == model.OrderStatusClosed || to == model.OrderStatusCancelled {
			return nil
		}
	case model.OrderStatusClosed:
		if to == model.OrderStatusCompleted {
			return nil
		}
		return errors.Wrapf(exception.ErrAlreadyCompleted, "%s to %s", from, to)
	case model.OrderStatusCompleted:
		return errors.Wrapf(exception.ErrAlreadyCompleted, "%s to %s", from, to)
	case model.OrderStatusCancelled:
		return errors.Wrapf(exception.ErrAlreadyCancelled, "%s to %s", from, to)
	}
	return errors.Wrapf(exception.ErrOrderInvalidTransition, "%s to %s", from, to)
}
