package order

import (
	"context"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
)

// CompleteOrder settles an open order. A buy gains its holding; a sell
// removes its holding. A sell whose holding has vanished is committed as
// cancelled and ErrHoldingAlreadySold is returned along with it, unless
// taking back its proceeds would overdraw the account, in which case the
// order stays open and ErrInsufficientFunds is returned.
//
// A closed or completed order fails with ErrAlreadyCompleted; a cancelled
// one fails with ErrAlreadyCancelled.
func (use *Usecase) CompleteOrder(ctx context.Context, orderID int64) (model.OrderResult, error) {
	defer use.observe(time.Now())

	if orderID <= 0 {
		return model.OrderResult{}, errors.Wrapf(exception.ErrBadRequest, "order id %d", orderID)
	}

	var (
		order   model.Order
		settled bool
	)
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := Transition(o.Status, model.OrderStatusClosed); err != nil {
			return errors.Wrapf(err, "complete order %d", orderID)
		}

		settled, err = use.settle(ctx, tx, &o)
		order = o
		return err
	})
	if err != nil {
		return model.OrderResult{}, err
	}

	if !settled {
		use.metrics.Inc(obs.EventSellLostRace)
		return model.NewOrderResult(order), errors.Wrapf(exception.ErrHoldingAlreadySold, "order %d cancelled", orderID)
	}

	use.metrics.Inc(obs.EventComplete)
	return model.NewOrderResult(order), nil
}

// CancelOrder voids an open order. A buy is refunded in full; a sell gives
// back its proceeds and frees the holding for another sell. A sell whose
// proceeds have already been spent cannot be cancelled and fails with
// ErrInsufficientFunds.
func (use *Usecase) CancelOrder(ctx context.Context, orderID int64) (model.OrderResult, error) {
	defer use.observe(time.Now())

	if orderID <= 0 {
		return model.OrderResult{}, errors.Wrapf(exception.ErrBadRequest, "order id %d", orderID)
	}

	var order model.Order
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := Transition(o.Status, model.OrderStatusCancelled); err != nil {
			return errors.Wrapf(err, "cancel order %d", orderID)
		}

		if o.Type == model.OrderTypeSell && o.HoldingID != nil {
			if err := tx.ReleaseHolding(ctx, *o.HoldingID); err != nil && !isNotFound(err) {
				return err
			}
		}

		order = o
		return use.void(ctx, tx, &order, use.now())
	})
	if err != nil {
		return model.OrderResult{}, err
	}

	use.metrics.Inc(obs.EventCancel)
	return model.NewOrderResult(order), nil
}

// settle closes an open order inside tx. It reports false when a sell could
// not find its holding, in which case the order has been voided instead.
func (use *Usecase) settle(ctx context.Context, tx store.Repository, o *model.Order) (bool, error) {
	now := use.now()

	switch o.Type {
	case model.OrderTypeBuy:
		h := model.Holding{
			AccountID:     o.AccountID,
			Symbol:        o.Symbol,
			Quantity:      o.Quantity,
			PurchasePrice: o.Price,
			PurchaseDate:  now,
			State:         model.HoldingStateAvailable,
		}
		if err := tx.CreateHolding(ctx, &h); err != nil {
			return false, err
		}
		if err := tx.AttachHolding(ctx, o.ID, h.ID); err != nil {
			return false, err
		}
		o.HoldingID = &h.ID

	case model.OrderTypeSell:
		if o.HoldingID == nil {
			return false, use.void(ctx, tx, o, now)
		}

		holdingID := *o.HoldingID
		if err := tx.DetachHolding(ctx, holdingID); err != nil {
			return false, err
		}
		o.HoldingID = nil

		deleted, err := tx.DeleteHolding(ctx, holdingID)
		if err != nil {
			return false, err
		}
		if !deleted {
			return false, use.void(ctx, tx, o, now)
		}

	default:
		return false, errors.Wrapf(exception.ErrOrderUnsupportedType, "order %d type %s", o.ID, o.Type)
	}

	if err := tx.FinishOrder(ctx, o.ID, model.OrderStatusClosed, now); err != nil {
		return false, err
	}
	o.Status = model.OrderStatusClosed
	o.CompletionDate = &now
	return true, nil
}

// void cancels an open order and undoes the balance change made when it was
// opened. The balance never goes below zero.
func (use *Usecase) void(ctx context.Context, tx store.Repository, o *model.Order, now time.Time) error {
	account, err := tx.AccountForUpdate(ctx, o.AccountID)
	if err != nil {
		return err
	}

	gross := model.Notional(o.Price, o.Quantity)
	balance := account.Balance
	switch o.Type {
	case model.OrderTypeBuy:
		balance = balance.Add(gross.Add(o.Fee))
	case model.OrderTypeSell:
		proceeds := gross.Sub(o.Fee)
		balance = balance.Sub(proceeds)
		if balance.IsNegative() {
			use.metrics.Inc(obs.EventInsufficientFunds)
			return &exception.InsufficientFundsError{Required: proceeds, Available: account.Balance}
		}
	default:
		return errors.Wrapf(exception.ErrOrderUnsupportedType, "order %d type %s", o.ID, o.Type)
	}

	if err := tx.UpdateBalance(ctx, o.AccountID, balance); err != nil {
		return err
	}
	if err := tx.FinishOrder(ctx, o.ID, model.OrderStatusCancelled, now); err != nil {
		return err
	}
	o.Status = model.OrderStatusCancelled
	o.CompletionDate = &now
	return nil
}
