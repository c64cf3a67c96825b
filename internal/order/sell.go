package order

import (
	"context"
	"strings"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

// Sell credits the holding's market value less the sell fee and opens a sell
// order for it.
//
// A holding that is already gone, or already claimed by another sell, does
// not fail the call: a cancelled sell order is stored and returned instead.
func (use *Usecase) Sell(ctx context.Context, userID string, holdingID int64) (model.OrderResult, error) {
	defer use.observe(time.Now())

	userID = strings.TrimSpace(userID)
	switch {
	case userID == "":
		return model.OrderResult{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	case holdingID <= 0:
		return model.OrderResult{}, errors.Wrapf(exception.ErrBadRequest, "holding id %d", holdingID)
	}

	var (
		order model.Order
		lost  bool
	)
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		accountID, err := tx.AccountIDByUser(ctx, userID)
		if err != nil {
			return err
		}

		summary, err := tx.HoldingSummary(ctx, holdingID)
		if err != nil {
			if !isNotFound(err) {
				return err
			}
			lost = true
			order = newCancelledSell(accountID, store.HoldingSummary{}, use.now())
			return tx.CreateOrder(ctx, &order)
		}

		if summary.AccountID != accountID {
			return errors.Wrapf(exception.ErrForbidden, "holding %d is not owned by %s", holdingID, userID)
		}

		claimed, err := tx.ClaimHolding(ctx, holdingID)
		if err != nil {
			return err
		}
		if !claimed {
			lost = true
			order = newCancelledSell(accountID, summary, use.now())
			return tx.CreateOrder(ctx, &order)
		}

		price := model.Round(summary.Price)
		commission := use.fee.Of(model.OrderTypeSell)
		order = model.Order{
			Type:      model.OrderTypeSell,
			Status:    model.OrderStatusOpen,
			Quantity:  summary.Quantity,
			Price:     price,
			Fee:       commission,
			OpenDate:  use.now(),
			AccountID: accountID,
			Symbol:    summary.Symbol,
			HoldingID: &holdingID,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		account, err := tx.AccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		proceeds := model.Notional(price, summary.Quantity).Sub(commission)
		if err := tx.UpdateBalance(ctx, accountID, account.Balance.Add(proceeds)); err != nil {
			return err
		}

		if err := tx.AddVolume(ctx, summary.Symbol, summary.Quantity); err != nil {
			return err
		}

		if use.mode == ModeAsync {
			return nil
		}
		settled, err := use.settle(ctx, tx, &order)
		if err != nil {
			return err
		}
		lost = !settled
		return nil
	})
	if err != nil {
		return model.OrderResult{}, err
	}

	if lost {
		use.metrics.Inc(obs.EventSellLostRace)
		logs.Infof("sell of holding %d by %s lost the race, order %d cancelled", holdingID, userID, order.ID)
		return model.NewOrderResult(order), nil
	}

	use.metrics.Inc(obs.EventSell)
	if use.mode == ModeAsync {
		return model.NewOrderResult(order), use.enqueue(order.ID)
	}
	return model.NewOrderResult(order), nil
}
