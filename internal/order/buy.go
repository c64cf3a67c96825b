package order

import (
	"context"
	"math"
	"strings"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
)

// Buy debits quantity*price+fee from the user's account and opens a buy order
// at the quote's current price. In sync mode the returned order is already
// closed and its holding exists.
func (use *Usecase) Buy(ctx context.Context, userID, symbol string, quantity float64) (model.OrderResult, error) {
	defer use.observe(time.Now())

	userID = strings.TrimSpace(userID)
	symbol = model.NormalizeSymbol(symbol)
	switch {
	case userID == "":
		return model.OrderResult{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	case symbol == "":
		return model.OrderResult{}, errors.Wrap(exception.ErrBadRequest, "empty symbol")
	case !(quantity > 0) || math.IsInf(quantity, 1):
		return model.OrderResult{}, errors.Wrapf(exception.ErrBadRequest, "quantity %v", quantity)
	}

	var order model.Order
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		account, err := tx.AccountByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		quote, err := tx.QuoteForUpdate(ctx, symbol)
		if err != nil {
			return err
		}

		price := model.Round(quote.Price)
		commission := use.fee.Of(model.OrderTypeBuy)
		total := model.Notional(price, quantity).Add(commission)
		if account.Balance.LessThan(total) {
			use.metrics.Inc(obs.EventInsufficientFunds)
			return &exception.InsufficientFundsError{Required: total, Available: account.Balance}
		}

		if err := tx.UpdateBalance(ctx, account.ID, account.Balance.Sub(total)); err != nil {
			return err
		}

		order = model.Order{
			Type:      model.OrderTypeBuy,
			Status:    model.OrderStatusOpen,
			Quantity:  quantity,
			Price:     price,
			Fee:       commission,
			OpenDate:  use.now(),
			AccountID: account.ID,
			Symbol:    quote.Symbol,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		if err := tx.AddVolume(ctx, quote.Symbol, quantity); err != nil {
			return err
		}

		if use.mode == ModeAsync {
			return nil
		}
		_, err = use.settle(ctx, tx, &order)
		return err
	})
	if err != nil {
		return model.OrderResult{}, err
	}

	use.metrics.Inc(obs.EventBuy)
	if use.mode == ModeAsync {
		return model.NewOrderResult(order), use.enqueue(order.ID)
	}
	return model.NewOrderResult(order), nil
}
