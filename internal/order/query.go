package order

import (
	"context"

	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
)

// Orders lists every order of the user, newest first.
func (use *Usecase) Orders(ctx context.Context, userID string) ([]model.OrderResult, error) {
	accountID, err := use.accountID(ctx, use.repo, userID)
	if err != nil {
		return nil, err
	}

	orders, err := use.repo.OrdersByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return model.NewOrderResults(orders), nil
}

// ClosedOrders reports the user's closed orders once. The reported orders are
// moved to completed so the next call does not return them again.
func (use *Usecase) ClosedOrders(ctx context.Context, userID string) ([]model.OrderResult, error) {
	var orders []model.Order
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		accountID, err := use.accountID(ctx, tx, userID)
		if err != nil {
			return err
		}

		orders, err = tx.ClosedOrdersByAccount(ctx, accountID)
		if err != nil || len(orders) == 0 {
			return err
		}

		_, err = tx.AcknowledgeClosedOrders(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(orders) != 0 {
		use.metrics.Inc(obs.EventAcknowledge)
	}
	return model.NewOrderResults(orders), nil
}

// Holdings lists the user's holdings valued at current quote prices.
func (use *Usecase) Holdings(ctx context.Context, userID string) ([]model.HoldingResult, error) {
	accountID, err := use.accountID(ctx, use.repo, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := use.repo.HoldingsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	results := make([]model.HoldingResult, 0, len(holdings))
	for _, h := range holdings {
		results = append(results, model.NewHoldingResult(h.Holding, h.QuotePrice))
	}
	return results, nil
}

// Holding returns one holding of the user.
func (use *Usecase) Holding(ctx context.Context, userID string, holdingID int64) (model.HoldingResult, error) {
	accountID, err := use.accountID(ctx, use.repo, userID)
	if err != nil {
		return model.HoldingResult{}, err
	}

	h, err := use.repo.Holding(ctx, holdingID)
	if err != nil {
		return model.HoldingResult{}, err
	}
	if h.AccountID != accountID {
		return model.HoldingResult{}, errors.Wrapf(exception.ErrForbidden, "holding %d is not owned by %s", holdingID, userID)
	}

	quote, err := use.repo.Quote(ctx, h.Symbol)
	if err != nil {
		return model.HoldingResult{}, err
	}
	return model.NewHoldingResult(h, quote.Price), nil
}
