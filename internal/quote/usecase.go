// Package quote maintains the tradable quotes.
package quote

import (
	"context"
	"math"
	"strings"

	"tradeledger/internal/model"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
)

var (
	// PennyPrice is the price at which a quote recovers by PennyRecovery.
	PennyPrice    = decimal.RequireFromString("0.01")
	PennyRecovery = decimal.NewFromInt(600)
	// MaxPrice is the price above which a quote splits by SplitFactor.
	MaxPrice    = decimal.RequireFromString("400.00")
	SplitFactor = decimal.RequireFromString("0.5")
)

type Usecase struct {
	repo store.Repository
}

func NewUsecase(repo store.Repository) (*Usecase, error) {
	if repo == nil {
		return nil, errors.Wrap(exception.ErrNilInstance, "quote repository")
	}
	return &Usecase{repo: repo}, nil
}

// Create lists a new symbol. Open, low and high start at price.
func (use *Usecase) Create(ctx context.Context, symbol, companyName string, price decimal.Decimal) (model.QuoteResult, error) {
	symbol = model.NormalizeSymbol(symbol)
	price = model.Round(price)
	if symbol == "" {
		return model.QuoteResult{}, errors.Wrap(exception.ErrBadRequest, "empty symbol")
	}
	if !price.IsPositive() {
		return model.QuoteResult{}, errors.Wrapf(exception.ErrBadRequest, "price %s", price)
	}

	q := model.Quote{
		Symbol:      symbol,
		CompanyName: strings.TrimSpace(companyName),
		Price:       price,
		Open:        price,
		Low:         price,
		High:        price,
		Change:      decimal.Zero,
	}
	if err := use.repo.CreateQuote(ctx, q); err != nil {
		return model.QuoteResult{}, err
	}
	return model.NewQuoteResult(q), nil
}

func (use *Usecase) Get(ctx context.Context, symbol string) (model.QuoteResult, error) {
	q, err := use.repo.Quote(ctx, symbol)
	if err != nil {
		return model.QuoteResult{}, err
	}
	return model.NewQuoteResult(q), nil
}

func (use *Usecase) List(ctx context.Context) ([]model.QuoteResult, error) {
	quotes, err := use.repo.Quotes(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewQuoteResults(quotes), nil
}

// UpdatePrice sets a new price under the quote's exclusive lock. Change is
// the difference to the previous price.
func (use *Usecase) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) (model.QuoteResult, error) {
	price = model.Round(price)
	if !price.IsPositive() {
		return model.QuoteResult{}, errors.Wrapf(exception.ErrBadRequest, "price %s", price)
	}

	return use.move(ctx, symbol, 0, func(decimal.Decimal) decimal.Decimal {
		return price
	})
}

// UpdatePriceVolume scales the price by factor and adds shares to the
// volume. A penny quote recovers by PennyRecovery and a quote above MaxPrice
// splits by SplitFactor, whatever factor says.
func (use *Usecase) UpdatePriceVolume(ctx context.Context, symbol string, factor decimal.Decimal, shares float64) (model.QuoteResult, error) {
	if !factor.IsPositive() {
		return model.QuoteResult{}, errors.Wrapf(exception.ErrBadRequest, "factor %s", factor)
	}
	if shares < 0 || math.IsNaN(shares) || math.IsInf(shares, 0) {
		return model.QuoteResult{}, errors.Wrapf(exception.ErrBadRequest, "shares %v", shares)
	}

	return use.move(ctx, symbol, shares, func(old decimal.Decimal) decimal.Decimal {
		return model.Round(old.Mul(EffectiveFactor(old, factor)))
	})
}

// EffectiveFactor returns the multiplier actually applied to a quote at price.
func EffectiveFactor(price, factor decimal.Decimal) decimal.Decimal {
	switch {
	case price.Equal(PennyPrice):
		return PennyRecovery
	case price.GreaterThan(MaxPrice):
		return SplitFactor
	default:
		return factor
	}
}

func (use *Usecase) move(ctx context.Context, symbol string, shares float64, next func(old decimal.Decimal) decimal.Decimal) (model.QuoteResult, error) {
	var q model.Quote
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		var err error
		q, err = tx.QuoteForUpdate(ctx, symbol)
		if err != nil {
			return err
		}

		old := q.Price
		q.Price = next(old)
		q.Change = model.Round(q.Price.Sub(old))
		q.Low = decimal.Min(q.Low, q.Price)
		q.High = decimal.Max(q.High, q.Price)
		q.Volume += shares

		return tx.UpdateQuote(ctx, q.Symbol, store.QuoteUpdate{
			Price:  q.Price,
			Low:    q.Low,
			High:   q.High,
			Change: q.Change,
			Volume: q.Volume,
		})
	})
	if err != nil {
		return model.QuoteResult{}, err
	}
	return model.NewQuoteResult(q), nil
}
