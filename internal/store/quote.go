package store

import (
	"context"

	"tradeledger/internal/model"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Gorm) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	var q model.Quote
	if err := s.conn(ctx).Where("symbol = ?", model.NormalizeSymbol(symbol)).Take(&q).Error; err != nil {
		return model.Quote{}, errors.Wrapf(lookupError(err), "quote %s", symbol)
	}
	return q, nil
}

func (s *Gorm) QuoteForUpdate(ctx context.Context, symbol string) (model.Quote, error) {
	var q model.Quote
	if err := s.conn(ctx).Clauses(forUpdate()).Where("symbol = ?", model.NormalizeSymbol(symbol)).Take(&q).Error; err != nil {
		return model.Quote{}, errors.Wrapf(lookupError(err), "quote for update %s", symbol)
	}
	return q, nil
}

func (s *Gorm) Quotes(ctx context.Context) ([]model.Quote, error) {
	var quotes []model.Quote
	if err := s.conn(ctx).Order("symbol").Find(&quotes).Error; err != nil {
		return nil, errors.Wrap(err, "find quotes")
	}
	return quotes, nil
}

func (s *Gorm) QuotesByChange(ctx context.Context) ([]model.Quote, error) {
	var quotes []model.Quote
	if err := s.conn(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "change"}, Desc: true}).
		Order("symbol").
		Find(&quotes).Error; err != nil {
		return nil, errors.Wrap(err, "find quotes by change")
	}
	return quotes, nil
}

func (s *Gorm) CreateQuote(ctx context.Context, q model.Quote) error {
	q.Symbol = model.NormalizeSymbol(q.Symbol)
	if err := s.conn(ctx).Create(&q).Error; err != nil {
		if isDuplicate(err) {
			return errors.Wrapf(exception.ErrBadRequest, "quote %s already exists", q.Symbol)
		}
		return errors.Wrapf(err, "create quote %s", q.Symbol)
	}
	return nil
}

func (s *Gorm) UpdateQuote(ctx context.Context, symbol string, update QuoteUpdate) error {
	result := s.conn(ctx).Model(&model.Quote{}).
		Where("symbol = ?", model.NormalizeSymbol(symbol)).
		Updates(map[string]any{
			"price":  update.Price,
			"low":    update.Low,
			"high":   update.High,
			"change": update.Change,
			"volume": update.Volume,
		})
	return affected(result, "update quote %s", symbol)
}

func (s *Gorm) AddVolume(ctx context.Context, symbol string, shares float64) error {
	result := s.conn(ctx).Model(&model.Quote{}).
		Where("symbol = ?", model.NormalizeSymbol(symbol)).
		UpdateColumn("volume", gorm.Expr("volume + ?", shares))
	return affected(result, "add volume %s", symbol)
}
