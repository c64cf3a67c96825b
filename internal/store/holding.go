package store

import (
	"context"

	"tradeledger/internal/model"

	"github.com/yanun0323/errors"
)

func (s *Gorm) CreateHolding(ctx context.Context, h *model.Holding) error {
	if err := s.conn(ctx).Create(h).Error; err != nil {
		return errors.Wrapf(err, "create holding of account %d", h.AccountID)
	}
	return nil
}

func (s *Gorm) Holding(ctx context.Context, holdingID int64) (model.Holding, error) {
	var h model.Holding
	if err := s.conn(ctx).Where("id = ?", holdingID).Take(&h).Error; err != nil {
		return model.Holding{}, errors.Wrapf(lookupError(err), "holding %d", holdingID)
	}
	return h, nil
}

func (s *Gorm) HoldingSummary(ctx context.Context, holdingID int64) (HoldingSummary, error) {
	var summary HoldingSummary
	if err := s.conn(ctx).
		Table("holdings AS h").
		Select("h.id AS holding_id, h.account_id, h.quantity, q.price, h.symbol, h.state").
		Joins("JOIN quotes AS q ON q.symbol = h.symbol").
		Where("h.id = ?", holdingID).
		Take(&summary).Error; err != nil {
		return HoldingSummary{}, errors.Wrapf(lookupError(err), "holding summary %d", holdingID)
	}
	return summary, nil
}

func (s *Gorm) HoldingsByAccount(ctx context.Context, accountID int64) ([]HoldingWithQuote, error) {
	var holdings []HoldingWithQuote
	if err := s.conn(ctx).
		Table("holdings AS h").
		Select("h.*, q.price AS quote_price").
		Joins("JOIN quotes AS q ON q.symbol = h.symbol").
		Where("h.account_id = ?", accountID).
		Order("h.id").
		Scan(&holdings).Error; err != nil {
		return nil, errors.Wrapf(err, "holdings of account %d", accountID)
	}
	return holdings, nil
}

// ClaimHolding moves an available holding to selling. It reports false when
// the holding is gone or already claimed by another sell.
func (s *Gorm) ClaimHolding(ctx context.Context, holdingID int64) (bool, error) {
	result := s.conn(ctx).Model(&model.Holding{}).
		Where("id = ? AND state = ?", holdingID, model.HoldingStateAvailable).
		Update("state", model.HoldingStateSelling)
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "claim holding %d", holdingID)
	}
	return result.RowsAffected == 1, nil
}

func (s *Gorm) ReleaseHolding(ctx context.Context, holdingID int64) error {
	result := s.conn(ctx).Model(&model.Holding{}).
		Where("id = ?", holdingID).
		Update("state", model.HoldingStateAvailable)
	return affected(result, "release holding %d", holdingID)
}

// DeleteHolding reports false when no row was removed.
func (s *Gorm) DeleteHolding(ctx context.Context, holdingID int64) (bool, error) {
	result := s.conn(ctx).Where("id = ?", holdingID).Delete(&model.Holding{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "delete holding %d", holdingID)
	}
	return result.RowsAffected == 1, nil
}
