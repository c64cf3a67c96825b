package store

import (
	"context"
	"time"

	"tradeledger/internal/model"

	"github.com/yanun0323/errors"
)

func (s *Gorm) CreateOrder(ctx context.Context, o *model.Order) error {
	if err := s.conn(ctx).Create(o).Error; err != nil {
		return errors.Wrapf(err, "create %s order of account %d", o.Type, o.AccountID)
	}
	return nil
}

func (s *Gorm) Order(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := s.conn(ctx).Where("id = ?", orderID).Take(&o).Error; err != nil {
		return model.Order{}, errors.Wrapf(lookupError(err), "order %d", orderID)
	}
	return o, nil
}

func (s *Gorm) OrderForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := s.conn(ctx).Clauses(forUpdate()).Where("id = ?", orderID).Take(&o).Error; err != nil {
		return model.Order{}, errors.Wrapf(lookupError(err), "order %d for update", orderID)
	}
	return o, nil
}

func (s *Gorm) OrdersByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	var orders []model.Order
	if err := s.conn(ctx).Where("account_id = ?", accountID).Order("open_date DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, errors.Wrapf(err, "orders of account %d", accountID)
	}
	return orders, nil
}

func (s *Gorm) ClosedOrdersByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	var orders []model.Order
	if err := s.conn(ctx).
		Where("account_id = ? AND status = ?", accountID, model.OrderStatusClosed).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrapf(err, "closed orders of account %d", accountID)
	}
	return orders, nil
}

// AcknowledgeClosedOrders moves every closed order of the account to completed.
func (s *Gorm) AcknowledgeClosedOrders(ctx context.Context, accountID int64) (int64, error) {
	result := s.conn(ctx).Model(&model.Order{}).
		Where("account_id = ? AND status = ?", accountID, model.OrderStatusClosed).
		Update("status", model.OrderStatusCompleted)
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "acknowledge closed orders of account %d", accountID)
	}
	return result.RowsAffected, nil
}

func (s *Gorm) AttachHolding(ctx context.Context, orderID, holdingID int64) error {
	result := s.conn(ctx).Model(&model.Order{}).Where("id = ?", orderID).Update("holding_id", holdingID)
	return affected(result, "attach holding %d to order %d", holdingID, orderID)
}

// DetachHolding clears the holding reference of every order pointing at it.
func (s *Gorm) DetachHolding(ctx context.Context, holdingID int64) error {
	if err := s.conn(ctx).Model(&model.Order{}).Where("holding_id = ?", holdingID).Update("holding_id", nil).Error; err != nil {
		return errors.Wrapf(err, "detach holding %d", holdingID)
	}
	return nil
}

func (s *Gorm) FinishOrder(ctx context.Context, orderID int64, status model.OrderStatus, at time.Time) error {
	result := s.conn(ctx).Model(&model.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"status":          status,
		"completion_date": at,
	})
	return affected(result, "finish order %d as %s", orderID, status)
}
