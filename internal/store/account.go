package store

import (
	"context"
	"time"

	"tradeledger/internal/model"
	"tradeledger/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"gorm.io/gorm"
)

func (s *Gorm) CreateProfile(ctx context.Context, p model.Profile) error {
	if err := s.conn(ctx).Create(&p).Error; err != nil {
		if isDuplicate(err) {
			return errors.Wrapf(exception.ErrBadRequest, "user %s already exists", p.UserID)
		}
		return errors.Wrapf(err, "create profile %s", p.UserID)
	}
	return nil
}

func (s *Gorm) ProfileExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := s.conn(ctx).Model(&model.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "count profile %s", userID)
	}
	return count > 0, nil
}

func (s *Gorm) CreateAccount(ctx context.Context, a *model.Account) error {
	if err := s.conn(ctx).Create(a).Error; err != nil {
		return errors.Wrapf(err, "create account for %s", a.ProfileUserID)
	}
	return nil
}

func (s *Gorm) AccountByUser(ctx context.Context, userID string) (model.Account, error) {
	var a model.Account
	if err := s.conn(ctx).Where("profile_user_id = ?", userID).Take(&a).Error; err != nil {
		return model.Account{}, errors.Wrapf(lookupError(err), "account of user %s", userID)
	}
	return a, nil
}

func (s *Gorm) AccountByUserForUpdate(ctx context.Context, userID string) (model.Account, error) {
	var a model.Account
	if err := s.conn(ctx).Clauses(forUpdate()).Where("profile_user_id = ?", userID).Take(&a).Error; err != nil {
		return model.Account{}, errors.Wrapf(lookupError(err), "account of user %s for update", userID)
	}
	return a, nil
}

func (s *Gorm) AccountIDByUser(ctx context.Context, userID string) (int64, error) {
	var ids []int64
	if err := s.conn(ctx).Model(&model.Account{}).Where("profile_user_id = ?", userID).Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, errors.Wrapf(err, "account id of user %s", userID)
	}
	if len(ids) == 0 {
		return 0, errors.Wrapf(exception.ErrNotFound, "account id of user %s", userID)
	}
	return ids[0], nil
}

func (s *Gorm) AccountForUpdate(ctx context.Context, accountID int64) (model.Account, error) {
	var a model.Account
	if err := s.conn(ctx).Clauses(forUpdate()).Where("id = ?", accountID).Take(&a).Error; err != nil {
		return model.Account{}, errors.Wrapf(lookupError(err), "account %d for update", accountID)
	}
	return a, nil
}

func (s *Gorm) UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	result := s.conn(ctx).Model(&model.Account{}).Where("id = ?", accountID).Update("balance", balance)
	return affected(result, "update balance of account %d", accountID)
}

func (s *Gorm) RecordLogin(ctx context.Context, accountID int64, at time.Time) error {
	result := s.conn(ctx).Model(&model.Account{}).Where("id = ?", accountID).UpdateColumns(map[string]any{
		"login_count": gorm.Expr("login_count + 1"),
		"last_login":  at,
	})
	return affected(result, "record login of account %d", accountID)
}

func (s *Gorm) RecordLogout(ctx context.Context, accountID int64) error {
	result := s.conn(ctx).Model(&model.Account{}).Where("id = ?", accountID).
		UpdateColumn("logout_count", gorm.Expr("logout_count + 1"))
	return affected(result, "record logout of account %d", accountID)
}
