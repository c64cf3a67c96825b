// Package account registers traders and reports on their portfolios.
package account

import (
	"context"
	"strings"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

type RegisterRequest struct {
	UserID      string
	FullName    string
	Email       string
	Address     string
	OpenBalance decimal.Decimal
}

type Usecase struct {
	repo store.Repository
	now  func() time.Time
}

func NewUsecase(repo store.Repository, now func() time.Time) (*Usecase, error) {
	if repo == nil {
		return nil, errors.Wrap(exception.ErrNilInstance, "account repository")
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{repo: repo, now: now}, nil
}

// Register creates the profile and its account in one transaction. The
// account starts with its balance equal to the opening balance.
func (use *Usecase) Register(ctx context.Context, req RegisterRequest) (model.AccountResult, error) {
	userID := strings.TrimSpace(req.UserID)
	balance := model.Round(req.OpenBalance)
	if userID == "" {
		return model.AccountResult{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	}
	if balance.IsNegative() {
		return model.AccountResult{}, errors.Wrapf(exception.ErrBadRequest, "open balance %s", balance)
	}

	now := use.now()
	account := model.Account{
		ProfileUserID: userID,
		Balance:       balance,
		OpenBalance:   balance,
		CreatedAt:     now,
	}
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		if err := tx.CreateProfile(ctx, model.Profile{
			UserID:    userID,
			FullName:  strings.TrimSpace(req.FullName),
			Email:     strings.TrimSpace(req.Email),
			Address:   strings.TrimSpace(req.Address),
			CreatedAt: now,
		}); err != nil {
			return err
		}
		return tx.CreateAccount(ctx, &account)
	})
	if err != nil {
		return model.AccountResult{}, err
	}

	logs.Infof("registered %s with account %d", userID, account.ID)
	return model.NewAccountResult(account), nil
}

// Login records a session start. There are no credentials to check.
func (use *Usecase) Login(ctx context.Context, userID string) (model.AccountResult, error) {
	var account model.Account
	err := use.repo.Transaction(ctx, func(tx store.Repository) error {
		a, err := use.lockAccount(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := tx.RecordLogin(ctx, a.ID, use.now()); err != nil {
			return err
		}
		account, err = tx.AccountByUser(ctx, a.ProfileUserID)
		return err
	})
	if err != nil {
		return model.AccountResult{}, err
	}
	return model.NewAccountResult(account), nil
}

func (use *Usecase) Logout(ctx context.Context, userID string) error {
	return use.repo.Transaction(ctx, func(tx store.Repository) error {
		a, err := use.lockAccount(ctx, tx, userID)
		if err != nil {
			return err
		}
		return tx.RecordLogout(ctx, a.ID)
	})
}

func (use *Usecase) Account(ctx context.Context, userID string) (model.AccountResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.AccountResult{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	}

	a, err := use.repo.AccountByUser(ctx, userID)
	if err != nil {
		return model.AccountResult{}, err
	}
	return model.NewAccountResult(a), nil
}

// PortfolioSummary values the account's cash and holdings at current quote
// prices. Gain compares the cash balance with the opening balance.
func (use *Usecase) PortfolioSummary(ctx context.Context, userID string) (model.PortfolioSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.PortfolioSummary{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	}

	a, err := use.repo.AccountByUser(ctx, userID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	holdings, err := use.repo.HoldingsByAccount(ctx, a.ID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	value := decimal.Zero
	for _, h := range holdings {
		value = value.Add(model.Notional(h.QuotePrice, h.Quantity))
	}

	return model.PortfolioSummary{
		AccountID:     a.ID,
		Balance:       a.Balance,
		OpenBalance:   a.OpenBalance,
		HoldingsValue: value,
		HoldingCount:  len(holdings),
		TotalValue:    a.Balance.Add(value),
		Gain:          model.Gain(a.Balance, a.OpenBalance),
		GainPercent:   model.GainPercent(a.Balance, a.OpenBalance),
	}, nil
}

func (use *Usecase) lockAccount(ctx context.Context, tx store.Repository, userID string) (model.Account, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.Account{}, errors.Wrap(exception.ErrBadRequest, "empty user id")
	}
	return tx.AccountByUserForUpdate(ctx, userID)
}
