package store

import (
	"context"
	"time"

	"tradeledger/internal/model"

	"github.com/shopspring/decimal"
)

// Quotes is the quote store. QuoteForUpdate takes the row's exclusive lock
// until the surrounding transaction ends.
type Quotes interface {
	Quote(ctx context.Context, symbol string) (model.Quote, error)
	QuoteForUpdate(ctx context.Context, symbol string) (model.Quote, error)
	Quotes(ctx context.Context) ([]model.Quote, error)
	QuotesByChange(ctx context.Context) ([]model.Quote, error)
	CreateQuote(ctx context.Context, q model.Quote) error
	UpdateQuote(ctx context.Context, symbol string, update QuoteUpdate) error
	AddVolume(ctx context.Context, symbol string, shares float64) error
}

// Ledger is the account, holding and order store.
type Ledger interface {
	CreateProfile(ctx context.Context, p model.Profile) error
	ProfileExists(ctx context.Context, userID string) (bool, error)
	CreateAccount(ctx context.Context, a *model.Account) error
	AccountByUser(ctx context.Context, userID string) (model.Account, error)
	AccountByUserForUpdate(ctx context.Context, userID string) (model.Account, error)
	AccountIDByUser(ctx context.Context, userID string) (int64, error)
	AccountForUpdate(ctx context.Context, accountID int64) (model.Account, error)
	UpdateBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
	RecordLogin(ctx context.Context, accountID int64, at time.Time) error
	RecordLogout(ctx context.Context, accountID int64) error

	CreateHolding(ctx context.Context, h *model.Holding) error
	Holding(ctx context.Context, holdingID int64) (model.Holding, error)
	HoldingSummary(ctx context.Context, holdingID int64) (HoldingSummary, error)
	HoldingsByAccount(ctx context.Context, accountID int64) ([]HoldingWithQuote, error)
	ClaimHolding(ctx context.Context, holdingID int64) (bool, error)
	ReleaseHolding(ctx context.Context, holdingID int64) error
	DeleteHolding(ctx context.Context, holdingID int64) (bool, error)

	CreateOrder(ctx context.Context, o *model.Order) error
	Order(ctx context.Context, orderID int64) (model.Order, error)
	OrderForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	OrdersByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
	ClosedOrdersByAccount(ctx context.Context, accountID int64) ([]model.Order, error)
	AcknowledgeClosedOrders(ctx context.Context, accountID int64) (int64, error)
	AttachHolding(ctx context.Context, orderID, holdingID int64) error
	DetachHolding(ctx context.Context, holdingID int64) error
	FinishOrder(ctx context.Context, orderID int64, status model.OrderStatus, at time.Time) error
}

// Repository is a unit of work over both stores. Everything done through the
// repository handed to fn commits together or not at all.
type Repository interface {
	Quotes
	Ledger
	Transaction(ctx context.Context, fn func(repo Repository) error) error
}

// QuoteUpdate is the field set written by a price move.
type QuoteUpdate struct {
	Price  decimal.Decimal
	Low    decimal.Decimal
	High   decimal.Decimal
	Change decimal.Decimal
	Volume float64
}

// HoldingSummary is the narrow projection a sell needs. Price is the current
// quote price, not the purchase price.
type HoldingSummary struct {
	HoldingID int64              `gorm:"column:holding_id"`
	AccountID int64              `gorm:"column:account_id"`
	Quantity  float64            `gorm:"column:quantity"`
	Price     decimal.Decimal    `gorm:"column:price"`
	Symbol    string             `gorm:"column:symbol"`
	State     model.HoldingState `gorm:"column:state"`
}

// HoldingWithQuote is a holding row joined with its quote's current price.
type HoldingWithQuote struct {
	model.Holding
	QuotePrice decimal.Decimal `gorm:"column:quote_price"`
}
