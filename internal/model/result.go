package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResult is the flat view of an order handed back to callers.
type OrderResult struct {
	OrderID        int64           `json:"orderId"`
	Type           OrderType       `json:"orderType"`
	Status         OrderStatus     `json:"orderStatus"`
	Quantity       float64         `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Fee            decimal.Decimal `json:"orderFee"`
	OpenDate       time.Time       `json:"openDate"`
	CompletionDate *time.Time      `json:"completionDate,omitempty"`
	AccountID      int64           `json:"accountId"`
	Symbol         string          `json:"symbol"`
	HoldingID      *int64          `json:"holdingId,omitempty"`
}

func NewOrderResult(o Order) OrderResult {
	return OrderResult{
		OrderID:        o.ID,
		Type:           o.Type,
		Status:         o.Status,
		Quantity:       o.Quantity,
		Price:          o.Price,
		Fee:            o.Fee,
		OpenDate:       o.OpenDate,
		CompletionDate: o.CompletionDate,
		AccountID:      o.AccountID,
		Symbol:         o.Symbol,
		HoldingID:      o.HoldingID,
	}
}

func NewOrderResults(orders []Order) []OrderResult {
	results := make([]OrderResult, 0, len(orders))
	for _, o := range orders {
		results = append(results, NewOrderResult(o))
	}
	return results
}

// HoldingResult is a holding joined with the current price of its quote.
type HoldingResult struct {
	HoldingID     int64           `json:"holdingId"`
	AccountID     int64           `json:"accountId"`
	Symbol        string          `json:"symbol"`
	Quantity      float64         `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	State         HoldingState    `json:"state"`
	QuotePrice    decimal.Decimal `json:"quotePrice"`
	MarketValue   decimal.Decimal `json:"marketValue"`
	Gain          decimal.Decimal `json:"gain"`
}

func NewHoldingResult(h Holding, quotePrice decimal.Decimal) HoldingResult {
	value := Notional(quotePrice, h.Quantity)
	return HoldingResult{
		HoldingID:     h.ID,
		AccountID:     h.AccountID,
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		PurchaseDate:  h.PurchaseDate,
		State:         h.State,
		QuotePrice:    quotePrice,
		MarketValue:   value,
		Gain:          Gain(value, Notional(h.PurchasePrice, h.Quantity)),
	}
}

type AccountResult struct {
	AccountID   int64           `json:"accountId"`
	UserID      string          `json:"userId"`
	Balance     decimal.Decimal `json:"balance"`
	OpenBalance decimal.Decimal `json:"openBalance"`
	LoginCount  int64           `json:"loginCount"`
	LogoutCount int64           `json:"logoutCount"`
	LastLogin   *time.Time      `json:"lastLogin,omitempty"`
	CreatedAt   time.Time       `json:"creationDate"`
}

func NewAccountResult(a Account) AccountResult {
	return AccountResult{
		AccountID:   a.ID,
		UserID:      a.ProfileUserID,
		Balance:     a.Balance,
		OpenBalance: a.OpenBalance,
		LoginCount:  a.LoginCount,
		LogoutCount: a.LogoutCount,
		LastLogin:   a.LastLogin,
		CreatedAt:   a.CreatedAt,
	}
}

type QuoteResult struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
	Open        decimal.Decimal `json:"open"`
	Low         decimal.Decimal `json:"low"`
	High        decimal.Decimal `json:"high"`
	Volume      float64         `json:"volume"`
	Change      decimal.Decimal `json:"change"`
}

func NewQuoteResult(q Quote) QuoteResult {
	return QuoteResult{
		Symbol:      q.Symbol,
		CompanyName: q.CompanyName,
		Price:       q.Price,
		Open:        q.Open,
		Low:         q.Low,
		High:        q.High,
		Volume:      q.Volume,
		Change:      q.Change,
	}
}

func NewQuoteResults(quotes []Quote) []QuoteResult {
	results := make([]QuoteResult, 0, len(quotes))
	for _, q := range quotes {
		results = append(results, NewQuoteResult(q))
	}
	return results
}

// PortfolioSummary aggregates an account's cash and positions.
type PortfolioSummary struct {
	AccountID     int64           `json:"accountId"`
	Balance       decimal.Decimal `json:"balance"`
	OpenBalance   decimal.Decimal `json:"openBalance"`
	HoldingsValue decimal.Decimal `json:"holdingsValue"`
	HoldingCount  int             `json:"holdingCount"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	Gain          decimal.Decimal `json:"gain"`
	GainPercent   decimal.Decimal `json:"gainPercent"`
}
