package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	UserID    string    `gorm:"column:user_id;primaryKey;size:64"`
	FullName  string    `gorm:"column:full_name;size:255"`
	Email     string    `gorm:"column:email;size:255"`
	Address   string    `gorm:"column:address;size:255"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Profile) TableName() string { return "profiles" }

type Account struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProfileUserID string          `gorm:"column:profile_user_id;size:64;uniqueIndex;not null"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null"`
	OpenBalance   decimal.Decimal `gorm:"column:open_balance;type:decimal(14,2);not null"`
	LoginCount    int64           `gorm:"column:login_count;not null;default:0"`
	LogoutCount   int64           `gorm:"column:logout_count;not null;default:0"`
	LastLogin     *time.Time      `gorm:"column:last_login"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

func (Account) TableName() string { return "accounts" }

type Holding struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	AccountID     int64           `gorm:"column:account_id;index;not null"`
	Symbol        string          `gorm:"column:symbol;size:16;index;not null"`
	Quantity      float64         `gorm:"column:quantity;not null"`
	PurchasePrice decimal.Decimal `gorm:"column:purchase_price;type:decimal(14,2);not null"`
	PurchaseDate  time.Time       `gorm:"column:purchase_date;not null"`
	State         HoldingState    `gorm:"column:state;not null"`
}

func (Holding) TableName() string { return "holdings" }

type Order struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Type           OrderType       `gorm:"column:type;not null"`
	Status         OrderStatus     `gorm:"column:status;index;not null"`
	Quantity       float64         `gorm:"column:quantity;not null"`
	Price          decimal.Decimal `gorm:"column:price;type:decimal(14,2);not null"`
	Fee            decimal.Decimal `gorm:"column:fee;type:decimal(14,2);not null"`
	OpenDate       time.Time       `gorm:"column:open_date;not null"`
	CompletionDate *time.Time      `gorm:"column:completion_date"`
	AccountID      int64           `gorm:"column:account_id;index;not null"`
	Symbol         string          `gorm:"column:symbol;size:16"`
	HoldingID      *int64          `gorm:"column:holding_id;index"`
}

func (Order) TableName() string { return "orders" }

type Quote struct {
	Symbol      string          `gorm:"column:symbol;primaryKey;size:16"`
	CompanyName string          `gorm:"column:company_name;size:255"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(14,2);not null"`
	Open        decimal.Decimal `gorm:"column:open;type:decimal(14,2);not null"`
	Low         decimal.Decimal `gorm:"column:low;type:decimal(14,2);not null"`
	High        decimal.Decimal `gorm:"column:high;type:decimal(14,2);not null"`
	Volume      float64         `gorm:"column:volume;not null"`
	Change      decimal.Decimal `gorm:"column:change;type:decimal(14,2);not null"`
}

func (Quote) TableName() string { return "quotes" }

// NormalizeSymbol returns the stored form of a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
