// Package storetest opens throwaway SQLite ledgers for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/store"
	"tradeledger/pkg/conn"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Open returns a migrated store backed by a SQLite file in the test's temp dir.
func Open(t testing.TB) *store.Gorm {
	t.Helper()

	client, err := conn.New(conn.Option{
		Driver: conn.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo := store.NewGorm(client.DB())
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SeedAccount registers userID with the given opening balance.
func SeedAccount(t testing.TB, repo store.Repository, userID string, balance string) model.Account {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.CreateProfile(ctx, model.Profile{UserID: userID, FullName: userID, CreatedAt: now}))

	account := model.Account{
		ProfileUserID: userID,
		Balance:       Dec(balance),
		OpenBalance:   Dec(balance),
		CreatedAt:     now,
	}
	require.NoError(t, repo.CreateAccount(ctx, &account))
	return account
}

// SeedQuote creates a quote whose open price equals price.
func SeedQuote(t testing.TB, repo store.Repository, symbol, price, change string) model.Quote {
	t.Helper()

	q := model.Quote{
		Symbol:      symbol,
		CompanyName: symbol + " Inc.",
		Price:       Dec(price),
		Open:        Dec(price),
		Low:         Dec(price),
		High:        Dec(price),
		Change:      Dec(change),
	}
	require.NoError(t, repo.CreateQuote(context.Background(), q))
	q.Symbol = model.NormalizeSymbol(symbol)
	return q
}

// SeedHolding stores an available holding for the account.
func SeedHolding(t testing.TB, repo store.Repository, accountID int64, symbol string, quantity float64, price string) model.Holding {
	t.Helper()

	h := model.Holding{
		AccountID:     accountID,
		Symbol:        model.NormalizeSymbol(symbol),
		Quantity:      quantity,
		PurchasePrice: Dec(price),
		PurchaseDate:  time.Now().UTC(),
		State:         model.HoldingStateAvailable,
	}
	require.NoError(t, repo.CreateHolding(context.Background(), &h))
	return h
}
