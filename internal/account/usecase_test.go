package account

import (
	"context"
	"testing"
	"time"

	"tradeledger/internal/order"
	"tradeledger/internal/store/storetest"
	"tradeledger/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo, nil)
	require.NoError(t, err)
	ctx := context.Background()

	result, err := use.Register(ctx, RegisterRequest{
		UserID:      "uid:0",
		FullName:    "First Trader",
		OpenBalance: storetest.Dec("10000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "uid:0", result.UserID)
	assert.Equal(t, "10000.00", result.Balance.StringFixed(2))
	assert.Equal(t, "10000.00", result.OpenBalance.StringFixed(2))
	assert.NotZero(t, result.AccountID)

	exists, err := repo.ProfileExists(ctx, "uid:0")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = use.Register(ctx, RegisterRequest{UserID: "uid:0", OpenBalance: storetest.Dec("1")})
	require.ErrorIs(t, err, exception.ErrBadRequest)
	_, err = use.Register(ctx, RegisterRequest{UserID: "uid:1", OpenBalance: storetest.Dec("-1")})
	require.ErrorIs(t, err, exception.ErrBadRequest)
	_, err = use.Register(ctx, RegisterRequest{UserID: "  "})
	require.ErrorIs(t, err, exception.ErrBadRequest)

	exists, err = repo.ProfileExists(ctx, "uid:1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoginLogout(t *testing.T) {
	repo := storetest.Open(t)
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	use, err := NewUsecase(repo, func() time.Time { return at })
	require.NoError(t, err)
	ctx := context.Background()
	storetest.SeedAccount(t, repo, "uid:0", "100")

	result, err := use.Login(ctx, "uid:0")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LoginCount)
	require.NotNil(t, result.LastLogin)
	assert.True(t, at.Equal(*result.LastLogin))

	require.NoError(t, use.Logout(ctx, "uid:0"))
	account, err := use.Account(ctx, "uid:0")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.LogoutCount)

	_, err = use.Login(ctx, "uid:9")
	require.ErrorIs(t, err, exception.ErrNotFound)
	require.ErrorIs(t, use.Logout(ctx, ""), exception.ErrBadRequest)
}

func TestPortfolioSummary(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo, nil)
	require.NoError(t, err)
	orders, err := order.NewUsecase(repo, order.Option{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = use.Register(ctx, RegisterRequest{UserID: "uid:0", OpenBalance: storetest.Dec("10000")})
	require.NoError(t, err)
	storetest.SeedQuote(t, repo, "AAPL", "150", "0")
	storetest.SeedQuote(t, repo, "IBM", "100", "0")

	_, err = orders.Buy(ctx, "uid:0", "AAPL", 10)
	require.NoError(t, err)
	_, err = orders.Buy(ctx, "uid:0", "IBM", 2)
	require.NoError(t, err)

	summary, err := use.PortfolioSummary(ctx, "uid:0")
	require.NoError(t, err)
	// 10000 - 1509.95 - 209.95
	assert.Equal(t, "8280.10", summary.Balance.StringFixed(2))
	assert.Equal(t, "1700.00", summary.HoldingsValue.StringFixed(2))
	assert.Equal(t, 2, summary.HoldingCount)
	assert.Equal(t, "9980.10", summary.TotalValue.StringFixed(2))
	assert.Equal(t, "-1719.90", summary.Gain.StringFixed(2))
	assert.Equal(t, "-17.00", summary.GainPercent.StringFixed(2))

	_, err = use.PortfolioSummary(ctx, "uid:9")
	require.ErrorIs(t, err, exception.ErrNotFound)
}

func TestPortfolioSummaryZeroOpenBalance(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo, nil)
	require.NoError(t, err)
	storetest.SeedAccount(t, repo, "uid:0", "0")

	summary, err := use.PortfolioSummary(context.Background(), "uid:0")
	require.NoError(t, err)
	assert.True(t, summary.GainPercent.IsZero())
	assert.Zero(t, summary.HoldingCount)
}
