package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"tradeledger/internal/ops"
	"tradeledger/pkg/conn"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	cfg, err := ops.Load("")
	require.NoError(t, err)
	cfg.Database = conn.Option{Driver: conn.DriverSQLite, Path: filepath.Join(t.TempDir(), "ledger.db")}

	client, err := conn.New(cfg.Database)
	require.NoError(t, err)
	a, err := newApp(context.Background(), cfg, client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSeedAndTrade(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, a, 3, 2, decimal.RequireFromString("10000")))

	quotes, err := a.quotes.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.Equal(t, "S:0", quotes[0].Symbol)

	result, err := a.orders.Buy(ctx, "uid:1", "S:0", 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, result))

	var decoded map[string]any
	require.NoError(t, sonic.ConfigStd.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "buy", decoded["orderType"])
	assert.Equal(t, "closed", decoded["orderStatus"])
	assert.Equal(t, "S:0", decoded["symbol"])
	assert.Equal(t, "9.95", decoded["orderFee"])

	summary, err := a.market.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.QuoteCount)
	assert.Equal(t, 1.0, summary.TotalVolume)
}

func TestAccountRequest(t *testing.T) {
	req := accountRequest("uid:7", decimal.NewFromInt(5))
	assert.Equal(t, "uid:7", req.UserID)
	assert.Equal(t, "uid:7@ledger.local", req.Email)
	assert.Equal(t, "5", req.OpenBalance.String())
}
