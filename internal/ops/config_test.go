package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradeledger/internal/order"
	"tradeledger/pkg/conn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvDBDriver, EnvDBDSN, EnvDBPath, EnvProfilingAddr} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, conn.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "ledger.db", cfg.Database.Path)
	assert.Equal(t, "9.95", cfg.Order.Fee.Buy.StringFixed(2))
	assert.Equal(t, "9.95", cfg.Order.Fee.Sell.StringFixed(2))
	assert.Equal(t, order.ModeSync, cfg.Order.Mode)
	assert.Equal(t, 20*time.Second, cfg.Market.Interval)
	assert.Equal(t, 5, cfg.Market.TopN)
	assert.Empty(t, cfg.Profiling.ServerAddress)
	assert.Equal(t, "tradeledger", cfg.Profiling.ApplicationName)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  driver: postgres
  host: db.internal
  port: 6543
  user: ledger
  password: secret
  database: trade
  sslmode: require
  max_open_conns: 20
trading:
  buy_fee: "24.95"
  sell_fee: "0"
  mode: async
  workers: 8
  queue_size: 128
market:
  refresh_interval: 5s
  top_n: 3
profiling:
  server_address: http://pyroscope:4040
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, conn.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "24.95", cfg.Order.Fee.Buy.StringFixed(2))
	assert.True(t, cfg.Order.Fee.Sell.IsZero())
	assert.Equal(t, order.ModeAsync, cfg.Order.Mode)
	assert.Equal(t, 8, cfg.Order.Workers)
	assert.Equal(t, 128, cfg.Order.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.Market.Interval)
	assert.Equal(t, 3, cfg.Market.TopN)
	assert.Equal(t, "http://pyroscope:4040", cfg.Profiling.ServerAddress)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database:
  driver: sqlite
  path: file.db
`)
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBDSN, "postgres://ledger@localhost/trade")
	t.Setenv(EnvProfilingAddr, "http://localhost:4040")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, conn.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://ledger@localhost/trade", cfg.Database.ConnString)
	assert.Equal(t, "http://localhost:4040", cfg.Profiling.ServerAddress)

	t.Setenv(EnvDBDriver, "sqlite")
	t.Setenv(EnvDBPath, "/tmp/other.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	testCases := []struct {
		desc    string
		content string
	}{
		{desc: "driver", content: "database:\n  driver: mysql\n"},
		{desc: "fee", content: "trading:\n  buy_fee: cheap\n"},
		{desc: "negative fee", content: "trading:\n  sell_fee: \"-1\"\n"},
		{desc: "mode", content: "trading:\n  mode: batch\n"},
		{desc: "workers", content: "trading:\n  workers: -1\n"},
		{desc: "interval", content: "market:\n  refresh_interval: soon\n"},
		{desc: "top n", content: "market:\n  top_n: -2\n"},
		{desc: "yaml", content: "database: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
