package ops

import (
	"os"
	"strings"
	"time"

	"tradeledger/internal/fee"
	"tradeledger/internal/market"
	"tradeledger/internal/order"
	"tradeledger/pkg/conn"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"gopkg.in/yaml.v3"
)

const (
	EnvDBDriver      = "LEDGER_DB_DRIVER"
	EnvDBDSN         = "LEDGER_DB_DSN"
	EnvDBPath        = "LEDGER_DB_PATH"
	EnvProfilingAddr = "LEDGER_PROFILING_ADDR"

	defaultSQLitePath  = "ledger.db"
	defaultApplication = "tradeledger"
)

// FileConfig mirrors the YAML config layout.
type FileConfig struct {
	Database  DatabaseConfig  `yaml:"database"`
	Trading   TradingConfig   `yaml:"trading"`
	Market    MarketConfig    `yaml:"market"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

// DatabaseConfig selects the store backend.
type DatabaseConfig struct {
	Driver       string            `yaml:"driver"`
	DSN          string            `yaml:"dsn"`
	Path         string            `yaml:"path"`
	Host         string            `yaml:"host"`
	Port         int               `yaml:"port"`
	User         string            `yaml:"user"`
	Password     string            `yaml:"password"`
	Database     string            `yaml:"database"`
	SSLMode      string            `yaml:"sslmode"`
	Params       map[string]string `yaml:"params"`
	MaxOpenConns int               `yaml:"max_open_conns"`
}

// TradingConfig describes fees and order processing. Fees are decimal strings.
type TradingConfig struct {
	BuyFee    string `yaml:"buy_fee"`
	SellFee   string `yaml:"sell_fee"`
	Mode      string `yaml:"mode"`
	Workers   int    `yaml:"workers"`
	QueueSize int    `yaml:"queue_size"`
}

// MarketConfig tunes the market summary cache.
type MarketConfig struct {
	RefreshInterval string `yaml:"refresh_interval"`
	TopN            int    `yaml:"top_n"`
}

// ProfilingConfig enables continuous profiling when ServerAddress is set.
type ProfilingConfig struct {
	ServerAddress   string `yaml:"server_address"`
	ApplicationName string `yaml:"application_name"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Database  conn.Option
	Order     order.Option
	Market    market.Option
	Profiling ProfilingConfig
}

// Load reads a YAML config file, applies environment overrides and fills
// defaults. An empty path loads defaults only.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, errors.Wrapf(err, "parse config %s", path)
		}
	}

	applyEnvOverrides(&cfg)
	return resolve(cfg)
}

func applyEnvOverrides(cfg *FileConfig) {
	if v := os.Getenv(EnvDBDriver); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv(EnvProfilingAddr); v != "" {
		cfg.Profiling.ServerAddress = v
	}
}

func resolve(cfg FileConfig) (Loaded, error) {
	database, err := resolveDatabase(cfg.Database)
	if err != nil {
		return Loaded{}, err
	}
	orderOpt, err := resolveOrder(cfg.Trading)
	if err != nil {
		return Loaded{}, err
	}
	marketOpt, err := resolveMarket(cfg.Market)
	if err != nil {
		return Loaded{}, err
	}

	profiling := cfg.Profiling
	if profiling.ApplicationName == "" {
		profiling.ApplicationName = defaultApplication
	}

	return Loaded{
		Database:  database,
		Order:     orderOpt,
		Market:    marketOpt,
		Profiling: profiling,
	}, nil
}

func resolveDatabase(cfg DatabaseConfig) (conn.Option, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", conn.DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = defaultSQLitePath
		}
		return conn.Option{Driver: conn.DriverSQLite, Path: path}, nil
	case conn.DriverPostgres:
		return conn.Option{
			Driver:       conn.DriverPostgres,
			ConnString:   cfg.DSN,
			Host:         cfg.Host,
			Port:         cfg.Port,
			User:         cfg.User,
			Password:     cfg.Password,
			Database:     cfg.Database,
			SSLMode:      cfg.SSLMode,
			Params:       cfg.Params,
			MaxOpenConns: cfg.MaxOpenConns,
		}, nil
	default:
		return conn.Option{}, errors.Errorf("database driver not supported: %s", cfg.Driver)
	}
}

func resolveOrder(cfg TradingConfig) (order.Option, error) {
	policy := fee.Default()
	if cfg.BuyFee != "" {
		d, err := decimal.NewFromString(cfg.BuyFee)
		if err != nil {
			return order.Option{}, errors.Wrapf(err, "buy fee %q", cfg.BuyFee)
		}
		policy.Buy = d
	}
	if cfg.SellFee != "" {
		d, err := decimal.NewFromString(cfg.SellFee)
		if err != nil {
			return order.Option{}, errors.Wrapf(err, "sell fee %q", cfg.SellFee)
		}
		policy.Sell = d
	}
	if !policy.Valid() {
		return order.Option{}, errors.Errorf("fees must be >= 0, buy %s sell %s", policy.Buy, policy.Sell)
	}

	mode, err := order.ParseMode(cfg.Mode)
	if err != nil {
		return order.Option{}, err
	}
	if cfg.Workers < 0 || cfg.QueueSize < 0 {
		return order.Option{}, errors.Errorf("workers and queue_size must be >= 0")
	}

	return order.Option{
		Fee:       &policy,
		Mode:      mode,
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
	}, nil
}

func resolveMarket(cfg MarketConfig) (market.Option, error) {
	opt := market.Option{
		Interval: market.DefaultInterval,
		TopN:     market.DefaultTopN,
	}
	if cfg.RefreshInterval != "" {
		d, err := time.ParseDuration(cfg.RefreshInterval)
		if err != nil {
			return market.Option{}, errors.Wrapf(err, "refresh interval %q", cfg.RefreshInterval)
		}
		if d <= 0 {
			return market.Option{}, errors.Errorf("refresh interval must be > 0")
		}
		opt.Interval = d
	}
	if cfg.TopN < 0 {
		return market.Option{}, errors.Errorf("top_n must be >= 0")
	}
	if cfg.TopN > 0 {
		opt.TopN = cfg.TopN
	}
	return opt, nil
}
