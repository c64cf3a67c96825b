package main

import (
	"context"
	"io"

	"tradeledger/internal/account"
	"tradeledger/internal/market"
	"tradeledger/internal/obs"
	"tradeledger/internal/ops"
	"tradeledger/internal/order"
	"tradeledger/internal/quote"
	"tradeledger/internal/store"
	"tradeledger/pkg/conn"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

type app struct {
	cfg     ops.Loaded
	client  *conn.Client
	repo    *store.Gorm
	metrics *obs.Metrics

	orders   *order.Usecase
	accounts *account.Usecase
	quotes   *quote.Usecase
	market   *market.Cache
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := ops.Load(configPath)
	if err != nil {
		return nil, err
	}

	client, err := conn.New(cfg.Database)
	if err != nil {
		return nil, err
	}

	a, err := newApp(ctx, cfg, client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, cfg ops.Loaded, client *conn.Client) (*app, error) {
	repo := store.NewGorm(client.DB())
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}

	metrics := obs.NewMetrics()
	cfg.Order.Metrics = metrics
	cfg.Market.Metrics = metrics

	orders, err := order.NewUsecase(repo, cfg.Order)
	if err != nil {
		return nil, errors.Wrap(err, "order usecase")
	}
	accounts, err := account.NewUsecase(repo, nil)
	if err != nil {
		return nil, err
	}
	quotes, err := quote.NewUsecase(repo)
	if err != nil {
		return nil, err
	}
	cache, err := market.NewCache(repo, cfg.Market)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		client:   client,
		repo:     repo,
		metrics:  metrics,
		orders:   orders,
		accounts: accounts,
		quotes:   quotes,
		market:   cache,
	}, nil
}

func (a *app) Close() error {
	return a.client.Close()
}

// withApp opens the ledger for the duration of fn.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
