package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"tradeledger/internal/quote"

	"github.com/grafana/pyroscope-go"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var (
		simulate      time.Duration
		statsInterval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the market summary refresher, settlement workers and an optional market simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				return serve(cmd.Context(), a, simulate, statsInterval)
			})
		},
	}
	cmd.Flags().DurationVar(&simulate, "simulate", 0, "Move every quote by a random factor at this interval (0=disable)")
	cmd.Flags().DurationVar(&statsInterval, "stats-interval", time.Minute, "Log market and order stats at this interval")
	return cmd
}

func serve(ctx context.Context, a *app, simulate, statsInterval time.Duration) error {
	if addr := a.cfg.Profiling.ServerAddress; addr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: a.cfg.Profiling.ApplicationName,
			ServerAddress:   addr,
			Logger:          profilerLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return err
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.market.Refresh(ctx); err != nil {
		return err
	}
	a.orders.Run(ctx)
	logs.Infof("ledger serving, order mode %s", a.orders.Mode())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.market.Run(gctx)
		cancel()
		return nil
	})
	g.Go(func() error {
		select {
		case <-sys.Shutdown():
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	if simulate > 0 {
		g.Go(func() error {
			return simulateMarket(gctx, a, simulate)
		})
	}
	if statsInterval > 0 {
		g.Go(func() error {
			return logStats(gctx, a, statsInterval)
		})
	}

	err := g.Wait()
	logs.Infof("ledger stopped, metrics %+v", a.metrics.Snapshot())
	return err
}

func simulateMarket(ctx context.Context, a *app, interval time.Duration) error {
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			quotes, err := a.quotes.List(ctx)
			if err != nil {
				logs.Errorf("simulate market, list quotes, err: %+v", err)
				continue
			}
			for _, q := range quotes {
				shares := float64(r.IntN(1000))
				if _, err := a.quotes.UpdatePriceVolume(ctx, q.Symbol, quote.RandomFactor(r), shares); err != nil {
					logs.Errorf("simulate market, move %s, err: %+v", q.Symbol, err)
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func logStats(ctx context.Context, a *app, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			summary, err := a.market.Summary(ctx)
			if err != nil {
				logs.Errorf("market summary, err: %+v", err)
				continue
			}
			logs.Infof("index %s (open %s, %s%%), volume %.0f, quotes %d, events %v",
				summary.Index.StringFixed(2), summary.OpenIndex.StringFixed(2),
				summary.GainPercent.StringFixed(2), summary.TotalVolume, summary.QuoteCount,
				a.metrics.Snapshot().Events)
		case <-ctx.Done():
			return nil
		}
	}
}

func seedCmd() *cobra.Command {
	var (
		quotes  int
		users   int
		balance string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate quotes S:0..S:n-1 and users uid:0..uid:m-1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, err := decimal.NewFromString(balance)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				return seed(cmd.Context(), a, quotes, users, open)
			})
		},
	}
	cmd.Flags().IntVar(&quotes, "quotes", 10, "Number of quotes")
	cmd.Flags().IntVar(&users, "users", 5, "Number of users")
	cmd.Flags().StringVar(&balance, "balance", "100000", "Opening balance of every user")
	return cmd
}

func seed(ctx context.Context, a *app, quotes, users int, balance decimal.Decimal) error {
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	for i := range quotes {
		symbol := fmt.Sprintf("S:%d", i)
		price := decimal.NewFromFloat(1 + r.Float64()*199).Round(2)
		if _, err := a.quotes.Create(ctx, symbol, fmt.Sprintf("S%d Incorporated", i), price); err != nil {
			return err
		}
	}
	for i := range users {
		if _, err := a.accounts.Register(ctx, accountRequest(fmt.Sprintf("uid:%d", i), balance)); err != nil {
			return err
		}
	}
	logs.Infof("seeded %d quotes and %d users", quotes, users)
	return nil
}

type profilerLogger struct{}

func (profilerLogger) Infof(format string, args ...interface{})  { logs.Infof(format, args...) }
func (profilerLogger) Debugf(_ string, _ ...interface{})         {}
func (profilerLogger) Errorf(format string, args ...interface{}) { logs.Errorf(format, args...) }
