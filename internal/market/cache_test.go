package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/internal/store/storetest"
	"tradeledger/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yanun0323/pkg/sys"
)

func symbols(results []model.QuoteResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Symbol)
	}
	return out
}

func TestBuild(t *testing.T) {
	quotes := []model.Quote{
		{Symbol: "UP5", Price: storetest.Dec("10"), Open: storetest.Dec("5"), Change: storetest.Dec("5"), Volume: 1},
		{Symbol: "DN5", Price: storetest.Dec("20"), Open: storetest.Dec("25"), Change: storetest.Dec("-5"), Volume: 2},
		{Symbol: "UP3", Price: storetest.Dec("30"), Open: storetest.Dec("27"), Change: storetest.Dec("3"), Volume: 3},
		{Symbol: "DN3", Price: storetest.Dec("40"), Open: storetest.Dec("43"), Change: storetest.Dec("-3"), Volume: 4},
		{Symbol: "FLAT", Price: storetest.Dec("50.01"), Open: storetest.Dec("50.01"), Change: storetest.Dec("0"), Volume: 5},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	snap := Build(quotes, 2, now)
	assert.Equal(t, []string{"UP5", "UP3"}, symbols(snap.Gainers))
	assert.Equal(t, []string{"DN5", "DN3"}, symbols(snap.Losers))
	// 150.01 / 5
	assert.Equal(t, "30.00", snap.Index.StringFixed(2))
	assert.Equal(t, "30.00", snap.OpenIndex.StringFixed(2))
	assert.Equal(t, 15.0, snap.TotalVolume)
	assert.Equal(t, 5, snap.QuoteCount)
	assert.Equal(t, now, snap.UpdatedAt)
	assert.Equal(t, "UP5", quotes[0].Symbol, "input is not reordered")
}

func TestBuildIndexRoundsHalfUp(t *testing.T) {
	quotes := []model.Quote{
		{Symbol: "A", Price: storetest.Dec("1.01"), Open: storetest.Dec("1")},
		{Symbol: "B", Price: storetest.Dec("1.04"), Open: storetest.Dec("1")},
	}

	snap := Build(quotes, 5, time.Now())
	assert.Equal(t, "1.03", snap.Index.StringFixed(2))
	assert.Equal(t, "3.00", snap.GainPercent.StringFixed(2))
	assert.Len(t, snap.Gainers, 2)
	assert.Equal(t, []string{"B", "A"}, symbols(snap.Losers), "equal changes fall back to symbol order")
}

func TestBuildEmpty(t *testing.T) {
	snap := Build(nil, 5, time.Now())
	assert.NotNil(t, snap.Gainers)
	assert.NotNil(t, snap.Losers)
	assert.True(t, snap.Index.IsZero())
}

func TestCacheSummary(t *testing.T) {
	repo := storetest.Open(t)
	ctx := context.Background()
	metrics := obs.NewMetrics()
	cache, err := NewCache(repo, Option{TopN: 1, Metrics: metrics})
	require.NoError(t, err)

	snap, err := cache.Summary(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Gainers)
	assert.Zero(t, snap.QuoteCount)

	storetest.SeedQuote(t, repo, "AAPL", "150", "2")
	storetest.SeedQuote(t, repo, "IBM", "100", "-1")

	snap, err = cache.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "125.00", snap.Index.StringFixed(2))
	assert.Equal(t, []string{"AAPL"}, symbols(snap.Gainers))
	assert.Equal(t, []string{"IBM"}, symbols(snap.Losers))

	storetest.SeedQuote(t, repo, "MSFT", "200", "9")
	snap, err = cache.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.QuoteCount, "reads serve the cached summary until the next refresh")

	require.NoError(t, cache.Refresh(ctx))
	snap, err = cache.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.QuoteCount)
	assert.Equal(t, []string{"MSFT"}, symbols(snap.Gainers))
	assert.Equal(t, uint64(3), metrics.Snapshot().RefreshLatency.Count)
}

var _ store.Quotes = failingQuotes{}

type failingQuotes struct {
	err error
}

func (f failingQuotes) Quote(context.Context, string) (model.Quote, error) {
	return model.Quote{}, f.err
}

func (f failingQuotes) QuoteForUpdate(context.Context, string) (model.Quote, error) {
	return model.Quote{}, f.err
}

func (f failingQuotes) Quotes(context.Context) ([]model.Quote, error) {
	return nil, f.err
}

func (f failingQuotes) QuotesByChange(context.Context) ([]model.Quote, error) {
	return nil, f.err
}

func (f failingQuotes) CreateQuote(context.Context, model.Quote) error {
	return f.err
}

func (f failingQuotes) UpdateQuote(context.Context, string, store.QuoteUpdate) error {
	return f.err
}

func (f failingQuotes) AddVolume(context.Context, string, float64) error {
	return f.err
}

func TestCacheRefreshError(t *testing.T) {
	errDown := errors.New("database down")
	cache, err := NewCache(failingQuotes{err: errDown}, Option{})
	require.NoError(t, err)

	_, err = cache.Summary(context.Background())
	require.ErrorIs(t, err, errDown)

	_, err = NewCache(nil, Option{})
	require.ErrorIs(t, err, exception.ErrNilInstance)
}

func TestCacheRun(t *testing.T) {
	repo := storetest.Open(t)
	storetest.SeedQuote(t, repo, "AAPL", "150", "2")
	cache, err := NewCache(repo, Option{Interval: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		cache.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return cache.current.Load() != nil
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestCacheConcurrentReaders(t *testing.T) {
	repo := storetest.Open(t)
	storetest.SeedQuote(t, repo, "AAPL", "150", "2")
	cache, err := NewCache(repo, Option{})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cache.Refresh(ctx))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				snap, err := cache.Summary(ctx)
				if assert.NoError(t, err) {
					assert.Equal(t, 1, snap.QuoteCount)
				}
			}
		}()
	}
	for range 5 {
		require.NoError(t, cache.Refresh(ctx))
	}
	wg.Wait()
}

func TestCacheSummaryMeasure(t *testing.T) {
	repo := storetest.Open(t)
	storetest.SeedQuote(t, repo, "AAPL", "150", "2")
	cache, err := NewCache(repo, Option{})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cache.Refresh(ctx))

	alloc, bytes := sys.MeasureMem(func() {
		for range 1000 {
			_, _ = cache.Summary(ctx)
		}
	})
	t.Logf("a: %d, b: %d", alloc, bytes)
}
