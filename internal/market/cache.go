// Package market keeps the market summary served to every reader.
//
// One writer recomputes the summary on a schedule and swaps it in whole;
// readers load the current pointer without locking.
package market

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

const (
	DefaultInterval = 20 * time.Second
	DefaultTopN     = 5
)

type Option struct {
	Interval time.Duration
	TopN     int
	Metrics  *obs.Metrics
	Now      func() time.Time
}

type Cache struct {
	quotes   store.Quotes
	interval time.Duration
	topN     int
	metrics  *obs.Metrics
	now      func() time.Time

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

func NewCache(quotes store.Quotes, opt Option) (*Cache, error) {
	if quotes == nil {
		return nil, errors.Wrap(exception.ErrNilInstance, "market cache quotes")
	}
	if opt.Interval <= 0 {
		opt.Interval = DefaultInterval
	}
	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}
	if opt.Now == nil {
		opt.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Cache{
		quotes:   quotes,
		interval: opt.Interval,
		topN:     opt.TopN,
		metrics:  opt.Metrics,
		now:      opt.Now,
	}, nil
}

// Refresh recomputes the summary from the quote store. An empty quote table
// leaves the previous summary in place.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	defer func() { c.metrics.ObserveRefresh(time.Since(start)) }()

	quotes, err := c.quotes.QuotesByChange(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh market summary")
	}
	if len(quotes) == 0 {
		return nil
	}

	snap := Build(quotes, c.topN, c.now())
	c.current.Store(&snap)
	return nil
}

// Summary returns the current summary. The first call before any refresh
// computes one synchronously; with no quotes at all it returns an empty
// summary.
func (c *Cache) Summary(ctx context.Context) (Snapshot, error) {
	if snap := c.current.Load(); snap != nil {
		return *snap, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return Snapshot{}, err
	}

	if snap := c.current.Load(); snap != nil {
		return *snap, nil
	}
	return emptySnapshot(), nil
}

// Run refreshes the summary every interval until ctx is done or the process
// shuts down.
func (c *Cache) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				logs.Errorf("market summary refresh, err: %+v", err)
			}
		case <-ctx.Done():
			return
		case <-sys.Shutdown():
			return
		}
	}
}
