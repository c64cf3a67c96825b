package order

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"tradeledger/internal/fee"
	"tradeledger/internal/model"
	"tradeledger/internal/obs"
	"tradeledger/internal/store"
	"tradeledger/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 64
)

// ProcessingMode decides when a new order is settled.
type ProcessingMode uint8

const (
	// ModeSync settles the order in the transaction that created it.
	ModeSync ProcessingMode = iota
	// ModeAsync commits the open order and leaves settlement to the workers.
	ModeAsync
)

func (m ProcessingMode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	default:
		return "unknown"
	}
}

// ParseMode accepts "sync", "async" or an empty string for sync.
func ParseMode(s string) (ProcessingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sync":
		return ModeSync, nil
	case "async":
		return ModeAsync, nil
	default:
		return ModeSync, errors.Errorf("unknown processing mode %q", s)
	}
}

type Option struct {
	// Fee is the commission table; nil selects fee.Default().
	Fee       *fee.Policy
	Mode      ProcessingMode
	Workers   int
	QueueSize int
	Metrics   *obs.Metrics
	Now       func() time.Time
}

// Usecase is the order engine. Every public operation runs in a single store
// transaction.
type Usecase struct {
	repo    store.Repository
	fee     fee.Policy
	mode    ProcessingMode
	metrics *obs.Metrics
	now     func() time.Time

	running atomic.Bool
	worker  int
	queue   chan int64
}

func NewUsecase(repo store.Repository, opt Option) (*Usecase, error) {
	if repo == nil {
		return nil, exception.ErrOrderNilRepository
	}

	policy := fee.Default()
	if opt.Fee != nil {
		policy = *opt.Fee
	}
	if !policy.Valid() {
		return nil, errors.Wrap(exception.ErrInvalidArgument, "negative fee")
	}
	if opt.Now == nil {
		opt.Now = func() time.Time { return time.Now().UTC() }
	}

	use := &Usecase{
		repo:    repo,
		fee:     policy,
		mode:    opt.Mode,
		metrics: opt.Metrics,
		now:     opt.Now,
	}

	switch opt.Mode {
	case ModeSync:
	case ModeAsync:
		if opt.Workers < 0 || opt.QueueSize < 0 {
			return nil, exception.ErrOrderInvalidWorker
		}
		if opt.Workers == 0 {
			opt.Workers = defaultWorkers
		}
		if opt.QueueSize == 0 {
			opt.QueueSize = defaultQueueSize
		}
		use.worker = opt.Workers
		use.queue = make(chan int64, opt.QueueSize)
	default:
		return nil, errors.Wrapf(exception.ErrInvalidArgument, "processing mode %d", opt.Mode)
	}

	return use, nil
}

func (use *Usecase) Mode() ProcessingMode {
	return use.mode
}

// Run starts the settlement workers in async mode. It returns immediately and
// is a no-op in sync mode or when already running.
func (use *Usecase) Run(ctx context.Context) {
	if use.mode != ModeAsync || use.running.Swap(true) {
		return
	}

	for range use.worker {
		go workerCompleteOrder(ctx, use.queue, use)
	}
}

func (use *Usecase) enqueue(orderID int64) error {
	select {
	case use.queue <- orderID:
		return nil
	default:
		use.metrics.Inc(obs.EventQueueDrop)
		return errors.Wrapf(exception.ErrOrderQueueFull, "order %d stays open", orderID)
	}
}

func workerCompleteOrder(ctx context.Context, ch chan int64, use *Usecase) {
	for {
		select {
		case orderID := <-ch:
			if _, err := use.CompleteOrder(ctx, orderID); err != nil {
				if isHoldingSold(err) {
					logs.Infof("order %d cancelled during settlement, err: %+v", orderID, err)
					continue
				}
				logs.Errorf("complete order %d, err: %+v", orderID, err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (use *Usecase) observe(start time.Time) {
	use.metrics.ObserveOrderFlow(time.Since(start))
}

func (use *Usecase) accountID(ctx context.Context, repo store.Repository, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, errors.Wrap(exception.ErrBadRequest, "empty user id")
	}
	return repo.AccountIDByUser(ctx, strings.TrimSpace(userID))
}

func newCancelledSell(accountID int64, summary store.HoldingSummary, now time.Time) model.Order {
	return model.Order{
		Type:           model.OrderTypeSell,
		Status:         model.OrderStatusCancelled,
		Quantity:       summary.Quantity,
		Price:          model.Round(summary.Price),
		OpenDate:       now,
		CompletionDate: &now,
		AccountID:      accountID,
		Symbol:         summary.Symbol,
	}
}
