package obs

import (
	"sync/atomic"
	"time"
)

// Event is a countable ledger outcome.
type Event uint8

const (
	EventBuy Event = iota
	EventSell
	EventSellLostRace
	EventInsufficientFunds
	EventCancel
	EventComplete
	EventAcknowledge
	EventQueueDrop
	_event_end
)

func (e Event) String() string {
	switch e {
	case EventBuy:
		return "buy"
	case EventSell:
		return "sell"
	case EventSellLostRace:
		return "sell_lost_race"
	case EventInsufficientFunds:
		return "insufficient_funds"
	case EventCancel:
		return "cancel"
	case EventComplete:
		return "complete"
	case EventAcknowledge:
		return "acknowledge"
	case EventQueueDrop:
		return "queue_drop"
	default:
		return "unknown"
	}
}

// Metrics collects lightweight counters and latency stats. A nil *Metrics
// ignores every call.
type Metrics struct {
	events [_event_end]uint64

	orderFlowLatency LatencyStats
	refreshLatency   LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64        `json:"count"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Avg   time.Duration `json:"avg"`
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Events           map[string]uint64 `json:"events"`
	OrderFlowLatency LatencySnapshot   `json:"orderFlowLatency"`
	RefreshLatency   LatencySnapshot   `json:"refreshLatency"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments the counter of e.
func (m *Metrics) Inc(e Event) {
	if m == nil || e >= _event_end {
		return
	}
	atomic.AddUint64(&m.events[e], 1)
}

// Count returns the current counter of e.
func (m *Metrics) Count(e Event) uint64 {
	if m == nil || e >= _event_end {
		return 0
	}
	return atomic.LoadUint64(&m.events[e])
}

// ObserveOrderFlow measures one buy, sell, cancel or completion.
func (m *Metrics) ObserveOrderFlow(d time.Duration) {
	if m == nil {
		return
	}
	m.orderFlowLatency.Observe(d)
}

// ObserveRefresh measures one market summary recomputation.
func (m *Metrics) ObserveRefresh(d time.Duration) {
	if m == nil {
		return
	}
	m.refreshLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	events := make(map[string]uint64)
	for i := range m.events {
		if v := atomic.LoadUint64(&m.events[i]); v > 0 {
			events[Event(i).String()] = v
		}
	}
	return Snapshot{
		Events:           events,
		OrderFlowLatency: m.orderFlowLatency.Snapshot(),
		RefreshLatency:   m.refreshLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(atomic.LoadUint64(&l.min)),
		Max:   time.Duration(atomic.LoadUint64(&l.max)),
		Avg:   time.Duration(atomic.LoadUint64(&l.sum) / count),
	}
}
