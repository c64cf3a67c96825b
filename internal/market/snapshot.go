package market

import (
	"slices"
	"time"

	"tradeledger/internal/model"

	"github.com/shopspring/decimal"
)

// Snapshot is one immutable market summary. Readers share it and must not
// modify its slices.
type Snapshot struct {
	Index       decimal.Decimal     `json:"index"`
	OpenIndex   decimal.Decimal     `json:"openIndex"`
	GainPercent decimal.Decimal     `json:"gainPercent"`
	TotalVolume float64             `json:"totalVolume"`
	QuoteCount  int                 `json:"quoteCount"`
	Gainers     []model.QuoteResult `json:"topGainers"`
	Losers      []model.QuoteResult `json:"topLosers"`
	UpdatedAt   time.Time           `json:"summaryDate"`
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Index:       decimal.Zero,
		OpenIndex:   decimal.Zero,
		GainPercent: decimal.Zero,
		Gainers:     []model.QuoteResult{},
		Losers:      []model.QuoteResult{},
	}
}

// Build summarizes quotes. Gainers are the topN highest changes in descending
// order; losers are the topN lowest changes in ascending order. Ties keep
// symbol order.
func Build(quotes []model.Quote, topN int, now time.Time) Snapshot {
	if len(quotes) == 0 {
		return emptySnapshot()
	}

	sorted := slices.Clone(quotes)
	slices.SortStableFunc(sorted, func(a, b model.Quote) int {
		if c := b.Change.Cmp(a.Change); c != 0 {
			return c
		}
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		default:
			return 0
		}
	})

	price, open := decimal.Zero, decimal.Zero
	var volume float64
	for _, q := range sorted {
		price = price.Add(q.Price)
		open = open.Add(q.Open)
		volume += q.Volume
	}

	n := min(max(topN, 0), len(sorted))
	gainers := make([]model.QuoteResult, 0, n)
	for _, q := range sorted[:n] {
		gainers = append(gainers, model.NewQuoteResult(q))
	}
	losers := make([]model.QuoteResult, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		losers = append(losers, model.NewQuoteResult(sorted[i]))
	}

	index := model.Average(price, len(sorted))
	openIndex := model.Average(open, len(sorted))
	return Snapshot{
		Index:       index,
		OpenIndex:   openIndex,
		GainPercent: model.GainPercent(index, openIndex),
		TotalVolume: volume,
		QuoteCount:  len(sorted),
		Gainers:     gainers,
		Losers:      losers,
		UpdatedAt:   now,
	}
}
