package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNotional(t *testing.T) {
	testCases := []struct {
		desc     string
		price    string
		quantity float64
		expected string
	}{
		{"whole shares", "150", 10, "1500.00"},
		{"fractional shares", "33.33", 1.5, "50.00"},
		{"half cent rounds up", "0.05", 0.5, "0.03"},
		{"zero quantity", "150", 0, "0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Notional(decimal.RequireFromString(tc.price), tc.quantity)
			assert.Equal(t, tc.expected, got.StringFixed(Scale))
		})
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, "33.34", Average(decimal.RequireFromString("100.01"), 3).StringFixed(Scale))
	assert.Equal(t, "0.01", Average(decimal.RequireFromString("0.01"), 2).StringFixed(Scale))
	assert.True(t, Average(decimal.RequireFromString("10"), 0).IsZero())
}

func TestGainPercent(t *testing.T) {
	assert.Equal(t, "-15.00", GainPercent(decimal.RequireFromString("8490.05"), decimal.RequireFromString("10000")).StringFixed(Scale))
	assert.Equal(t, "50.00", GainPercent(decimal.RequireFromString("150"), decimal.RequireFromString("100")).StringFixed(Scale))
	assert.True(t, GainPercent(decimal.RequireFromString("150"), decimal.Zero).IsZero())
}

func TestOrderStatus(t *testing.T) {
	testCases := []struct {
		status   OrderStatus
		text     string
		terminal bool
	}{
		{OrderStatusOpen, "open", false},
		{OrderStatusClosed, "closed", true},
		{OrderStatusCancelled, "cancelled", true},
		{OrderStatusCompleted, "completed", true},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			assert.True(t, tc.status.IsAvailable())
			assert.Equal(t, tc.text, tc.status.String())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
		})
	}

	assert.False(t, _order_status_end.IsAvailable())
	assert.Equal(t, "unknown", OrderStatus(0).String())
}
