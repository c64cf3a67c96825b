package order

import (
	"testing"

	"tradeledger/internal/model"
	"tradeledger/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	testCases := []struct {
		from, to model.OrderStatus
		wantErr  error
	}{
		{model.OrderStatusOpen, model.OrderStatusClosed, nil},
		{model.OrderStatusOpen, model.OrderStatusCancelled, nil},
		{model.OrderStatusClosed, model.OrderStatusCompleted, nil},
		{model.OrderStatusOpen, model.OrderStatusCompleted, exception.ErrOrderInvalidTransition},
		{model.OrderStatusClosed, model.OrderStatusClosed, exception.ErrAlreadyCompleted},
		{model.OrderStatusClosed, model.OrderStatusCancelled, exception.ErrAlreadyCompleted},
		{model.OrderStatusCompleted, model.OrderStatusClosed, exception.ErrAlreadyCompleted},
		{model.OrderStatusCancelled, model.OrderStatusClosed, exception.ErrAlreadyCancelled},
		{model.OrderStatusCancelled, model.OrderStatusCancelled, exception.ErrAlreadyCancelled},
		{model.OrderStatus(0), model.OrderStatusClosed, exception.ErrOrderInvalidTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			err := Transition(tc.from, tc.to)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSync, mode)

	mode, err = ParseMode(" Async ")
	require.NoError(t, err)
	assert.Equal(t, ModeAsync, mode)
	assert.Equal(t, "async", mode.String())

	_, err = ParseMode("batch")
	require.Error(t, err)
}
