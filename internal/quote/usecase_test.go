package quote

import (
	"context"
	"testing"

	"tradeledger/internal/store/storetest"
	"tradeledger/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := use.Create(ctx, " ibm ", "International Business Machines", storetest.Dec("120.456"))
	require.NoError(t, err)
	assert.Equal(t, "IBM", created.Symbol)
	assert.Equal(t, "120.46", created.Price.StringFixed(2))

	got, err := use.Get(ctx, "ibm")
	require.NoError(t, err)
	assert.Equal(t, "120.46", got.Open.StringFixed(2))
	assert.Equal(t, "120.46", got.Low.StringFixed(2))
	assert.Equal(t, "120.46", got.High.StringFixed(2))
	assert.Zero(t, got.Volume)
	assert.Equal(t, "International Business Machines", got.CompanyName)

	_, err = use.Create(ctx, "IBM", "dup", storetest.Dec("1"))
	require.ErrorIs(t, err, exception.ErrBadRequest)
	_, err = use.Create(ctx, "", "blank", storetest.Dec("1"))
	require.ErrorIs(t, err, exception.ErrBadRequest)
	_, err = use.Create(ctx, "ZERO", "zero", storetest.Dec("0"))
	require.ErrorIs(t, err, exception.ErrBadRequest)

	_, err = use.Get(ctx, "MSFT")
	require.ErrorIs(t, err, exception.ErrNotFound)

	list, err := use.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUpdatePrice(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo)
	require.NoError(t, err)
	ctx := context.Background()
	storetest.SeedQuote(t, repo, "AAPL", "150", "0")

	q, err := use.UpdatePrice(ctx, "AAPL", storetest.Dec("140"))
	require.NoError(t, err)
	assert.Equal(t, "-10.00", q.Change.StringFixed(2))
	assert.Equal(t, "140.00", q.Low.StringFixed(2))
	assert.Equal(t, "150.00", q.High.StringFixed(2))

	q, err = use.UpdatePrice(ctx, "AAPL", storetest.Dec("160"))
	require.NoError(t, err)
	assert.Equal(t, "20.00", q.Change.StringFixed(2))

	stored, err := repo.Quote(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "160.00", stored.Price.StringFixed(2))
	assert.Equal(t, "140.00", stored.Low.StringFixed(2))
	assert.Equal(t, "160.00", stored.High.StringFixed(2))
	assert.Equal(t, "150.00", stored.Open.StringFixed(2))

	_, err = use.UpdatePrice(ctx, "NOPE", storetest.Dec("1"))
	require.ErrorIs(t, err, exception.ErrNotFound)
	_, err = use.UpdatePrice(ctx, "AAPL", storetest.Dec("-1"))
	require.ErrorIs(t, err, exception.ErrBadRequest)
}

func TestUpdatePriceVolume(t *testing.T) {
	testCases := []struct {
		desc   string
		price  string
		factor string
		want   string
		change string
	}{
		{desc: "plain factor", price: "100", factor: "1.05", want: "105.00", change: "5.00"},
		{desc: "rounds half up", price: "10.01", factor: "0.5", want: "5.01", change: "-5.00"},
		{desc: "penny recovers", price: "0.01", factor: "0.9", want: "6.00", change: "5.99"},
		{desc: "expensive splits", price: "400.02", factor: "1.1", want: "200.01", change: "-200.01"},
		{desc: "max price keeps factor", price: "400", factor: "1.1", want: "440.00", change: "40.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			repo := storetest.Open(t)
			use, err := NewUsecase(repo)
			require.NoError(t, err)
			storetest.SeedQuote(t, repo, "SYM", tc.price, "0")

			q, err := use.UpdatePriceVolume(context.Background(), "SYM", storetest.Dec(tc.factor), 25)
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.Price.StringFixed(2))
			assert.Equal(t, tc.change, q.Change.StringFixed(2))
			assert.Equal(t, 25.0, q.Volume)
		})
	}
}

func TestUpdatePriceVolumeRejected(t *testing.T) {
	repo := storetest.Open(t)
	use, err := NewUsecase(repo)
	require.NoError(t, err)
	storetest.SeedQuote(t, repo, "SYM", "10", "0")

	_, err = use.UpdatePriceVolume(context.Background(), "SYM", storetest.Dec("0"), 1)
	require.ErrorIs(t, err, exception.ErrBadRequest)
	_, err = use.UpdatePriceVolume(context.Background(), "SYM", storetest.Dec("1"), -1)
	require.ErrorIs(t, err, exception.ErrBadRequest)
}
