//go:build unit

package order_test

import (
	"testing"
	"time"

	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, order.StatusPendingPayment, actual.Status())
		assert.True(t, dec("2400").Equal(actual.TotalAmount()))
		assert.True(t, actual.RefundedAmount().IsZero())
		assert.Equal(t, "TWD", actual.Currency())
		assert.Equal(t, 2, actual.TotalQuantity())
		assert.Empty(t, actual.SeatIDs())
		assert.Equal(t, order.NumberFor(actual.ID(), b.CreatedAt), actual.OrderNumber())
		assert.Regexp(t, `^ORD-20260601-[0-9A-F]{8}$`, actual.OrderNumber())
	})

	t.Run("construction validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no items",
				mutate: func(b *builder.OrderBuilder) { b.Items = nil },
				errIs:  errs.ErrEmptyOrder,
			},
			{
				name:   "item on another timeslot",
				mutate: func(b *builder.OrderBuilder) { b.Items[0].TimeslotID = uuid.New() },
				errIs:  errs.ErrTimeslotMismatch,
			},
			{
				name:   "zero quantity",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(0) },
				errIs:  errs.ErrInvalidQuantity,
			},
			{
				name:   "quantity above the column range",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(order.MaxItemQuantity + 1) },
				errIs:  errs.ErrInvalidQuantity,
			},
			{
				name:   "largest quantity",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(order.MaxItemQuantity) },
			},
			{
				name:   "negative unit price",
				mutate: func(b *builder.OrderBuilder) { b.Items[0].UnitPrice = dec("-1") },
				errIs:  errs.ErrInvalidUnitPrice,
			},
			{
				name:   "free tickets",
				mutate: func(b *builder.OrderBuilder) { b.Items[0].UnitPrice = decimal.Zero },
			},
			{
				name:   "seat items",
				mutate: func(b *builder.OrderBuilder) { b.WithSeats(uuid.New(), uuid.New()) },
			},
		})
	})

	t.Run("currency is normalized", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) { b.Currency = " usd " }).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "USD", o.Currency())

		o, err = builder.NewOrderBuilder().With(func(b *builder.OrderBuilder) { b.Currency = "" }).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, order.DefaultCurrency, o.Currency())
	})

	t.Run("seat ids follow item order", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		o, err := builder.NewOrderBuilder().WithSeats(first, second).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{first, second}, o.SeatIDs())
		assert.True(t, dec("3000").Equal(o.TotalAmount()))
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("pay then cancel", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.MarkPaid(now))
		require.NotNil(t, o.PaidAt())
		require.ErrorIs(t, o.MarkPaid(now), errs.ErrInvalidOrderState)

		require.NoError(t, o.Cancel(now))
		assert.Equal(t, order.StatusCancelled, o.Status())
		require.ErrorIs(t, o.Cancel(now), errs.ErrInvalidOrderState)
	})

	t.Run("pending order does not accept refunds", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, o.ApplyRefund(dec("1"), now), errs.ErrInvalidOrderState)
	})
}

func TestOrder_ApplyRefund(t *testing.T) {
	now := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	paid := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := builder.NewOrderBuilder().Paid().BuildDomain()
		require.NoError(t, err)
		return o
	}

	t.Run("partial then full", func(t *testing.T) {
		o := paid(t)
		require.NoError(t, o.ApplyRefund(dec("400"), now))
		assert.Equal(t, order.StatusPartiallyRefunded, o.Status())
		assert.True(t, dec("2000").Equal(o.RefundableBalance()))

		require.NoError(t, o.ApplyRefund(dec("2000"), now))
		assert.Equal(t, order.StatusRefunded, o.Status())
		assert.True(t, o.RefundableBalance().IsZero())
		require.NotNil(t, o.RefundedAt())
	})

	t.Run("fully refunded order accepts nothing more", func(t *testing.T) {
		o := paid(t)
		require.NoError(t, o.ApplyRefund(dec("2400"), now))
		require.ErrorIs(t, o.ApplyRefund(dec("0.01"), now), errs.ErrInvalidOrderState)
	})

	t.Run("exceeding the total leaves the order untouched", func(t *testing.T) {
		o := paid(t)
		require.NoError(t, o.ApplyRefund(dec("2000"), now))
		require.ErrorIs(t, o.ApplyRefund(dec("400.01"), now), errs.ErrRefundExceedsTotal)
		assert.True(t, dec("2000").Equal(o.RefundedAmount()))
		assert.Equal(t, order.StatusPartiallyRefunded, o.Status())
	})

	t.Run("non-positive amounts", func(t *testing.T) {
		o := paid(t)
		require.ErrorIs(t, o.ApplyRefund(decimal.Zero, now), errs.ErrInvalidAmount)
		require.ErrorIs(t, o.ApplyRefund(dec("-5"), now), errs.ErrInvalidAmount)
		assert.Equal(t, order.StatusPaid, o.Status())
	})

	t.Run("refunded never exceeds total", func(t *testing.T) {
		o := paid(t)
		for range 30 {
			_ = o.ApplyRefund(dec("97.3"), now)
			require.True(t, o.RefundedAmount().LessThanOrEqual(o.TotalAmount()))
		}
	})
}

func TestOrder_SnapshotRoundTrip(t *testing.T) {
	o, err := builder.NewOrderBuilder().Paid().BuildDomain()
	require.NoError(t, err)

	restored := order.Reconstruct(o.Snapshot())
	assert.Equal(t, o.Snapshot(), restored.Snapshot())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOrderBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
