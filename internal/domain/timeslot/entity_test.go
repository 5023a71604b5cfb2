//go:build unit

package timeslot_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.TimeslotBuilder)
	errIs  error
}

func TestTimeslot(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewTimeslotBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.True(t, actual.HasCapacityModel())
		assert.Equal(t, 100, *actual.Capacity())
		assert.Equal(t, 100, actual.RemainingCapacity())
		assert.Equal(t, timeslot.StatusOnSale, actual.Status())
		assert.True(t, actual.IsOnSale())
		assert.Equal(t, 2*time.Hour, actual.Window().Duration())
	})

	t.Run("construction validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "seat-only slot",
				mutate: func(b *builder.TimeslotBuilder) { b.WithoutCapacity() },
			},
			{
				name:   "zero capacity",
				mutate: func(b *builder.TimeslotBuilder) { b.WithCapacity(0) },
			},
			{
				name:   "negative capacity",
				mutate: func(b *builder.TimeslotBuilder) { b.WithCapacity(-1) },
				errIs:  errs.ErrInvalidQuantity,
			},
			{
				name:   "negative base price",
				mutate: func(b *builder.TimeslotBuilder) { b.BasePrice = decimal.NewFromInt(-1) },
				errIs:  timeslot.ErrNegativeBasePrice,
			},
			{
				name:   "start equals end",
				mutate: func(b *builder.TimeslotBuilder) { b.EndTime = b.StartTime },
				errIs:  errs.ErrInvalidTimeWindow,
			},
			{
				name:   "end before start",
				mutate: func(b *builder.TimeslotBuilder) { b.EndTime = b.StartTime.Add(-time.Minute) },
				errIs:  errs.ErrInvalidTimeWindow,
			},
		})
	})

	t.Run("negative base price is a validation error", func(t *testing.T) {
		_, err := builder.NewTimeslotBuilder().With(func(b *builder.TimeslotBuilder) {
			b.BasePrice = decimal.NewFromInt(-5)
		}).BuildDomain()
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestTimeslot_CapacityLedger(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	newSlot := func(t *testing.T, capacity int) *timeslot.Timeslot {
		t.Helper()
		ts, err := builder.NewTimeslotBuilder().WithCapacity(capacity).BuildDomain()
		require.NoError(t, err)
		return ts
	}

	t.Run("decrease to exactly zero", func(t *testing.T) {
		ts := newSlot(t, 3)
		require.NoError(t, ts.DecreaseCapacity(3, now))
		assert.Equal(t, 0, ts.RemainingCapacity())
		assert.Equal(t, now, ts.UpdatedAt())
	})

	t.Run("decrease below zero leaves ledger untouched", func(t *testing.T) {
		ts := newSlot(t, 3)
		err := ts.DecreaseCapacity(4, now)
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 3, ts.RemainingCapacity())
	})

	t.Run("non-positive decrease is rejected", func(t *testing.T) {
		ts := newSlot(t, 3)
		require.ErrorIs(t, ts.DecreaseCapacity(0, now), errs.ErrCapacityExceeded)
		require.ErrorIs(t, ts.DecreaseCapacity(-2, now), errs.ErrCapacityExceeded)
		assert.Equal(t, 3, ts.RemainingCapacity())
	})

	t.Run("seat-only slot has no ledger", func(t *testing.T) {
		ts, err := builder.NewTimeslotBuilder().WithoutCapacity().BuildDomain()
		require.NoError(t, err)
		require.ErrorIs(t, ts.DecreaseCapacity(1, now), errs.ErrNoCapacityModel)
		require.ErrorIs(t, ts.IncreaseCapacity(1, now), errs.ErrNoCapacityModel)
		assert.Nil(t, ts.Capacity())
	})

	t.Run("increase is a release and is unbounded", func(t *testing.T) {
		ts := newSlot(t, 2)
		require.NoError(t, ts.IncreaseCapacity(5, now))
		assert.Equal(t, 7, ts.RemainingCapacity())
		require.ErrorIs(t, ts.IncreaseCapacity(0, now), errs.ErrInvalidQuantity)
	})

	t.Run("lowering capacity clamps remaining", func(t *testing.T) {
		ts := newSlot(t, 10)
		require.NoError(t, ts.DecreaseCapacity(2, now))
		require.NoError(t, ts.SetCapacity(5, now))
		assert.Equal(t, 5, *ts.Capacity())
		assert.Equal(t, 5, ts.RemainingCapacity())
	})

	t.Run("raising capacity keeps remaining", func(t *testing.T) {
		ts := newSlot(t, 10)
		require.NoError(t, ts.DecreaseCapacity(4, now))
		require.NoError(t, ts.SetCapacity(20, now))
		assert.Equal(t, 20, *ts.Capacity())
		assert.Equal(t, 6, ts.RemainingCapacity())
	})

	t.Run("first capacity on a seat-only slot fills remaining", func(t *testing.T) {
		ts, err := builder.NewTimeslotBuilder().WithoutCapacity().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, ts.SetCapacity(8, now))
		assert.Equal(t, 8, ts.RemainingCapacity())
	})

	t.Run("remaining never goes negative under random operations", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		ts := newSlot(t, 50)
		for range 2000 {
			qty := rng.IntN(12) - 1
			var err error
			switch rng.IntN(3) {
			case 0:
				err = ts.DecreaseCapacity(qty, now)
			case 1:
				err = ts.IncreaseCapacity(qty, now)
			default:
				err = ts.SetCapacity(rng.IntN(80)-5, now)
			}
			if err != nil {
				kind, ok := errs.KindOf(err)
				require.True(t, ok, "unclassified error %v", err)
				assert.Contains(t, []string{"CapacityExceeded", "InvalidQuantity"}, kind.Code())
			}
			require.GreaterOrEqual(t, ts.RemainingCapacity(), 0)
		}
	})
}

func TestTimeslot_ChangeStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ts, err := builder.NewTimeslotBuilder().BuildDomain()
	require.NoError(t, err)

	require.NoError(t, ts.ChangeStatus(timeslot.StatusClosed, now))
	assert.False(t, ts.IsOnSale())

	require.ErrorIs(t, ts.ChangeStatus(timeslot.Status("paused"), now), timeslot.ErrInvalidStatus)
	assert.Equal(t, timeslot.StatusClosed, ts.Status())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewTimeslotBuilder().With(c.mutate).BuildDomain()

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
