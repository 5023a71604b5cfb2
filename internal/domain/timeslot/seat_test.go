//go:build unit

package timeslot_test

import (
	"testing"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeat(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	timeslotID := uuid.New()

	t.Run("new seat is available and labelled", func(t *testing.T) {
		price := decimal.RequireFromString("1500")
		s, err := timeslot.NewSeat(timeslotID, timeslot.Position{Area: " VIP ", Row: "B", Number: "12"}, &price, now)
		require.NoError(t, err)

		assert.True(t, s.IsAvailable())
		assert.Equal(t, "VIP-B-12", s.Label())
		assert.True(t, price.Equal(*s.Price()))
	})

	t.Run("position validation", func(t *testing.T) {
		cases := []struct {
			name string
			pos  timeslot.Position
		}{
			{name: "missing area", pos: timeslot.Position{Row: "1", Number: "1"}},
			{name: "blank row", pos: timeslot.Position{Area: "A", Row: "  ", Number: "1"}},
			{name: "missing number", pos: timeslot.Position{Area: "A", Row: "1"}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				s, err := timeslot.NewSeat(timeslotID, c.pos, nil, now)
				require.Nil(t, s)
				require.ErrorIs(t, err, timeslot.ErrInvalidSeatPosition)
			})
		}
	})

	t.Run("negative price", func(t *testing.T) {
		price := decimal.NewFromInt(-1)
		_, err := timeslot.NewSeat(timeslotID, timeslot.Position{Area: "A", Row: "1", Number: "1"}, &price, now)
		require.ErrorIs(t, err, timeslot.ErrNegativeSeatPrice)
	})

	t.Run("mark sold transitions", func(t *testing.T) {
		for _, from := range []timeslot.SeatStatus{timeslot.SeatAvailable, timeslot.SeatReserved, timeslot.SeatLocked, timeslot.SeatSold} {
			t.Run(from.String(), func(t *testing.T) {
				s := timeslot.ReconstructSeat(uuid.New(), timeslotID, timeslot.Position{Area: "A", Row: "1", Number: "1"}, nil, from, now)
				require.NoError(t, s.MarkSold(now.Add(time.Minute)))
				assert.Equal(t, timeslot.SeatSold, s.Status())
			})
		}
	})

	t.Run("mark sold twice keeps the first timestamp", func(t *testing.T) {
		s, err := timeslot.NewSeat(timeslotID, timeslot.Position{Area: "A", Row: "1", Number: "1"}, nil, now)
		require.NoError(t, err)

		first := now.Add(time.Minute)
		require.NoError(t, s.MarkSold(first))
		require.NoError(t, s.MarkSold(first.Add(time.Hour)))
		assert.Equal(t, first, s.UpdatedAt())
	})

	t.Run("unknown status cannot be sold", func(t *testing.T) {
		s := timeslot.ReconstructSeat(uuid.New(), timeslotID, timeslot.Position{Area: "A", Row: "1", Number: "1"}, nil, timeslot.SeatStatus("broken"), now)
		require.ErrorIs(t, s.MarkSold(now), errs.ErrInvalidSeatTransition)
	})

	t.Run("release makes a sold seat available", func(t *testing.T) {
		s := timeslot.ReconstructSeat(uuid.New(), timeslotID, timeslot.Position{Area: "A", Row: "1", Number: "1"}, nil, timeslot.SeatSold, now)
		s.Release(now)
		assert.True(t, s.IsAvailable())
	})
}
