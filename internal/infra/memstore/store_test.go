//go:build unit

package memstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/infra/memstore"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/shared"
	"ticketing-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newStore() *memstore.Store {
	return memstore.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedSlot(t *testing.T, s *memstore.Store) (*activity.Activity, *timeslot.Timeslot) {
	t.Helper()
	act := builder.NewActivityBuilder().BuildPublished()
	ts, err := builder.NewTimeslotBuilder().WithActivityID(act.ID()).WithCapacity(10).BuildDomain()
	require.NoError(t, err)

	err = s.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Activities().Create(ctx, act); err != nil {
			return err
		}
		return tx.Timeslots().Create(ctx, ts)
	})
	require.NoError(t, err)
	return act, ts
}

func TestStore_Within(t *testing.T) {
	ctx := context.Background()

	t.Run("failed unit of work leaves nothing behind", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		boom := errs.New("boom")
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			locked, err := tx.Timeslots().FindByIDForUpdate(ctx, ts.ID())
			require.NoError(t, err)
			require.NoError(t, locked.DecreaseCapacity(4, now))
			require.NoError(t, tx.Timeslots().Update(ctx, locked))
			return boom
		})
		require.ErrorIs(t, err, boom)

		err = s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Timeslots().FindByID(ctx, ts.ID())
			require.NoError(t, err)
			assert.Equal(t, 10, got.RemainingCapacity())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("staged writes are visible inside the unit of work", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			locked, err := tx.Timeslots().FindByIDForUpdate(ctx, ts.ID())
			require.NoError(t, err)
			require.NoError(t, locked.DecreaseCapacity(3, now))
			require.NoError(t, tx.Timeslots().Update(ctx, locked))

			again, err := tx.Timeslots().FindByID(ctx, ts.ID())
			require.NoError(t, err)
			assert.Equal(t, 7, again.RemainingCapacity())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("returned entities do not alias stored ones", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Timeslots().FindByID(ctx, ts.ID())
			require.NoError(t, err)
			return got.DecreaseCapacity(5, now)
		})
		require.NoError(t, err)

		err = s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Timeslots().FindByID(ctx, ts.ID())
			require.NoError(t, err)
			assert.Equal(t, 10, got.RemainingCapacity())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("read-only unit of work rejects writes", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Timeslots().Update(ctx, ts)
		})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("cancelled context never starts", func(t *testing.T) {
		s := newStore()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		called := false
		err := s.Within(cctx, func(context.Context, shared.Tx) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestStore_Repositories(t *testing.T) {
	ctx := context.Background()

	t.Run("missing rows are not found", func(t *testing.T) {
		s := newStore()
		err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Orders().FindByID(ctx, uuid.New())
			return err
		})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("seat positions are unique per timeslot", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		pos := timeslot.Position{Area: "A", Row: "1", Number: "1"}
		err := s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			first, _ := timeslot.NewSeat(ts.ID(), pos, nil, now)
			second, _ := timeslot.NewSeat(ts.ID(), pos, nil, now)
			return tx.Seats().CreateBatch(ctx, []*timeslot.Seat{first, second})
		})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("seat lookup dedupes and skips foreign ids", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)

		var seats []*timeslot.Seat
		for _, pos := range builder.Seats(3) {
			seat, err := timeslot.NewSeat(ts.ID(), pos, nil, now)
			require.NoError(t, err)
			seats = append(seats, seat)
		}
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Seats().CreateBatch(ctx, seats)
		}))

		err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			got, err := tx.Seats().FindForUpdate(ctx, ts.ID(), []uuid.UUID{seats[0].ID(), seats[0].ID(), uuid.New(), seats[2].ID()})
			require.NoError(t, err)
			assert.Len(t, got, 2)

			other, err := tx.Seats().FindForUpdate(ctx, uuid.New(), []uuid.UUID{seats[1].ID()})
			require.NoError(t, err)
			assert.Empty(t, other)

			listed, err := tx.Seats().ListByTimeslot(ctx, ts.ID())
			require.NoError(t, err)
			require.Len(t, listed, 3)
			assert.Equal(t, "A-1-1", listed[0].Label())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("activity list filters and pages", func(t *testing.T) {
		s := newStore()
		seedSlot(t, s)
		seedSlot(t, s)
		draft, err := builder.NewActivityBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Activities().Create(ctx, draft)
		}))

		published := activity.StatusPublished
		err = s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			all, err := tx.Activities().List(ctx, shared.ActivityFilter{Limit: 10})
			require.NoError(t, err)
			assert.Len(t, all, 3)

			onlyPublished, err := tx.Activities().List(ctx, shared.ActivityFilter{Status: &published, Limit: 10})
			require.NoError(t, err)
			assert.Len(t, onlyPublished, 2)

			paged, err := tx.Activities().List(ctx, shared.ActivityFilter{Limit: 2, Offset: 2})
			require.NoError(t, err)
			assert.Len(t, paged, 1)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("reset drops everything", func(t *testing.T) {
		s := newStore()
		_, ts := seedSlot(t, s)
		s.Reset()

		err := s.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Timeslots().FindByID(ctx, ts.ID())
			return err
		})
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}
