//go:build unit

package commands_test

import (
	"context"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/internal/usecase/shared"
	"ticketing-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func (e *env) remaining(t *testing.T, timeslotID uuid.UUID) int {
	t.Helper()
	var out int
	err := e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		ts, err := tx.Timeslots().FindByID(ctx, timeslotID)
		if err != nil {
			return err
		}
		out = ts.RemainingCapacity()
		return nil
	})
	require.NoError(t, err)
	return out
}

func (e *env) seatStatuses(t *testing.T, timeslotID uuid.UUID) map[uuid.UUID]timeslot.SeatStatus {
	t.Helper()
	out := map[uuid.UUID]timeslot.SeatStatus{}
	err := e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		seats, err := tx.Seats().ListByTimeslot(ctx, timeslotID)
		for _, s := range seats {
			out[s.ID()] = s.Status()
		}
		return err
	})
	require.NoError(t, err)
	return out
}

func (e *env) storedOrder(t *testing.T, id uuid.UUID) *order.Order {
	t.Helper()
	var out *order.Order
	err := e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Orders().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return out
}

func TestCreateOrder_CountBased(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements the ledger", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 10)

		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(3).BuildCommand())
		require.NoError(t, err)

		assert.Equal(t, order.StatusPendingPayment, o.Status())
		assert.True(t, decimal.RequireFromString("3600").Equal(o.TotalAmount()))
		assert.Equal(t, 7, e.remaining(t, ts.ID()))
		assert.Equal(t, o.Snapshot(), e.storedOrder(t, o.ID()).Snapshot())
		assert.Empty(t, e.publisher.published(), "pending orders are not billable")
	})

	t.Run("last units then exhausted", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 3)
		cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(3).BuildCommand()

		_, err := e.orders.CreateOrder(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, 0, e.remaining(t, ts.ID()))

		_, err = e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(1).BuildCommand())
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 0, e.remaining(t, ts.ID()))
	})

	t.Run("quantity over remaining leaves no trace", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 2)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(3).BuildCommand())
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 2, e.remaining(t, ts.ID()))
	})

	t.Run("oversized quantities leave the ledger untouched", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 1)
		cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(math.MaxInt).BuildCommand()
		cmd.Items = append(cmd.Items, cmd.Items[0], cmd.Items[0])
		cmd.Items[2].Quantity = 3

		o, err := e.orders.CreateOrder(ctx, cmd)
		require.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrInvalidQuantity)
		assert.Equal(t, 1, e.remaining(t, ts.ID()))
	})

	t.Run("seat-only slot cannot take count orders", func(t *testing.T) {
		e := newEnv(t)
		a, ts, _ := e.seatSlot(t, 2)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(1).BuildCommand())
		require.ErrorIs(t, err, errs.ErrNoCapacityModel)
	})

	t.Run("paid at creation publishes one billable fact", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 5)

		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).Paid().BuildCommand())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, o.Status())

		facts := e.publisher.published()
		require.Len(t, facts, 1)
		assert.Equal(t, o.ID(), facts[0].OrderID)
		assert.Equal(t, o.OrderNumber(), facts[0].OrderNumber)
		assert.Equal(t, "buyer@example.com", facts[0].CustomerEmail)
		assert.Equal(t, ts.Window().Start(), facts[0].TimeslotStart)
	})

	t.Run("publish failure does not undo the order", func(t *testing.T) {
		e := newEnv(t)
		e.publisher.err = errs.New("broker down")
		a, ts := e.countSlot(t, 5)

		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).Paid().BuildCommand())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, e.storedOrder(t, o.ID()).Status())
	})

	t.Run("default currency applies", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 5)

		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).With(func(b *builder.OrderBuilder) {
			b.Currency = ""
		}).BuildCommand())
		require.NoError(t, err)
		assert.Equal(t, "TWD", o.Currency())
	})
}

func TestCreateOrder_Preconditions(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		setup func(t *testing.T, e *env) commands.CreateOrderCommand
		errIs error
	}{
		{
			name: "unknown activity",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				_, ts := e.countSlot(t, 5)
				return builder.NewOrderBuilder().For(uuid.New(), ts.ID()).BuildCommand()
			},
			errIs: errs.ErrActivityUnavailable,
		},
		{
			name: "draft activity",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, err := e.activities.Create(context.Background(), builder.NewActivityBuilder().Info())
				require.NoError(t, err)
				return builder.NewOrderBuilder().For(a.ID(), uuid.New()).BuildCommand()
			},
			errIs: errs.ErrActivityUnavailable,
		},
		{
			name: "archived activity",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				_, err := e.activities.Archive(context.Background(), a.ID())
				require.NoError(t, err)
				return builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
			},
			errIs: errs.ErrActivityUnavailable,
		},
		{
			name: "unknown timeslot",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a := e.publishedActivity(t)
				return builder.NewOrderBuilder().For(a.ID(), uuid.New()).BuildCommand()
			},
			errIs: errs.ErrTimeslotUnavailable,
		},
		{
			name: "timeslot of another activity",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a := e.publishedActivity(t)
				_, ts := e.countSlot(t, 5)
				return builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
			},
			errIs: errs.ErrTimeslotUnavailable,
		},
		{
			name: "closed timeslot",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				_, err := e.timeslots.ChangeStatus(context.Background(), ts.ID(), timeslot.StatusClosed)
				require.NoError(t, err)
				return builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
			},
			errIs: errs.ErrTimeslotUnavailable,
		},
		{
			name: "item on another timeslot",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
				cmd.Items[0].TimeslotID = uuid.New()
				return cmd
			},
			errIs: errs.ErrTimeslotMismatch,
		},
		{
			name: "seat item with quantity two",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts, seats := e.seatSlot(t, 2)
				cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0]).BuildCommand()
				cmd.Items[0].Quantity = 2
				return cmd
			},
			errIs: errs.ErrInvalidSeatQuantity,
		},
		{
			name: "no items",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
				cmd.Items = nil
				return cmd
			},
			errIs: errs.ErrEmptyOrder,
		},
		{
			name: "negative unit price",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
				cmd.Items[0].UnitPrice = decimal.NewFromInt(-1)
				return cmd
			},
			errIs: errs.ErrInvalidUnitPrice,
		},
		{
			name: "zero quantity",
			setup: func(t *testing.T, e *env) commands.CreateOrderCommand {
				a, ts := e.countSlot(t, 5)
				cmd := builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand()
				cmd.Items[0].Quantity = 0
				return cmd
			},
			errIs: errs.ErrInvalidQuantity,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEnv(t)
			cmd := c.setup(t, e)

			o, err := e.orders.CreateOrder(ctx, cmd)
			require.Nil(t, o)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}

func TestCreateOrder_SeatBased(t *testing.T) {
	ctx := context.Background()

	t.Run("sells the requested seats", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 3)

		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0], seats[2]).BuildCommand())
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{seats[0], seats[2]}, o.SeatIDs())

		statuses := e.seatStatuses(t, ts.ID())
		assert.Equal(t, timeslot.SeatSold, statuses[seats[0]])
		assert.Equal(t, timeslot.SeatAvailable, statuses[seats[1]])
		assert.Equal(t, timeslot.SeatSold, statuses[seats[2]])
	})

	t.Run("one taken seat fails the whole order", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 3)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[1]).BuildCommand())
		require.NoError(t, err)

		_, err = e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0], seats[1]).BuildCommand())
		require.ErrorIs(t, err, errs.ErrSeatUnavailable)
		assert.Equal(t, timeslot.SeatAvailable, e.seatStatuses(t, ts.ID())[seats[0]])
	})

	t.Run("duplicate seat ids", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 2)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0], seats[0]).BuildCommand())
		require.ErrorIs(t, err, errs.ErrSeatUnavailable)
	})

	t.Run("unknown seat id", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 2)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0], uuid.New()).BuildCommand())
		require.ErrorIs(t, err, errs.ErrSeatUnavailable)
		assert.Equal(t, timeslot.SeatAvailable, e.seatStatuses(t, ts.ID())[seats[0]])
	})

	t.Run("seat of another timeslot", func(t *testing.T) {
		e := newEnv(t)
		a, ts, _ := e.seatSlot(t, 1)
		_, _, foreign := e.seatSlot(t, 1)

		_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(foreign[0]).BuildCommand())
		require.ErrorIs(t, err, errs.ErrSeatUnavailable)
	})
}

func TestCreateOrder_Concurrency(t *testing.T) {
	ctx := context.Background()
	const attempts = 16

	t.Run("last unit goes to exactly one buyer", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 1)

		var won, exhausted atomic.Int32
		var g errgroup.Group
		for range attempts {
			g.Go(func() error {
				_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(1).BuildCommand())
				switch {
				case err == nil:
					won.Add(1)
				case errs.Is(err, errs.ErrCapacityExceeded):
					exhausted.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int32(1), won.Load())
		assert.Equal(t, int32(attempts-1), exhausted.Load())
		assert.Equal(t, 0, e.remaining(t, ts.ID()))
	})

	t.Run("same seat goes to exactly one buyer", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 1)

		var won, lost atomic.Int32
		var g errgroup.Group
		for range attempts {
			g.Go(func() error {
				_, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats[0]).BuildCommand())
				switch {
				case err == nil:
					won.Add(1)
				case errs.Is(err, errs.ErrSeatUnavailable):
					lost.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int32(1), won.Load())
		assert.Equal(t, int32(attempts-1), lost.Load())
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("returns count inventory", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 5)
		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(2).BuildCommand())
		require.NoError(t, err)
		require.Equal(t, 3, e.remaining(t, ts.ID()))

		require.NoError(t, e.orders.CancelOrder(ctx, o.ID()))
		assert.Equal(t, 5, e.remaining(t, ts.ID()))

		stored := e.storedOrder(t, o.ID())
		assert.Equal(t, order.StatusCancelled, stored.Status())
		assert.Equal(t, startOfTest, *stored.CancelledAt())
	})

	t.Run("releases seats", func(t *testing.T) {
		e := newEnv(t)
		a, ts, seats := e.seatSlot(t, 2)
		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithSeats(seats...).Paid().BuildCommand())
		require.NoError(t, err)

		require.NoError(t, e.orders.CancelOrder(ctx, o.ID()))
		for _, st := range e.seatStatuses(t, ts.ID()) {
			assert.Equal(t, timeslot.SeatAvailable, st)
		}
	})

	t.Run("second cancel is rejected without releasing twice", func(t *testing.T) {
		e := newEnv(t)
		a, ts := e.countSlot(t, 5)
		o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).WithQuantity(2).BuildCommand())
		require.NoError(t, err)

		require.NoError(t, e.orders.CancelOrder(ctx, o.ID()))
		require.ErrorIs(t, e.orders.CancelOrder(ctx, o.ID()), errs.ErrInvalidOrderState)
		assert.Equal(t, 5, e.remaining(t, ts.ID()))
	})

	t.Run("unknown order", func(t *testing.T) {
		e := newEnv(t)
		err := e.orders.CancelOrder(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrOrderNotFound)
		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ErrOrderNotFound, kind)
	})
}

func TestPayOrder(t *testing.T) {
	ctx := context.Background()

	e := newEnv(t)
	a, ts := e.countSlot(t, 5)
	o, err := e.orders.CreateOrder(ctx, builder.NewOrderBuilder().For(a.ID(), ts.ID()).BuildCommand())
	require.NoError(t, err)

	e.clock.Add(90 * time.Second)
	paid, err := e.orders.PayOrder(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, paid.Status())
	assert.Equal(t, e.clock.Now(), *paid.PaidAt())
	require.Len(t, e.publisher.published(), 1)

	_, err = e.orders.PayOrder(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrInvalidOrderState)
	assert.Len(t, e.publisher.published(), 1)

	_, err = e.orders.PayOrder(ctx, uuid.New())
	require.ErrorIs(t, err, errs.ErrOrderNotFound)
}
