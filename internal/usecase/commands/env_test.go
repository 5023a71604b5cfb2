//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/notification"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra/memstore"
	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var startOfTest = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu    sync.Mutex
	facts []notification.BillableOrder
	err   error
}

func (p *recordingPublisher) PublishBillable(_ context.Context, fact notification.BillableOrder) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facts = append(p.facts, fact)
	return p.err
}

func (p *recordingPublisher) published() []notification.BillableOrder {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.BillableOrder(nil), p.facts...)
}

type env struct {
	store      *memstore.Store
	clock      *clock.MockClock
	publisher  *recordingPublisher
	activities commands.ActivityCommands
	timeslots  commands.TimeslotCommands
	orders     commands.OrderCommands
	refunds    commands.RefundCommands
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New(logger)
	clk := clock.NewMockClock(startOfTest)
	pub := &recordingPublisher{}
	return &env{
		store:      store,
		clock:      clk,
		publisher:  pub,
		activities: commands.NewActivityCommands(store, clk, logger),
		timeslots:  commands.NewTimeslotCommands(store, clk, logger),
		orders:     commands.NewOrderCommands(store, pub, clk, logger, "TWD"),
		refunds:    commands.NewRefundCommands(store, clk, logger),
	}
}

// publishedActivity creates and publishes an activity through the commands.
func (e *env) publishedActivity(t *testing.T) *activity.Activity {
	t.Helper()
	ctx := context.Background()
	a, err := e.activities.Create(ctx, builder.NewActivityBuilder().Info())
	require.NoError(t, err)
	a, err = e.activities.Publish(ctx, a.ID())
	require.NoError(t, err)
	return a
}

// countSlot returns a published activity with one on-sale slot of the given capacity.
func (e *env) countSlot(t *testing.T, capacity int) (*activity.Activity, *timeslot.Timeslot) {
	t.Helper()
	a := e.publishedActivity(t)
	b := builder.NewTimeslotBuilder().WithActivityID(a.ID()).WithCapacity(capacity)
	ts, err := e.timeslots.Create(context.Background(), commands.CreateTimeslotCommand{
		ActivityID: a.ID(),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		BasePrice:  b.BasePrice,
		Capacity:   b.Capacity,
	})
	require.NoError(t, err)
	return a, ts
}

// seatSlot returns a published activity with a seat-only slot holding n seats.
func (e *env) seatSlot(t *testing.T, n int) (*activity.Activity, *timeslot.Timeslot, []uuid.UUID) {
	t.Helper()
	a := e.publishedActivity(t)
	b := builder.NewTimeslotBuilder().WithActivityID(a.ID()).WithoutCapacity()
	ts, err := e.timeslots.Create(context.Background(), commands.CreateTimeslotCommand{
		ActivityID: a.ID(),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		BasePrice:  b.BasePrice,
	})
	require.NoError(t, err)

	inputs := make([]commands.SeatInput, 0, n)
	for _, pos := range builder.Seats(n) {
		inputs = append(inputs, commands.SeatInput{Position: pos})
	}
	seats, err := e.timeslots.CreateSeats(context.Background(), ts.ID(), inputs)
	require.NoError(t, err)

	ids := make([]uuid.UUID, len(seats))
	for i, s := range seats {
		ids[i] = s.ID()
	}
	return a, ts, ids
}
