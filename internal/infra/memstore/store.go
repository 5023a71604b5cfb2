// Package memstore is a process-local transactional store behind the same
// UnitOfWork contract as Postgres. A read-write unit of work holds the store's
// writer lock from start to commit, so every unit of work is serializable.
package memstore

import (
	"context"
	"log/slog"
	"sync"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	activities map[uuid.UUID]*activity.Activity
	timeslots  map[uuid.UUID]*timeslot.Timeslot
	seats      map[uuid.UUID]*timeslot.Seat
	orders     map[uuid.UUID]*order.Order
	refunds    map[uuid.UUID]*refund.Refund
}

func New(logger *slog.Logger) *Store {
	return &Store{
		logger:     logger,
		activities: map[uuid.UUID]*activity.Activity{},
		timeslots:  map[uuid.UUID]*timeslot.Timeslot{},
		seats:      map[uuid.UUID]*timeslot.Seat{},
		orders:     map[uuid.UUID]*order.Order{},
		refunds:    map[uuid.UUID]*refund.Refund{},
	}
}

// Within stages every write and applies them only when fn returns nil.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.begin(false)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(ctx, s.begin(true))
}

// Reset drops all data. Tests use it between cases.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = map[uuid.UUID]*activity.Activity{}
	s.timeslots = map[uuid.UUID]*timeslot.Timeslot{}
	s.seats = map[uuid.UUID]*timeslot.Seat{}
	s.orders = map[uuid.UUID]*order.Order{}
	s.refunds = map[uuid.UUID]*refund.Refund{}
}

func (s *Store) begin(readOnly bool) *memTx {
	return &memTx{
		store:      s,
		readOnly:   readOnly,
		activities: newOverlay(s.activities, cloneActivity),
		timeslots:  newOverlay(s.timeslots, cloneTimeslot),
		seats:      newOverlay(s.seats, cloneSeat),
		orders:     newOverlay(s.orders, cloneOrder),
		refunds:    newOverlay(s.refunds, cloneRefund),
	}
}

type memTx struct {
	store    *Store
	readOnly bool

	activities *overlay[*activity.Activity]
	timeslots  *overlay[*timeslot.Timeslot]
	seats      *overlay[*timeslot.Seat]
	orders     *overlay[*order.Order]
	refunds    *overlay[*refund.Refund]
}

func (t *memTx) commit() {
	t.activities.commit()
	t.timeslots.commit()
	t.seats.commit()
	t.orders.commit()
	t.refunds.commit()
}

func (t *memTx) writable(what string) error {
	if t.readOnly {
		return infra.WrapRepoErr(t.store.logger, infra.KindDBFailure, "cannot write "+what+" in a read-only unit of work", nil)
	}
	return nil
}

func (t *memTx) notFound(what string) error {
	return infra.WrapRepoErr(t.store.logger, infra.KindNotFound, what+" not found", nil)
}

func (t *memTx) Activities() shared.ActivityRepository { return activityRepo{t} }
func (t *memTx) Timeslots() shared.TimeslotRepository  { return timeslotRepo{t} }
func (t *memTx) Seats() shared.SeatRepository          { return seatRepo{t} }
func (t *memTx) Orders() shared.OrderRepository        { return orderRepo{t} }
func (t *memTx) Refunds() shared.RefundRepository      { return refundRepo{t} }

// overlay reads through staged writes to the committed map. Values are cloned on
// the way in and out so callers never alias stored entities.
type overlay[T any] struct {
	base   map[uuid.UUID]T
	staged map[uuid.UUID]T
	clone  func(T) T
}

func newOverlay[T any](base map[uuid.UUID]T, clone func(T) T) *overlay[T] {
	return &overlay[T]{base: base, staged: map[uuid.UUID]T{}, clone: clone}
}

func (o *overlay[T]) get(id uuid.UUID) (T, bool) {
	if v, ok := o.staged[id]; ok {
		return o.clone(v), true
	}
	if v, ok := o.base[id]; ok {
		return o.clone(v), true
	}
	var zero T
	return zero, false
}

func (o *overlay[T]) has(id uuid.UUID) bool {
	_, staged := o.staged[id]
	_, committed := o.base[id]
	return staged || committed
}

func (o *overlay[T]) put(id uuid.UUID, v T) {
	o.staged[id] = o.clone(v)
}

func (o *overlay[T]) all() []T {
	out := make([]T, 0, len(o.base)+len(o.staged))
	for id, v := range o.base {
		if _, shadowed := o.staged[id]; shadowed {
			continue
		}
		out = append(out, o.clone(v))
	}
	for _, v := range o.staged {
		out = append(out, o.clone(v))
	}
	return out
}

func (o *overlay[T]) commit() {
	for id, v := range o.staged {
		o.base[id] = v
	}
}

func cloneActivity(a *activity.Activity) *activity.Activity {
	return activity.ReconstructActivity(a.ID(), a.Info(), a.Status(), a.CreatedAt(), a.UpdatedAt())
}

func cloneTimeslot(ts *timeslot.Timeslot) *timeslot.Timeslot {
	return timeslot.ReconstructTimeslot(ts.ID(), ts.ActivityID(), ts.Window(), ts.BasePrice(),
		ts.Capacity(), ts.RemainingCapacity(), ts.Status(), ts.CreatedAt(), ts.UpdatedAt())
}

func cloneSeat(s *timeslot.Seat) *timeslot.Seat {
	return timeslot.ReconstructSeat(s.ID(), s.TimeslotID(), s.Position(), s.Price(), s.Status(), s.UpdatedAt())
}

func cloneOrder(o *order.Order) *order.Order {
	return order.Reconstruct(o.Snapshot())
}

func cloneRefund(r *refund.Refund) *refund.Refund {
	return refund.Reconstruct(r.ID(), r.OrderID(), r.Amount(), r.Reason(), r.Status(), r.RequestedAt(), r.ProcessedAt())
}
