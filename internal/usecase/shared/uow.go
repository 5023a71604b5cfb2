package shared

import (
	"context"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/notification"
	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/domain/timeslot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-write transaction. Everything fn persists commits or rolls back together,
	// and rows read through *ForUpdate stay locked until then.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent snapshot for multi-entity reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Activities() ActivityRepository
	Timeslots() TimeslotRepository
	Seats() SeatRepository
	Orders() OrderRepository
	Refunds() RefundRepository
}

// Repositories return errs.ErrNotFound for missing rows and errs.ErrTransient for storage faults.

type ActivityRepository interface {
	Create(ctx context.Context, a *activity.Activity) error
	Update(ctx context.Context, a *activity.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*activity.Activity, error)
	List(ctx context.Context, filter ActivityFilter) ([]*activity.Activity, error)
}

type TimeslotRepository interface {
	Create(ctx context.Context, ts *timeslot.Timeslot) error
	Update(ctx context.Context, ts *timeslot.Timeslot) error
	FindByID(ctx context.Context, id uuid.UUID) (*timeslot.Timeslot, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*timeslot.Timeslot, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*timeslot.Timeslot, error)
}

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*timeslot.Seat) error
	UpdateStatuses(ctx context.Context, seats []*timeslot.Seat) error
	// FindForUpdate locks the seats of a timeslot in ascending id order.
	// Ids that do not resolve within the timeslot are omitted from the result.
	FindForUpdate(ctx context.Context, timeslotID uuid.UUID, ids []uuid.UUID) ([]*timeslot.Seat, error)
	ListByTimeslot(ctx context.Context, timeslotID uuid.UUID) ([]*timeslot.Seat, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	Update(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

type RefundRepository interface {
	Create(ctx context.Context, r *refund.Refund) error
	Update(ctx context.Context, r *refund.Refund) error
	FindByID(ctx context.Context, id uuid.UUID) (*refund.Refund, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*refund.Refund, error)
	List(ctx context.Context, filter RefundFilter) ([]*refund.Refund, error)
}

type ActivityFilter struct {
	Status *activity.Status
	Limit  int
	Offset int
}

type RefundFilter struct {
	OrderID *uuid.UUID
	Status  *refund.Status
	Limit   int
	Offset  int
}

// BillablePublisher hands billable-order facts to the notification consumer.
// Called after commit; delivery failures never undo the order.
type BillablePublisher interface {
	PublishBillable(ctx context.Context, fact notification.BillableOrder) error
}
