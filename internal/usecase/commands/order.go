package commands

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/notification"
	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/pkg/telemetry"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "ticketing-engine/usecase/commands"

type OrderItemInput struct {
	TimeslotID uuid.UUID
	SeatID     *uuid.UUID
	UnitPrice  decimal.Decimal
	Quantity   int
}

type CreateOrderCommand struct {
	ActivityID    uuid.UUID
	TimeslotID    uuid.UUID
	UserID        *uuid.UUID
	CustomerEmail string
	CustomerName  string
	Currency      string
	Items         []OrderItemInput
	MarkAsPaid    bool
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
	PayOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error)
}

type orderCommandsImpl struct {
	uow             shared.UnitOfWork
	publisher       shared.BillablePublisher
	clock           clock.Clock
	logger          *slog.Logger
	defaultCurrency string
}

func NewOrderCommands(uow shared.UnitOfWork, publisher shared.BillablePublisher, clk clock.Clock, logger *slog.Logger, defaultCurrency string) OrderCommands {
	if defaultCurrency == "" {
		defaultCurrency = order.DefaultCurrency
	}
	return &orderCommandsImpl{
		uow:             uow,
		publisher:       publisher,
		clock:           clk,
		logger:          logger,
		defaultCurrency: defaultCurrency,
	}
}

// CreateOrder allocates inventory and creates the order in one transaction.
// Checks run in a fixed order so the first failing precondition decides the error kind.
func (uc *orderCommandsImpl) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (_ *order.Order, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "OrderCommands.CreateOrder",
		attribute.String("activity.id", cmd.ActivityID.String()),
		attribute.String("timeslot.id", cmd.TimeslotID.String()),
		attribute.Int("items.count", len(cmd.Items)),
	)
	defer func() { telemetry.End(span, err) }()

	var (
		created *order.Order
		fact    *notification.BillableOrder
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		act, err := tx.Activities().FindByID(ctx, cmd.ActivityID)
		if err != nil {
			return notFoundAs(err, errs.ErrActivityUnavailable)
		}
		if !act.AcceptsOrders() {
			return errs.ErrActivityUnavailable
		}

		ts, err := tx.Timeslots().FindByIDForUpdate(ctx, cmd.TimeslotID)
		if err != nil {
			return notFoundAs(err, errs.ErrTimeslotUnavailable)
		}
		if !ts.BelongsTo(act.ID()) || !ts.IsOnSale() {
			return errs.ErrTimeslotUnavailable
		}

		if len(cmd.Items) == 0 {
			return errs.ErrEmptyOrder
		}
		var seatIDs []uuid.UUID
		totalQty := 0
		for _, in := range cmd.Items {
			if in.TimeslotID != cmd.TimeslotID {
				return errs.ErrTimeslotMismatch
			}
			if in.SeatID != nil {
				if in.Quantity != 1 {
					return errs.ErrInvalidSeatQuantity
				}
				seatIDs = append(seatIDs, *in.SeatID)
			}
			totalQty += in.Quantity
		}

		items := make([]order.Item, 0, len(cmd.Items))
		for _, in := range cmd.Items {
			item, err := order.NewItem(in.TimeslotID, in.SeatID, in.UnitPrice, in.Quantity)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		var soldSeats []*timeslot.Seat
		if len(seatIDs) > 0 {
			soldSeats, err = uc.sellSeats(ctx, tx, ts.ID(), seatIDs, now)
			if err != nil {
				return err
			}
		} else {
			if !ts.HasCapacityModel() {
				return errs.ErrNoCapacityModel
			}
			if err = ts.DecreaseCapacity(totalQty, now); err != nil {
				return err
			}
		}

		currency := cmd.Currency
		if currency == "" {
			currency = uc.defaultCurrency
		}
		o, err := order.New(order.NewParams{
			ActivityID: cmd.ActivityID,
			TimeslotID: cmd.TimeslotID,
			Customer: order.Customer{
				UserID: cmd.UserID,
				Email:  cmd.CustomerEmail,
				Name:   cmd.CustomerName,
			},
			Currency: currency,
			Items:    items,
		}, now)
		if err != nil {
			return err
		}
		if cmd.MarkAsPaid {
			if err = o.MarkPaid(now); err != nil {
				return err
			}
		}

		if len(soldSeats) > 0 {
			if err = tx.Seats().UpdateStatuses(ctx, soldSeats); err != nil {
				return err
			}
		} else {
			if err = tx.Timeslots().Update(ctx, ts); err != nil {
				return err
			}
		}
		if err = tx.Orders().Create(ctx, o); err != nil {
			return err
		}

		created = o
		if o.Status() == order.StatusPaid {
			f := billableFact(o, act, ts, now)
			fact = &f
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", created.ID().String()))
	uc.logger.InfoContext(ctx, "order created",
		"order_id", created.ID().String(),
		"order_number", created.OrderNumber(),
		"status", created.Status().String(),
		"total", created.TotalAmount().String())

	if fact != nil {
		uc.publish(ctx, *fact)
	}
	return created, nil
}

// sellSeats locks the requested seats and marks them sold. Duplicate or unresolved ids,
// and seats that are not Available, fail the whole allocation.
func (uc *orderCommandsImpl) sellSeats(ctx context.Context, tx shared.Tx, timeslotID uuid.UUID, seatIDs []uuid.UUID, now time.Time) ([]*timeslot.Seat, error) {
	seen := make(map[uuid.UUID]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			return nil, errs.ErrSeatUnavailable
		}
		seen[id] = struct{}{}
	}

	seats, err := tx.Seats().FindForUpdate(ctx, timeslotID, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(seatIDs) {
		return nil, errs.ErrSeatUnavailable
	}
	for _, s := range seats {
		if !s.IsAvailable() {
			return nil, errs.ErrSeatUnavailable
		}
	}
	for _, s := range seats {
		if err := s.MarkSold(now); err != nil {
			return nil, err
		}
	}
	return seats, nil
}

func (uc *orderCommandsImpl) CancelOrder(ctx context.Context, orderID uuid.UUID) (err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "OrderCommands.CancelOrder",
		attribute.String("order.id", orderID.String()),
	)
	defer func() { telemetry.End(span, err) }()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return notFoundAs(err, errs.ErrOrderNotFound)
		}
		if !o.IsCancellable() {
			return errs.ErrInvalidOrderState
		}

		if seatIDs := o.SeatIDs(); len(seatIDs) > 0 {
			seats, err := tx.Seats().FindForUpdate(ctx, o.TimeslotID(), seatIDs)
			if err != nil {
				return err
			}
			if len(seats) != len(seatIDs) {
				return errs.ErrSeatNotFound
			}
			for _, s := range seats {
				s.Release(now)
			}
			if err = tx.Seats().UpdateStatuses(ctx, seats); err != nil {
				return err
			}
		} else {
			ts, err := tx.Timeslots().FindByIDForUpdate(ctx, o.TimeslotID())
			if err != nil {
				return notFoundAs(err, errs.ErrTimeslotUnavailable)
			}
			if err = ts.IncreaseCapacity(o.TotalQuantity(), now); err != nil {
				return err
			}
			if err = tx.Timeslots().Update(ctx, ts); err != nil {
				return err
			}
		}

		if err = o.Cancel(now); err != nil {
			return err
		}
		return tx.Orders().Update(ctx, o)
	})
	if err != nil {
		return err
	}

	uc.logger.InfoContext(ctx, "order cancelled", "order_id", orderID.String())
	return nil
}

// PayOrder records payment capture for a pending order and emits the billable fact.
func (uc *orderCommandsImpl) PayOrder(ctx context.Context, orderID uuid.UUID) (_ *order.Order, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "OrderCommands.PayOrder",
		attribute.String("order.id", orderID.String()),
	)
	defer func() { telemetry.End(span, err) }()

	var (
		paid *order.Order
		fact notification.BillableOrder
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return notFoundAs(err, errs.ErrOrderNotFound)
		}
		if err = o.MarkPaid(now); err != nil {
			return err
		}
		if err = tx.Orders().Update(ctx, o); err != nil {
			return err
		}

		act, err := tx.Activities().FindByID(ctx, o.ActivityID())
		if err != nil {
			return err
		}
		ts, err := tx.Timeslots().FindByID(ctx, o.TimeslotID())
		if err != nil {
			return err
		}
		paid = o
		fact = billableFact(o, act, ts, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, fact)
	return paid, nil
}

func (uc *orderCommandsImpl) publish(ctx context.Context, fact notification.BillableOrder) {
	if err := uc.publisher.PublishBillable(ctx, fact); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish billable order",
			"order_id", fact.OrderID.String(),
			"error", err.Error())
	}
}

func billableFact(o *order.Order, act *activity.Activity, ts *timeslot.Timeslot, now time.Time) notification.BillableOrder {
	return notification.NewBillableOrder(o.ID(), o.OrderNumber(), o.Customer().Email, act.Name(), ts.Window().Start(), now)
}
