package commands

//go:generate mockgen -source=timeslot.go -destination=../../../tests/mock/commands/timeslot.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDuplicateSeatPosition = errs.Validation("seat position already exists in timeslot")

type CreateTimeslotCommand struct {
	ActivityID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	BasePrice  decimal.Decimal
	Capacity   *int
}

type RescheduleTimeslotCommand struct {
	StartTime time.Time
	EndTime   time.Time
	BasePrice decimal.Decimal
}

type SeatInput struct {
	Position timeslot.Position
	Price    *decimal.Decimal
}

type TimeslotCommands interface {
	Create(ctx context.Context, cmd CreateTimeslotCommand) (*timeslot.Timeslot, error)
	Reschedule(ctx context.Context, id uuid.UUID, cmd RescheduleTimeslotCommand) (*timeslot.Timeslot, error)
	SetCapacity(ctx context.Context, id uuid.UUID, capacity int) (*timeslot.Timeslot, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status timeslot.Status) (*timeslot.Timeslot, error)
	CreateSeats(ctx context.Context, timeslotID uuid.UUID, seats []SeatInput) ([]*timeslot.Seat, error)
}

type timeslotCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewTimeslotCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) TimeslotCommands {
	return &timeslotCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *timeslotCommandsImpl) Create(ctx context.Context, cmd CreateTimeslotCommand) (*timeslot.Timeslot, error) {
	window, err := timeslot.NewWindow(cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}

	var created *timeslot.Timeslot
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Activities().FindByID(ctx, cmd.ActivityID); err != nil {
			return notFoundAs(err, errs.ErrActivityNotFound)
		}
		ts, err := timeslot.NewTimeslot(cmd.ActivityID, window, cmd.BasePrice, cmd.Capacity, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Timeslots().Create(ctx, ts); err != nil {
			return err
		}
		created = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "timeslot created",
		"timeslot_id", created.ID().String(),
		"activity_id", cmd.ActivityID.String())
	return created, nil
}

func (uc *timeslotCommandsImpl) Reschedule(ctx context.Context, id uuid.UUID, cmd RescheduleTimeslotCommand) (*timeslot.Timeslot, error) {
	window, err := timeslot.NewWindow(cmd.StartTime, cmd.EndTime)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, id, func(ts *timeslot.Timeslot, now time.Time) error {
		return ts.Reschedule(window, cmd.BasePrice, now)
	})
}

func (uc *timeslotCommandsImpl) SetCapacity(ctx context.Context, id uuid.UUID, capacity int) (*timeslot.Timeslot, error) {
	ts, err := uc.mutate(ctx, id, func(ts *timeslot.Timeslot, now time.Time) error {
		return ts.SetCapacity(capacity, now)
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "timeslot capacity set",
		"timeslot_id", id.String(),
		"capacity", capacity,
		"remaining", ts.RemainingCapacity())
	return ts, nil
}

func (uc *timeslotCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, status timeslot.Status) (*timeslot.Timeslot, error) {
	return uc.mutate(ctx, id, func(ts *timeslot.Timeslot, now time.Time) error {
		return ts.ChangeStatus(status, now)
	})
}

// CreateSeats adds Available seats to a timeslot. A position may appear once per timeslot.
func (uc *timeslotCommandsImpl) CreateSeats(ctx context.Context, timeslotID uuid.UUID, inputs []SeatInput) ([]*timeslot.Seat, error) {
	if len(inputs) == 0 {
		return nil, errs.Validation("at least one seat is required")
	}

	var created []*timeslot.Seat
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Timeslots().FindByIDForUpdate(ctx, timeslotID); err != nil {
			return notFoundAs(err, errs.ErrTimeslotNotFound)
		}
		existing, err := tx.Seats().ListByTimeslot(ctx, timeslotID)
		if err != nil {
			return err
		}
		taken := make(map[timeslot.Position]struct{}, len(existing)+len(inputs))
		for _, s := range existing {
			taken[s.Position()] = struct{}{}
		}

		now := uc.clock.Now()
		seats := make([]*timeslot.Seat, 0, len(inputs))
		for _, in := range inputs {
			s, err := timeslot.NewSeat(timeslotID, in.Position, in.Price, now)
			if err != nil {
				return err
			}
			if _, dup := taken[s.Position()]; dup {
				return ErrDuplicateSeatPosition
			}
			taken[s.Position()] = struct{}{}
			seats = append(seats, s)
		}
		if err = tx.Seats().CreateBatch(ctx, seats); err != nil {
			return err
		}
		created = seats
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "seats created", "timeslot_id", timeslotID.String(), "count", len(created))
	return created, nil
}

func (uc *timeslotCommandsImpl) mutate(ctx context.Context, id uuid.UUID, fn func(ts *timeslot.Timeslot, now time.Time) error) (*timeslot.Timeslot, error) {
	var out *timeslot.Timeslot
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ts, err := tx.Timeslots().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrTimeslotNotFound)
		}
		if err = fn(ts, uc.clock.Now()); err != nil {
			return err
		}
		if err = tx.Timeslots().Update(ctx, ts); err != nil {
			return err
		}
		out = ts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
