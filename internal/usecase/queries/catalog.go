package queries

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog.go -package=queriesmock

import (
	"context"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidStatusFilter = errs.Validation("unknown status filter")

type ActivityListFilter struct {
	Status string
	Page
}

type ActivityQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ActivityView, error)
	List(ctx context.Context, filter ActivityListFilter) ([]*ActivityView, error)
}

type TimeslotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TimeslotView, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*TimeslotView, error)
	ListSeats(ctx context.Context, timeslotID uuid.UUID) ([]*SeatView, error)
}

type activityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewActivityQueries(uow shared.UnitOfWork) ActivityQueries {
	return &activityQueriesImpl{uow: uow}
}

func (q *activityQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ActivityView, error) {
	var view *ActivityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Activities().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrActivityNotFound)
		}
		view = ToActivityView(a)
		return nil
	})
	return view, err
}

func (q *activityQueriesImpl) List(ctx context.Context, filter ActivityListFilter) ([]*ActivityView, error) {
	page := filter.Page.normalized()
	f := shared.ActivityFilter{Limit: page.Limit, Offset: page.Offset}
	if filter.Status != "" {
		st := activity.Status(filter.Status)
		if !st.IsValid() {
			return nil, ErrInvalidStatusFilter
		}
		f.Status = &st
	}

	views := []*ActivityView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Activities().List(ctx, f)
		if err != nil {
			return err
		}
		for _, a := range list {
			views = append(views, ToActivityView(a))
		}
		return nil
	})
	return views, err
}

type timeslotQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewTimeslotQueries(uow shared.UnitOfWork) TimeslotQueries {
	return &timeslotQueriesImpl{uow: uow}
}

func (q *timeslotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TimeslotView, error) {
	var view *TimeslotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		ts, err := tx.Timeslots().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrTimeslotNotFound)
		}
		view = ToTimeslotView(ts)
		return nil
	})
	return view, err
}

func (q *timeslotQueriesImpl) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*TimeslotView, error) {
	views := []*TimeslotView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Activities().FindByID(ctx, activityID); err != nil {
			return notFoundAs(err, errs.ErrActivityNotFound)
		}
		list, err := tx.Timeslots().ListByActivity(ctx, activityID)
		if err != nil {
			return err
		}
		for _, ts := range list {
			views = append(views, ToTimeslotView(ts))
		}
		return nil
	})
	return views, err
}

func (q *timeslotQueriesImpl) ListSeats(ctx context.Context, timeslotID uuid.UUID) ([]*SeatView, error) {
	views := []*SeatView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Timeslots().FindByID(ctx, timeslotID); err != nil {
			return notFoundAs(err, errs.ErrTimeslotNotFound)
		}
		seats, err := tx.Seats().ListByTimeslot(ctx, timeslotID)
		if err != nil {
			return err
		}
		for _, s := range seats {
			views = append(views, ToSeatView(s))
		}
		return nil
	})
	return views, err
}

func ToActivityView(a *activity.Activity) *ActivityView {
	info := a.Info()
	return &ActivityView{
		ID:          a.ID(),
		Name:        info.Name,
		Category:    info.Category,
		Location:    info.Location,
		Description: info.Description,
		MinPrice:    info.MinPrice,
		MaxPrice:    info.MaxPrice,
		Status:      a.Status().String(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func ToTimeslotView(ts *timeslot.Timeslot) *TimeslotView {
	return &TimeslotView{
		ID:                ts.ID(),
		ActivityID:        ts.ActivityID(),
		StartTime:         ts.Window().Start(),
		EndTime:           ts.Window().End(),
		BasePrice:         ts.BasePrice(),
		Capacity:          ts.Capacity(),
		RemainingCapacity: ts.RemainingCapacity(),
		Status:            ts.Status().String(),
		CreatedAt:         ts.CreatedAt(),
		UpdatedAt:         ts.UpdatedAt(),
	}
}

func ToSeatView(s *timeslot.Seat) *SeatView {
	pos := s.Position()
	return &SeatView{
		ID:         s.ID(),
		TimeslotID: s.TimeslotID(),
		Area:       pos.Area,
		Row:        pos.Row,
		Number:     pos.Number,
		Label:      s.Label(),
		Price:      s.Price(),
		Status:     s.Status().String(),
	}
}
