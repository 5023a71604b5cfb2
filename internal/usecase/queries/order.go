package queries

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queriesmock

import (
	"context"

	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type RefundListFilter struct {
	OrderID *uuid.UUID
	Status  string
	Page
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type RefundQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RefundView, error)
	List(ctx context.Context, filter RefundListFilter) ([]*RefundView, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*RefundView, error)
}

type orderQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewOrderQueries(uow shared.UnitOfWork) OrderQueries {
	return &orderQueriesImpl{uow: uow}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	var view *OrderView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrOrderNotFound)
		}
		view = ToOrderView(o)
		return nil
	})
	return view, err
}

type refundQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewRefundQueries(uow shared.UnitOfWork) RefundQueries {
	return &refundQueriesImpl{uow: uow}
}

func (q *refundQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RefundView, error) {
	var view *RefundView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Refunds().FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrRefundNotFound)
		}
		view = ToRefundView(r)
		return nil
	})
	return view, err
}

func (q *refundQueriesImpl) List(ctx context.Context, filter RefundListFilter) ([]*RefundView, error) {
	page := filter.Page.normalized()
	f := shared.RefundFilter{OrderID: filter.OrderID, Limit: page.Limit, Offset: page.Offset}
	if filter.Status != "" {
		st := refund.Status(filter.Status)
		if !st.IsValid() {
			return nil, ErrInvalidStatusFilter
		}
		f.Status = &st
	}
	return q.list(ctx, f, nil)
}

func (q *refundQueriesImpl) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*RefundView, error) {
	f := shared.RefundFilter{OrderID: &orderID, Limit: MaxListLimit}
	return q.list(ctx, f, &orderID)
}

// list optionally checks the order exists first, so an unknown order is a miss rather than an empty list.
func (q *refundQueriesImpl) list(ctx context.Context, f shared.RefundFilter, requireOrder *uuid.UUID) ([]*RefundView, error) {
	views := []*RefundView{}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if requireOrder != nil {
			if _, err := tx.Orders().FindByID(ctx, *requireOrder); err != nil {
				return notFoundAs(err, errs.ErrOrderNotFound)
			}
		}
		list, err := tx.Refunds().List(ctx, f)
		if err != nil {
			return err
		}
		for _, r := range list {
			views = append(views, ToRefundView(r))
		}
		return nil
	})
	return views, err
}

// ToOrderView is shared with the command handlers, which answer with the view of what they wrote.
func ToOrderView(o *order.Order) *OrderView {
	c := o.Customer()
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemView{
			ID:         it.ID(),
			TimeslotID: it.TimeslotID(),
			SeatID:     it.SeatID(),
			UnitPrice:  it.UnitPrice(),
			Quantity:   it.Quantity(),
			LineAmount: it.LineAmount(),
		})
	}
	return &OrderView{
		ID:             o.ID(),
		OrderNumber:    o.OrderNumber(),
		ActivityID:     o.ActivityID(),
		TimeslotID:     o.TimeslotID(),
		UserID:         c.UserID,
		CustomerEmail:  c.Email,
		CustomerName:   c.Name,
		Currency:       o.Currency(),
		TotalAmount:    o.TotalAmount(),
		RefundedAmount: o.RefundedAmount(),
		Status:         o.Status().String(),
		Items:          items,
		CreatedAt:      o.CreatedAt(),
		PaidAt:         o.PaidAt(),
		CancelledAt:    o.CancelledAt(),
		RefundedAt:     o.RefundedAt(),
	}
}

func ToRefundView(r *refund.Refund) *RefundView {
	return &RefundView{
		ID:          r.ID(),
		OrderID:     r.OrderID(),
		Amount:      r.Amount(),
		Reason:      r.Reason(),
		Status:      r.Status().String(),
		RequestedAt: r.RequestedAt(),
		ProcessedAt: r.ProcessedAt(),
	}
}
