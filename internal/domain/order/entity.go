package order

import (
	"strings"
	"time"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "TWD"

type Customer struct {
	UserID *uuid.UUID
	Email  string
	Name   string
}

type NewParams struct {
	ActivityID uuid.UUID
	TimeslotID uuid.UUID
	Customer   Customer
	Currency   string
	Items      []Item
}

type Order struct {
	id             uuid.UUID
	orderNumber    string
	activityID     uuid.UUID
	timeslotID     uuid.UUID
	customer       Customer
	currency       string
	totalAmount    decimal.Decimal
	refundedAmount decimal.Decimal
	status         Status
	items          []Item
	createdAt      time.Time
	paidAt         *time.Time
	cancelledAt    *time.Time
	refundedAt     *time.Time
}

func New(p NewParams, now time.Time) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, errs.ErrEmptyOrder
	}
	total := decimal.Zero
	for _, it := range p.Items {
		if it.timeslotID != p.TimeslotID {
			return nil, errs.ErrTimeslotMismatch
		}
		total = total.Add(it.lineAmount)
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	id := uuid.New()
	items := make([]Item, len(p.Items))
	copy(items, p.Items)

	return &Order{
		id:          id,
		orderNumber: NumberFor(id, now),
		activityID:  p.ActivityID,
		timeslotID:  p.TimeslotID,
		customer: Customer{
			UserID: copyID(p.Customer.UserID),
			Email:  strings.TrimSpace(p.Customer.Email),
			Name:   strings.TrimSpace(p.Customer.Name),
		},
		currency:       currency,
		totalAmount:    total,
		refundedAmount: decimal.Zero,
		status:         StatusPendingPayment,
		items:          items,
		createdAt:      now,
	}, nil
}

// NumberFor renders ORD-yyyyMMdd-XXXXXXXX from the creation date and the first 8 hex digits of the id.
func NumberFor(id uuid.UUID, createdAt time.Time) string {
	return "ORD-" + createdAt.UTC().Format("20060102") + "-" + strings.ToUpper(id.String()[:8])
}

type Snapshot struct {
	ID             uuid.UUID
	OrderNumber    string
	ActivityID     uuid.UUID
	TimeslotID     uuid.UUID
	Customer       Customer
	Currency       string
	TotalAmount    decimal.Decimal
	RefundedAmount decimal.Decimal
	Status         Status
	Items          []Item
	CreatedAt      time.Time
	PaidAt         *time.Time
	CancelledAt    *time.Time
	RefundedAt     *time.Time
}

func Reconstruct(s Snapshot) *Order {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return &Order{
		id:             s.ID,
		orderNumber:    s.OrderNumber,
		activityID:     s.ActivityID,
		timeslotID:     s.TimeslotID,
		customer:       Customer{UserID: copyID(s.Customer.UserID), Email: s.Customer.Email, Name: s.Customer.Name},
		currency:       s.Currency,
		totalAmount:    s.TotalAmount,
		refundedAmount: s.RefundedAmount,
		status:         s.Status,
		items:          items,
		createdAt:      s.CreatedAt,
		paidAt:         copyTime(s.PaidAt),
		cancelledAt:    copyTime(s.CancelledAt),
		refundedAt:     copyTime(s.RefundedAt),
	}
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:             o.id,
		OrderNumber:    o.orderNumber,
		ActivityID:     o.activityID,
		TimeslotID:     o.timeslotID,
		Customer:       o.Customer(),
		Currency:       o.currency,
		TotalAmount:    o.totalAmount,
		RefundedAmount: o.refundedAmount,
		Status:         o.status,
		Items:          o.Items(),
		CreatedAt:      o.createdAt,
		PaidAt:         copyTime(o.paidAt),
		CancelledAt:    copyTime(o.cancelledAt),
		RefundedAt:     copyTime(o.refundedAt),
	}
}

func (o *Order) MarkPaid(now time.Time) error {
	if o.status != StatusPendingPayment {
		return errs.ErrInvalidOrderState
	}
	o.status = StatusPaid
	o.paidAt = &now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if !o.IsCancellable() {
		return errs.ErrInvalidOrderState
	}
	o.status = StatusCancelled
	o.cancelledAt = &now
	return nil
}

func (o *Order) ApplyRefund(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	if !o.AcceptsRefunds() {
		return errs.ErrInvalidOrderState
	}
	next := o.refundedAmount.Add(amount)
	if next.GreaterThan(o.totalAmount) {
		return errs.ErrRefundExceedsTotal
	}
	o.refundedAmount = next
	o.refundedAt = &now
	if next.Equal(o.totalAmount) {
		o.status = StatusRefunded
	} else {
		o.status = StatusPartiallyRefunded
	}
	return nil
}

func (o *Order) IsCancellable() bool {
	return o.status == StatusPendingPayment || o.status == StatusPaid
}

func (o *Order) AcceptsRefunds() bool {
	return o.status == StatusPaid || o.status == StatusPartiallyRefunded
}

func (o *Order) RefundableBalance() decimal.Decimal {
	return o.totalAmount.Sub(o.refundedAmount)
}

// SeatIDs lists the seats held by seat-based items, in item order.
func (o *Order) SeatIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, it := range o.items {
		if it.seatID != nil {
			ids = append(ids, *it.seatID)
		}
	}
	return ids
}

func (o *Order) TotalQuantity() int {
	n := 0
	for _, it := range o.items {
		n += it.quantity
	}
	return n
}

func (o *Order) ID() uuid.UUID                   { return o.id }
func (o *Order) OrderNumber() string             { return o.orderNumber }
func (o *Order) ActivityID() uuid.UUID           { return o.activityID }
func (o *Order) TimeslotID() uuid.UUID           { return o.timeslotID }
func (o *Order) Currency() string                { return o.currency }
func (o *Order) TotalAmount() decimal.Decimal    { return o.totalAmount }
func (o *Order) RefundedAmount() decimal.Decimal { return o.refundedAmount }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) PaidAt() *time.Time              { return copyTime(o.paidAt) }
func (o *Order) CancelledAt() *time.Time         { return copyTime(o.cancelledAt) }
func (o *Order) RefundedAt() *time.Time          { return copyTime(o.refundedAt) }

func (o *Order) Customer() Customer {
	return Customer{UserID: copyID(o.customer.UserID), Email: o.customer.Email, Name: o.customer.Name}
}

func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
