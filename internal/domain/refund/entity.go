package refund

import (
	"strings"
	"time"

	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxReasonLength = 1000

var (
	ErrReasonTooLong = errs.Validation("refund reason is too long")
	ErrOrderMismatch = errs.New("refund does not belong to the order")
)

type Refund struct {
	id          uuid.UUID
	orderID     uuid.UUID
	amount      decimal.Decimal
	reason      string
	status      Status
	requestedAt time.Time
	processedAt *time.Time
}

// Request validates the amount against the order's refundable balance at this moment.
func Request(o *order.Order, amount decimal.Decimal, reason string, now time.Time) (*Refund, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}
	if !o.AcceptsRefunds() {
		return nil, errs.ErrInvalidOrderState
	}
	if !amount.IsPositive() || amount.GreaterThan(o.RefundableBalance()) {
		return nil, errs.ErrInvalidAmount
	}
	return &Refund{
		id:          uuid.New(),
		orderID:     o.ID(),
		amount:      amount,
		reason:      reason,
		status:      StatusRequested,
		requestedAt: now,
	}, nil
}

func Reconstruct(id, orderID uuid.UUID, amount decimal.Decimal, reason string, status Status, requestedAt time.Time, processedAt *time.Time) *Refund {
	var p *time.Time
	if processedAt != nil {
		v := *processedAt
		p = &v
	}
	return &Refund{
		id:          id,
		orderID:     orderID,
		amount:      amount,
		reason:      reason,
		status:      status,
		requestedAt: requestedAt,
		processedAt: p,
	}
}

func (r *Refund) Approve(now time.Time) error {
	if r.status != StatusRequested {
		return errs.ErrInvalidRefundState
	}
	r.status = StatusApproved
	r.processedAt = &now
	return nil
}

func (r *Refund) Reject(now time.Time) error {
	if r.status != StatusRequested {
		return errs.ErrInvalidRefundState
	}
	r.status = StatusRejected
	r.processedAt = &now
	return nil
}

// Complete applies the approved amount to the order. On failure the refund stays Approved.
// The amount is not re-validated here; ApplyRefund enforces the total against the order's current state.
func (r *Refund) Complete(o *order.Order, now time.Time) error {
	if r.status != StatusApproved {
		return errs.ErrInvalidRefundState
	}
	if o.ID() != r.orderID {
		return ErrOrderMismatch
	}
	if err := o.ApplyRefund(r.amount, now); err != nil {
		return err
	}
	r.status = StatusCompleted
	r.processedAt = &now
	return nil
}

func (r *Refund) ID() uuid.UUID           { return r.id }
func (r *Refund) OrderID() uuid.UUID      { return r.orderID }
func (r *Refund) Amount() decimal.Decimal { return r.amount }
func (r *Refund) Reason() string          { return r.reason }
func (r *Refund) Status() Status          { return r.status }
func (r *Refund) RequestedAt() time.Time  { return r.requestedAt }

func (r *Refund) ProcessedAt() *time.Time {
	if r.processedAt == nil {
		return nil
	}
	v := *r.processedAt
	return &v
}
