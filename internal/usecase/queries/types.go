package queries

import (
	"time"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// ActivityView represents read-optimized activity data
type ActivityView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TimeslotView represents read-optimized timeslot data
type TimeslotView struct {
	ID                uuid.UUID       `json:"id"`
	ActivityID        uuid.UUID       `json:"activity_id"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	BasePrice         decimal.Decimal `json:"base_price"`
	Capacity          *int            `json:"capacity,omitempty"`
	RemainingCapacity int             `json:"remaining_capacity"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type SeatView struct {
	ID         uuid.UUID        `json:"id"`
	TimeslotID uuid.UUID        `json:"timeslot_id"`
	Area       string           `json:"area"`
	Row        string           `json:"row"`
	Number     string           `json:"number"`
	Label      string           `json:"label"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Status     string           `json:"status"`
}

type OrderItemView struct {
	ID         uuid.UUID       `json:"id"`
	TimeslotID uuid.UUID       `json:"timeslot_id"`
	SeatID     *uuid.UUID      `json:"seat_id,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LineAmount decimal.Decimal `json:"line_amount"`
}

// OrderView carries the order header with its items
type OrderView struct {
	ID             uuid.UUID       `json:"id"`
	OrderNumber    string          `json:"order_number"`
	ActivityID     uuid.UUID       `json:"activity_id"`
	TimeslotID     uuid.UUID       `json:"timeslot_id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerName   string          `json:"customer_name"`
	Currency       string          `json:"currency"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	Status         string          `json:"status"`
	Items          []OrderItemView `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	RefundedAt     *time.Time      `json:"refunded_at,omitempty"`
}

type RefundView struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	RequestedAt time.Time       `json:"requested_at"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}

type Page struct {
	Limit  int
	Offset int
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (p Page) normalized() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	return Page{Limit: ValidateLimit(p.Limit), Offset: p.Offset}
}

func notFoundAs(err error, kind *errs.Kind) error {
	if errs.Is(err, errs.ErrNotFound) {
		return errs.Mark(errs.Wrap(err, kind.Message()), kind)
	}
	return err
}
