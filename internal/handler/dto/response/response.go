package response

import (
	"time"

	"ticketing-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Money is rendered with two fixed decimals.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				return src.(decimal.Decimal).StringFixed(2), nil
			},
		},
		{
			SrcType: &decimal.Decimal{},
			DstType: new(string),
			Fn: func(src interface{}) (interface{}, error) {
				d, _ := src.(*decimal.Decimal)
				if d == nil {
					return (*string)(nil), nil
				}
				s := d.StringFixed(2)
				return &s, nil
			},
		},
	},
}

func copyInto[T any](src any) *T {
	var dst T
	// Only converter failures can error, and ours never do.
	_ = copier.CopyWithOption(&dst, src, copyOption)
	return &dst
}

func copyList[T, V any](items []*V) []*T {
	out := make([]*T, len(items))
	for i, it := range items {
		out[i] = copyInto[T](it)
	}
	return out
}

type ActivityResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	MinPrice    *string   `json:"min_price,omitempty"`
	MaxPrice    *string   `json:"max_price,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromActivityView(v *queries.ActivityView) *ActivityResponse {
	return copyInto[ActivityResponse](v)
}

func FromActivityViews(vs []*queries.ActivityView) []*ActivityResponse {
	return copyList[ActivityResponse](vs)
}

type TimeslotResponse struct {
	ID                uuid.UUID `json:"id"`
	ActivityID        uuid.UUID `json:"activity_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	BasePrice         string    `json:"base_price"`
	Capacity          *int      `json:"capacity,omitempty"`
	RemainingCapacity int       `json:"remaining_capacity"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromTimeslotView(v *queries.TimeslotView) *TimeslotResponse {
	return copyInto[TimeslotResponse](v)
}

func FromTimeslotViews(vs []*queries.TimeslotView) []*TimeslotResponse {
	return copyList[TimeslotResponse](vs)
}

type SeatResponse struct {
	ID         uuid.UUID `json:"id"`
	TimeslotID uuid.UUID `json:"timeslot_id"`
	Area       string    `json:"area"`
	Row        string    `json:"row"`
	Number     string    `json:"number"`
	Label      string    `json:"label"`
	Price      *string   `json:"price,omitempty"`
	Status     string    `json:"status"`
}

func FromSeatViews(vs []*queries.SeatView) []*SeatResponse {
	return copyList[SeatResponse](vs)
}

type OrderItemResponse struct {
	ID         uuid.UUID  `json:"id"`
	TimeslotID uuid.UUID  `json:"timeslot_id"`
	SeatID     *uuid.UUID `json:"seat_id,omitempty"`
	UnitPrice  string     `json:"unit_price"`
	Quantity   int        `json:"quantity"`
	LineAmount string     `json:"line_amount"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	ActivityID     uuid.UUID           `json:"activity_id"`
	TimeslotID     uuid.UUID           `json:"timeslot_id"`
	UserID         *uuid.UUID          `json:"user_id,omitempty"`
	CustomerEmail  string              `json:"customer_email"`
	CustomerName   string              `json:"customer_name"`
	Currency       string              `json:"currency"`
	TotalAmount    string              `json:"total_amount"`
	RefundedAmount string              `json:"refunded_amount"`
	Status         string              `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	RefundedAt     *time.Time          `json:"refunded_at,omitempty"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	return copyInto[OrderResponse](v)
}

type RefundResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     uuid.UUID  `json:"order_id"`
	Amount      string     `json:"amount"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func FromRefundView(v *queries.RefundView) *RefundResponse {
	return copyInto[RefundResponse](v)
}

func FromRefundViews(vs []*queries.RefundView) []*RefundResponse {
	return copyList[RefundResponse](vs)
}

type ListResponse[T any] struct {
	Items  []*T `json:"items"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
}
