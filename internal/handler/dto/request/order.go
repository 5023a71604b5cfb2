package request

import (
	"strings"

	"ticketing-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	TimeslotID uuid.UUID       `json:"timeslot_id" binding:"required"`
	SeatID     *uuid.UUID      `json:"seat_id,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

type CreateOrderRequest struct {
	ActivityID    uuid.UUID          `json:"activity_id" binding:"required"`
	TimeslotID    uuid.UUID          `json:"timeslot_id" binding:"required"`
	CustomerEmail string             `json:"customer_email" binding:"required,email,max=320"`
	CustomerName  string             `json:"customer_name" binding:"required,max=200"`
	Currency      string             `json:"currency,omitempty" binding:"omitempty,len=3"`
	Items         []OrderItemRequest `json:"items" binding:"required,dive"`
	MarkAsPaid    bool               `json:"mark_as_paid"`
}

// ToCommand attaches the caller's identity when the request was authenticated.
func (r CreateOrderRequest) ToCommand(userID *uuid.UUID) commands.CreateOrderCommand {
	items := make([]commands.OrderItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.OrderItemInput{
			TimeslotID: it.TimeslotID,
			SeatID:     it.SeatID,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		}
	}
	return commands.CreateOrderCommand{
		ActivityID:    r.ActivityID,
		TimeslotID:    r.TimeslotID,
		UserID:        userID,
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		CustomerName:  strings.TrimSpace(r.CustomerName),
		Currency:      strings.ToUpper(r.Currency),
		Items:         items,
		MarkAsPaid:    r.MarkAsPaid,
	}
}

type RequestRefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" binding:"max=1000"`
}

type ListRefundsQuery struct {
	OrderID string `form:"order_id" binding:"omitempty,uuid"`
	Status  string `form:"status"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

func (q ListRefundsQuery) OrderUUID() *uuid.UUID {
	if q.OrderID == "" {
		return nil
	}
	id, err := uuid.Parse(q.OrderID)
	if err != nil {
		return nil
	}
	return &id
}
