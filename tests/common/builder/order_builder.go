//go:build unit || e2e

package builder

import (
	"time"

	"ticketing-engine/internal/domain/order"
	reqdto "ticketing-engine/internal/handler/dto/request"
	"ticketing-engine/internal/usecase/commands"
	"ticketing-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderBuilder struct {
	ActivityID    uuid.UUID
	TimeslotID    uuid.UUID
	CustomerEmail string
	CustomerName  string
	Currency      string
	Items         []commands.OrderItemInput
	MarkAsPaid    bool
	CreatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	timeslotID := uuid.New()
	return &OrderBuilder{
		ActivityID:    uuid.New(),
		TimeslotID:    timeslotID,
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Lin Mei",
		Currency:      "TWD",
		Items: []commands.OrderItemInput{
			{TimeslotID: timeslotID, UnitPrice: decimal.RequireFromString("1200"), Quantity: 2},
		},
		CreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

// For points the order and every item at the given activity and timeslot.
func (b *OrderBuilder) For(activityID, timeslotID uuid.UUID) *OrderBuilder {
	b.ActivityID = activityID
	b.TimeslotID = timeslotID
	for i := range b.Items {
		b.Items[i].TimeslotID = timeslotID
	}
	return b
}

func (b *OrderBuilder) WithQuantity(qty int) *OrderBuilder {
	b.Items = []commands.OrderItemInput{
		{TimeslotID: b.TimeslotID, UnitPrice: decimal.RequireFromString("1200"), Quantity: qty},
	}
	return b
}

func (b *OrderBuilder) WithSeats(seatIDs ...uuid.UUID) *OrderBuilder {
	b.Items = make([]commands.OrderItemInput, len(seatIDs))
	for i := range seatIDs {
		id := seatIDs[i]
		b.Items[i] = commands.OrderItemInput{
			TimeslotID: b.TimeslotID,
			SeatID:     &id,
			UnitPrice:  decimal.RequireFromString("1500"),
			Quantity:   1,
		}
	}
	return b
}

func (b *OrderBuilder) Paid() *OrderBuilder {
	b.MarkAsPaid = true
	return b
}

func (b *OrderBuilder) BuildCommand() commands.CreateOrderCommand {
	items := make([]commands.OrderItemInput, len(b.Items))
	copy(items, b.Items)
	return commands.CreateOrderCommand{
		ActivityID:    b.ActivityID,
		TimeslotID:    b.TimeslotID,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		Currency:      b.Currency,
		Items:         items,
		MarkAsPaid:    b.MarkAsPaid,
	}
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	items := make([]order.Item, 0, len(b.Items))
	for _, in := range b.Items {
		item, err := order.NewItem(in.TimeslotID, in.SeatID, in.UnitPrice, in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	o, err := order.New(order.NewParams{
		ActivityID: b.ActivityID,
		TimeslotID: b.TimeslotID,
		Customer:   order.Customer{Email: b.CustomerEmail, Name: b.CustomerName},
		Currency:   b.Currency,
		Items:      items,
	}, b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.MarkAsPaid {
		if err = o.MarkPaid(b.CreatedAt); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (b *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	items := make([]reqdto.OrderItemRequest, len(b.Items))
	for i, in := range b.Items {
		items[i] = reqdto.OrderItemRequest{
			TimeslotID: in.TimeslotID,
			SeatID:     in.SeatID,
			UnitPrice:  in.UnitPrice,
			Quantity:   in.Quantity,
		}
	}
	return reqdto.CreateOrderRequest{
		ActivityID:    b.ActivityID,
		TimeslotID:    b.TimeslotID,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		Currency:      b.Currency,
		Items:         items,
		MarkAsPaid:    b.MarkAsPaid,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	o, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.ToOrderView(o)
}
