package order

import (
	"math"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxItemQuantity matches the INTEGER quantity column and keeps order totals from overflowing.
const MaxItemQuantity = math.MaxInt32

// Item is one line of an order. Seat-based items reference a seat; count-based ones don't.
type Item struct {
	id         uuid.UUID
	timeslotID uuid.UUID
	seatID     *uuid.UUID
	unitPrice  decimal.Decimal
	quantity   int
	lineAmount decimal.Decimal
}

func NewItem(timeslotID uuid.UUID, seatID *uuid.UUID, unitPrice decimal.Decimal, quantity int) (Item, error) {
	if unitPrice.IsNegative() {
		return Item{}, errs.ErrInvalidUnitPrice
	}
	if quantity <= 0 || quantity > MaxItemQuantity {
		return Item{}, errs.ErrInvalidQuantity
	}
	return Item{
		id:         uuid.New(),
		timeslotID: timeslotID,
		seatID:     copyID(seatID),
		unitPrice:  unitPrice,
		quantity:   quantity,
		lineAmount: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

func ReconstructItem(id, timeslotID uuid.UUID, seatID *uuid.UUID, unitPrice decimal.Decimal, quantity int, lineAmount decimal.Decimal) Item {
	return Item{
		id:         id,
		timeslotID: timeslotID,
		seatID:     copyID(seatID),
		unitPrice:  unitPrice,
		quantity:   quantity,
		lineAmount: lineAmount,
	}
}

func (i Item) IsSeatBased() bool {
	return i.seatID != nil
}

func (i Item) ID() uuid.UUID               { return i.id }
func (i Item) TimeslotID() uuid.UUID       { return i.timeslotID }
func (i Item) SeatID() *uuid.UUID          { return copyID(i.seatID) }
func (i Item) UnitPrice() decimal.Decimal  { return i.unitPrice }
func (i Item) Quantity() int               { return i.quantity }
func (i Item) LineAmount() decimal.Decimal { return i.lineAmount }

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
