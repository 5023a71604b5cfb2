package timeslot

import (
	"time"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBasePrice = errs.Validation("base price cannot be negative")
	ErrInvalidStatus     = errs.Validation("invalid timeslot status")
)

// Window is the half-open interval a timeslot occupies.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, errs.ErrInvalidTimeWindow
	}
	return Window{start: start.UTC(), end: end.UTC()}, nil
}

func (w Window) Start() time.Time        { return w.start }
func (w Window) End() time.Time          { return w.end }
func (w Window) Duration() time.Duration { return w.end.Sub(w.start) }

// Timeslot carries the capacity ledger for count-based inventory.
// A nil capacity means the slot is sold by seat only.
type Timeslot struct {
	id                uuid.UUID
	activityID        uuid.UUID
	window            Window
	basePrice         decimal.Decimal
	capacity          *int
	remainingCapacity int
	status            Status
	createdAt         time.Time
	updatedAt         time.Time
}

func NewTimeslot(activityID uuid.UUID, window Window, basePrice decimal.Decimal, capacity *int, now time.Time) (*Timeslot, error) {
	if basePrice.IsNegative() {
		return nil, ErrNegativeBasePrice
	}
	ts := &Timeslot{
		id:         uuid.New(),
		activityID: activityID,
		window:     window,
		basePrice:  basePrice,
		status:     StatusOnSale,
		createdAt:  now,
		updatedAt:  now,
	}
	if capacity != nil {
		if err := ts.SetCapacity(*capacity, now); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func ReconstructTimeslot(
	id, activityID uuid.UUID,
	window Window,
	basePrice decimal.Decimal,
	capacity *int,
	remainingCapacity int,
	status Status,
	createdAt, updatedAt time.Time,
) *Timeslot {
	var c *int
	if capacity != nil {
		v := *capacity
		c = &v
	}
	return &Timeslot{
		id:                id,
		activityID:        activityID,
		window:            window,
		basePrice:         basePrice,
		capacity:          c,
		remainingCapacity: remainingCapacity,
		status:            status,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (t *Timeslot) HasCapacityModel() bool {
	return t.capacity != nil
}

func (t *Timeslot) DecreaseCapacity(qty int, now time.Time) error {
	if t.capacity == nil {
		return errs.ErrNoCapacityModel
	}
	if qty <= 0 || t.remainingCapacity-qty < 0 {
		return errs.ErrCapacityExceeded
	}
	t.remainingCapacity -= qty
	t.updatedAt = now
	return nil
}

// IncreaseCapacity is a release and is not bounded by capacity.
func (t *Timeslot) IncreaseCapacity(qty int, now time.Time) error {
	if t.capacity == nil {
		return errs.ErrNoCapacityModel
	}
	if qty <= 0 {
		return errs.ErrInvalidQuantity
	}
	t.remainingCapacity += qty
	t.updatedAt = now
	return nil
}

// SetCapacity clamps remaining capacity down when the new capacity is smaller.
// Seats or tickets sold under the old capacity are not reconciled.
func (t *Timeslot) SetCapacity(newCap int, now time.Time) error {
	if newCap < 0 {
		return errs.ErrInvalidQuantity
	}
	if t.capacity == nil {
		t.remainingCapacity = newCap
	} else if t.remainingCapacity > newCap {
		t.remainingCapacity = newCap
	}
	t.capacity = &newCap
	t.updatedAt = now
	return nil
}

func (t *Timeslot) Reschedule(window Window, basePrice decimal.Decimal, now time.Time) error {
	if basePrice.IsNegative() {
		return ErrNegativeBasePrice
	}
	t.window = window
	t.basePrice = basePrice
	t.updatedAt = now
	return nil
}

func (t *Timeslot) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	t.status = status
	t.updatedAt = now
	return nil
}

func (t *Timeslot) IsOnSale() bool {
	return t.status == StatusOnSale
}

func (t *Timeslot) BelongsTo(activityID uuid.UUID) bool {
	return t.activityID == activityID
}

func (t *Timeslot) ID() uuid.UUID              { return t.id }
func (t *Timeslot) ActivityID() uuid.UUID      { return t.activityID }
func (t *Timeslot) Window() Window             { return t.window }
func (t *Timeslot) BasePrice() decimal.Decimal { return t.basePrice }
func (t *Timeslot) RemainingCapacity() int     { return t.remainingCapacity }
func (t *Timeslot) Status() Status             { return t.status }
func (t *Timeslot) CreatedAt() time.Time       { return t.createdAt }
func (t *Timeslot) UpdatedAt() time.Time       { return t.updatedAt }

func (t *Timeslot) Capacity() *int {
	if t.capacity == nil {
		return nil
	}
	v := *t.capacity
	return &v
}
