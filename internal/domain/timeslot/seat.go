package timeslot

import (
	"fmt"
	"strings"
	"time"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidSeatPosition = errs.Validation("seat area, row and number are required")
	ErrNegativeSeatPrice   = errs.Validation("seat price cannot be negative")
)

type Position struct {
	Area   string
	Row    string
	Number string
}

// Label renders the position as Area-Row-Number.
func (p Position) Label() string {
	return fmt.Sprintf("%s-%s-%s", p.Area, p.Row, p.Number)
}

type Seat struct {
	id         uuid.UUID
	timeslotID uuid.UUID
	position   Position
	price      *decimal.Decimal
	status     SeatStatus
	updatedAt  time.Time
}

func NewSeat(timeslotID uuid.UUID, pos Position, price *decimal.Decimal, now time.Time) (*Seat, error) {
	pos.Area = strings.TrimSpace(pos.Area)
	pos.Row = strings.TrimSpace(pos.Row)
	pos.Number = strings.TrimSpace(pos.Number)
	if pos.Area == "" || pos.Row == "" || pos.Number == "" {
		return nil, ErrInvalidSeatPosition
	}
	if price != nil && price.IsNegative() {
		return nil, ErrNegativeSeatPrice
	}
	return &Seat{
		id:         uuid.New(),
		timeslotID: timeslotID,
		position:   pos,
		price:      copyDecimal(price),
		status:     SeatAvailable,
		updatedAt:  now,
	}, nil
}

func ReconstructSeat(id, timeslotID uuid.UUID, pos Position, price *decimal.Decimal, status SeatStatus, updatedAt time.Time) *Seat {
	return &Seat{
		id:         id,
		timeslotID: timeslotID,
		position:   pos,
		price:      copyDecimal(price),
		status:     status,
		updatedAt:  updatedAt,
	}
}

// MarkSold is idempotent for seats that are already sold.
func (s *Seat) MarkSold(now time.Time) error {
	switch s.status {
	case SeatSold:
		return nil
	case SeatAvailable, SeatReserved, SeatLocked:
		s.status = SeatSold
		s.updatedAt = now
		return nil
	default:
		return errs.ErrInvalidSeatTransition
	}
}

func (s *Seat) Release(now time.Time) {
	s.status = SeatAvailable
	s.updatedAt = now
}

func (s *Seat) IsAvailable() bool {
	return s.status == SeatAvailable
}

func (s *Seat) ID() uuid.UUID           { return s.id }
func (s *Seat) TimeslotID() uuid.UUID   { return s.timeslotID }
func (s *Seat) Position() Position      { return s.position }
func (s *Seat) Label() string           { return s.position.Label() }
func (s *Seat) Price() *decimal.Decimal { return copyDecimal(s.price) }
func (s *Seat) Status() SeatStatus      { return s.status }
func (s *Seat) UpdatedAt() time.Time    { return s.updatedAt }

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
