//go:build unit || e2e

package builder

import (
	"strconv"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	reqdto "ticketing-engine/internal/handler/dto/request"
	"ticketing-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TimeslotBuilder struct {
	ActivityID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	BasePrice  decimal.Decimal
	Capacity   *int
	CreatedAt  time.Time
}

func NewTimeslotBuilder() *TimeslotBuilder {
	capacity := 100
	start := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	return &TimeslotBuilder{
		ActivityID: uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		BasePrice:  decimal.RequireFromString("1200"),
		Capacity:   &capacity,
		CreatedAt:  time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *TimeslotBuilder) With(mutate func(*TimeslotBuilder)) *TimeslotBuilder {
	mutate(b)
	return b
}

func (b *TimeslotBuilder) BuildDomain() (*timeslot.Timeslot, error) {
	window, err := timeslot.NewWindow(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	return timeslot.NewTimeslot(b.ActivityID, window, b.BasePrice, b.Capacity, b.CreatedAt)
}

func (b *TimeslotBuilder) BuildCreateRequestDTO() reqdto.CreateTimeslotRequest {
	return reqdto.CreateTimeslotRequest{
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		BasePrice: b.BasePrice,
		Capacity:  b.Capacity,
	}
}

func (b *TimeslotBuilder) BuildView() *queries.TimeslotView {
	remaining := 0
	if b.Capacity != nil {
		remaining = *b.Capacity
	}
	return &queries.TimeslotView{
		ID:                uuid.New(),
		ActivityID:        b.ActivityID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		BasePrice:         b.BasePrice,
		Capacity:          b.Capacity,
		RemainingCapacity: remaining,
		Status:            timeslot.StatusOnSale.String(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}

func (b *TimeslotBuilder) WithActivityID(id uuid.UUID) *TimeslotBuilder {
	b.ActivityID = id
	return b
}

func (b *TimeslotBuilder) WithCapacity(capacity int) *TimeslotBuilder {
	b.Capacity = &capacity
	return b
}

// WithoutCapacity makes the slot seat-only.
func (b *TimeslotBuilder) WithoutCapacity() *TimeslotBuilder {
	b.Capacity = nil
	return b
}

// Seats lays out count seats in one row of area A.
func Seats(count int) []timeslot.Position {
	out := make([]timeslot.Position, count)
	for i := range out {
		out[i] = timeslot.Position{Area: "A", Row: "1", Number: strconv.Itoa(i + 1)}
	}
	return out
}
