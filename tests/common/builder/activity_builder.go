//go:build unit || e2e

package builder

import (
	"time"

	"ticketing-engine/internal/domain/activity"
	reqdto "ticketing-engine/internal/handler/dto/request"
	"ticketing-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActivityBuilder struct {
	Name        string
	Category    string
	Location    string
	Description string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Status      activity.Status
	CreatedAt   time.Time
}

func NewActivityBuilder() *ActivityBuilder {
	minPrice := decimal.RequireFromString("800")
	maxPrice := decimal.RequireFromString("2400")
	return &ActivityBuilder{
		Name:        "Harbour Night Concert",
		Category:    "concert",
		Location:    "Kaohsiung",
		Description: "Open-air concert on the pier",
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		Status:      activity.StatusDraft,
		CreatedAt:   time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ActivityBuilder) With(mutate func(*ActivityBuilder)) *ActivityBuilder {
	mutate(b)
	return b
}

func (b *ActivityBuilder) Info() activity.Info {
	return activity.Info{
		Name:        b.Name,
		Category:    b.Category,
		Location:    b.Location,
		Description: b.Description,
		MinPrice:    b.MinPrice,
		MaxPrice:    b.MaxPrice,
	}
}

func (b *ActivityBuilder) BuildDomain() (*activity.Activity, error) {
	return activity.NewActivity(b.Info(), b.CreatedAt)
}

// BuildPublished returns an activity that accepts orders.
func (b *ActivityBuilder) BuildPublished() *activity.Activity {
	return activity.ReconstructActivity(uuid.New(), b.Info(), activity.StatusPublished, b.CreatedAt, b.CreatedAt)
}

func (b *ActivityBuilder) BuildRequestDTO() reqdto.ActivityRequest {
	return reqdto.ActivityRequest{
		Name:        b.Name,
		Category:    b.Category,
		Location:    b.Location,
		Description: b.Description,
		MinPrice:    b.MinPrice,
		MaxPrice:    b.MaxPrice,
	}
}

func (b *ActivityBuilder) BuildView() *queries.ActivityView {
	return &queries.ActivityView{
		ID:          uuid.New(),
		Name:        b.Name,
		Category:    b.Category,
		Location:    b.Location,
		Description: b.Description,
		MinPrice:    b.MinPrice,
		MaxPrice:    b.MaxPrice,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *ActivityBuilder) WithName(name string) *ActivityBuilder {
	b.Name = name
	return b
}

func (b *ActivityBuilder) WithPriceRange(minPrice, maxPrice *decimal.Decimal) *ActivityBuilder {
	b.MinPrice = minPrice
	b.MaxPrice = maxPrice
	return b
}
