package activity

import (
	"strings"
	"time"

	"ticketing-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errs.Validation("activity name is required")
	ErrNameTooLong       = errs.Validation("activity name is too long")
	ErrInvalidPriceRange = errs.Validation("min price must be non-negative and not above max price")
)

const MaxNameLength = 200

// Info is the editable catalog description of an activity.
type Info struct {
	Name        string
	Category    string
	Location    string
	Description string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

type Activity struct {
	id        uuid.UUID
	info      Info
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewActivity(info Info, now time.Time) (*Activity, error) {
	info, err := normalize(info)
	if err != nil {
		return nil, err
	}
	return &Activity{
		id:        uuid.New(),
		info:      info,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructActivity(id uuid.UUID, info Info, status Status, createdAt, updatedAt time.Time) *Activity {
	return &Activity{
		id:        id,
		info:      info,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func normalize(info Info) (Info, error) {
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		return Info{}, ErrEmptyName
	}
	if len(info.Name) > MaxNameLength {
		return Info{}, ErrNameTooLong
	}
	info.Category = strings.TrimSpace(info.Category)
	info.Location = strings.TrimSpace(info.Location)
	if info.MinPrice != nil && info.MinPrice.IsNegative() {
		return Info{}, ErrInvalidPriceRange
	}
	if info.MinPrice != nil && info.MaxPrice != nil && info.MinPrice.GreaterThan(*info.MaxPrice) {
		return Info{}, ErrInvalidPriceRange
	}
	return info, nil
}

func (a *Activity) UpdateBasicInfo(info Info, now time.Time) error {
	info, err := normalize(info)
	if err != nil {
		return err
	}
	a.info = info
	a.updatedAt = now
	return nil
}

// Publish is a no-op when already published; archived activities stay archived.
func (a *Activity) Publish(now time.Time) error {
	switch a.status {
	case StatusPublished:
		return nil
	case StatusDraft:
		a.status = StatusPublished
		a.updatedAt = now
		return nil
	default:
		return errs.ErrInvalidActivityState
	}
}

func (a *Activity) Archive(now time.Time) {
	if a.status == StatusArchived {
		return
	}
	a.status = StatusArchived
	a.updatedAt = now
}

func (a *Activity) AcceptsOrders() bool {
	return a.status == StatusPublished
}

func (a *Activity) ID() uuid.UUID        { return a.id }
func (a *Activity) Info() Info           { return a.info }
func (a *Activity) Name() string         { return a.info.Name }
func (a *Activity) Status() Status       { return a.status }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }
func (a *Activity) UpdatedAt() time.Time { return a.updatedAt }
