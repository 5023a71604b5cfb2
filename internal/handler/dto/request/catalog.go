package request

import (
	"strings"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActivityRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Category    string           `json:"category" binding:"max=100"`
	Location    string           `json:"location" binding:"max=200"`
	Description string           `json:"description" binding:"max=4000"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
}

func (r ActivityRequest) ToInfo() activity.Info {
	return activity.Info{
		Name:        strings.TrimSpace(r.Name),
		Category:    strings.TrimSpace(r.Category),
		Location:    strings.TrimSpace(r.Location),
		Description: r.Description,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
	}
}

type ListActivitiesQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type CreateTimeslotRequest struct {
	StartTime time.Time       `json:"start_time" binding:"required"`
	EndTime   time.Time       `json:"end_time" binding:"required"`
	BasePrice decimal.Decimal `json:"base_price"`
	Capacity  *int            `json:"capacity,omitempty" binding:"omitempty,min=0"`
}

func (r CreateTimeslotRequest) ToCommand(activityID uuid.UUID) commands.CreateTimeslotCommand {
	return commands.CreateTimeslotCommand{
		ActivityID: activityID,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		BasePrice:  r.BasePrice,
		Capacity:   r.Capacity,
	}
}

type UpdateTimeslotRequest struct {
	StartTime time.Time       `json:"start_time" binding:"required"`
	EndTime   time.Time       `json:"end_time" binding:"required"`
	BasePrice decimal.Decimal `json:"base_price"`
}

func (r UpdateTimeslotRequest) ToCommand() commands.RescheduleTimeslotCommand {
	return commands.RescheduleTimeslotCommand{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		BasePrice: r.BasePrice,
	}
}

type SetCapacityRequest struct {
	Capacity *int `json:"capacity" binding:"required,min=0"`
}

type ChangeTimeslotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=on_sale sold_out closed"`
}

func (r ChangeTimeslotStatusRequest) ToStatus() timeslot.Status {
	return timeslot.Status(r.Status)
}

type SeatRequest struct {
	Area   string           `json:"area" binding:"required,max=50"`
	Row    string           `json:"row" binding:"required,max=20"`
	Number string           `json:"number" binding:"required,max=20"`
	Price  *decimal.Decimal `json:"price,omitempty"`
}

type CreateSeatsRequest struct {
	Seats []SeatRequest `json:"seats" binding:"required,min=1,max=1000,dive"`
}

func (r CreateSeatsRequest) ToInputs() []commands.SeatInput {
	out := make([]commands.SeatInput, len(r.Seats))
	for i, s := range r.Seats {
		out[i] = commands.SeatInput{
			Position: timeslot.Position{
				Area:   strings.TrimSpace(s.Area),
				Row:    strings.TrimSpace(s.Row),
				Number: strings.TrimSpace(s.Number),
			},
			Price: s.Price,
		}
	}
	return out
}
