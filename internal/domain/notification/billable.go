package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelOther Channel = "other"
)

// LeadTime is how long before the timeslot start an itinerary is usually sent.
const LeadTime = 24 * time.Hour

// BillableOrder is emitted once an order is paid. Consumers decide what to send and when.
type BillableOrder struct {
	OrderID       uuid.UUID `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	CustomerEmail string    `json:"customerEmail"`
	TimeslotStart time.Time `json:"timeslotStart"`
	Summary       string    `json:"summary"`
	Channel       Channel   `json:"channel"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewBillableOrder(orderID uuid.UUID, orderNumber, email, activityName string, start, now time.Time) BillableOrder {
	return BillableOrder{
		OrderID:       orderID,
		OrderNumber:   orderNumber,
		CustomerEmail: email,
		TimeslotStart: start.UTC(),
		Summary:       ItinerarySummary(activityName, start),
		Channel:       ChannelEmail,
		OccurredAt:    now,
	}
}

func ItinerarySummary(activityName string, start time.Time) string {
	return fmt.Sprintf("Itinerary for %s at %s", activityName, start.UTC().Format("2006-01-02 15:04:05Z"))
}

func (b BillableOrder) SuggestedSendTime() time.Time {
	return b.TimeslotStart.Add(-LeadTime)
}
