package messaging

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/domain/notification"
)

// LogPublisher records billable orders in the application log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishBillable(ctx context.Context, fact notification.BillableOrder) error {
	p.logger.InfoContext(ctx, "billable order",
		"order_id", fact.OrderID.String(),
		"order_number", fact.OrderNumber,
		"channel", string(fact.Channel),
		"summary", fact.Summary,
		"timeslot_start", fact.TimeslotStart,
		"send_at", fact.SuggestedSendTime())
	return nil
}
