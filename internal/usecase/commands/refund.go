package commands

//go:generate mockgen -source=refund.go -destination=../../../tests/mock/commands/refund.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/pkg/telemetry"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

type RefundCommands interface {
	RequestRefund(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, reason string) (*refund.Refund, error)
	ApproveRefund(ctx context.Context, refundID uuid.UUID) (*refund.Refund, error)
	RejectRefund(ctx context.Context, refundID uuid.UUID) (*refund.Refund, error)
	CompleteRefund(ctx context.Context, refundID uuid.UUID) (*refund.Refund, error)
}

type refundCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRefundCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) RefundCommands {
	return &refundCommandsImpl{uow: uow, clock: clk, logger: logger}
}

// RequestRefund checks the amount against the balance at request time. Completion checks again.
func (uc *refundCommandsImpl) RequestRefund(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, reason string) (_ *refund.Refund, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "RefundCommands.RequestRefund",
		attribute.String("order.id", orderID.String()),
		attribute.String("refund.amount", amount.String()),
	)
	defer func() { telemetry.End(span, err) }()

	var requested *refund.Refund
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return notFoundAs(err, errs.ErrOrderNotFound)
		}
		r, err := refund.Request(o, amount, reason, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Refunds().Create(ctx, r); err != nil {
			return err
		}
		requested = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "refund requested",
		"refund_id", requested.ID().String(),
		"order_id", orderID.String(),
		"amount", amount.String())
	return requested, nil
}

func (uc *refundCommandsImpl) ApproveRefund(ctx context.Context, refundID uuid.UUID) (*refund.Refund, error) {
	return uc.decide(ctx, "RefundCommands.ApproveRefund", refundID, (*refund.Refund).Approve)
}

func (uc *refundCommandsImpl) RejectRefund(ctx context.Context, refundID uuid.UUID) (*refund.Refund, error) {
	return uc.decide(ctx, "RefundCommands.RejectRefund", refundID, (*refund.Refund).Reject)
}

func (uc *refundCommandsImpl) decide(ctx context.Context, spanName string, refundID uuid.UUID, transition func(*refund.Refund, time.Time) error) (_ *refund.Refund, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, spanName,
		attribute.String("refund.id", refundID.String()),
	)
	defer func() { telemetry.End(span, err) }()

	var decided *refund.Refund
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Refunds().FindByIDForUpdate(ctx, refundID)
		if err != nil {
			return notFoundAs(err, errs.ErrRefundNotFound)
		}
		if err = transition(r, uc.clock.Now()); err != nil {
			return err
		}
		if err = tx.Refunds().Update(ctx, r); err != nil {
			return err
		}
		decided = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "refund decided",
		"refund_id", refundID.String(),
		"status", decided.Status().String())
	return decided, nil
}

// CompleteRefund locks the refund and then its order, so two completions against the same
// order serialize on the order row and cannot jointly exceed the order total.
func (uc *refundCommandsImpl) CompleteRefund(ctx context.Context, refundID uuid.UUID) (_ *refund.Refund, err error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "RefundCommands.CompleteRefund",
		attribute.String("refund.id", refundID.String()),
	)
	defer func() { telemetry.End(span, err) }()

	var completed *refund.Refund
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Refunds().FindByIDForUpdate(ctx, refundID)
		if err != nil {
			return notFoundAs(err, errs.ErrRefundNotFound)
		}
		if r.Status() != refund.StatusApproved {
			return errs.ErrInvalidRefundState
		}
		o, err := tx.Orders().FindByIDForUpdate(ctx, r.OrderID())
		if err != nil {
			return notFoundAs(err, errs.ErrOrderNotFound)
		}

		if err = r.Complete(o, uc.clock.Now()); err != nil {
			return err
		}
		if err = tx.Orders().Update(ctx, o); err != nil {
			return err
		}
		if err = tx.Refunds().Update(ctx, r); err != nil {
			return err
		}
		completed = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "refund completed",
		"refund_id", refundID.String(),
		"order_id", completed.OrderID().String(),
		"amount", completed.Amount().String())
	return completed, nil
}
