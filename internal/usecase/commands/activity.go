package commands

//go:generate mockgen -source=activity.go -destination=../../../tests/mock/commands/activity.go -package=commandsmock

import (
	"context"
	"log/slog"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/pkg/clock"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type ActivityCommands interface {
	Create(ctx context.Context, info activity.Info) (*activity.Activity, error)
	UpdateBasicInfo(ctx context.Context, id uuid.UUID, info activity.Info) (*activity.Activity, error)
	Publish(ctx context.Context, id uuid.UUID) (*activity.Activity, error)
	Archive(ctx context.Context, id uuid.UUID) (*activity.Activity, error)
}

type activityCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewActivityCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) ActivityCommands {
	return &activityCommandsImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *activityCommandsImpl) Create(ctx context.Context, info activity.Info) (*activity.Activity, error) {
	a, err := activity.NewActivity(info, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Activities().Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "activity created", "activity_id", a.ID().String(), "name", a.Name())
	return a, nil
}

func (uc *activityCommandsImpl) UpdateBasicInfo(ctx context.Context, id uuid.UUID, info activity.Info) (*activity.Activity, error) {
	return uc.mutate(ctx, id, func(a *activity.Activity) error {
		return a.UpdateBasicInfo(info, uc.clock.Now())
	})
}

func (uc *activityCommandsImpl) Publish(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	a, err := uc.mutate(ctx, id, func(a *activity.Activity) error {
		return a.Publish(uc.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "activity published", "activity_id", id.String())
	return a, nil
}

func (uc *activityCommandsImpl) Archive(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	a, err := uc.mutate(ctx, id, func(a *activity.Activity) error {
		a.Archive(uc.clock.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.InfoContext(ctx, "activity archived", "activity_id", id.String())
	return a, nil
}

func (uc *activityCommandsImpl) mutate(ctx context.Context, id uuid.UUID, fn func(a *activity.Activity) error) (*activity.Activity, error) {
	var out *activity.Activity
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Activities().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrActivityNotFound)
		}
		if err = fn(a); err != nil {
			return err
		}
		if err = tx.Activities().Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
