package repository

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/pkg/pgconv"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const activityColumns = `id, name, category, location, description, min_price, max_price, status, created_at, updated_at`

type ActivityRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewActivityRepository(db DBTX, logger *slog.Logger) *ActivityRepository {
	return &ActivityRepository{db: db, logger: logger}
}

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	info := a.Info()
	_, err := r.db.Exec(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID(), info.Name, info.Category, info.Location, info.Description,
		pgconv.DecimalPtrToNumeric(info.MinPrice), pgconv.DecimalPtrToNumeric(info.MaxPrice),
		a.Status().String(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create activity", err)
	}
	return nil
}

func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	info := a.Info()
	tag, err := r.db.Exec(ctx, `
		UPDATE activities
		SET name = $2, category = $3, location = $4, description = $5,
		    min_price = $6, max_price = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		a.ID(), info.Name, info.Category, info.Location, info.Description,
		pgconv.DecimalPtrToNumeric(info.MinPrice), pgconv.DecimalPtrToNumeric(info.MaxPrice),
		a.Status().String(), a.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update activity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "activity not found", nil)
	}
	return nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	return r.findOne(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
}

func (r *ActivityRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	return r.findOne(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1 FOR UPDATE`, id)
}

func (r *ActivityRepository) List(ctx context.Context, filter shared.ActivityFilter) ([]*activity.Activity, error) {
	var status pgtype.Text
	if filter.Status != nil {
		status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE ($1::varchar IS NULL OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`,
		status, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list activities", err)
	}
	defer rows.Close()

	var out []*activity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan activity", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate activities", err)
	}
	return out, nil
}

func (r *ActivityRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*activity.Activity, error) {
	a, err := scanActivity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "activity not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get activity", err)
	}
	return a, nil
}

func scanActivity(row rowScanner) (*activity.Activity, error) {
	var (
		id                 uuid.UUID
		info               activity.Info
		minPrice, maxPrice pgtype.Numeric
		status             string
		createdAt          time.Time
		updatedAt          time.Time
	)
	if err := row.Scan(&id, &info.Name, &info.Category, &info.Location, &info.Description,
		&minPrice, &maxPrice, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if info.MinPrice, err = pgconv.DecimalPtrFromNumeric(minPrice); err != nil {
		return nil, err
	}
	if info.MaxPrice, err = pgconv.DecimalPtrFromNumeric(maxPrice); err != nil {
		return nil, err
	}
	return activity.ReconstructActivity(id, info, activity.Status(status), createdAt.UTC(), updatedAt.UTC()), nil
}
