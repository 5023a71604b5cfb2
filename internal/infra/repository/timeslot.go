package repository

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const timeslotColumns = `id, activity_id, start_time, end_time, base_price, capacity, remaining_capacity, status, created_at, updated_at`

type TimeslotRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewTimeslotRepository(db DBTX, logger *slog.Logger) *TimeslotRepository {
	return &TimeslotRepository{db: db, logger: logger}
}

func (r *TimeslotRepository) Create(ctx context.Context, ts *timeslot.Timeslot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO timeslots (`+timeslotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ts.ID(), ts.ActivityID(), ts.Window().Start(), ts.Window().End(),
		pgconv.DecimalToNumeric(ts.BasePrice()), pgconv.IntPtrToPgtype(ts.Capacity()),
		ts.RemainingCapacity(), ts.Status().String(), ts.CreatedAt(), ts.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create timeslot", err)
	}
	return nil
}

func (r *TimeslotRepository) Update(ctx context.Context, ts *timeslot.Timeslot) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE timeslots
		SET start_time = $2, end_time = $3, base_price = $4, capacity = $5,
		    remaining_capacity = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		ts.ID(), ts.Window().Start(), ts.Window().End(),
		pgconv.DecimalToNumeric(ts.BasePrice()), pgconv.IntPtrToPgtype(ts.Capacity()),
		ts.RemainingCapacity(), ts.Status().String(), ts.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update timeslot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "timeslot not found", nil)
	}
	return nil
}

func (r *TimeslotRepository) FindByID(ctx context.Context, id uuid.UUID) (*timeslot.Timeslot, error) {
	return r.findOne(ctx, `SELECT `+timeslotColumns+` FROM timeslots WHERE id = $1`, id)
}

func (r *TimeslotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*timeslot.Timeslot, error) {
	return r.findOne(ctx, `SELECT `+timeslotColumns+` FROM timeslots WHERE id = $1 FOR UPDATE`, id)
}

func (r *TimeslotRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*timeslot.Timeslot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+timeslotColumns+`
		FROM timeslots
		WHERE activity_id = $1
		ORDER BY start_time, id`, activityID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list timeslots", err)
	}
	defer rows.Close()

	var out []*timeslot.Timeslot
	for rows.Next() {
		ts, err := scanTimeslot(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan timeslot", err)
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate timeslots", err)
	}
	return out, nil
}

func (r *TimeslotRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*timeslot.Timeslot, error) {
	ts, err := scanTimeslot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "timeslot not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get timeslot", err)
	}
	return ts, nil
}

func scanTimeslot(row rowScanner) (*timeslot.Timeslot, error) {
	var (
		id, activityID uuid.UUID
		start, end     time.Time
		basePrice      pgtype.Numeric
		capacity       pgtype.Int4
		remaining      int
		status         string
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := row.Scan(&id, &activityID, &start, &end, &basePrice, &capacity, &remaining,
		&status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	price, err := pgconv.DecimalFromNumeric(basePrice)
	if err != nil {
		return nil, err
	}
	window, err := timeslot.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	return timeslot.ReconstructTimeslot(id, activityID, window, price,
		pgconv.Int32PtrFromPgtype(capacity), remaining, timeslot.Status(status),
		createdAt.UTC(), updatedAt.UTC()), nil
}
