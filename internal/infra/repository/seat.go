package repository

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const seatColumns = `id, timeslot_id, area, row_label, number, price, status, updated_at`

type SeatRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSeatRepository(db DBTX, logger *slog.Logger) *SeatRepository {
	return &SeatRepository{db: db, logger: logger}
}

func (r *SeatRepository) CreateBatch(ctx context.Context, seats []*timeslot.Seat) error {
	batch := &pgx.Batch{}
	for _, s := range seats {
		pos := s.Position()
		batch.Queue(`
			INSERT INTO seats (`+seatColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID(), s.TimeslotID(), pos.Area, pos.Row, pos.Number,
			pgconv.DecimalPtrToNumeric(s.Price()), s.Status().String(), s.UpdatedAt(),
		)
	}
	return r.sendBatch(ctx, batch, len(seats), "failed to create seats")
}

func (r *SeatRepository) UpdateStatuses(ctx context.Context, seats []*timeslot.Seat) error {
	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(`UPDATE seats SET status = $2, updated_at = $3 WHERE id = $1`,
			s.ID(), s.Status().String(), s.UpdatedAt())
	}
	return r.sendBatch(ctx, batch, len(seats), "failed to update seats")
}

// FindForUpdate locks in ascending id order. Concurrent callers that overlap on seats
// acquire the shared rows in the same order and cannot deadlock.
func (r *SeatRepository) FindForUpdate(ctx context.Context, timeslotID uuid.UUID, ids []uuid.UUID) ([]*timeslot.Seat, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	sorted = slices.Compact(sorted)

	rows, err := r.db.Query(ctx, `
		SELECT `+seatColumns+`
		FROM seats
		WHERE timeslot_id = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE`, timeslotID, sorted)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to lock seats", err)
	}
	return r.collect(rows)
}

func (r *SeatRepository) ListByTimeslot(ctx context.Context, timeslotID uuid.UUID) ([]*timeslot.Seat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+seatColumns+`
		FROM seats
		WHERE timeslot_id = $1
		ORDER BY area, row_label, number`, timeslotID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list seats", err)
	}
	return r.collect(rows)
}

func (r *SeatRepository) collect(rows pgx.Rows) ([]*timeslot.Seat, error) {
	defer rows.Close()
	var out []*timeslot.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan seat", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate seats", err)
	}
	return out, nil
}

func (r *SeatRepository) sendBatch(ctx context.Context, batch *pgx.Batch, n int, msg string) error {
	if n == 0 {
		return nil
	}
	br := r.db.SendBatch(ctx, batch)
	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), msg, err)
		}
	}
	if err := br.Close(); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), msg, err)
	}
	return nil
}

func scanSeat(row rowScanner) (*timeslot.Seat, error) {
	var (
		id, timeslotID uuid.UUID
		pos            timeslot.Position
		price          pgtype.Numeric
		status         string
		updatedAt      time.Time
	)
	if err := row.Scan(&id, &timeslotID, &pos.Area, &pos.Row, &pos.Number, &price, &status, &updatedAt); err != nil {
		return nil, err
	}
	p, err := pgconv.DecimalPtrFromNumeric(price)
	if err != nil {
		return nil, err
	}
	return timeslot.ReconstructSeat(id, timeslotID, pos, p, timeslot.SeatStatus(status), updatedAt.UTC()), nil
}
