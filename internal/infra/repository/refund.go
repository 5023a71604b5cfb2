package repository

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/pkg/pgconv"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const refundColumns = `id, order_id, amount, reason, status, requested_at, processed_at`

type RefundRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewRefundRepository(db DBTX, logger *slog.Logger) *RefundRepository {
	return &RefundRepository{db: db, logger: logger}
}

func (r *RefundRepository) Create(ctx context.Context, rf *refund.Refund) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refunds (`+refundColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rf.ID(), rf.OrderID(), pgconv.DecimalToNumeric(rf.Amount()), rf.Reason(),
		rf.Status().String(), rf.RequestedAt(), pgconv.TimePtrToPgtype(rf.ProcessedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create refund", err)
	}
	return nil
}

func (r *RefundRepository) Update(ctx context.Context, rf *refund.Refund) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE refunds SET status = $2, processed_at = $3 WHERE id = $1`,
		rf.ID(), rf.Status().String(), pgconv.TimePtrToPgtype(rf.ProcessedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update refund", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "refund not found", nil)
	}
	return nil
}

func (r *RefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*refund.Refund, error) {
	return r.findOne(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1`, id)
}

func (r *RefundRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*refund.Refund, error) {
	return r.findOne(ctx, `SELECT `+refundColumns+` FROM refunds WHERE id = $1 FOR UPDATE`, id)
}

func (r *RefundRepository) List(ctx context.Context, filter shared.RefundFilter) ([]*refund.Refund, error) {
	var status pgtype.Text
	if filter.Status != nil {
		status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+refundColumns+`
		FROM refunds
		WHERE ($1::uuid IS NULL OR order_id = $1)
		  AND ($2::varchar IS NULL OR status = $2)
		ORDER BY requested_at, id
		LIMIT $3 OFFSET $4`,
		pgconv.UUIDPtrToPgtype(filter.OrderID), status, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to list refunds", err)
	}
	defer rows.Close()

	var out []*refund.Refund
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan refund", err)
		}
		out = append(out, rf)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate refunds", err)
	}
	return out, nil
}

func (r *RefundRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*refund.Refund, error) {
	rf, err := scanRefund(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "refund not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get refund", err)
	}
	return rf, nil
}

func scanRefund(row rowScanner) (*refund.Refund, error) {
	var (
		id, orderID uuid.UUID
		amount      pgtype.Numeric
		reason      string
		status      string
		requestedAt time.Time
		processedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &orderID, &amount, &reason, &status, &requestedAt, &processedAt); err != nil {
		return nil, err
	}
	amt, err := pgconv.DecimalFromNumeric(amount)
	if err != nil {
		return nil, err
	}
	return refund.Reconstruct(id, orderID, amt, reason, refund.Status(status),
		requestedAt.UTC(), pgconv.TimePtrFromPgtype(processedAt)), nil
}
