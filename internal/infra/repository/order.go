package repository

import (
	"context"
	"log/slog"
	"time"

	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, order_number, activity_id, timeslot_id, user_id, customer_email, customer_name,
	currency, total_amount, refunded_amount, status, created_at, paid_at, cancelled_at, refunded_at`

type OrderRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewOrderRepository(db DBTX, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

// Create writes the header and its items in one round trip.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	s := o.Snapshot()
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, s.OrderNumber, s.ActivityID, s.TimeslotID, pgconv.UUIDPtrToPgtype(s.Customer.UserID),
		s.Customer.Email, s.Customer.Name, s.Currency,
		pgconv.DecimalToNumeric(s.TotalAmount), pgconv.DecimalToNumeric(s.RefundedAmount),
		s.Status.String(), s.CreatedAt,
		pgconv.TimePtrToPgtype(s.PaidAt), pgconv.TimePtrToPgtype(s.CancelledAt), pgconv.TimePtrToPgtype(s.RefundedAt),
	)
	for i, it := range s.Items {
		batch.Queue(`
			INSERT INTO order_items (id, order_id, position, timeslot_id, seat_id, unit_price, quantity, line_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID(), s.ID, i, it.TimeslotID(), pgconv.UUIDPtrToPgtype(it.SeatID()),
			pgconv.DecimalToNumeric(it.UnitPrice()), it.Quantity(), pgconv.DecimalToNumeric(it.LineAmount()),
		)
	}

	br := r.db.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create order", err)
		}
	}
	if err := br.Close(); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create order", err)
	}
	return nil
}

// Update persists the mutable header fields. Items never change after creation.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET refunded_amount = $2, status = $3, paid_at = $4, cancelled_at = $5, refunded_at = $6
		WHERE id = $1`,
		o.ID(), pgconv.DecimalToNumeric(o.RefundedAmount()), o.Status().String(),
		pgconv.TimePtrToPgtype(o.PaidAt()), pgconv.TimePtrToPgtype(o.CancelledAt()), pgconv.TimePtrToPgtype(o.RefundedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "order not found", nil)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*order.Order, error) {
	snap, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "order not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get order", err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.Items = items
	return order.Reconstruct(snap), nil
}

func (r *OrderRepository) items(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, timeslot_id, seat_id, unit_price, quantity, line_amount
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to get order items", err)
	}
	defer rows.Close()

	var out []order.Item
	for rows.Next() {
		var (
			id, timeslotID        uuid.UUID
			seatID                pgtype.UUID
			unitPrice, lineAmount pgtype.Numeric
			qty                   int
		)
		if err := rows.Scan(&id, &timeslotID, &seatID, &unitPrice, &qty, &lineAmount); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan order item", err)
		}
		price, err := pgconv.DecimalFromNumeric(unitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid unit price", err)
		}
		line, err := pgconv.DecimalFromNumeric(lineAmount)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid line amount", err)
		}
		out = append(out, order.ReconstructItem(id, timeslotID, pgconv.UUIDPtrFromPgtype(seatID), price, qty, line))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to iterate order items", err)
	}
	return out, nil
}

func scanOrder(row rowScanner) (order.Snapshot, error) {
	var (
		s                          order.Snapshot
		userID                     pgtype.UUID
		total, refunded            pgtype.Numeric
		status                     string
		createdAt                  time.Time
		paidAt, cancelledAt, refAt pgtype.Timestamptz
	)
	if err := row.Scan(&s.ID, &s.OrderNumber, &s.ActivityID, &s.TimeslotID, &userID,
		&s.Customer.Email, &s.Customer.Name, &s.Currency, &total, &refunded, &status,
		&createdAt, &paidAt, &cancelledAt, &refAt); err != nil {
		return order.Snapshot{}, err
	}
	var err error
	if s.TotalAmount, err = pgconv.DecimalFromNumeric(total); err != nil {
		return order.Snapshot{}, err
	}
	if s.RefundedAmount, err = pgconv.DecimalFromNumeric(refunded); err != nil {
		return order.Snapshot{}, err
	}
	s.Customer.UserID = pgconv.UUIDPtrFromPgtype(userID)
	s.Status = order.Status(status)
	s.CreatedAt = createdAt.UTC()
	s.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	s.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	s.RefundedAt = pgconv.TimePtrFromPgtype(refAt)
	return s, nil
}
