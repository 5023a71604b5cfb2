//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreatePublishedActivity inserts a published activity and returns its id.
func CreatePublishedActivity(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(),
		`INSERT INTO activities (id, name, status, created_at, updated_at) VALUES ($1, $2, 'published', $3, $3)`,
		id, name, now)
	require.NoError(t, err)
	return id
}

// CreateTimeslot inserts an on-sale timeslot starting tomorrow. A nil capacity
// makes it a seated timeslot.
func CreateTimeslot(t *testing.T, db DBLike, activityID uuid.UUID, basePrice string, capacity *int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	start := now.Add(24 * time.Hour).Truncate(time.Second)
	remaining := 0
	if capacity != nil {
		remaining = *capacity
	}
	_, err := db.Exec(context.Background(),
		`INSERT INTO timeslots (id, activity_id, start_time, end_time, base_price, capacity, remaining_capacity, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, 'on_sale', $8, $8)`,
		id, activityID, start, start.Add(2*time.Hour), basePrice, capacity, remaining, now)
	require.NoError(t, err)
	return id
}

// CreateSeats inserts available seats A-1-1..A-1-n without a price override.
func CreateSeats(t *testing.T, db DBLike, timeslotID uuid.UUID, n int) []uuid.UUID {
	t.Helper()

	ids := make([]uuid.UUID, 0, n)
	now := time.Now().UTC()
	for i := 1; i <= n; i++ {
		id := uuid.New()
		_, err := db.Exec(context.Background(),
			`INSERT INTO seats (id, timeslot_id, area, row_label, number, status, updated_at) VALUES ($1, $2, 'A', '1', $3, 'available', $4)`,
			id, timeslotID, fmt.Sprint(i), now)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// RemainingCapacity reads the stored counter, bypassing the application.
func RemainingCapacity(t *testing.T, db DBLike, timeslotID uuid.UUID) int {
	t.Helper()

	var remaining int
	err := db.QueryRow(context.Background(), `SELECT remaining_capacity FROM timeslots WHERE id = $1`, timeslotID).Scan(&remaining)
	require.NoError(t, err)
	return remaining
}

// SeatStatus reads a seat's stored status.
func SeatStatus(t *testing.T, db DBLike, seatID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), `SELECT status FROM seats WHERE id = $1`, seatID).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every public table.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
