//go:build unit || e2e

// Package dbtest seeds and inspects the Postgres schema directly, bypassing
// the usecases, for tests that need a known starting state.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Reservations reference rooms, so they go first.
const resetSQL = "TRUNCATE reservations, rooms"

// CreateTestRoom inserts an active room and returns its id.
func CreateTestRoom(t *testing.T, db DBLike, locationID uuid.UUID, name string, capacity int) uuid.UUID {
	t.Helper()

	roomID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO rooms (id, location_id, name, capacity, amenities, timezone, is_active) VALUES ($1, $2, $3, $4, '{}', 'UTC', true)",
		roomID, locationID, name, capacity)
	require.NoError(t, err)
	return roomID
}

// CreateTestReservation inserts a confirmed reservation.
func CreateTestReservation(t *testing.T, db DBLike, roomID, ownerID uuid.UUID, start, end time.Time, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, room_id, owner_id, starts_at, ends_at, title, status) VALUES ($1, $2, $3, $4, $5, $6, 'confirmed')",
		id, roomID, ownerID, start, end, title)
	require.NoError(t, err)
	return id
}

// CountLive returns how many non-canceled reservations the room holds.
func CountLive(t *testing.T, db DBLike, roomID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE room_id = $1 AND status <> 'canceled'", roomID).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties every table between subtests.
func ResetDB(db DBLike) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := db.Exec(ctx, resetSQL)
	return err
}
