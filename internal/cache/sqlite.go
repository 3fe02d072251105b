// Package cache provides the persistent key-value stores behind the
// per-feature result slots.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Ensure SQLite implements the Store interface
var _ skygaze.Store = (*SQLite)(nil)

// SQLite persists one row per feature in the cache_slots table.
type SQLite struct {
	db *sqlx.DB
}

// NewSQLite creates a new instance of SQLite.
func NewSQLite(db *sqlx.DB) SQLite {
	return SQLite{db: db}
}

func (s SQLite) Read(ctx context.Context, f skygaze.Feature) ([]byte, error) {
	const q = `SELECT value FROM cache_slots WHERE slot = ?;`

	var value string
	err := s.db.GetContext(ctx, &value, q, f.SlotKey())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, skygaze.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching cache slot: %s", err)
	}

	return []byte(value), nil
}

func (s SQLite) Write(ctx context.Context, f skygaze.Feature, value []byte) error {
	const q = `INSERT INTO cache_slots (slot, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`

	if _, err := s.db.ExecContext(ctx, q, f.SlotKey(), string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("error writing cache slot: %s", err)
	}

	return nil
}

func (s SQLite) Clear(ctx context.Context, f skygaze.Feature) error {
	const q = `DELETE FROM cache_slots WHERE slot = ?;`

	if _, err := s.db.ExecContext(ctx, q, f.SlotKey()); err != nil {
		return fmt.Errorf("error clearing cache slot: %s", err)
	}

	return nil
}

// SlotStatus describes one populated cache slot.
type SlotStatus struct {
	Slot      string    `db:"slot"`
	Bytes     int       `db:"bytes"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Status reports every populated slot, optionally narrowed to one feature.
func (s SQLite) Status(ctx context.Context, f skygaze.Feature) ([]SlotStatus, error) {
	b := sq.Select("slot", "LENGTH(value) AS bytes", "updated_at").
		From("cache_slots").
		OrderBy("slot")
	if f != "" {
		b = b.Where(sq.Eq{"slot": f.SlotKey()})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	var statuses []SlotStatus
	if err := s.db.SelectContext(ctx, &statuses, query, args...); err != nil {
		return nil, fmt.Errorf("error fetching cache status: %s", err)
	}

	return statuses, nil
}
