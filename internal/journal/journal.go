// Package journal provides SQLite-backed storage for the character roster
// and for notable market occurrences (arc transitions, major events).
// Price history is deliberately not stored.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/grand-line/internal/engine"
	"github.com/talgya/grand-line/internal/market"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		crew TEXT NOT NULL,
		bounty INTEGER NOT NULL,
		growth_rate REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		type TEXT NOT NULL,
		arc TEXT NOT NULL,
		detail TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type eventRow struct {
	ID        string    `db:"id"`
	Day       int       `db:"day"`
	Type      string    `db:"type"`
	Arc       string    `db:"arc"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

// Append stores one journal entry. Implements engine.Recorder.
func (db *DB) Append(e engine.Entry) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (id, day, type, arc, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Day, e.Type, e.Arc, e.Detail, e.At,
	)
	return err
}

// Recent returns the most recent entries, newest first.
func (db *DB) Recent(limit int) ([]engine.Entry, error) {
	var rows []eventRow
	err := db.conn.Select(&rows,
		"SELECT id, day, type, arc, detail, created_at FROM events ORDER BY day DESC, created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}

	entries := make([]engine.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, engine.Entry{
			ID:     r.ID,
			Day:    r.Day,
			Type:   r.Type,
			Arc:    r.Arc,
			Detail: r.Detail,
			At:     r.CreatedAt,
		})
	}
	return entries, nil
}

type characterRow struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Crew       string  `db:"crew"`
	Bounty     int64   `db:"bounty"`
	GrowthRate float64 `db:"growth_rate"`
}

// LoadRoster reads the stored character roster in ID order. Returns an empty
// slice on a fresh database.
func (db *DB) LoadRoster() ([]market.RosterEntry, error) {
	var rows []characterRow
	err := db.conn.Select(&rows,
		"SELECT id, name, crew, bounty, growth_rate FROM characters ORDER BY id",
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	entries := make([]market.RosterEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, market.RosterEntry{
			ID:         r.ID,
			Name:       r.Name,
			Crew:       r.Crew,
			Bounty:     r.Bounty,
			GrowthRate: r.GrowthRate,
		})
	}
	return entries, nil
}

// SeedRoster writes the roster (full replace). Used to initialize a fresh
// database with the built-in character list.
func (db *DB) SeedRoster(entries []market.RosterEntry) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM characters"); err != nil {
		return err
	}
	for _, e := range entries {
		_, err := tx.Exec(
			"INSERT INTO characters (id, name, crew, bounty, growth_rate) VALUES (?, ?, ?, ?, ?)",
			e.ID, e.Name, e.Crew, e.Bounty, e.GrowthRate,
		)
		if err != nil {
			return fmt.Errorf("insert character %d: %w", e.ID, err)
		}
	}

	return tx.Commit()
}
