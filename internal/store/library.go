// Package store provides a SQLite-backed library of named households.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rpgo/household-planner/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Library persists named households as flat records.
type Library struct {
	db  *sql.DB
	now func() time.Time
}

// Entry describes a saved household without decoding it.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Persons     int       `json:"persons"`
	Dependents  int       `json:"dependents"`
	CurrentYear int       `json:"current_year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Open opens or creates the library database at the given path.
func Open(dbPath string) (*Library, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating library dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening library db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Library{db: db, now: time.Now}, nil
}

// Close closes the library database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores h under name, replacing any household already saved with that name.
// The returned ID is stable across overwrites.
func (l *Library) Save(name string, h *domain.Household) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: household name is required", domain.ErrInvalidInput)
	}
	blob, err := json.Marshal(h.ToRecord())
	if err != nil {
		return "", fmt.Errorf("encoding household: %w", err)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	now := l.now().UTC().Format(time.RFC3339Nano)
	var id string
	err = tx.QueryRow("SELECT id FROM households WHERE name = ?", name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = tx.Exec(`INSERT INTO households (id, name, record, persons, dependents, current_year, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, name, string(blob), len(h.Persons), len(h.Dependents), h.CurrentYear, now, now)
	case err == nil:
		_, err = tx.Exec(`UPDATE households SET record = ?, persons = ?, dependents = ?, current_year = ?, updated_at = ?
			WHERE id = ?`,
			string(blob), len(h.Persons), len(h.Dependents), h.CurrentYear, now, id)
	}
	if err != nil {
		return "", fmt.Errorf("saving household %s: %w", name, err)
	}
	return id, tx.Commit()
}

// Load rebuilds the named household.
func (l *Library) Load(name string) (*domain.Household, error) {
	var blob string
	err := l.db.QueryRow("SELECT record FROM households WHERE name = ?", name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("household %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading household %s: %w", name, err)
	}
	return decode(name, blob)
}

// LoadAll rebuilds every saved household keyed by name.
func (l *Library) LoadAll() (map[string]*domain.Household, error) {
	rows, err := l.db.Query("SELECT name, record FROM households")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]*domain.Household)
	for rows.Next() {
		var name, blob string
		if err := rows.Scan(&name, &blob); err != nil {
			return nil, err
		}
		h, err := decode(name, blob)
		if err != nil {
			return nil, err
		}
		result[name] = h
	}
	return result, rows.Err()
}

// List returns saved households ordered by name.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query(`SELECT id, name, persons, dependents, current_year, created_at, updated_at
		FROM households ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, updated string
		if err := rows.Scan(&e.ID, &e.Name, &e.Persons, &e.Dependents, &e.CurrentYear, &created, &updated); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the named household.
func (l *Library) Delete(name string) error {
	res, err := l.db.Exec("DELETE FROM households WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting household %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("household %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

func decode(name, blob string) (*domain.Household, error) {
	var rec domain.HouseholdRecord
	if err := json.Unmarshal([]byte(blob), &rec); err != nil {
		return nil, fmt.Errorf("decoding household %s: %w", name, err)
	}
	h, err := domain.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("rebuilding household %s: %w", name, err)
	}
	return h, nil
}
