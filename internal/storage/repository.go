package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/glabrego/pokedex-cli/internal/pokedex"
)

const MemoryPath = ":memory:"

// ErrAlreadyPopulated is returned when records are saved into a session store
// that already holds a record set.
var ErrAlreadyPopulated = errors.New("record set already populated")

// Repository holds the record set for one session. Init wipes anything left
// behind at the same path, so nothing outlives the process.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
DROP TABLE IF EXISTS records;
CREATE TABLE records (
  position INTEGER PRIMARY KEY,
  id INTEGER NOT NULL,
  name TEXT NOT NULL,
  avatar_url TEXT NOT NULL,
  categories TEXT NOT NULL,
  stats TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveRecords stores the session's record set. It can succeed only once per
// Init.
func (r *Repository) SaveRecords(ctx context.Context, records []pokedex.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&existing); err != nil {
		return fmt.Errorf("count records: %w", err)
	}
	if existing > 0 {
		return ErrAlreadyPopulated
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO records (position, id, name, avatar_url, categories, stats)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		categories, err := json.Marshal(nonNil(record.Categories))
		if err != nil {
			return fmt.Errorf("encode categories for %q: %w", record.Name, err)
		}
		stats, err := json.Marshal(encodeStats(record.Stats))
		if err != nil {
			return fmt.Errorf("encode stats for %q: %w", record.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, i, record.ID, record.Name, record.AvatarURL, string(categories), string(stats)); err != nil {
			return fmt.Errorf("save record %q: %w", record.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListRecords returns the stored records in the order they were saved.
func (r *Repository) ListRecords(ctx context.Context) ([]pokedex.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, avatar_url, categories, stats
FROM records
ORDER BY position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]pokedex.Record, 0)
	for rows.Next() {
		var record pokedex.Record
		var categories, stats string
		if err := rows.Scan(&record.ID, &record.Name, &record.AvatarURL, &categories, &stats); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &record.Categories); err != nil {
			return nil, fmt.Errorf("decode categories for %q: %w", record.Name, err)
		}
		var rawStats []storedStat
		if err := json.Unmarshal([]byte(stats), &rawStats); err != nil {
			return nil, fmt.Errorf("decode stats for %q: %w", record.Name, err)
		}
		record.Stats = decodeStats(rawStats)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}

type storedStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func encodeStats(stats []pokedex.Stat) []storedStat {
	out := make([]storedStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, storedStat{Name: s.Name, Value: s.Value})
	}
	return out
}

func decodeStats(stats []storedStat) []pokedex.Stat {
	out := make([]pokedex.Stat, 0, len(stats))
	for _, s := range stats {
		out = append(out, pokedex.Stat{Name: s.Name, Value: s.Value})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
