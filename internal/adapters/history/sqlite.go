// Package history keeps completed sessions in a local sqlite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dkrenn/tempus/internal/domain"
	"github.com/dkrenn/tempus/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	duration_decis INTEGER NOT NULL,
	branch TEXT NOT NULL DEFAULT '',
	commit_hash TEXT NOT NULL DEFAULT '',
	completed_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);
`

// SQLiteStore implements ports.HistoryStore on a sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// The reducer and background recorders share this handle; sqlite
	// only tolerates one writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, rec ports.SessionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, mode, label, duration_decis, branch, commit_hash, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Label, rec.Duration.Decis(),
		rec.Branch, rec.Commit, rec.CompletedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]ports.SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, label, duration_decis, branch, commit_hash, completed_at
		FROM sessions ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var recs []ports.SessionRecord
	for rows.Next() {
		var rec ports.SessionRecord
		var decis int64
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Label, &decis,
			&rec.Branch, &rec.Commit, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Duration = domain.FromDecis(decis)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
