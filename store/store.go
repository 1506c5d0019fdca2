// Package store persists finished study sessions in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/soocke/focus-tracker-go/domain/session"
)

// Store wraps the sessions table. Safe for concurrent use; database/sql
// serializes access to the single sqlite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ session.RecordStore = (*Store)(nil)

// Open opens (creating if needed) the database at dbPath and ensures the
// schema exists.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &Store{db: db, logger: logger}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  session_id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_time INTEGER NOT NULL,
  end_time INTEGER NOT NULL,
  focus_percentage REAL NOT NULL,
  focus_data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// SaveSession inserts a finished session and returns its id. Sessions
// without positive duration are refused.
func (s *Store) SaveSession(ctx context.Context, rec session.Record) (int64, error) {
	if rec.End <= rec.Start {
		return 0, errors.New("refusing to save session without positive duration")
	}
	timeline, err := json.Marshal(rec.Timeline)
	if err != nil {
		return 0, fmt.Errorf("encode timeline: %w", err)
	}
	const stmt = `
INSERT INTO sessions (start_time, end_time, focus_percentage, focus_data)
VALUES (?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt, rec.Start, rec.End, rec.FocusPercent, string(timeline))
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session insert id: %w", err)
	}
	return id, nil
}

// LoadSessions returns all sessions, most recently started first.
func (s *Store) LoadSessions(ctx context.Context) ([]session.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, start_time, end_time, focus_percentage, focus_data
FROM sessions
ORDER BY start_time DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	out := make([]session.Record, 0, 16)
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// SessionByID returns one session, or (nil, nil) when the id is unknown.
func (s *Store) SessionByID(ctx context.Context, id int64) (*session.Record, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT session_id, start_time, end_time, focus_percentage, focus_data
FROM sessions
WHERE session_id = ?;
`, id)
	rec, err := s.scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteSession removes one session. Deleting an unknown id is not an error.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?;`, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one sessions row. A corrupted timeline degrades to an
// empty one; the row itself still loads.
func (s *Store) scanRecord(row rowScanner) (session.Record, error) {
	var rec session.Record
	var timeline string
	if err := row.Scan(&rec.ID, &rec.Start, &rec.End, &rec.FocusPercent, &timeline); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Record{}, err
		}
		return session.Record{}, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(timeline), &rec.Timeline); err != nil {
		if s.logger != nil {
			s.logger.Warn("corrupt focus timeline, using empty", "session_id", rec.ID, "error", err)
		}
		rec.Timeline = nil
	}
	return rec, nil
}
