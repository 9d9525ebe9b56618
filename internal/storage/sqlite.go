// Package storage provides SQLite-based persistence for chat transcripts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the transcript archive.
type Store struct {
	db *sql.DB
}

// EntryRecord is one archived chat bubble.
type EntryRecord struct {
	ID        int64
	SessionID string
	Sender    string // "You" or "Bot"
	Text      string // Full text; user text is stored escaped
	Source    string // Policy step for bot replies, empty for user entries
	CreatedAt time.Time
}

// SessionSummary describes one archived conversation.
type SessionSummary struct {
	ID         string
	Origin     string // "tui", "ssh:<user>@<addr>", ...
	Entries    int
	StartedAt  time.Time
	LastActive time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS chat_sessions (
			id TEXT PRIMARY KEY,
			origin TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS chat_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
			sender TEXT NOT NULL,
			text TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_chat_entries_session ON chat_entries(session_id, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession registers a conversation. Starting an existing session
// again is a no-op.
func (s *Store) StartSession(id, origin string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO chat_sessions (id, origin) VALUES (?, ?)",
		id, origin,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot start session: %w", err)
	}
	return nil
}

// SaveEntry appends one bubble to a session's transcript, registering the
// session if needed. Returns the ID of the inserted record.
func (s *Store) SaveEntry(sessionID, sender, text, source string) (int64, error) {
	if err := s.StartSession(sessionID, ""); err != nil {
		return 0, err
	}

	result, err := s.db.Exec(
		"INSERT INTO chat_entries (session_id, sender, text, source) VALUES (?, ?, ?, ?)",
		sessionID, sender, text, source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Transcript retrieves every entry of a session in the order it was saved.
func (s *Store) Transcript(sessionID string) ([]EntryRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, sender, text, source, created_at
		 FROM chat_entries
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query transcript: %w", err)
	}
	defer rows.Close()

	var entries []EntryRecord
	for rows.Next() {
		var e EntryRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Sender, &e.Text, &e.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecentSessions retrieves the most recently active sessions.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.origin, COUNT(e.id), s.started_at,
		        COALESCE(MAX(e.created_at), s.started_at), COALESCE(MAX(e.id), 0) AS last_id
		 FROM chat_sessions s
		 LEFT JOIN chat_entries e ON e.session_id = s.id
		 GROUP BY s.id
		 ORDER BY last_id DESC, s.started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var startedAt, lastActive any
		var lastID int64
		if err := rows.Scan(&sum.ID, &sum.Origin, &sum.Entries, &startedAt, &lastActive, &lastID); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session row: %w", err)
		}
		sum.StartedAt = parseTime(startedAt)
		sum.LastActive = parseTime(lastActive)
		sessions = append(sessions, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Session retrieves the summary of one session, or nil if it is unknown.
func (s *Store) Session(id string) (*SessionSummary, error) {
	var sum SessionSummary
	var startedAt, lastActive any

	err := s.db.QueryRow(
		`SELECT s.id, s.origin, COUNT(e.id), s.started_at, COALESCE(MAX(e.created_at), s.started_at)
		 FROM chat_sessions s
		 LEFT JOIN chat_entries e ON e.session_id = s.id
		 WHERE s.id = ?
		 GROUP BY s.id`,
		id,
	).Scan(&sum.ID, &sum.Origin, &sum.Entries, &startedAt, &lastActive)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sum.StartedAt = parseTime(startedAt)
	sum.LastActive = parseTime(lastActive)
	return &sum, nil
}

// DeleteSession removes a session and its transcript.
func (s *Store) DeleteSession(id string) error {
	if _, err := s.db.Exec("DELETE FROM chat_entries WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete entries: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM chat_sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
