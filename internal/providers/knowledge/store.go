package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"scout/internal/capability"
)

const notesSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	topic TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_topic ON notes(topic);`

// Store persists runbook notes in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the note store at path.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("note store path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("note store open: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("note store set WAL mode: %w", err)
	}
	if _, err := db.Exec(notesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("note store create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save stores a note and returns it with its assigned ID.
func (s *Store) Save(ctx context.Context, topic, body string) (*capability.Note, error) {
	note := &capability.Note{
		ID:        uuid.NewString(),
		Topic:     topic,
		Body:      body,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (id, topic, body, created_at) VALUES (?, ?, ?, ?)",
		note.ID, note.Topic, note.Body, note.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}
	return note, nil
}

// Search returns notes whose topic or body contains query, newest first.
// An empty query returns the newest notes unfiltered.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]capability.Note, error) {
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, body, created_at FROM notes
		 WHERE topic LIKE ? OR body LIKE ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var notes []capability.Note
	for rows.Next() {
		var note capability.Note
		var created string
		if err := rows.Scan(&note.ID, &note.Topic, &note.Body, &created); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			note.CreatedAt = ts
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return notes, nil
}
