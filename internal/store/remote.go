package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/healingizz/wellquest/internal/wellness"
)

var ErrUsernameTaken = errors.New("username already taken")

// RemoteStore is the authenticated-identity document store: one JSONB
// document per user record, plus a separate credentials table keyed by
// username. It speaks to a libSQL database, typically a remote one.
type RemoteStore struct {
	db *sql.DB
}

func NewRemoteStore(ctx context.Context, db *sql.DB) (*RemoteStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS user_records (
			id   TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS credentials (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}
	return &RemoteStore{db: db}, nil
}

// LoadRecord fetches one user record document.
func (s *RemoteStore) LoadRecord(ctx context.Context, userID string) (*wellness.UserRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM user_records WHERE id = ?`, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec wellness.UserRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decoding record %q: %w", userID, err)
	}
	rec.Normalize()
	return &rec, nil
}

// SaveRecord upserts one user record document.
func (s *RemoteStore) SaveRecord(ctx context.Context, rec *wellness.UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_records (id, data) VALUES (?, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		rec.UserID, string(data),
	)
	return err
}

// CreateCredentials registers a username. A taken username is
// ErrUsernameTaken and leaves no record behind.
func (s *RemoteStore) CreateCredentials(ctx context.Context, username, passwordHash string) error {
	var existing string
	err := s.db.QueryRowContext(ctx,
		`SELECT username FROM credentials WHERE username = ?`, username,
	).Scan(&existing)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO credentials (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// PasswordHash looks up the stored hash for a username.
func (s *RemoteStore) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM credentials WHERE username = ?`, username,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return hash, err
}
