package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/healingizz/wellquest/internal/wellness"
)

var ErrNotFound = errors.New("record not found")

// LocalStore keeps one human-readable JSON document per user under dir.
// Filenames are derived from the user id through Slug, so any identity is
// filesystem-safe.
type LocalStore struct {
	dir    string
	logger *slog.Logger
}

func NewLocalStore(dir string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Slug maps an identifier to a safe filename stem: lowercased, spaces to
// underscores, everything outside [a-z0-9._-] dropped.
func Slug(identifier string) string {
	lower := strings.ToLower(strings.TrimSpace(identifier))
	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func (s *LocalStore) path(userID string) string {
	return filepath.Join(s.dir, Slug(userID)+".json")
}

// Load reads a user's record. A missing file is ErrNotFound. A file that
// no longer parses is backed up under a sibling name and replaced with a
// fresh default record; corruption is absorbed, never returned as an error.
func (s *LocalStore) Load(userID string, now time.Time) (*wellness.UserRecord, error) {
	raw, err := os.ReadFile(s.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}

	var rec wellness.UserRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		backup := filepath.Join(s.dir, Slug(userID)+".backup.json")
		if werr := os.WriteFile(backup, raw, 0o644); werr != nil {
			s.logger.Error("backing up corrupted record failed", "user_id", userID, "error", werr)
		} else {
			s.logger.Warn("corrupted record backed up and reinitialized", "user_id", userID, "backup", backup)
		}
		fresh := wellness.NewUserRecord(userID, now)
		if err := s.Save(fresh); err != nil {
			return nil, fmt.Errorf("reinitializing record: %w", err)
		}
		return fresh, nil
	}
	rec.Normalize()
	return &rec, nil
}

// Save writes the record as indented JSON.
func (s *LocalStore) Save(rec *wellness.UserRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := os.WriteFile(s.path(rec.UserID), data, 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// All loads every readable record in the store. Unreadable files are
// skipped, not fatal; the leaderboard should not break on one bad file.
func (s *LocalStore) All() ([]*wellness.UserRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing data dir: %w", err)
	}

	var records []*wellness.UserRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".backup.json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var rec wellness.UserRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		rec.Normalize()
		records = append(records, &rec)
	}
	return records, nil
}
