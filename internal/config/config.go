package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string     `env:"DATA_DIR" envDefault:"data"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	// RemoteDBURL points at the remote record store (a libsql:// URL or a
	// file path). Empty means local-only mode: no registration, no remote
	// persistence.
	RemoteDBURL string `env:"REMOTE_DB_URL"`

	// CatalogPath optionally replaces the built-in activity catalog, which
	// is where a deployment's reward schedule lives.
	CatalogPath  string `env:"CATALOG_PATH"`
	QuestsPerDay int    `env:"QUESTS_PER_DAY" envDefault:"4"`

	// Point awards outside the quest catalog.
	CheckinPoints int `env:"CHECKIN_POINTS" envDefault:"10"`
	JournalPoints int `env:"JOURNAL_POINTS" envDefault:"5"`

	LeaderboardSize int `env:"LEADERBOARD_SIZE" envDefault:"5"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
