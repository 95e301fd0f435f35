package server

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/healingizz/wellquest/internal/config"
	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/store"
	"github.com/healingizz/wellquest/internal/wellness"
)

// App bundles everything the handlers need. One App serves all sessions;
// per-session state lives in the session registry, never here.
type App struct {
	Logger   *slog.Logger
	Config   *config.Config
	Catalog  []wellness.QuestTemplate
	Rules    []wellness.BadgeRule
	Recon    *store.Reconciler
	Remote   *store.RemoteStore // nil in local-only mode
	RemoteDB *sql.DB            // nil in local-only mode, used by health checks
	Sessions *session.Registry
	Broker   *Broker

	// Now is the clock; injectable so tests can pin the day.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) today() time.Time {
	return wellness.DateOnly(a.now())
}

// dailyQuests is the one place daily selection happens, so every handler
// sees the same selection for the same user-day.
func (a *App) dailyQuests(userID string) []wellness.QuestInstance {
	return wellness.SelectDaily(userID, a.today(), a.Catalog, a.Config.QuestsPerDay)
}

func (a *App) questByID(userID, questID string) (wellness.QuestInstance, bool) {
	for _, inst := range a.dailyQuests(userID) {
		if inst.QuestID == questID {
			return inst, true
		}
	}
	return wellness.QuestInstance{}, false
}
