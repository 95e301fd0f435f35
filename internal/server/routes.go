package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, app *App) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("WellQuest API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(app.Logger, app.Config.DataDir, app.RemoteDB))
	r.Get("/ws/echo", handleWSEcho(app.Logger))

	// Session bootstrap, no auth required.
	r.Post("/api/session", handleGuestSession(app))
	r.Post("/api/register", handleRegister(app))
	r.Post("/api/login", handleLogin(app))

	// Everything else requires a session token.
	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware(app))

		r.Post("/logout", handleLogout(app))
		r.Get("/me", handleMe(app))
		r.Put("/profile", handleUpdateProfile(app))

		r.Get("/quests", handleListQuests(app))
		r.Post("/quests/{questID}/complete", handleCompleteQuest(app))
		r.Post("/quests/{questID}/start", handleStartTimer(app))
		r.Post("/quests/{questID}/cancel", handleCancelTimer(app))
		r.Get("/quests/{questID}/timer", handleTimerStatus(app))
		r.Get("/events", handleEvents(app))

		r.Post("/checkin", handleCheckin(app))
		r.Get("/moods", handleListMoods(app))

		r.Post("/journal", handleCreateJournal(app))
		r.Get("/journal", handleListJournal(app))
		r.Get("/journal/export", handleExportJournal(app))

		r.Post("/reminders", handleCreateReminder(app))
		r.Get("/reminders", handleListReminders(app))
		r.Post("/reminders/{id}/done", handleReminderDone(app))
		r.Delete("/reminders/{id}", handleDeleteReminder(app))

		r.Get("/garden", handleListGarden(app))
		r.Post("/garden", handlePlantGarden(app))

		r.Get("/progress", handleProgress(app))
		r.Get("/leaderboard", handleLeaderboard(app))
		r.Get("/quotes/random", handleRandomQuote())
	})

	if app.Config.SPADir != "" {
		if info, err := os.Stat(app.Config.SPADir); err == nil && info.IsDir() {
			app.Logger.Info("serving SPA", "dir", app.Config.SPADir)
			r.NotFound(handleSPA(app.Config.SPADir))
		}
	}
}
