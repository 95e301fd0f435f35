package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/healingizz/wellquest/internal/wellness"
)

type JournalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type JournalResponse struct {
	Entry    wellness.JournalEntry `json:"entry"`
	Points   int                   `json:"points"`
	Total    int                   `json:"total"`
	Degraded bool                  `json:"degraded,omitempty"`
}

func handleCreateJournal(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req JournalRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Content = strings.TrimSpace(req.Content)
		if req.Content == "" {
			writeError(w, http.StatusBadRequest, "journal content is required")
			return
		}
		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = "(No title)"
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		entry := wellness.JournalEntry{
			Date:    app.now().Format(time.RFC3339),
			Title:   title,
			Content: req.Content,
		}
		rec.Game.Journal = append(rec.Game.Journal, entry)
		wellness.AddPoints(rec, app.Config.JournalPoints)

		degraded, err := app.Recon.Save(r.Context(), rec, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, JournalResponse{
			Entry:    entry,
			Points:   app.Config.JournalPoints,
			Total:    rec.Game.Points,
			Degraded: degraded,
		})
	}
}

func handleListJournal(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, rec.Game.Journal)
	}
}

// handleExportJournal renders the journal as plain text, one block per
// entry.
func handleExportJournal(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var b strings.Builder
		for _, entry := range rec.Game.Journal {
			fmt.Fprintf(&b, "=== %s — %s ===\n%s\n\n", entry.Date, entry.Title, entry.Content)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", rec.UserID+"_journal.txt"))
		w.Write([]byte(b.String()))
	}
}
