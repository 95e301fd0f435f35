package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healingizz/wellquest/internal/wellness"
)

type ReminderRequest struct {
	TimeISO string `json:"timeIso"`
	Label   string `json:"label"`
}

func handleCreateReminder(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req ReminderRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if _, err := time.Parse(time.RFC3339, req.TimeISO); err != nil {
			writeError(w, http.StatusBadRequest, "timeIso must be an RFC 3339 timestamp")
			return
		}
		req.Label = strings.TrimSpace(req.Label)
		if req.Label == "" {
			req.Label = "Mood check-in"
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		reminder := wellness.Reminder{
			ID:      uuid.NewString(),
			TimeISO: req.TimeISO,
			Label:   req.Label,
		}
		rec.Game.Reminders = append(rec.Game.Reminders, reminder)

		if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, reminder)
	}
}

// handleListReminders sweeps reminders more than a day overdue into the
// done state before returning the list.
func handleListReminders(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		// The sweep may write the record back, so this read takes the lock.
		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cutoff := app.now().Add(-24 * time.Hour)
		swept := false
		for i, rem := range rec.Game.Reminders {
			if rem.Done {
				continue
			}
			at, err := time.Parse(time.RFC3339, rem.TimeISO)
			if err != nil {
				continue
			}
			if at.Before(cutoff) {
				rec.Game.Reminders[i].Done = true
				swept = true
			}
		}
		if swept {
			if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
		writeJSON(w, http.StatusOK, rec.Game.Reminders)
	}
}

func handleReminderDone(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		id := chi.URLParam(r, "id")

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		for i, rem := range rec.Game.Reminders {
			if rem.ID != id {
				continue
			}
			rec.Game.Reminders[i].Done = true
			if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			writeJSON(w, http.StatusOK, rec.Game.Reminders[i])
			return
		}
		writeError(w, http.StatusNotFound, "reminder not found")
	}
}

func handleDeleteReminder(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		id := chi.URLParam(r, "id")

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		kept := rec.Game.Reminders[:0]
		found := false
		for _, rem := range rec.Game.Reminders {
			if rem.ID == id {
				found = true
				continue
			}
			kept = append(kept, rem)
		}
		if !found {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		rec.Game.Reminders = kept

		if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
