package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/healingizz/wellquest/internal/wellness"
)

type CheckinRequest struct {
	Mood int    `json:"mood"`
	Note string `json:"note"`
}

type CheckinResponse struct {
	Streak    int      `json:"streak"`
	Points    int      `json:"points"`
	Total     int      `json:"total"`
	NewBadges []string `json:"newBadges,omitempty"`
	Degraded  bool     `json:"degraded,omitempty"`
}

// handleCheckin records a mood entry and advances the streak. Multiple
// check-ins a day append moods but leave the streak untouched.
func handleCheckin(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req CheckinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Mood < 1 || req.Mood > 10 {
			writeError(w, http.StatusBadRequest, "mood must be between 1 and 10")
			return
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		rec.Game.Moods = append(rec.Game.Moods, wellness.MoodEntry{
			Date: app.now().Format(time.RFC3339),
			Mood: req.Mood,
			Note: strings.TrimSpace(req.Note),
		})
		wellness.CheckIn(rec, app.today())
		wellness.AddPoints(rec, app.Config.CheckinPoints)
		granted := wellness.EvaluateBadges(rec, app.Rules, wellness.BuildSnapshot(rec, app.dailyQuests(sess.UserID)))

		degraded, err := app.Recon.Save(r.Context(), rec, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		titles := publishBadges(app, sess.Token, granted)
		writeJSON(w, http.StatusOK, CheckinResponse{
			Streak:    rec.Game.Streak,
			Points:    app.Config.CheckinPoints,
			Total:     rec.Game.Points,
			NewBadges: titles,
			Degraded:  degraded,
		})
	}
}

func handleListMoods(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, rec.Game.Moods)
	}
}
