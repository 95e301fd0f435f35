package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/healingizz/wellquest/internal/wellness"
)

type GardenRequest struct {
	Rarity      string `json:"rarity"`
	Affirmation string `json:"affirmation"`
}

func handleListGarden(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, rec.Game.Garden)
	}
}

func handlePlantGarden(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req GardenRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Affirmation = strings.TrimSpace(req.Affirmation)
		if req.Affirmation == "" {
			writeError(w, http.StatusBadRequest, "affirmation is required")
			return
		}
		if req.Rarity == "" {
			req.Rarity = "common"
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		item := wellness.GardenItem{
			ID:          uuid.NewString(),
			Date:        app.today().Format(wellness.DateLayout),
			Rarity:      req.Rarity,
			Affirmation: req.Affirmation,
		}
		rec.Game.Garden = append(rec.Game.Garden, item)

		if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}
