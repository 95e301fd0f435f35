package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/wellness"
)

type QuestItem struct {
	QuestID     string             `json:"questId"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DurationSec int                `json:"durationSec,omitempty"`
	Points      int                `json:"points,omitempty"`
	Timed       bool               `json:"timed"`
	Done        bool               `json:"done"`
	Timer       session.TimerState `json:"timer"`
}

type QuestListResponse struct {
	Date   string      `json:"date"`
	Quests []QuestItem `json:"quests"`
}

func handleListQuests(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		today := app.dailyQuests(sess.UserID)
		items := make([]QuestItem, 0, len(today))
		for _, inst := range today {
			act, err := wellness.ActivityFor(inst.Type)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			items = append(items, QuestItem{
				QuestID:     inst.QuestID,
				Type:        string(inst.Type),
				Title:       inst.Title,
				Description: inst.Description,
				DurationSec: inst.DurationSec,
				Points:      inst.Points,
				Timed:       act.Timed(),
				Done:        wellness.IsQuestDone(rec, inst.QuestID),
				Timer:       sess.Timer.Status(inst.QuestID).State,
			})
		}

		writeJSON(w, http.StatusOK, QuestListResponse{
			Date:   app.today().Format(wellness.DateLayout),
			Quests: items,
		})
	}
}

type CompleteResponse struct {
	Committed bool     `json:"committed"`
	Message   string   `json:"message,omitempty"`
	Points    int      `json:"points"`
	Total     int      `json:"total"`
	NewBadges []string `json:"newBadges,omitempty"`
	Degraded  bool     `json:"degraded,omitempty"`
}

// handleCompleteQuest is the direct completion path for form-based
// activities. Timed activities normally complete through their countdown,
// but a payload that validates is accepted here too.
func handleCompleteQuest(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		questID := chi.URLParam(r, "questID")

		inst, ok := app.questByID(sess.UserID, questID)
		if !ok {
			writeError(w, http.StatusNotFound, "quest is not part of today's selection")
			return
		}

		act, err := wellness.ActivityFor(inst.Type)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		var payload wellness.Payload
		if err := readJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := act.ValidatePayload(payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if !wellness.MarkCompleted(rec, inst, payload, app.now()) {
			writeJSON(w, http.StatusOK, CompleteResponse{
				Committed: false,
				Message:   "already completed today",
				Total:     rec.Game.Points,
			})
			return
		}

		granted := wellness.EvaluateBadges(rec, app.Rules, wellness.BuildSnapshot(rec, app.dailyQuests(sess.UserID)))
		degraded, err := app.Recon.Save(r.Context(), rec, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		titles := publishBadges(app, sess.Token, granted)
		writeJSON(w, http.StatusOK, CompleteResponse{
			Committed: true,
			Points:    inst.Points,
			Total:     rec.Game.Points,
			NewBadges: titles,
			Degraded:  degraded,
		})
	}
}

// publishBadges pushes badge grants onto the session's event stream and
// returns the granted titles for the response body.
func publishBadges(app *App, token string, granted []wellness.BadgeRule) []string {
	var titles []string
	for _, rule := range granted {
		titles = append(titles, rule.Title)
		app.Broker.Publish(token, SSEEvent{
			Type:  "badge",
			Badge: rule.Title,
			Icon:  rule.Icon,
		})
	}
	return titles
}
