package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/wellness"
)

type StartTimerResponse struct {
	QuestID     string `json:"questId"`
	DurationSec int    `json:"durationSec"`
}

// handleStartTimer begins the countdown for a timed activity. While it
// runs, the session's exclusivity lock blocks every other start.
func handleStartTimer(app *App) http.HandlerFunc {
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
		if !act.Timed() {
			writeError(w, http.StatusBadRequest, "activity is not a timed exercise")
			return
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if wellness.IsQuestDone(rec, questID) {
			writeError(w, http.StatusConflict, "already completed today")
			return
		}

		seconds := inst.DurationSec
		if seconds <= 0 {
			seconds = 60
		}

		publish := func(e session.Event) {
			app.Broker.Publish(sess.Token, SSEEvent{
				Type:      e.Type,
				QuestID:   e.QuestID,
				Remaining: e.Remaining,
			})
		}
		err = sess.Timer.Start(questID, seconds, publish, func(string) {
			app.finishTimedQuest(sess, inst)
		})
		switch {
		case errors.Is(err, session.ErrActivityActive):
			writeError(w, http.StatusConflict, "another activity is already running")
			return
		case errors.Is(err, session.ErrAlreadyDone):
			writeError(w, http.StatusConflict, "already completed today")
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, StartTimerResponse{
			QuestID:     questID,
			DurationSec: seconds,
		})
	}
}

// finishTimedQuest records the completion after a countdown expires. The
// timer state is already done at this point; a failing save is surfaced as
// a warning, never a rollback, so the lock can never get stuck on a flaky
// store.
func (a *App) finishTimedQuest(sess *session.Session, inst wellness.QuestInstance) {
	// The originating request is long gone; this runs from the countdown
	// goroutine with its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Serialize against in-flight handlers for this session, or a handler
	// that loaded before this commit could save a copy without it.
	sess.Lock()
	defer sess.Unlock()

	rec, err := a.Recon.Load(ctx, sess.UserID, sess.Remote)
	if err != nil {
		a.Logger.Warn("loading record after countdown failed", "user_id", sess.UserID, "quest_id", inst.QuestID, "error", err)
		return
	}

	if !wellness.MarkCompleted(rec, inst, wellness.TimedPayload(), a.now()) {
		return
	}

	granted := wellness.EvaluateBadges(rec, a.Rules, wellness.BuildSnapshot(rec, a.dailyQuests(sess.UserID)))
	if _, err := a.Recon.Save(ctx, rec, sess.Remote); err != nil {
		a.Logger.Warn("persisting timed completion failed", "user_id", sess.UserID, "quest_id", inst.QuestID, "error", err)
	}

	a.Broker.Publish(sess.Token, SSEEvent{
		Type:    "completed",
		QuestID: inst.QuestID,
		Points:  inst.Points,
	})
	publishBadges(a, sess.Token, granted)
}

// handleCancelTimer requests cancellation; it lands at the next tick
// boundary, so the response is an acknowledgement, not a completion.
func handleCancelTimer(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		questID := chi.URLParam(r, "questID")

		if err := sess.Timer.Cancel(questID); err != nil {
			writeError(w, http.StatusConflict, "activity is not running")
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func handleTimerStatus(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		questID := chi.URLParam(r, "questID")
		writeJSON(w, http.StatusOK, sess.Timer.Status(questID))
	}
}
