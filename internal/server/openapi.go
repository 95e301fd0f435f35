package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/wellness"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "WellQuest API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the WellQuest daily wellness game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws/echo
	getWSEcho, _ := r.NewOperationContext(http.MethodGet, "/ws/echo")
	getWSEcho.SetSummary("WebSocket echo")
	getWSEcho.SetDescription("Upgrades to a WebSocket connection that echoes messages back.")
	getWSEcho.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWSEcho)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Start a guest session")
	postSession.SetDescription("Creates a local-only session for a nickname. Sets the session cookie.")
	postSession.AddReqStructure(GuestSessionRequest{})
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postSession)

	// POST /api/register
	postRegister, _ := r.NewOperationContext(http.MethodPost, "/api/register")
	postRegister.SetSummary("Register an account")
	postRegister.SetDescription("Creates remote credentials and a synced session. Requires the remote store.")
	postRegister.AddReqStructure(CredentialsRequest{})
	postRegister.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postRegister.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postRegister)

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Log in")
	postLogin.SetDescription("Authenticates against the remote credentials table and starts a synced session.")
	postLogin.AddReqStructure(CredentialsRequest{})
	postLogin.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postLogin)

	// POST /api/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/logout")
	postLogout.SetSummary("Log out")
	postLogout.SetDescription("Ends the session, cancelling any running activity timer, and clears the cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postLogout)

	// GET /api/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/me")
	getMe.SetSummary("Current user")
	getMe.SetDescription("Returns the authenticated user's profile and progress summary.")
	getMe.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// PUT /api/profile
	putProfile, _ := r.NewOperationContext(http.MethodPut, "/api/profile")
	putProfile.SetSummary("Update profile")
	putProfile.AddReqStructure(ProfileRequest{})
	putProfile.AddRespStructure(MeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putProfile.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(putProfile)

	// GET /api/quests
	getQuests, _ := r.NewOperationContext(http.MethodGet, "/api/quests")
	getQuests.SetSummary("Today's quests")
	getQuests.SetDescription("Returns the deterministic daily quest selection with completion and timer state.")
	getQuests.AddRespStructure(QuestListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuests.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getQuests)

	// POST /api/quests/{questID}/complete
	postComplete, _ := r.NewOperationContext(http.MethodPost, "/api/quests/{questID}/complete")
	postComplete.SetSummary("Complete a quest")
	postComplete.SetDescription("Records completion of an untimed quest. Repeat calls for the same day are no-ops.")
	postComplete.AddReqStructure(wellness.Payload{})
	postComplete.AddRespStructure(CompleteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postComplete.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postComplete.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postComplete)

	// POST /api/quests/{questID}/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/quests/{questID}/start")
	postStart.SetSummary("Start a timed quest")
	postStart.SetDescription("Starts the countdown for a timed quest. Only one timer may run per session.")
	postStart.AddRespStructure(StartTimerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postStart)

	// POST /api/quests/{questID}/cancel
	postCancel, _ := r.NewOperationContext(http.MethodPost, "/api/quests/{questID}/cancel")
	postCancel.SetSummary("Cancel a timed quest")
	postCancel.SetDescription("Requests cancellation of the running countdown. Takes effect at the next tick.")
	postCancel.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusAccepted))
	postCancel.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCancel)

	// GET /api/quests/{questID}/timer
	getTimer, _ := r.NewOperationContext(http.MethodGet, "/api/quests/{questID}/timer")
	getTimer.SetSummary("Timer status")
	getTimer.AddRespStructure(session.TimerStatus{}, openapi.WithHTTPStatus(http.StatusOK))
	getTimer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getTimer)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream for timer ticks and badge grants. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/checkin
	postCheckin, _ := r.NewOperationContext(http.MethodPost, "/api/checkin")
	postCheckin.SetSummary("Daily mood check-in")
	postCheckin.SetDescription("Records a mood score and advances the check-in streak.")
	postCheckin.AddReqStructure(CheckinRequest{})
	postCheckin.AddRespStructure(CheckinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCheckin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postCheckin)

	// GET /api/moods
	getMoods, _ := r.NewOperationContext(http.MethodGet, "/api/moods")
	getMoods.SetSummary("Mood history")
	getMoods.AddRespStructure([]wellness.MoodEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getMoods)

	// POST /api/journal
	postJournal, _ := r.NewOperationContext(http.MethodPost, "/api/journal")
	postJournal.SetSummary("Create journal entry")
	postJournal.AddReqStructure(JournalRequest{})
	postJournal.AddRespStructure(JournalResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJournal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postJournal)

	// GET /api/journal
	getJournal, _ := r.NewOperationContext(http.MethodGet, "/api/journal")
	getJournal.SetSummary("List journal entries")
	getJournal.AddRespStructure([]wellness.JournalEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getJournal)

	// GET /api/journal/export
	getExport, _ := r.NewOperationContext(http.MethodGet, "/api/journal/export")
	getExport.SetSummary("Export journal")
	getExport.SetDescription("Downloads the full journal as a plain-text file.")
	getExport.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getExport)

	// POST /api/reminders
	postReminder, _ := r.NewOperationContext(http.MethodPost, "/api/reminders")
	postReminder.SetSummary("Create reminder")
	postReminder.AddReqStructure(ReminderRequest{})
	postReminder.AddRespStructure(wellness.Reminder{}, openapi.WithHTTPStatus(http.StatusOK))
	postReminder.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postReminder)

	// GET /api/reminders
	getReminders, _ := r.NewOperationContext(http.MethodGet, "/api/reminders")
	getReminders.SetSummary("List reminders")
	getReminders.SetDescription("Returns reminders, marking anything more than a day overdue as done.")
	getReminders.AddRespStructure([]wellness.Reminder{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getReminders)

	// POST /api/reminders/{id}/done
	doneReminder, _ := r.NewOperationContext(http.MethodPost, "/api/reminders/{id}/done")
	doneReminder.SetSummary("Mark reminder done")
	doneReminder.AddRespStructure(wellness.Reminder{}, openapi.WithHTTPStatus(http.StatusOK))
	doneReminder.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(doneReminder)

	// DELETE /api/reminders/{id}
	deleteReminder, _ := r.NewOperationContext(http.MethodDelete, "/api/reminders/{id}")
	deleteReminder.SetSummary("Delete reminder")
	deleteReminder.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteReminder.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteReminder)

	// GET /api/garden
	getGarden, _ := r.NewOperationContext(http.MethodGet, "/api/garden")
	getGarden.SetSummary("List garden items")
	getGarden.AddRespStructure([]wellness.GardenItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGarden)

	// POST /api/garden
	postGarden, _ := r.NewOperationContext(http.MethodPost, "/api/garden")
	postGarden.SetSummary("Plant in the garden")
	postGarden.AddReqStructure(GardenRequest{})
	postGarden.AddRespStructure(wellness.GardenItem{}, openapi.WithHTTPStatus(http.StatusOK))
	postGarden.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postGarden)

	// GET /api/progress
	getProgress, _ := r.NewOperationContext(http.MethodGet, "/api/progress")
	getProgress.SetSummary("Progress overview")
	getProgress.SetDescription("Returns the progress snapshot with every badge and its earned state.")
	getProgress.AddRespStructure(ProgressResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getProgress)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.AddRespStructure([]LeaderboardRow{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	// GET /api/quotes/random
	getQuote, _ := r.NewOperationContext(http.MethodGet, "/api/quotes/random")
	getQuote.SetSummary("Random encouragement quote")
	getQuote.AddRespStructure(QuoteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getQuote)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
