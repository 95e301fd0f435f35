package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/healingizz/wellquest/internal/store"
	"github.com/healingizz/wellquest/internal/wellness"
)

type GuestSessionRequest struct {
	Nickname string `json:"nickname"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	Remote   bool   `json:"remote"`
}

type MeResponse struct {
	UserID   string   `json:"userId"`
	Nickname string   `json:"nickname"`
	Bio      string   `json:"bio"`
	Points   int      `json:"points"`
	Streak   int      `json:"streak"`
	Level    int      `json:"level"`
	Badges   []string `json:"badges"`
	Remote   bool     `json:"remote"`
}

func userIDFor(name string) string {
	return "user-" + store.Slug(name)
}

// handleGuestSession starts a nickname-only session backed by the local
// store, matching the original nickname login.
func handleGuestSession(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuestSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Nickname = strings.TrimSpace(req.Nickname)
		if req.Nickname == "" {
			writeError(w, http.StatusBadRequest, "nickname is required")
			return
		}

		userID := userIDFor(req.Nickname)
		rec, err := app.Recon.Load(r.Context(), userID, false)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if rec.Profile.Nickname != req.Nickname {
			rec.Profile.Nickname = req.Nickname
			if _, err := app.Recon.Save(r.Context(), rec, false); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		sess := app.Sessions.Create(userID, "", false)
		setSessionCookie(w, sess.Token)
		writeJSON(w, http.StatusOK, SessionResponse{
			Token:    sess.Token,
			UserID:   userID,
			Nickname: rec.Profile.Nickname,
			Remote:   false,
		})
	}
}

func handleRegister(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.Remote == nil {
			writeError(w, http.StatusServiceUnavailable, "registration requires the remote store")
			return
		}

		var req CredentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(strings.ToLower(req.Username))
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		err = app.Remote.CreateCredentials(r.Context(), req.Username, string(hash))
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		userID := userIDFor(req.Username)
		rec, err := app.Recon.Load(r.Context(), userID, true)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if rec.Profile.Nickname == "" {
			rec.Profile.Nickname = req.Username
			if _, err := app.Recon.Save(r.Context(), rec, true); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		sess := app.Sessions.Create(userID, req.Username, true)
		setSessionCookie(w, sess.Token)
		writeJSON(w, http.StatusOK, SessionResponse{
			Token:    sess.Token,
			UserID:   userID,
			Nickname: rec.Profile.Nickname,
			Remote:   true,
		})
	}
}

func handleLogin(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.Remote == nil {
			writeError(w, http.StatusServiceUnavailable, "login requires the remote store")
			return
		}

		var req CredentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(strings.ToLower(req.Username))
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		hash, err := app.Remote.PasswordHash(r.Context(), req.Username)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		userID := userIDFor(req.Username)
		rec, err := app.Recon.Load(r.Context(), userID, true)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		sess := app.Sessions.Create(userID, req.Username, true)
		setSessionCookie(w, sess.Token)
		writeJSON(w, http.StatusOK, SessionResponse{
			Token:    sess.Token,
			UserID:   userID,
			Nickname: rec.Profile.Nickname,
			Remote:   true,
		})
	}
}

func handleLogout(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := sessionToken(r); token != "" {
			app.Sessions.Delete(token)
		}
		clearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMe(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, MeResponse{
			UserID:   rec.UserID,
			Nickname: rec.Profile.Nickname,
			Bio:      rec.Profile.Bio,
			Points:   rec.Game.Points,
			Streak:   rec.Game.Streak,
			Level:    rec.Level(),
			Badges:   rec.Game.Badges,
			Remote:   sess.Remote,
		})
	}
}

type ProfileRequest struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
}

func handleUpdateProfile(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req ProfileRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Nickname = strings.TrimSpace(req.Nickname)
		if req.Nickname == "" {
			writeError(w, http.StatusBadRequest, "nickname is required")
			return
		}

		sess.Lock()
		defer sess.Unlock()

		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		rec.Profile.Nickname = req.Nickname
		rec.Profile.Bio = strings.TrimSpace(req.Bio)

		if _, err := app.Recon.Save(r.Context(), rec, sess.Remote); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, wellness.Profile{
			Nickname: rec.Profile.Nickname,
			Bio:      rec.Profile.Bio,
		})
	}
}
