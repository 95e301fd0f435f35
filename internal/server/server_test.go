package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/healingizz/wellquest/internal/config"
	"github.com/healingizz/wellquest/internal/database"
	"github.com/healingizz/wellquest/internal/session"
	"github.com/healingizz/wellquest/internal/store"
	"github.com/healingizz/wellquest/internal/wellness"
)

var testDay = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// testApp wires a full router against a temp-dir local store. With
// withRemote, an in-memory libsql DB backs registration and sync. The
// clock is pinned to testDay and the countdown tick is shortened so timer
// tests finish quickly.
func testApp(t *testing.T, withRemote bool) (*chi.Mux, *App) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir := t.TempDir()
	local, err := store.NewLocalStore(dir, logger)
	if err != nil {
		t.Fatalf("opening local store: %v", err)
	}

	var remote *store.RemoteStore
	var remoteDB *sql.DB
	if withRemote {
		remoteDB, err = database.Open(context.Background(), ":memory:")
		if err != nil {
			t.Fatalf("opening remote db: %v", err)
		}
		t.Cleanup(func() { remoteDB.Close() })

		remote, err = store.NewRemoteStore(context.Background(), remoteDB)
		if err != nil {
			t.Fatalf("init remote store: %v", err)
		}
	}

	app := &App{
		Logger: logger,
		Config: &config.Config{
			DataDir: dir,
			// All six activities selected so every type is testable.
			QuestsPerDay:    6,
			CheckinPoints:   10,
			JournalPoints:   5,
			LeaderboardSize: 5,
		},
		Catalog:  wellness.DefaultCatalog(),
		Rules:    wellness.DefaultBadgeRules(),
		Recon:    store.NewReconciler(local, remote, logger),
		Remote:   remote,
		RemoteDB: remoteDB,
		Sessions: session.NewRegistry(2 * time.Millisecond),
		Broker:   NewBroker(),
		Now:      func() time.Time { return testDay },
	}

	r := chi.NewRouter()
	addRoutes(r, app)
	return r, app
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func guestToken(t *testing.T, h http.Handler, nickname string) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/session", "", GuestSessionRequest{Nickname: nickname})
	if w.Code != http.StatusOK {
		t.Fatalf("guest session: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatal("guest session returned empty token")
	}
	return resp.Token
}

func TestGuestSession(t *testing.T) {
	r, _ := testApp(t, false)

	w := do(t, r, http.MethodPost, "/api/session", "", GuestSessionRequest{Nickname: "Luna"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Remote {
		t.Error("guest session should not be remote")
	}
	if resp.UserID != "user-luna" {
		t.Errorf("userId = %q, want %q", resp.UserID, "user-luna")
	}
	if resp.Nickname != "Luna" {
		t.Errorf("nickname = %q, want %q", resp.Nickname, "Luna")
	}
}

func TestGuestSessionRequiresNickname(t *testing.T) {
	r, _ := testApp(t, false)

	w := do(t, r, http.MethodPost, "/api/session", "", GuestSessionRequest{Nickname: "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMeRequiresSession(t *testing.T) {
	r, _ := testApp(t, false)

	w := do(t, r, http.MethodGet, "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	r, _ := testApp(t, false)
	token := guestToken(t, r, "Luna")

	if w := do(t, r, http.MethodGet, "/api/me", token, nil); w.Code != http.StatusOK {
		t.Fatalf("me before logout: expected 200, got %d", w.Code)
	}

	if w := do(t, r, http.MethodPost, "/api/logout", token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", w.Code)
	}

	if w := do(t, r, http.MethodGet, "/api/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestRegisterRequiresRemoteStore(t *testing.T) {
	r, _ := testApp(t, false)

	w := do(t, r, http.MethodPost, "/api/register", "",
		CredentialsRequest{Username: "maria", Password: "hunter2"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := testApp(t, true)

	w := do(t, r, http.MethodPost, "/api/register", "",
		CredentialsRequest{Username: "Maria", Password: "hunter2"})
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.Remote {
		t.Error("registered session should be remote")
	}

	// Username uniqueness is case-insensitive.
	w = do(t, r, http.MethodPost, "/api/register", "",
		CredentialsRequest{Username: "maria", Password: "other"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/login", "",
		CredentialsRequest{Username: "maria", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/login", "",
		CredentialsRequest{Username: "maria", Password: "hunter2"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.UserID != "user-maria" {
		t.Errorf("userId = %q, want %q", resp.UserID, "user-maria")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	r, _ := testApp(t, true)

	w := do(t, r, http.MethodPost, "/api/login", "",
		CredentialsRequest{Username: "nobody", Password: "x"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	r, _ := testApp(t, false)
	token := guestToken(t, r, "Luna")

	w := do(t, r, http.MethodPut, "/api/profile", token,
		ProfileRequest{Nickname: "Moonlight", Bio: "one day at a time"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/me", token, nil)
	var me MeResponse
	json.NewDecoder(w.Body).Decode(&me)
	if me.Nickname != "Moonlight" {
		t.Errorf("nickname = %q, want %q", me.Nickname, "Moonlight")
	}
	if me.Bio != "one day at a time" {
		t.Errorf("bio = %q", me.Bio)
	}
}
