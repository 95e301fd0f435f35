package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/healingizz/wellquest/internal/database"
)

func TestHandleHealth(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}

	dir := t.TempDir()

	tests := []struct {
		name       string
		dir        string
		wantStatus int
		wantLocal  string
	}{
		{
			name:       "everything up",
			dir:        dir,
			wantStatus: http.StatusOK,
			wantLocal:  "ok",
		},
		{
			name:       "data dir missing",
			dir:        dir + "/nope",
			wantStatus: http.StatusServiceUnavailable,
			wantLocal:  "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handleHealth(slog.Default(), tt.dir, db)

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got := body["local"].Status; got != tt.wantLocal {
				t.Errorf("local = %q, want %q", got, tt.wantLocal)
			}
			if got := body["remote"].Status; got != "ok" {
				t.Errorf("remote = %q, want %q", got, "ok")
			}
		})
	}

	// Local-only mode skips the remote check entirely.
	t.Run("no remote store", func(t *testing.T) {
		h := handleHealth(slog.Default(), dir, nil)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		h(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var body HealthResponse
		json.NewDecoder(rec.Body).Decode(&body)
		if _, ok := body["remote"]; ok {
			t.Error("remote check reported in local-only mode")
		}
	})

	db.Close()

	t.Run("remote down", func(t *testing.T) {
		h := handleHealth(slog.Default(), dir, db)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		h(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		var body HealthResponse
		json.NewDecoder(rec.Body).Decode(&body)
		if got := body["remote"].Status; got != "error" {
			t.Errorf("remote = %q, want %q", got, "error")
		}
	})
}
