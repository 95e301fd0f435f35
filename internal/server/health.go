package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// HealthStatus describes a single dependency check.
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthResponse maps dependency name to check result.
type HealthResponse map[string]HealthStatus

func handleHealth(logger *slog.Logger, dataDir string, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := HealthResponse{
			"local": {Status: "ok"},
		}
		status := http.StatusOK

		if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
			logger.Error("health check failed", "name", "local", "dir", dataDir, "error", err)
			checks["local"] = HealthStatus{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		if db != nil {
			checks["remote"] = HealthStatus{Status: "ok"}
			if err := db.PingContext(ctx); err != nil {
				logger.Error("health check failed", "name", "remote", "error", err)
				checks["remote"] = HealthStatus{Status: "error"}
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(checks)
	}
}
