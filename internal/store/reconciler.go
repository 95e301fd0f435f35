package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/healingizz/wellquest/internal/wellness"
)

// Reconciler mediates between the local file store and the optional remote
// document store. Reads prefer remote for authenticated identities; writes
// go to both, degrading to local-only when the remote is unreachable.
type Reconciler struct {
	local  *LocalStore
	remote *RemoteStore // nil when no remote is configured
	logger *slog.Logger
	now    func() time.Time
}

func NewReconciler(local *LocalStore, remote *RemoteStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		local:  local,
		remote: remote,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// HasRemote reports whether a remote store is configured at all.
func (r *Reconciler) HasRemote() bool { return r.remote != nil }

// Local exposes the local store for whole-store scans (leaderboard).
func (r *Reconciler) Local() *LocalStore { return r.local }

// Load resolves the record for an identity. When the identity is
// authenticated and the remote store holds a record, the remote copy wins.
// When the remote has no record yet, the local one (or a fresh default) is
// used and upserted remotely as a one-time migration. Without an
// authenticated identity the local store is authoritative.
func (r *Reconciler) Load(ctx context.Context, userID string, authenticated bool) (*wellness.UserRecord, error) {
	if authenticated && r.remote != nil {
		rec, err := r.remote.LoadRecord(ctx, userID)
		switch {
		case err == nil:
			// Keep the local mirror current so a later offline session
			// starts from the freshest copy.
			if lerr := r.local.Save(rec); lerr != nil {
				r.logger.Warn("mirroring remote record locally failed", "user_id", userID, "error", lerr)
			}
			return rec, nil
		case errors.Is(err, ErrNotFound):
			rec, err := r.loadLocal(userID)
			if err != nil {
				return nil, err
			}
			if rerr := r.remote.SaveRecord(ctx, rec); rerr != nil {
				r.logger.Warn("migrating local record to remote failed", "user_id", userID, "error", rerr)
			}
			return rec, nil
		default:
			r.logger.Warn("remote load failed, falling back to local", "user_id", userID, "error", err)
		}
	}
	return r.loadLocal(userID)
}

func (r *Reconciler) loadLocal(userID string) (*wellness.UserRecord, error) {
	rec, err := r.local.Load(userID, r.now())
	if errors.Is(err, ErrNotFound) {
		rec = wellness.NewUserRecord(userID, r.now())
		if err := r.local.Save(rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return rec, err
}

// Save commits the record. The local write must succeed; a failing remote
// write degrades the save instead of failing it, so a flaky network never
// loses a completion. The returned flag reports that degradation.
func (r *Reconciler) Save(ctx context.Context, rec *wellness.UserRecord, authenticated bool) (degraded bool, err error) {
	if err := r.local.Save(rec); err != nil {
		return false, err
	}
	if authenticated && r.remote != nil {
		if err := r.remote.SaveRecord(ctx, rec); err != nil {
			r.logger.Warn("remote save failed, continuing local-only", "user_id", rec.UserID, "error", err)
			return true, nil
		}
	}
	return false, nil
}
