package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/healingizz/wellquest/internal/database"
	"github.com/healingizz/wellquest/internal/wellness"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupLocal(t *testing.T) *LocalStore {
	t.Helper()
	local, err := NewLocalStore(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	return local
}

func setupRemote(t *testing.T) *RemoteStore {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	remote, err := NewRemoteStore(ctx, db)
	if err != nil {
		t.Fatalf("init remote store: %v", err)
	}
	return remote
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Maria Lopez", "maria_lopez"},
		{"user-maria", "user-maria"},
		{"../../etc/passwd", "....etcpasswd"},
		{"ñ", "user"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocalRoundTrip(t *testing.T) {
	local := setupLocal(t)

	rec := wellness.NewUserRecord("user-maria", time.Now())
	rec.Profile.Nickname = "maria"
	rec.Game.Points = 45
	wellness.CheckIn(rec, time.Now())

	if err := local.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := local.Load("user-maria", time.Now())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Profile.Nickname != "maria" || got.Game.Points != 45 || got.Game.Streak != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestLocalCorruptedRecordBackedUpAndReset(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocalStore(dir, discardLogger())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	path := filepath.Join(dir, "user-maria.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	rec, err := local.Load("user-maria", time.Now())
	if err != nil {
		t.Fatalf("load absorbed nothing: %v", err)
	}
	if rec.Game.Points != 0 || len(rec.Game.Quests) != 0 {
		t.Fatalf("reinitialized record is not a default one: %+v", rec)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "user-maria.backup.json"))
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != "{not json" {
		t.Fatalf("backup bytes = %q", backup)
	}
}

func TestRemoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	remote := setupRemote(t)

	rec := wellness.NewUserRecord("user-maria", time.Now())
	rec.Game.Badges = []string{"Getting Started"}
	if err := remote.SaveRecord(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := remote.LoadRecord(ctx, "user-maria")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Game.Badges) != 1 || got.Game.Badges[0] != "Getting Started" {
		t.Fatalf("round trip lost badges: %+v", got.Game.Badges)
	}

	if _, err := remote.LoadRecord(ctx, "user-nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record error = %v, want ErrNotFound", err)
	}
}

func TestRemoteCredentials(t *testing.T) {
	ctx := context.Background()
	remote := setupRemote(t)

	if err := remote.CreateCredentials(ctx, "maria", "hash-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := remote.CreateCredentials(ctx, "maria", "hash-2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate error = %v, want ErrUsernameTaken", err)
	}

	hash, err := remote.PasswordHash(ctx, "maria")
	if err != nil || hash != "hash-1" {
		t.Fatalf("PasswordHash = %q, %v", hash, err)
	}
	if _, err := remote.PasswordHash(ctx, "jose"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestReconcilerLocalOnlyCreatesDefault(t *testing.T) {
	r := NewReconciler(setupLocal(t), nil, discardLogger())

	rec, err := r.Load(context.Background(), "user-maria", false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.UserID != "user-maria" {
		t.Fatalf("user id = %q", rec.UserID)
	}

	// The default must have been persisted.
	again, err := r.Load(context.Background(), "user-maria", false)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.CreatedAt != rec.CreatedAt {
		t.Fatal("default record was not persisted on first load")
	}
}

func TestReconcilerRemoteWins(t *testing.T) {
	ctx := context.Background()
	local := setupLocal(t)
	remote := setupRemote(t)
	r := NewReconciler(local, remote, discardLogger())

	localRec := wellness.NewUserRecord("user-maria", time.Now())
	localRec.Game.Points = 10
	if err := local.Save(localRec); err != nil {
		t.Fatalf("seed local: %v", err)
	}

	remoteRec := wellness.NewUserRecord("user-maria", time.Now())
	remoteRec.Game.Points = 99
	if err := remote.SaveRecord(ctx, remoteRec); err != nil {
		t.Fatalf("seed remote: %v", err)
	}

	got, err := r.Load(ctx, "user-maria", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Game.Points != 99 {
		t.Fatalf("points = %d, want remote copy (99)", got.Game.Points)
	}
}

func TestReconcilerMigratesLocalToRemote(t *testing.T) {
	ctx := context.Background()
	local := setupLocal(t)
	remote := setupRemote(t)
	r := NewReconciler(local, remote, discardLogger())

	localRec := wellness.NewUserRecord("user-maria", time.Now())
	localRec.Game.Points = 42
	if err := local.Save(localRec); err != nil {
		t.Fatalf("seed local: %v", err)
	}

	got, err := r.Load(ctx, "user-maria", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Game.Points != 42 {
		t.Fatalf("points = %d, want local copy (42)", got.Game.Points)
	}

	migrated, err := remote.LoadRecord(ctx, "user-maria")
	if err != nil {
		t.Fatalf("record was not migrated to remote: %v", err)
	}
	if migrated.Game.Points != 42 {
		t.Fatalf("migrated points = %d, want 42", migrated.Game.Points)
	}
}

func TestReconcilerSaveDualWrite(t *testing.T) {
	ctx := context.Background()
	local := setupLocal(t)
	remote := setupRemote(t)
	r := NewReconciler(local, remote, discardLogger())

	rec := wellness.NewUserRecord("user-maria", time.Now())
	rec.Game.Points = 7

	degraded, err := r.Save(ctx, rec, true)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if degraded {
		t.Fatal("save degraded with a healthy remote")
	}

	fromRemote, err := remote.LoadRecord(ctx, "user-maria")
	if err != nil || fromRemote.Game.Points != 7 {
		t.Fatalf("remote copy = %+v, %v", fromRemote, err)
	}
	fromLocal, err := local.Load("user-maria", time.Now())
	if err != nil || fromLocal.Game.Points != 7 {
		t.Fatalf("local copy = %+v, %v", fromLocal, err)
	}
}

func TestReconcilerSaveDegradesOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	local := setupLocal(t)

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	remote, err := NewRemoteStore(ctx, db)
	if err != nil {
		t.Fatalf("init remote store: %v", err)
	}
	db.Close() // remote becomes unreachable

	r := NewReconciler(local, remote, discardLogger())
	rec := wellness.NewUserRecord("user-maria", time.Now())

	degraded, err := r.Save(ctx, rec, true)
	if err != nil {
		t.Fatalf("save failed instead of degrading: %v", err)
	}
	if !degraded {
		t.Fatal("save did not report degradation")
	}

	if _, err := local.Load("user-maria", time.Now()); err != nil {
		t.Fatalf("local copy missing after degraded save: %v", err)
	}
}
