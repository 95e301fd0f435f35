package wellness

import (
	"testing"
	"time"
)

func gratitudeInstance(t *testing.T) QuestInstance {
	t.Helper()
	d := day(t, "2025-01-01")
	for _, inst := range SelectDaily("user-maria", d, DefaultCatalog(), len(DefaultCatalog())) {
		if inst.Type == ActivityGratitude {
			return inst
		}
	}
	t.Fatal("gratitude template missing from catalog")
	return QuestInstance{}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	rec := NewUserRecord("user-maria", time.Now())
	inst := gratitudeInstance(t)
	payload := Payload{Gratitude: []string{"sun", "coffee", "friends"}}
	now := time.Now()

	if !MarkCompleted(rec, inst, payload, now) {
		t.Fatal("first completion was rejected")
	}
	if MarkCompleted(rec, inst, payload, now) {
		t.Fatal("second completion was committed")
	}

	if len(rec.Game.Quests) != 1 {
		t.Fatalf("ledger holds %d records, want 1", len(rec.Game.Quests))
	}
	if got := rec.Game.QuestCounts[string(ActivityGratitude)]; got != 1 {
		t.Errorf("quest count = %d, want 1", got)
	}
	if rec.Game.Points != inst.Points {
		t.Errorf("points = %d, want %d", rec.Game.Points, inst.Points)
	}
}

func TestMarkCompletedRecordShape(t *testing.T) {
	rec := NewUserRecord("user-maria", time.Now())
	inst := gratitudeInstance(t)
	now := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)

	MarkCompleted(rec, inst, Payload{Gratitude: []string{"a", "b", "c"}}, now)

	cr, ok := rec.Game.Quests["gratitude-2025-01-01"]
	if !ok {
		t.Fatal("record not keyed by quest id")
	}
	if cr.Type != ActivityGratitude || cr.Title != inst.Title {
		t.Errorf("record carries %q/%q, want template type and title", cr.Type, cr.Title)
	}
	if cr.CompletedAt != "2025-01-01T12:30:00Z" {
		t.Errorf("completed_at = %q", cr.CompletedAt)
	}
}

func TestAddPoints(t *testing.T) {
	rec := NewUserRecord("user-maria", time.Now())
	AddPoints(rec, 10)
	AddPoints(rec, 5)
	if rec.Game.Points != 15 {
		t.Fatalf("points = %d, want 15", rec.Game.Points)
	}
	if rec.Level() != 1 {
		t.Errorf("level = %d, want 1", rec.Level())
	}
	AddPoints(rec, 90)
	if rec.Level() != 2 {
		t.Errorf("level = %d, want 2", rec.Level())
	}
}
