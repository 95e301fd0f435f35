package wellness

import "time"

// MarkCompleted is the single choke point for recording a completion. It
// returns false without mutating anything when the quest id is already in
// the ledger, so completing twice is a no-op. On commit it appends the
// record, bumps the per-type counter and adds the quest's points.
//
// Persisting the record and re-evaluating badges are the caller's job; the
// ledger itself stays pure.
func MarkCompleted(rec *UserRecord, inst QuestInstance, payload Payload, now time.Time) bool {
	if rec.Game.Quests == nil {
		rec.Game.Quests = map[string]CompletionRecord{}
	}
	if _, done := rec.Game.Quests[inst.QuestID]; done {
		return false
	}

	rec.Game.Quests[inst.QuestID] = CompletionRecord{
		QuestID:     inst.QuestID,
		Type:        inst.Type,
		Title:       inst.Title,
		CompletedAt: now.UTC().Format(time.RFC3339),
		Payload:     payload,
		Points:      inst.Points,
	}

	if rec.Game.QuestCounts == nil {
		rec.Game.QuestCounts = map[string]int{}
	}
	rec.Game.QuestCounts[string(inst.Type)]++
	rec.Game.Points += inst.Points
	return true
}

// IsQuestDone reports whether the ledger already holds the quest id.
func IsQuestDone(rec *UserRecord, questID string) bool {
	_, done := rec.Game.Quests[questID]
	return done
}

// AddPoints awards points outside the quest ledger (check-ins, journal
// entries). Amounts come from the reward schedule in config.
func AddPoints(rec *UserRecord, amount int) {
	rec.Game.Points += amount
}
