package wellness

// Snapshot is a read-only projection of a user's progress, rebuilt on
// demand and never cached across mutations. Badge predicates only ever see
// this, not the record itself.
type Snapshot struct {
	Points             int            `json:"points"`
	Streak             int            `json:"streak"`
	QuestCounts        map[string]int `json:"quest_counts"`
	QuestsDone         int            `json:"quests_done"`
	GardenTotal        int            `json:"garden_total"`
	JournalCount       int            `json:"journal_count"`
	CheckinCount       int            `json:"checkin_count"`
	AllQuestsDoneToday bool           `json:"all_quests_done_today"`
}

// Count returns the completion count for an activity type.
func (s Snapshot) Count(t ActivityType) int {
	return s.QuestCounts[string(t)]
}

// BuildSnapshot projects the record onto a Snapshot. today holds the
// current day's selection so AllQuestsDoneToday can be derived; pass nil
// when that flag does not matter.
func BuildSnapshot(rec *UserRecord, today []QuestInstance) Snapshot {
	counts := make(map[string]int, len(rec.Game.QuestCounts))
	for t, n := range rec.Game.QuestCounts {
		counts[t] = n
	}

	allDone := len(today) > 0
	for _, inst := range today {
		if !IsQuestDone(rec, inst.QuestID) {
			allDone = false
			break
		}
	}

	return Snapshot{
		Points:             rec.Game.Points,
		Streak:             rec.Game.Streak,
		QuestCounts:        counts,
		QuestsDone:         len(rec.Game.Quests),
		GardenTotal:        len(rec.Game.Garden),
		JournalCount:       len(rec.Game.Journal),
		CheckinCount:       len(rec.Game.Moods),
		AllQuestsDoneToday: allDone,
	}
}
