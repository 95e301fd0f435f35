// Package wellness implements the daily activity engine: the catalog and
// its deterministic daily selection, the append-only completion ledger,
// streaks, badges and the persisted user record. The ledger is a map and
// carries no insertion order; where completion order matters, consumers
// sort by each record's CompletedAt timestamp.
package wellness

import "time"

// DateLayout is the day-granularity format used for check-in dates and
// quest ids.
const DateLayout = "2006-01-02"

// UserRecord is the root aggregate for one user. It is the exact shape
// persisted by the stores, so every field carries a JSON tag.
type UserRecord struct {
	UserID    string  `json:"user_id"`
	CreatedAt string  `json:"created_at"`
	Profile   Profile `json:"profile"`
	Game      Game    `json:"game"`
}

type Profile struct {
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
}

// Game holds all progress state. Quests is keyed by quest id; completion
// order is recoverable from CompletedAt since Go maps do not keep
// insertion order.
type Game struct {
	Points          int                         `json:"points"`
	Streak          int                         `json:"streak"`
	LastCheckinDate string                      `json:"last_checkin_date,omitempty"`
	Badges          []string                    `json:"badges"`
	BadgeIDs        []string                    `json:"badge_ids,omitempty"`
	Quests          map[string]CompletionRecord `json:"quests"`
	QuestCounts     map[string]int              `json:"quest_counts"`
	Moods           []MoodEntry                 `json:"moods"`
	Journal         []JournalEntry              `json:"journal"`
	Reminders       []Reminder                  `json:"reminders"`
	Garden          []GardenItem                `json:"garden"`
}

// CompletionRecord is one ledger entry. Entries are append-only; nothing
// ever edits or removes one.
type CompletionRecord struct {
	QuestID     string       `json:"quest_id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	CompletedAt string       `json:"completed_at"`
	Payload     Payload      `json:"payload"`
	Points      int          `json:"points,omitempty"`
}

// Payload carries the per-activity completion details. All fields are
// optional; which ones are required depends on the activity kind (see
// Activity.ValidatePayload). Unknown legacy fields in stored documents are
// dropped on decode and never relied upon.
type Payload struct {
	Completed       bool     `json:"completed,omitempty"`
	Gratitude       []string `json:"gratitude,omitempty"`
	Negative        string   `json:"negative,omitempty"`
	EvidenceFor     string   `json:"evidence_for,omitempty"`
	EvidenceAgainst string   `json:"evidence_against,omitempty"`
	Balanced        string   `json:"balanced,omitempty"`
	Act             string   `json:"act,omitempty"`
}

type MoodEntry struct {
	Date string `json:"date"`
	Mood int    `json:"mood"`
	Note string `json:"note,omitempty"`
}

type JournalEntry struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reminder struct {
	ID      string `json:"id"`
	TimeISO string `json:"time_iso"`
	Label   string `json:"label"`
	Done    bool   `json:"done"`
}

type GardenItem struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Rarity      string `json:"rarity"`
	Affirmation string `json:"affirmation"`
}

// NewUserRecord returns a default-initialized record for a freshly seen
// identity.
func NewUserRecord(userID string, now time.Time) *UserRecord {
	return &UserRecord{
		UserID:    userID,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Profile:   Profile{},
		Game: Game{
			Badges:      []string{},
			Quests:      map[string]CompletionRecord{},
			QuestCounts: map[string]int{},
			Moods:       []MoodEntry{},
			Journal:     []JournalEntry{},
			Reminders:   []Reminder{},
			Garden:      []GardenItem{},
		},
	}
}

// Normalize fills nil maps and slices after decoding a document that was
// written by an older schema. It never invents data, only empty containers.
func (r *UserRecord) Normalize() {
	if r.Game.Badges == nil {
		r.Game.Badges = []string{}
	}
	if r.Game.Quests == nil {
		r.Game.Quests = map[string]CompletionRecord{}
	}
	if r.Game.QuestCounts == nil {
		r.Game.QuestCounts = map[string]int{}
	}
	if r.Game.Moods == nil {
		r.Game.Moods = []MoodEntry{}
	}
	if r.Game.Journal == nil {
		r.Game.Journal = []JournalEntry{}
	}
	if r.Game.Reminders == nil {
		r.Game.Reminders = []Reminder{}
	}
	if r.Game.Garden == nil {
		r.Game.Garden = []GardenItem{}
	}
}

// Level derives the profile level from total points: 100 points per level,
// starting at level 1.
func (r *UserRecord) Level() int {
	return r.Game.Points/100 + 1
}
