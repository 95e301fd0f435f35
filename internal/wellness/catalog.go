package wellness

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ActivityType tags a catalog entry and every completion derived from it.
type ActivityType string

const (
	ActivityBreathing   ActivityType = "breathing"
	ActivityGratitude   ActivityType = "gratitude"
	ActivityReframe     ActivityType = "reframe"
	ActivityMindfulWalk ActivityType = "mindful_walk"
	ActivityKindAct     ActivityType = "kind_act"
	ActivityMiniMindful ActivityType = "mini_mindful"
)

// QuestTemplate is a static catalog entry.
type QuestTemplate struct {
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DurationSec int          `json:"duration_sec,omitempty"`
	Points      int          `json:"points,omitempty"`
}

// QuestInstance is a template materialized for one user-day.
type QuestInstance struct {
	QuestTemplate
	QuestID string `json:"quest_id"`
}

// QuestID builds the fixed "<type>-<ISO date>" id for a template on a day.
func QuestID(t ActivityType, day time.Time) string {
	return string(t) + "-" + day.Format(DateLayout)
}

// DefaultCatalog returns the built-in activity catalog. Point values and
// durations here are defaults; deployments with their own reward schedule
// replace the whole catalog via LoadCatalog.
func DefaultCatalog() []QuestTemplate {
	return []QuestTemplate{
		{
			Type:        ActivityBreathing,
			Title:       "4-7-8 breathing (1 minute)",
			Description: "Breathe in for 4s, hold for 7s, breathe out for 8s. Repeat.",
			Points:      20,
			DurationSec: 60,
		},
		{
			Type:        ActivityGratitude,
			Title:       "Gratitude journal (3 things)",
			Description: "Write down 3 things you are grateful for today, the more specific the better.",
			Points:      25,
		},
		{
			Type:        ActivityReframe,
			Title:       "Thought reframing (CBT)",
			Description: "Pick one negative thought, weigh the evidence for and against it, then write a balanced version.",
			Points:      30,
		},
		{
			Type:        ActivityMindfulWalk,
			Title:       "Mindful walk (5 minutes)",
			Description: "Walk slowly. Notice your feet touching the ground, your breath, the sounds around you.",
			Points:      20,
		},
		{
			Type:        ActivityKindAct,
			Title:       "Random act of kindness",
			Description: "Do one small kind thing: a sincere compliment, a favor, a thank-you message.",
			Points:      20,
		},
		{
			Type:        ActivityMiniMindful,
			Title:       "Mini mindfulness (30s)",
			Description: "Close your eyes and notice how you feel for 30 seconds. No phone.",
			Points:      10,
			DurationSec: 30,
		},
	}
}

// LoadCatalog reads a replacement catalog from a JSON file.
func LoadCatalog(path string) ([]QuestTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var catalog []QuestTemplate
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	for i, tmpl := range catalog {
		if _, err := ActivityFor(tmpl.Type); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
	}
	return catalog, nil
}
