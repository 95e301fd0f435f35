package wellness

import (
	"strings"
	"unicode"
)

// BadgeRule grants a one-time badge when its predicate holds. Predicates
// are pure functions of the snapshot and independent of each other, so
// evaluation order only affects the order titles get appended in.
type BadgeRule struct {
	ID        string
	Title     string
	Icon      string
	Subtitle  string
	Predicate func(Snapshot) bool
}

// DefaultBadgeRules is the fixed declarative rule list.
func DefaultBadgeRules() []BadgeRule {
	return []BadgeRule{
		{
			ID: "starter", Title: "Getting Started", Icon: "🌱",
			Subtitle:  "Earn 50 points",
			Predicate: func(s Snapshot) bool { return s.Points >= 50 },
		},
		{
			ID: "inner_explorer", Title: "Inner Explorer", Icon: "🧭",
			Subtitle:  "Earn 150 points",
			Predicate: func(s Snapshot) bool { return s.Points >= 150 },
		},
		{
			ID: "streak_3", Title: "3-Day Streak", Icon: "🔥",
			Subtitle:  "Check in 3 days in a row",
			Predicate: func(s Snapshot) bool { return s.Streak >= 3 },
		},
		{
			ID: "streak_7", Title: "7-Day Streak", Icon: "🔥",
			Subtitle:  "Check in 7 days in a row",
			Predicate: func(s Snapshot) bool { return s.Streak >= 7 },
		},
		{
			ID: "journal_keeper", Title: "Journal Keeper", Icon: "📔",
			Subtitle:  "Complete 5 gratitude activities",
			Predicate: func(s Snapshot) bool { return s.Count(ActivityGratitude) >= 5 },
		},
		{
			ID: "patient_one", Title: "Patient One", Icon: "🧘",
			Subtitle:  "Complete 10 breathing sessions",
			Predicate: func(s Snapshot) bool { return s.Count(ActivityBreathing) >= 10 },
		},
		{
			ID: "kind_soul", Title: "Kind Soul", Icon: "💛",
			Subtitle:  "Complete 5 acts of kindness",
			Predicate: func(s Snapshot) bool { return s.Count(ActivityKindAct) >= 5 },
		},
		{
			ID: "perfect_day", Title: "Perfect Day", Icon: "⭐",
			Subtitle:  "Finish every activity in one day",
			Predicate: func(s Snapshot) bool { return s.AllQuestsDoneToday },
		},
	}
}

// normalizeBadgeTitle strips leading decorative runes (emoji prefixes from
// older schema versions) and surrounding whitespace so cosmetic differences
// never cause a duplicate grant.
func normalizeBadgeTitle(title string) string {
	trimmed := strings.TrimLeftFunc(title, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.TrimSpace(trimmed)
}

// HasBadge reports whether a rule's badge was already granted. Membership
// is tracked by rule id; records written before badge_ids existed fall back
// to normalized-title comparison.
func HasBadge(rec *UserRecord, rule BadgeRule) bool {
	for _, id := range rec.Game.BadgeIDs {
		if id == rule.ID {
			return true
		}
	}
	want := normalizeBadgeTitle(rule.Title)
	for _, title := range rec.Game.Badges {
		if normalizeBadgeTitle(title) == want {
			return true
		}
	}
	return false
}

// EvaluateBadges grants every rule whose predicate holds and which was not
// granted before, appending titles in rule-declaration order. Badges are
// never revoked; re-running with an unchanged snapshot grants nothing.
// The newly granted rules are returned for notification.
func EvaluateBadges(rec *UserRecord, rules []BadgeRule, snap Snapshot) []BadgeRule {
	var granted []BadgeRule
	for _, rule := range rules {
		if !rule.Predicate(snap) || HasBadge(rec, rule) {
			continue
		}
		rec.Game.Badges = append(rec.Game.Badges, rule.Title)
		rec.Game.BadgeIDs = append(rec.Game.BadgeIDs, rule.ID)
		granted = append(granted, rule)
	}
	return granted
}
