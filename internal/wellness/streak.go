package wellness

import "time"

// DateOnly truncates a time to day granularity in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastCheckinDay parses the stored check-in date. Older documents stored a
// full midnight timestamp, newer ones a plain date; both are accepted. An
// unparseable value reads as absent.
func lastCheckinDay(rec *UserRecord) (time.Time, bool) {
	raw := rec.Game.LastCheckinDate
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return DateOnly(ts), true
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return DateOnly(ts), true
	}
	return time.Time{}, false
}

// CheckIn advances the streak state machine for a check-in on the given
// day. Branches:
//
//	no prior check-in          -> streak = 1
//	last check-in is today     -> unchanged (idempotent)
//	last check-in is yesterday -> streak + 1
//	anything else              -> streak = 1
//
// The check-in date is always rewritten to today, at day granularity.
func CheckIn(rec *UserRecord, today time.Time) {
	today = DateOnly(today)
	last, ok := lastCheckinDay(rec)
	switch {
	case !ok:
		rec.Game.Streak = 1
	case last.Equal(today):
		// Same-day re-check-in, streak untouched.
	case DateOnly(last.AddDate(0, 0, 1)).Equal(today):
		rec.Game.Streak++
	default:
		rec.Game.Streak = 1
	}
	rec.Game.LastCheckinDate = today.Format(DateLayout)
}
