package server

import (
	"net/http"
	"sort"

	"github.com/healingizz/wellquest/internal/wellness"
)

type BadgeInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Subtitle string `json:"subtitle"`
	Earned   bool   `json:"earned"`
}

type ProgressResponse struct {
	Snapshot wellness.Snapshot `json:"snapshot"`
	Level    int               `json:"level"`
	Badges   []BadgeInfo       `json:"badges"`
}

func handleProgress(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		rec, err := app.Recon.Load(r.Context(), sess.UserID, sess.Remote)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		snap := wellness.BuildSnapshot(rec, app.dailyQuests(sess.UserID))
		badges := make([]BadgeInfo, 0, len(app.Rules))
		for _, rule := range app.Rules {
			badges = append(badges, BadgeInfo{
				ID:       rule.ID,
				Title:    rule.Title,
				Icon:     rule.Icon,
				Subtitle: rule.Subtitle,
				Earned:   wellness.HasBadge(rec, rule),
			})
		}

		writeJSON(w, http.StatusOK, ProgressResponse{
			Snapshot: snap,
			Level:    rec.Level(),
			Badges:   badges,
		})
	}
}

type LeaderboardRow struct {
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
	Streak   int    `json:"streak"`
	Badges   int    `json:"badges"`
}

// handleLeaderboard ranks the records in the local store by points. Other
// users' remote-only records are invisible here; the local mirror written
// on load keeps returning players ranked.
func handleLeaderboard(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := app.Recon.Local().All()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		sort.Slice(records, func(i, j int) bool {
			return records[i].Game.Points > records[j].Game.Points
		})
		if len(records) > app.Config.LeaderboardSize {
			records = records[:app.Config.LeaderboardSize]
		}

		rows := make([]LeaderboardRow, 0, len(records))
		for _, rec := range records {
			nickname := rec.Profile.Nickname
			if nickname == "" {
				nickname = rec.UserID
			}
			rows = append(rows, LeaderboardRow{
				Nickname: nickname,
				Points:   rec.Game.Points,
				Streak:   rec.Game.Streak,
				Badges:   len(rec.Game.Badges),
			})
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

type QuoteResponse struct {
	Quote string `json:"quote"`
}

func handleRandomQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, QuoteResponse{Quote: wellness.RandomQuote()})
	}
}
