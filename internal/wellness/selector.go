package wellness

import (
	"hash/fnv"
	"io"
	"math/rand"
	"time"
)

// DailySeed derives a stable seed from a user id and a calendar day. The
// same pair always hashes to the same seed, so the daily selection never
// shifts within a day.
func DailySeed(userID string, day time.Time) int64 {
	h := fnv.New64a()
	io.WriteString(h, userID)
	io.WriteString(h, "-")
	io.WriteString(h, day.Format(DateLayout))
	return int64(h.Sum64())
}

// SelectDaily samples k templates from the catalog without replacement,
// deterministically for a given (userID, day). k larger than the catalog is
// clamped, never an error. The returned instances carry "<type>-<date>"
// quest ids.
func SelectDaily(userID string, day time.Time, catalog []QuestTemplate, k int) []QuestInstance {
	if k > len(catalog) {
		k = len(catalog)
	}
	if k < 0 {
		k = 0
	}

	rnd := rand.New(rand.NewSource(DailySeed(userID, day)))
	picks := rnd.Perm(len(catalog))[:k]

	instances := make([]QuestInstance, 0, k)
	for _, i := range picks {
		tmpl := catalog[i]
		instances = append(instances, QuestInstance{
			QuestTemplate: tmpl,
			QuestID:       QuestID(tmpl.Type, day),
		})
	}
	return instances
}
