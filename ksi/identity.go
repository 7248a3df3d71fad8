package ksi

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jacobf001/iceland-db/model"
)

// StableMatchID derives a deterministic identifier for a match that has no
// native identifier in the markup. The hash covers the competition key, the
// kickoff instant and both team names; the same inputs always produce the
// same identifier, which is what makes re-ingestion safe. If the site later
// changes the kickoff or a team spelling for the same real match, the
// identity breaks and the match shows up as new. That is an accepted
// limitation of hash-derived identity.
func StableMatchID(motnumer string, kickoff time.Time, home, away string) string {
	kickoffISO := ""
	if !kickoff.IsZero() {
		kickoffISO = kickoff.UTC().Format(time.RFC3339)
	}
	raw := strings.Join([]string{
		motnumer,
		kickoffISO,
		strings.ToLower(strings.TrimSpace(home)),
		strings.ToLower(strings.TrimSpace(away)),
	}, "|")

	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// DedupMatches collapses a candidate list to one record per match ID. When a
// page renders the same row twice, the later rendering usually carries the
// more complete data, so the last-seen record wins. Output keeps the
// first-seen position of every ID.
func DedupMatches(in []model.Match) []model.Match {
	if len(in) == 0 {
		return in
	}

	out := make([]model.Match, 0, len(in))
	index := make(map[string]int, len(in))
	for _, m := range in {
		if i, seen := index[m.ID]; seen {
			out[i] = m
			continue
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	return out
}
