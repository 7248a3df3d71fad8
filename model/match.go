package model

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusPlayed    MatchStatus = "played"
)

// Match is a single fixture or result. ID is either a native identifier
// recovered from page markup, which is stable across re-ingestion, or a
// derived content hash when the markup carries none.
type Match struct {
	ID          string
	Motnumer    string
	KickoffUTC  time.Time // zero means the kickoff was absent or unparseable
	HomeTeamRaw string
	AwayTeamRaw string
	HomeTeamID  int32 // 0 until resolved against the teams table
	AwayTeamID  int32
	VenueRaw    string
	Status      MatchStatus
	// FtHome and FtAway only carry meaning when Status is StatusPlayed.
	FtHome    int
	FtAway    int
	SourceURL string
	Created   time.Time
	Updated   time.Time
}

func (m *Match) FormattedKickoff() string {
	if m.KickoffUTC.IsZero() {
		return "TBD"
	}
	return m.KickoffUTC.Format(time.DateTime)
}

func (m *Match) FormattedResult() string {
	if m.Status != StatusPlayed {
		return "-"
	}
	return fmt.Sprintf("%d - %d", m.FtHome, m.FtAway)
}
