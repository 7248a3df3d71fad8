package controller

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jacobf001/iceland-db/db"
	"github.com/jacobf001/iceland-db/ksi"
	"github.com/jacobf001/iceland-db/model"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Fetch the competition index for a season, then each competition page,
	// and upsert everything in a single transaction. When limit > 0 only the
	// first limit competitions (sorted by motnumer) are ingested.
	// Returns a summary of what was written.
	IngestSeason(ctx context.Context, season int, limit int) (*IngestSummary, error)
	RunPeriodicIngest(season int, limit int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error)
	ListCompetitions(ctx context.Context, season int) ([]model.Competition, error)
	ListMatches(ctx context.Context, motnumer string) ([]model.Match, error)
	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	GetTeamByName(ctx context.Context, name string) (*model.Team, error)
	ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error)
}

// IngestSummary reports the outcome of a single ingest run.
type IngestSummary struct {
	Season       int           `json:"season"`
	Competitions int           `json:"competitions"`
	Matches      int           `json:"matches"`
	Teams        int           `json:"teams"`
	Elapsed      time.Duration `json:"elapsed"`
}

type controller struct {
	clock clock.Clock
	ksi   ksi.Client
	db    db.DB
}

func New(clock clock.Clock, ksi ksi.Client, db db.DB) (C, error) {
	c := &controller{
		clock: clock,
		ksi:   ksi,
		db:    db,
	}
	return c, nil
}
