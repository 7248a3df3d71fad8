package db

import (
	"context"

	"github.com/jacobf001/iceland-db/model"
)

type DB interface {
	GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error)
	ListCompetitions(ctx context.Context, season int) ([]model.Competition, error)
	ListMatches(ctx context.Context, motnumer string) ([]model.Match, error)

	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	GetTeamByName(ctx context.Context, name string) (*model.Team, error)
	ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error)

	// BeginIngest opens the transaction an ingest run writes through. All
	// upserts of a run share it, so a failure anywhere rolls the whole run
	// back and leaves the store unchanged.
	BeginIngest(ctx context.Context) (IngestTx, error)
}

// IngestTx is the write side of an ingest run. Every operation is an
// idempotent upsert: re-running an unchanged extraction is a no-op apart
// from refreshed timestamps.
type IngestTx interface {
	UpsertCompetition(ctx context.Context, c *model.Competition) error
	UpsertMatch(ctx context.Context, m *model.Match) error
	// GetOrCreateTeam resolves a canonical team name to its id, creating the
	// team on first sighting. The name must be non-empty after trimming.
	GetOrCreateTeam(ctx context.Context, name string) (int32, error)
	// UpsertTeamAlias points a raw spelling at a team, overwriting any
	// earlier target for the same spelling.
	UpsertTeamAlias(ctx context.Context, alias string, teamID int32) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
