package mockdb

import (
	"context"

	"github.com/jacobf001/iceland-db/db"
	"github.com/jacobf001/iceland-db/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (m *DB) GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error) {
	args := m.Called(ctx, motnumer)

	var c *model.Competition
	if args.Get(0) != nil {
		c = args.Get(0).(*model.Competition)
	}
	return c, args.Error(1)
}

func (m *DB) ListCompetitions(ctx context.Context, season int) ([]model.Competition, error) {
	args := m.Called(ctx, season)

	var r []model.Competition
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Competition)
	}
	return r, args.Error(1)
}

func (m *DB) ListMatches(ctx context.Context, motnumer string) ([]model.Match, error) {
	args := m.Called(ctx, motnumer)

	var r []model.Match
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Match)
	}
	return r, args.Error(1)
}

func (m *DB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := m.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (m *DB) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	args := m.Called(ctx, name)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (m *DB) ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error) {
	args := m.Called(ctx, teamID)

	var r []model.TeamAlias
	if args.Get(0) != nil {
		r = args.Get(0).([]model.TeamAlias)
	}
	return r, args.Error(1)
}

func (m *DB) BeginIngest(ctx context.Context) (db.IngestTx, error) {
	args := m.Called(ctx)

	var tx db.IngestTx
	if args.Get(0) != nil {
		tx = args.Get(0).(db.IngestTx)
	}
	return tx, args.Error(1)
}

// IngestTx is a mock of db.IngestTx.
type IngestTx struct {
	mock.Mock
}

func (t *IngestTx) UpsertCompetition(ctx context.Context, c *model.Competition) error {
	args := t.Called(ctx, c)
	return args.Error(0)
}

func (t *IngestTx) UpsertMatch(ctx context.Context, m *model.Match) error {
	args := t.Called(ctx, m)
	return args.Error(0)
}

func (t *IngestTx) GetOrCreateTeam(ctx context.Context, name string) (int32, error) {
	args := t.Called(ctx, name)
	return args.Get(0).(int32), args.Error(1)
}

func (t *IngestTx) UpsertTeamAlias(ctx context.Context, alias string, teamID int32) error {
	args := t.Called(ctx, alias, teamID)
	return args.Error(0)
}

func (t *IngestTx) Commit(ctx context.Context) error {
	args := t.Called(ctx)
	return args.Error(0)
}

func (t *IngestTx) Rollback(ctx context.Context) error {
	args := t.Called(ctx)
	return args.Error(0)
}
