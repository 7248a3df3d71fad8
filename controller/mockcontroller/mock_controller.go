package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/jacobf001/iceland-db/controller"
	"github.com/jacobf001/iceland-db/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) IngestSeason(ctx context.Context, season int, limit int) (*controller.IngestSummary, error) {
	args := c.Called(ctx, season, limit)

	var s *controller.IngestSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*controller.IngestSummary)
	}

	return s, args.Error(1)
}

func (c *C) RunPeriodicIngest(season int, limit int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(season, limit, frequency, shutdown, wg)
}

func (c *C) GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error) {
	args := c.Called(ctx, motnumer)

	var comp *model.Competition
	if args.Get(0) != nil {
		comp = args.Get(0).(*model.Competition)
	}

	return comp, args.Error(1)
}

func (c *C) ListCompetitions(ctx context.Context, season int) ([]model.Competition, error) {
	args := c.Called(ctx, season)

	var res []model.Competition
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Competition)
	}

	return res, args.Error(1)
}

func (c *C) ListMatches(ctx context.Context, motnumer string) ([]model.Match, error) {
	args := c.Called(ctx, motnumer)

	var res []model.Match
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Match)
	}

	return res, args.Error(1)
}

func (c *C) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := c.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}

	return t, args.Error(1)
}

func (c *C) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	args := c.Called(ctx, name)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}

	return t, args.Error(1)
}

func (c *C) ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error) {
	args := c.Called(ctx, teamID)

	var res []model.TeamAlias
	if args.Get(0) != nil {
		res = args.Get(0).([]model.TeamAlias)
	}

	return res, args.Error(1)
}
