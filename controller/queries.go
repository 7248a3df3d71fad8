package controller

import (
	"context"

	"github.com/jacobf001/iceland-db/model"
)

func (c *controller) GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error) {
	return c.db.GetCompetition(ctx, motnumer)
}

func (c *controller) ListCompetitions(ctx context.Context, season int) ([]model.Competition, error) {
	return c.db.ListCompetitions(ctx, season)
}

func (c *controller) ListMatches(ctx context.Context, motnumer string) ([]model.Match, error) {
	return c.db.ListMatches(ctx, motnumer)
}

func (c *controller) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	return c.db.GetTeam(ctx, id)
}

func (c *controller) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	return c.db.GetTeamByName(ctx, name)
}

func (c *controller) ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error) {
	return c.db.ListTeamAliases(ctx, teamID)
}
