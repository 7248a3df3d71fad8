package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jacobf001/iceland-db/model"
)

var (
	ErrCompetitionNotFound error = errors.New("competition not found")
	ErrTeamNotFound        error = errors.New("team not found")
	ErrEmptyTeamName       error = errors.New("team name is empty")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const competitionColumns = `motnumer, season, gender, tier, name_raw, group_label, source_url, created, updated`

func (db *postgresDB) GetCompetition(ctx context.Context, motnumer string) (*model.Competition, error) {
	query := fmt.Sprintf(`SELECT %s FROM competitions WHERE motnumer=@motnumer`, competitionColumns)

	args := pgx.NamedArgs{
		"motnumer": motnumer,
	}
	row := db.pool.QueryRow(ctx, query, args)
	c, err := scanCompetition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("error scanning competition %s: %w", motnumer, err)
	}
	return c, nil
}

func (db *postgresDB) ListCompetitions(ctx context.Context, season int) ([]model.Competition, error) {
	query := fmt.Sprintf(`SELECT %s FROM competitions WHERE season=@season ORDER BY tier NULLS LAST, name_raw`, competitionColumns)

	args := pgx.NamedArgs{
		"season": season,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing competitions: %w", err)
	}
	defer rows.Close()

	results := make([]model.Competition, 0, 16)
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning competition row: %w", err)
		}
		results = append(results, *c)
	}
	return results, rows.Err()
}

func (db *postgresDB) ListMatches(ctx context.Context, motnumer string) ([]model.Match, error) {
	const query = `SELECT match_id, motnumer, kickoff_utc, home_team_raw, away_team_raw,
					home_team_id, away_team_id, venue_raw, status, ft_home, ft_away,
					source_url, created, updated
				FROM matches WHERE motnumer=@motnumer
				ORDER BY kickoff_utc NULLS LAST, match_id`

	args := pgx.NamedArgs{
		"motnumer": motnumer,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	results := make([]model.Match, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match row: %w", err)
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	const query = `SELECT team_id, name_canonical, created FROM teams WHERE team_id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	return db.getTeam(ctx, query, args)
}

func (db *postgresDB) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	const query = `SELECT team_id, name_canonical, created FROM teams WHERE name_canonical=@name`

	args := pgx.NamedArgs{
		"name": strings.TrimSpace(name),
	}
	return db.getTeam(ctx, query, args)
}

func (db *postgresDB) getTeam(ctx context.Context, query string, args pgx.NamedArgs) (*model.Team, error) {
	var t model.Team
	var created pgtype.Timestamptz
	err := db.pool.QueryRow(ctx, query, args).Scan(&t.ID, &t.NameCanonical, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team: %w", err)
	}
	t.Created = created.Time
	return &t, nil
}

func (db *postgresDB) ListTeamAliases(ctx context.Context, teamID int32) ([]model.TeamAlias, error) {
	const query = `SELECT alias, team_id FROM team_aliases WHERE team_id=@id ORDER BY alias`

	args := pgx.NamedArgs{
		"id": teamID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing team aliases: %w", err)
	}
	defer rows.Close()

	results := make([]model.TeamAlias, 0, 4)
	for rows.Next() {
		var a model.TeamAlias
		if err := rows.Scan(&a.Alias, &a.TeamID); err != nil {
			return nil, fmt.Errorf("error scanning team alias: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func scanCompetition(row pgx.Row) (*model.Competition, error) {
	var c model.Competition
	var gender string
	var tier sql.NullInt32
	var groupLabel sql.NullString
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&c.Motnumer,
		&c.Season,
		&gender,
		&tier,
		&c.NameRaw,
		&groupLabel,
		&c.SourceURL,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}

	c.Gender = model.Gender(gender)
	if tier.Valid {
		c.Tier = int(tier.Int32)
	}
	c.GroupLabel = groupLabel.String
	c.Created = created.Time
	c.Updated = updated.Time
	return &c, nil
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var m model.Match
	var kickoff pgtype.Timestamptz
	var homeID, awayID, ftHome, ftAway sql.NullInt32
	var venue sql.NullString
	var status string
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&m.ID,
		&m.Motnumer,
		&kickoff,
		&m.HomeTeamRaw,
		&m.AwayTeamRaw,
		&homeID,
		&awayID,
		&venue,
		&status,
		&ftHome,
		&ftAway,
		&m.SourceURL,
		&created,
		&updated)
	if err != nil {
		return nil, err
	}

	m.KickoffUTC = kickoff.Time
	m.HomeTeamID = homeID.Int32
	m.AwayTeamID = awayID.Int32
	m.VenueRaw = venue.String
	m.Status = model.MatchStatus(status)
	m.FtHome = int(ftHome.Int32)
	m.FtAway = int(ftAway.Int32)
	m.Created = created.Time
	m.Updated = updated.Time
	return &m, nil
}
