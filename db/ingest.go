package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jacobf001/iceland-db/model"
)

func (db *postgresDB) BeginIngest(ctx context.Context) (IngestTx, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting ingest transaction: %w", err)
	}
	return &ingestTx{tx: tx, clock: db.clock}, nil
}

type ingestTx struct {
	tx    pgx.Tx
	clock clock.Clock
}

func (t *ingestTx) UpsertCompetition(ctx context.Context, c *model.Competition) error {
	const query = `INSERT INTO competitions (
			motnumer, season, gender, tier, name_raw, group_label, source_url, updated
		) VALUES (
			@motnumer, @season, @gender, @tier, @nameRaw, @groupLabel, @sourceURL, @updated
		)
		ON CONFLICT (motnumer) DO UPDATE SET
			season = excluded.season,
			gender = excluded.gender,
			tier = excluded.tier,
			name_raw = excluded.name_raw,
			group_label = excluded.group_label,
			source_url = excluded.source_url,
			updated = excluded.updated`

	args := pgx.NamedArgs{
		"motnumer": c.Motnumer,
		"season":   c.Season,
		"gender":   string(c.Gender),
		"tier": sql.NullInt32{
			Int32: int32(c.Tier),
			Valid: c.Tier != 0,
		},
		"nameRaw": c.NameRaw,
		"groupLabel": sql.NullString{
			String: c.GroupLabel,
			Valid:  c.GroupLabel != "",
		},
		"sourceURL": c.SourceURL,
		"updated":   timestamptz(t.clock),
	}
	if _, err := t.tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting competition %s: %w", c.Motnumer, err)
	}
	return nil
}

func (t *ingestTx) UpsertMatch(ctx context.Context, m *model.Match) error {
	const query = `INSERT INTO matches (
			match_id, motnumer, kickoff_utc,
			home_team_raw, away_team_raw, home_team_id, away_team_id,
			venue_raw, status, ft_home, ft_away, source_url, last_seen, updated
		) VALUES (
			@matchID, @motnumer, @kickoff,
			@homeRaw, @awayRaw, @homeID, @awayID,
			@venue, @status, @ftHome, @ftAway, @sourceURL, @now, @now
		)
		ON CONFLICT (match_id) DO UPDATE SET
			kickoff_utc = excluded.kickoff_utc,
			home_team_raw = excluded.home_team_raw,
			away_team_raw = excluded.away_team_raw,
			home_team_id = excluded.home_team_id,
			away_team_id = excluded.away_team_id,
			venue_raw = excluded.venue_raw,
			status = excluded.status,
			ft_home = excluded.ft_home,
			ft_away = excluded.ft_away,
			source_url = excluded.source_url,
			last_seen = excluded.last_seen,
			updated = excluded.updated`

	played := m.Status == model.StatusPlayed
	args := pgx.NamedArgs{
		"matchID":  m.ID,
		"motnumer": m.Motnumer,
		"kickoff": pgtype.Timestamptz{
			Time:  m.KickoffUTC,
			Valid: !m.KickoffUTC.IsZero(),
		},
		"homeRaw": m.HomeTeamRaw,
		"awayRaw": m.AwayTeamRaw,
		"homeID": sql.NullInt32{
			Int32: m.HomeTeamID,
			Valid: m.HomeTeamID != 0,
		},
		"awayID": sql.NullInt32{
			Int32: m.AwayTeamID,
			Valid: m.AwayTeamID != 0,
		},
		"venue": sql.NullString{
			String: m.VenueRaw,
			Valid:  m.VenueRaw != "",
		},
		"status": string(m.Status),
		"ftHome": sql.NullInt32{
			Int32: int32(m.FtHome),
			Valid: played,
		},
		"ftAway": sql.NullInt32{
			Int32: int32(m.FtAway),
			Valid: played,
		},
		"sourceURL": m.SourceURL,
		"now":       timestamptz(t.clock),
	}
	if _, err := t.tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting match %s: %w", m.ID, err)
	}
	return nil
}

func (t *ingestTx) GetOrCreateTeam(ctx context.Context, name string) (int32, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrEmptyTeamName
	}

	// The do-nothing-style update makes the insert return the existing row's
	// id on conflict instead of no rows.
	const query = `INSERT INTO teams (name_canonical) VALUES (@name)
		ON CONFLICT (name_canonical) DO UPDATE SET name_canonical = excluded.name_canonical
		RETURNING team_id`

	args := pgx.NamedArgs{
		"name": trimmed,
	}
	var id int32
	if err := t.tx.QueryRow(ctx, query, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("error resolving team '%s': %w", trimmed, err)
	}
	return id, nil
}

func (t *ingestTx) UpsertTeamAlias(ctx context.Context, alias string, teamID int32) error {
	trimmed := strings.TrimSpace(alias)
	if trimmed == "" {
		return nil
	}

	const query = `INSERT INTO team_aliases (alias, team_id) VALUES (@alias, @teamID)
		ON CONFLICT (alias) DO UPDATE SET team_id = excluded.team_id`

	args := pgx.NamedArgs{
		"alias":  trimmed,
		"teamID": teamID,
	}
	if _, err := t.tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting alias '%s': %w", trimmed, err)
	}
	return nil
}

func (t *ingestTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *ingestTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func timestamptz(clock clock.Clock) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
