package controller

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jacobf001/iceland-db/db"
	"github.com/jacobf001/iceland-db/ksi"
	"github.com/jacobf001/iceland-db/model"
)

func (c *controller) IngestSeason(ctx context.Context, season int, limit int) (*IngestSummary, error) {
	start := c.clock.Now()
	log.Printf("ingest for season %d starting at %v", season, start.Format(time.DateTime))

	indexHTML, err := c.ksi.FetchIndex(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("error fetching competition index: %w", err)
	}

	comps, err := ksi.ParseIndex(indexHTML, season, c.ksi.BaseURL())
	if err != nil {
		return nil, err
	}

	motnums := make([]string, 0, len(comps))
	for m := range comps {
		motnums = append(motnums, m)
	}
	sort.Strings(motnums)
	if limit > 0 && len(motnums) > limit {
		motnums = motnums[:limit]
	}

	tx, err := c.db.BeginIngest(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	summary := &IngestSummary{Season: season}
	teams := make(map[int32]bool)

	for _, motnumer := range motnums {
		comp := comps[motnumer]

		pageHTML, err := c.ksi.FetchCompetition(ctx, motnumer)
		if err != nil {
			return nil, fmt.Errorf("error fetching competition %s: %w", motnumer, err)
		}
		refineCompetition(&comp, pageHTML)

		if err := tx.UpsertCompetition(ctx, &comp); err != nil {
			return nil, fmt.Errorf("error saving competition %s: %w", motnumer, err)
		}
		summary.Competitions++

		matches, err := ksi.ParseCompetition(pageHTML, motnumer, ksi.CompetitionURL(c.ksi.BaseURL(), motnumer))
		if err != nil {
			return nil, fmt.Errorf("error parsing competition %s: %w", motnumer, err)
		}

		for i := range matches {
			m := &matches[i]
			if err := resolveTeams(ctx, tx, m); err != nil {
				return nil, fmt.Errorf("error resolving teams for match %s: %w", m.ID, err)
			}
			if m.HomeTeamID != 0 {
				teams[m.HomeTeamID] = true
			}
			if m.AwayTeamID != 0 {
				teams[m.AwayTeamID] = true
			}
			if err := tx.UpsertMatch(ctx, m); err != nil {
				return nil, fmt.Errorf("error saving match %s: %w", m.ID, err)
			}
			summary.Matches++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing ingest for season %d: %w", season, err)
	}

	summary.Teams = len(teams)
	summary.Elapsed = c.clock.Now().Sub(start)
	log.Printf("ingest for season %d finished, %d competitions, %d matches, took %v",
		season, summary.Competitions, summary.Matches, summary.Elapsed)
	return summary, nil
}

// refineCompetition replaces the index link text with the competition page's
// own title when a plausible one is found, then re-derives the fields that
// depend on it. The page title carries signals (gender, tier, group) that
// index rows often abbreviate away.
func refineCompetition(comp *model.Competition, pageHTML string) {
	title := ksi.SelectTitle(pageHTML)
	if title == model.UnknownCompetition {
		return
	}
	comp.NameRaw = title
	comp.Gender = model.ParseGender(title)
	comp.Tier = ksi.InferTier(title)
	comp.GroupLabel = ksi.GroupLabel(title)
}

// resolveTeams maps the raw home and away names to team ids, creating teams
// and recording the raw spelling as an alias. Unparseable names leave the
// id at zero rather than failing the run.
func resolveTeams(ctx context.Context, tx db.IngestTx, m *model.Match) error {
	sides := []struct {
		raw string
		id  *int32
	}{
		{m.HomeTeamRaw, &m.HomeTeamID},
		{m.AwayTeamRaw, &m.AwayTeamID},
	}
	for _, s := range sides {
		name := strings.TrimSpace(s.raw)
		if name == "" {
			continue
		}
		id, err := tx.GetOrCreateTeam(ctx, name)
		if err != nil {
			return err
		}
		if err := tx.UpsertTeamAlias(ctx, name, id); err != nil {
			return err
		}
		*s.id = id
	}
	return nil
}

func (c *controller) RunPeriodicIngest(season int, limit int, frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			if _, err := c.IngestSeason(ctx, season, limit); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}
