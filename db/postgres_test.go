package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jacobf001/iceland-db/containers"
	"github.com/jacobf001/iceland-db/model"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate a fresh motnumer for each test. To help keep them separated.
	motCtr = int32(50000)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func nextMotnumer() string {
	return fmt.Sprintf("%d", atomic.AddInt32(&motCtr, 1))
}

func getCompetition(motnumer string) *model.Competition {
	return &model.Competition{
		Motnumer:   motnumer,
		Season:     2025,
		Gender:     model.GenderMen,
		Tier:       1,
		NameRaw:    "Besta deild karla",
		GroupLabel: "",
		SourceURL:  fmt.Sprintf("https://www.ksi.is/mot/stakt-mot/?motnumer=%s", motnumer),
	}
}

// ingest runs fn inside a committed ingest transaction.
func ingest(t *testing.T, fn func(tx IngestTx) error) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.BeginIngest(ctx)
	assertFatalf(t, err == nil, "error starting ingest: %v", err)
	defer tx.Rollback(ctx)

	err = fn(tx)
	assertFatalf(t, err == nil, "error during ingest: %v", err)

	err = tx.Commit(ctx)
	assertFatalf(t, err == nil, "error committing ingest: %v", err)
}

func TestCompetition_saveAndLoad(t *testing.T) {
	ctx := context.Background()
	c := getCompetition(nextMotnumer())

	ingest(t, func(tx IngestTx) error {
		return tx.UpsertCompetition(ctx, c)
	})

	res, err := testDB.GetCompetition(ctx, c.Motnumer)
	assertFatalf(t, err == nil, "error retrieving competition: %v", err)

	assertEquals(t, "Motnumer", c.Motnumer, res.Motnumer)
	assertEquals(t, "Season", c.Season, res.Season)
	assertEquals(t, "Gender", c.Gender, res.Gender)
	assertEquals(t, "Tier", c.Tier, res.Tier)
	assertEquals(t, "NameRaw", c.NameRaw, res.NameRaw)
	assertEquals(t, "GroupLabel", c.GroupLabel, res.GroupLabel)
	assertEquals(t, "SourceURL", c.SourceURL, res.SourceURL)
	assertTrue(t, "Created set", !res.Created.IsZero())
	assertTrue(t, "Updated set", !res.Updated.IsZero())

	// Re-ingest with refined fields and make sure they overwrite.
	c.NameRaw = "Besta deild karla - A riðill"
	c.GroupLabel = "A riðill"
	ingest(t, func(tx IngestTx) error {
		return tx.UpsertCompetition(ctx, c)
	})

	res, err = testDB.GetCompetition(ctx, c.Motnumer)
	assertFatalf(t, err == nil, "error retrieving competition: %v", err)
	assertEquals(t, "NameRaw", c.NameRaw, res.NameRaw)
	assertEquals(t, "GroupLabel", c.GroupLabel, res.GroupLabel)
}

func TestCompetition_notFound(t *testing.T) {
	_, err := testDB.GetCompetition(context.Background(), "1")
	if !errors.Is(err, ErrCompetitionNotFound) {
		t.Errorf("expected ErrCompetitionNotFound, got %v", err)
	}
}

func TestListCompetitions_order(t *testing.T) {
	ctx := context.Background()

	// A season no other test writes into, so the list is fully known.
	const season = 2031
	cup := getCompetition(nextMotnumer())
	cup.Season = season
	cup.Tier = 0
	cup.NameRaw = "Mjólkurbikar karla"

	second := getCompetition(nextMotnumer())
	second.Season = season
	second.Tier = 2
	second.NameRaw = "Lengjudeild karla"

	top := getCompetition(nextMotnumer())
	top.Season = season
	top.Tier = 1

	ingest(t, func(tx IngestTx) error {
		for _, c := range []*model.Competition{cup, second, top} {
			if err := tx.UpsertCompetition(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})

	res, err := testDB.ListCompetitions(ctx, season)
	assertFatalf(t, err == nil, "error listing competitions: %v", err)
	assertFatalf(t, len(res) == 3, "expected 3 competitions, got %d", len(res))

	// Ranked divisions first by tier, unranked cups last.
	assertEquals(t, "first", top.Motnumer, res[0].Motnumer)
	assertEquals(t, "second", second.Motnumer, res[1].Motnumer)
	assertEquals(t, "third", cup.Motnumer, res[2].Motnumer)
}

func TestMatch_saveAndLoad(t *testing.T) {
	ctx := context.Background()
	c := getCompetition(nextMotnumer())

	kickoff := time.Date(2025, 5, 7, 19, 15, 0, 0, time.UTC)
	played := &model.Match{
		ID:          "98765",
		Motnumer:    c.Motnumer,
		KickoffUTC:  kickoff,
		HomeTeamRaw: "Valur",
		AwayTeamRaw: "KR",
		VenueRaw:    "Hlíðarendi",
		Status:      model.StatusPlayed,
		FtHome:      2,
		FtAway:      1,
		SourceURL:   c.SourceURL,
	}
	scheduled := &model.Match{
		ID:          "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d",
		Motnumer:    c.Motnumer,
		HomeTeamRaw: "Fram",
		AwayTeamRaw: "Víkingur R.",
		Status:      model.StatusScheduled,
		SourceURL:   c.SourceURL,
	}

	ingest(t, func(tx IngestTx) error {
		if err := tx.UpsertCompetition(ctx, c); err != nil {
			return err
		}
		for _, m := range []*model.Match{played, scheduled} {
			homeID, err := tx.GetOrCreateTeam(ctx, m.HomeTeamRaw)
			if err != nil {
				return err
			}
			awayID, err := tx.GetOrCreateTeam(ctx, m.AwayTeamRaw)
			if err != nil {
				return err
			}
			m.HomeTeamID = homeID
			m.AwayTeamID = awayID
			if err := tx.UpsertMatch(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})

	res, err := testDB.ListMatches(ctx, c.Motnumer)
	assertFatalf(t, err == nil, "error listing matches: %v", err)
	assertFatalf(t, len(res) == 2, "expected 2 matches, got %d", len(res))

	// Dated matches sort before undated ones.
	got := res[0]
	assertEquals(t, "ID", played.ID, got.ID)
	assertTrue(t, "KickoffUTC", got.KickoffUTC.Equal(kickoff))
	assertEquals(t, "HomeTeamRaw", played.HomeTeamRaw, got.HomeTeamRaw)
	assertEquals(t, "AwayTeamRaw", played.AwayTeamRaw, got.AwayTeamRaw)
	assertEquals(t, "HomeTeamID", played.HomeTeamID, got.HomeTeamID)
	assertEquals(t, "AwayTeamID", played.AwayTeamID, got.AwayTeamID)
	assertEquals(t, "VenueRaw", played.VenueRaw, got.VenueRaw)
	assertEquals(t, "Status", model.StatusPlayed, got.Status)
	assertEquals(t, "FtHome", 2, got.FtHome)
	assertEquals(t, "FtAway", 1, got.FtAway)

	got = res[1]
	assertEquals(t, "ID", scheduled.ID, got.ID)
	assertTrue(t, "KickoffUTC zero", got.KickoffUTC.IsZero())
	assertEquals(t, "Status", model.StatusScheduled, got.Status)
	assertEquals(t, "FtHome", 0, got.FtHome)
	assertEquals(t, "FtAway", 0, got.FtAway)

	// Flip the scheduled match to a result, the way a later ingest run would.
	scheduled.KickoffUTC = kickoff.Add(72 * time.Hour)
	scheduled.Status = model.StatusPlayed
	scheduled.FtHome = 3
	scheduled.FtAway = 3
	ingest(t, func(tx IngestTx) error {
		return tx.UpsertMatch(ctx, scheduled)
	})

	res, err = testDB.ListMatches(ctx, c.Motnumer)
	assertFatalf(t, err == nil, "error listing matches: %v", err)
	assertFatalf(t, len(res) == 2, "expected 2 matches, got %d", len(res))
	assertEquals(t, "Status", model.StatusPlayed, res[1].Status)
	assertEquals(t, "FtHome", 3, res[1].FtHome)
	assertEquals(t, "FtAway", 3, res[1].FtAway)
}

func TestGetOrCreateTeam(t *testing.T) {
	ctx := context.Background()

	var first, again, other int32
	ingest(t, func(tx IngestTx) error {
		var err error
		if first, err = tx.GetOrCreateTeam(ctx, "Höttur"); err != nil {
			return err
		}
		if again, err = tx.GetOrCreateTeam(ctx, "  Höttur "); err != nil {
			return err
		}
		// Case differences are a different team on purpose.
		other, err = tx.GetOrCreateTeam(ctx, "HÖTTUR")
		return err
	})

	assertEquals(t, "same spelling", first, again)
	assertTrue(t, "different case", first != other)

	team, err := testDB.GetTeam(ctx, first)
	assertFatalf(t, err == nil, "error getting team: %v", err)
	assertEquals(t, "NameCanonical", "Höttur", team.NameCanonical)

	byName, err := testDB.GetTeamByName(ctx, "Höttur")
	assertFatalf(t, err == nil, "error getting team by name: %v", err)
	assertEquals(t, "ID", first, byName.ID)
}

func TestGetOrCreateTeam_emptyName(t *testing.T) {
	ctx := context.Background()

	tx, err := testDB.BeginIngest(ctx)
	assertFatalf(t, err == nil, "error starting ingest: %v", err)
	defer tx.Rollback(ctx)

	if _, err := tx.GetOrCreateTeam(ctx, "   "); !errors.Is(err, ErrEmptyTeamName) {
		t.Errorf("expected ErrEmptyTeamName, got %v", err)
	}
}

func TestTeam_notFound(t *testing.T) {
	if _, err := testDB.GetTeam(context.Background(), -1); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
	if _, err := testDB.GetTeamByName(context.Background(), "no such team"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestUpsertTeamAlias_lastWriteWins(t *testing.T) {
	ctx := context.Background()

	var oldID, newID int32
	ingest(t, func(tx IngestTx) error {
		var err error
		if oldID, err = tx.GetOrCreateTeam(ctx, "Vikingur R."); err != nil {
			return err
		}
		if newID, err = tx.GetOrCreateTeam(ctx, "Víkingur Reykjavík"); err != nil {
			return err
		}
		if err = tx.UpsertTeamAlias(ctx, "Víkingur R.", oldID); err != nil {
			return err
		}
		return tx.UpsertTeamAlias(ctx, "Víkingur R.", newID)
	})

	aliases, err := testDB.ListTeamAliases(ctx, newID)
	assertFatalf(t, err == nil, "error listing aliases: %v", err)
	assertFatalf(t, len(aliases) == 1, "expected 1 alias, got %d", len(aliases))
	assertEquals(t, "Alias", "Víkingur R.", aliases[0].Alias)

	old, err := testDB.ListTeamAliases(ctx, oldID)
	assertFatalf(t, err == nil, "error listing aliases: %v", err)
	assertEquals(t, "old alias count", 0, len(old))
}

func TestRollback_leavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	c := getCompetition(nextMotnumer())

	tx, err := testDB.BeginIngest(ctx)
	assertFatalf(t, err == nil, "error starting ingest: %v", err)

	err = tx.UpsertCompetition(ctx, c)
	assertFatalf(t, err == nil, "error upserting competition: %v", err)

	err = tx.Rollback(ctx)
	assertFatalf(t, err == nil, "error rolling back: %v", err)

	if _, err := testDB.GetCompetition(ctx, c.Motnumer); !errors.Is(err, ErrCompetitionNotFound) {
		t.Errorf("expected ErrCompetitionNotFound after rollback, got %v", err)
	}
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	t.Helper()
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	t.Helper()
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
