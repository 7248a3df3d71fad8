package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jacobf001/iceland-db/db/mockdb"
	"github.com/jacobf001/iceland-db/ksi"
	"github.com/jacobf001/iceland-db/model"
	"github.com/jacobf001/iceland-db/testutils"
	"github.com/stretchr/testify/mock"
)

func TestIngestSeason(t *testing.T) {
	fake := testutils.NewFakeKSIServer()
	defer fake.Close()

	ctrl, err := New(clock.New(), ksi.NewForTest(fake.URL()), testDB.DB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	ctx := context.Background()
	summary, err := ctrl.IngestSeason(ctx, 2025, 0)
	if err != nil {
		t.Fatalf("error ingesting season: %v", err)
	}

	if summary.Competitions != 3 {
		t.Errorf("expected 3 competitions, got %d", summary.Competitions)
	}
	if summary.Matches != 6 {
		t.Errorf("expected 6 matches, got %d", summary.Matches)
	}
	if summary.Teams != 11 {
		t.Errorf("expected 11 distinct teams, got %d", summary.Teams)
	}

	// The cup page title should have refined the index classification.
	cup, err := ctrl.GetCompetition(ctx, "40300")
	if err != nil {
		t.Fatalf("error getting competition: %v", err)
	}
	if cup.NameRaw != "Mjólkurbikar kvenna" {
		t.Errorf("unexpected competition name: %q", cup.NameRaw)
	}
	if cup.Tier != 0 || cup.Gender != model.GenderWomen {
		t.Errorf("unexpected classification: tier=%d gender=%s", cup.Tier, cup.Gender)
	}

	matches, err := ctrl.ListMatches(ctx, "40123")
	if err != nil {
		t.Fatalf("error listing matches: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	first := matches[0]
	wantKickoff := time.Date(2025, 5, 7, 19, 15, 0, 0, time.UTC)
	if !first.KickoffUTC.Equal(wantKickoff) {
		t.Errorf("kickoff incorrect, wanted %v, got %v", wantKickoff, first.KickoffUTC)
	}
	if first.HomeTeamRaw != "Valur" || first.AwayTeamRaw != "KR" {
		t.Errorf("unexpected teams: %q vs %q", first.HomeTeamRaw, first.AwayTeamRaw)
	}
	if first.Status != model.StatusPlayed || first.FtHome != 2 || first.FtAway != 1 {
		t.Errorf("unexpected result: %s %d-%d", first.Status, first.FtHome, first.FtAway)
	}
	if first.VenueRaw != "Hlíðarendi" {
		t.Errorf("unexpected venue: %q", first.VenueRaw)
	}

	// Matches without a date sort after dated ones and stay scheduled.
	last := matches[2]
	if !last.KickoffUTC.IsZero() {
		t.Errorf("expected unknown kickoff, got %v", last.KickoffUTC)
	}
	if last.Status != model.StatusScheduled {
		t.Errorf("expected scheduled status, got %s", last.Status)
	}

	// Valur plays in the league and in the cup; both rows must resolve to
	// the same team.
	valur, err := ctrl.GetTeamByName(ctx, "Valur")
	if err != nil {
		t.Fatalf("error getting team: %v", err)
	}
	if first.HomeTeamID != valur.ID {
		t.Errorf("league match home id %d, want %d", first.HomeTeamID, valur.ID)
	}
	cupMatches, err := ctrl.ListMatches(ctx, "40300")
	if err != nil {
		t.Fatalf("error listing cup matches: %v", err)
	}
	if len(cupMatches) != 1 {
		t.Fatalf("expected 1 cup match, got %d", len(cupMatches))
	}
	if cupMatches[0].AwayTeamID != valur.ID {
		t.Errorf("cup match away id %d, want %d", cupMatches[0].AwayTeamID, valur.ID)
	}

	aliases, err := ctrl.ListTeamAliases(ctx, valur.ID)
	if err != nil {
		t.Fatalf("error listing aliases: %v", err)
	}
	if len(aliases) != 1 || aliases[0].Alias != "Valur" {
		t.Errorf("unexpected aliases: %v", aliases)
	}

	// A second run over the same pages must not create anything new.
	again, err := ctrl.IngestSeason(ctx, 2025, 0)
	if err != nil {
		t.Fatalf("error re-ingesting season: %v", err)
	}
	if again.Competitions != summary.Competitions || again.Matches != summary.Matches || again.Teams != summary.Teams {
		t.Errorf("re-ingest changed counts: %+v vs %+v", again, summary)
	}
}

func TestIngestSeasonLimit(t *testing.T) {
	fake := testutils.NewFakeKSIServer()
	defer fake.Close()

	ctrl, err := New(clock.New(), ksi.NewForTest(fake.URL()), testDB.DB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	summary, err := ctrl.IngestSeason(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("error ingesting season: %v", err)
	}
	if summary.Competitions != 1 {
		t.Errorf("expected 1 competition, got %d", summary.Competitions)
	}
	// The lowest motnumer sorts first, which is the top flight page.
	if summary.Matches != 3 {
		t.Errorf("expected 3 matches, got %d", summary.Matches)
	}
}

func TestIngestSeasonEmptyIndex(t *testing.T) {
	fake := testutils.NewFakeKSIServer()
	defer fake.Close()

	ctrl, err := New(clock.New(), ksi.NewForTest(fake.URL()), testDB.DB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	// The fake only knows the 2025 season.
	_, err = ctrl.IngestSeason(context.Background(), 2019, 0)
	if !errors.Is(err, ksi.ErrNoCompetitions) {
		t.Errorf("expected ErrNoCompetitions, got %v", err)
	}
}

func TestIngestSeasonRollsBackOnError(t *testing.T) {
	fake := testutils.NewFakeKSIServer()
	defer fake.Close()

	mockDB := &mockdb.DB{}
	mockTx := &mockdb.IngestTx{}
	mockDB.On("BeginIngest", mock.Anything).Return(mockTx, nil)
	mockTx.On("UpsertCompetition", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	mockTx.On("Rollback", mock.Anything).Return(nil)

	ctrl, err := New(clock.New(), ksi.NewForTest(fake.URL()), mockDB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	if _, err := ctrl.IngestSeason(context.Background(), 2025, 0); err == nil {
		t.Fatal("expected an error, got nil")
	}

	mockTx.AssertCalled(t, "Rollback", mock.Anything)
	mockTx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestIngestSeasonFetchError(t *testing.T) {
	fake := testutils.NewFakeKSIServer()
	fake.Close() // Shut down so every request fails.

	ctrl, err := New(clock.New(), ksi.NewForTest(fake.URL()), testDB.DB)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	if _, err := ctrl.IngestSeason(context.Background(), 2025, 0); err == nil {
		t.Fatal("expected an error, got nil")
	}
}
