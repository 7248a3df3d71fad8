package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jacobf001/iceland-db/containers"
	"github.com/jacobf001/iceland-db/db"
	"github.com/jacobf001/iceland-db/model"
)

var (
	BestaDeildKarla = &model.Competition{
		Motnumer:  "40123",
		Season:    2025,
		Gender:    model.GenderMen,
		Tier:      1,
		NameRaw:   "Besta deild karla",
		SourceURL: "https://www.ksi.is/mot/stakt-mot/?motnumer=40123",
	}
	ThridjaDeildKarla = &model.Competition{
		Motnumer:  "40260",
		Season:    2025,
		Gender:    model.GenderMen,
		Tier:      4,
		NameRaw:   "3. deild karla",
		SourceURL: "https://www.ksi.is/mot/stakt-mot/?motnumer=40260",
	}
	MjolkurbikarKvenna = &model.Competition{
		Motnumer:  "40300",
		Season:    2025,
		Gender:    model.GenderWomen,
		NameRaw:   "Mjólkurbikar kvenna",
		SourceURL: "https://www.ksi.is/mot/stakt-mot/?motnumer=40300",
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestCompetitions(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

func InsertTestCompetitions(d db.DB) error {
	comps := []*model.Competition{
		BestaDeildKarla,
		ThridjaDeildKarla,
		MjolkurbikarKvenna,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := d.BeginIngest(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range comps {
		if err := tx.UpsertCompetition(ctx, c); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
