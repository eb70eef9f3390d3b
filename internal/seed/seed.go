package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/repositories"
	"github.com/yigit/bandroster/internal/db"
)

// Catalog is the instrument catalog every installation starts with.
var Catalog = []models.InstrumentType{
	{TypeName: "PICCOLO", Section: models.SectionWoodwind},
	{TypeName: "FLUTE", Section: models.SectionWoodwind},
	{TypeName: "CLARINET", Section: models.SectionWoodwind},
	{TypeName: "ALTO SAXOPHONE", Section: models.SectionWoodwind},
	{TypeName: "TENOR SAXOPHONE", Section: models.SectionWoodwind},
	{TypeName: "BARITONE SAXOPHONE", Section: models.SectionWoodwind},
	{TypeName: "TRUMPET", Section: models.SectionBrass},
	{TypeName: "MELLOPHONE", Section: models.SectionBrass},
	{TypeName: "TROMBONE", Section: models.SectionBrass},
	{TypeName: "EUPHONIUM / BARITONE", Section: models.SectionBrass},
	{TypeName: "SOUSAPHONE", Section: models.SectionBrass},
	{TypeName: "SNARE DRUM", Section: models.SectionPercussion},
	{TypeName: "TENOR DRUMS", Section: models.SectionPercussion},
	{TypeName: "BASS DRUM", Section: models.SectionPercussion},
	{TypeName: "CYMBALS", Section: models.SectionPercussion},
}

type sampleStudent struct {
	student    models.Student
	compliance models.Compliance
}

type sampleUnit struct {
	spec   func(ctx context.Context, repos *repositories.Repositories) (models.UnitSpec, error)
	notes  string
	holder int64
}

func student(id int64, first, last, class string, section models.Section, role, shirt, shoe string, active bool) models.Student {
	return models.Student{
		StudentID:      id,
		FirstName:      first,
		LastName:       last,
		Classification: class,
		Section:        section,
		PrimaryRole:    &role,
		ShirtSize:      &shirt,
		ShoeSize:       &shoe,
		Active:         active,
	}
}

func compliance(id int64, hours int, gpa float64, paid bool) models.Compliance {
	return models.Compliance{StudentID: id, CreditHours: hours, GPA: gpa, DuesPaid: paid}
}

var sampleStudents = []sampleStudent{
	{student(300819037, "Jordan", "Reed", "Freshman", models.SectionWoodwind, "CLARINET", "M", "9", true), compliance(300819037, 14, 3.20, true)},
	{student(300612467, "Ava", "Lopez", "Sophomore", models.SectionBrass, "TRUMPET", "S", "7.5", true), compliance(300612467, 12, 2.85, true)},
	{student(300395193, "Miles", "King", "Junior", models.SectionPercussion, "SNARE DRUM", "L", "11", true), compliance(300395193, 10, 3.50, true)},
	{student(300518905, "Nia", "Carter", "Senior", models.SectionFlagCorp, "OTHER", "M", "8", true), compliance(300518905, 15, 3.10, false)},
	{student(300135890, "Ethan", "Park", "Junior", models.SectionBrass, "TROMBONE", "XL", "12", true), compliance(300135890, 16, 3.70, true)},
	{student(300131935, "Zoe", "Smith", "Freshman", models.SectionWoodwind, "FLUTE", "XS", "6.5", false), compliance(300131935, 0, 0, false)},
}

func instrument(typeName, serial string) func(context.Context, *repositories.Repositories) (models.UnitSpec, error) {
	return func(ctx context.Context, repos *repositories.Repositories) (models.UnitSpec, error) {
		t, err := repos.InstrumentTypes.GetByName(ctx, typeName)
		if err != nil {
			return nil, fmt.Errorf("sample instrument %s: %w", serial, err)
		}
		return models.NewInstrument(t.TypeID, serial), nil
	}
}

func fixed(spec models.UnitSpec) func(context.Context, *repositories.Repositories) (models.UnitSpec, error) {
	return func(context.Context, *repositories.Repositories) (models.UnitSpec, error) {
		return spec, nil
	}
}

var sampleUnits = []sampleUnit{
	{spec: instrument("CLARINET", "CL-44321"), notes: "Good pads", holder: 300819037},
	{spec: instrument("TRUMPET", "TR-88210"), notes: "Valve 2 sticky", holder: 300612467},
	{spec: instrument("SNARE DRUM", "SD-11007"), notes: "New head"},
	{spec: instrument("TROMBONE", "TB-23001"), notes: "Slide a bit tight"},
	{spec: fixed(models.NewUniform("40R", "32", "C-101", "P-101")), notes: "Clean", holder: 300395193},
	{spec: fixed(models.NewUniform("38R", "30", "C-102", "P-102")), notes: "Minor tear"},
	{spec: fixed(models.NewUniform("42L", "34", "C-103", "P-103")), notes: "Needs dry clean"},
	{spec: fixed(models.NewShako("7 1/4")), notes: "Good", holder: 300518905},
	{spec: fixed(models.NewShako("7 3/8")), notes: "Needs plume"},
	{spec: fixed(models.NewShako("7 1/2")), notes: "Scuffed brim"},
}

// CreateDefaultData seeds the instrument catalog and, when sampleData is set
// and the roster is empty, a small demo band dated today. Neither step is
// recorded for undo.
func CreateDefaultData(ctx context.Context, store *db.Store, lgr zerolog.Logger, sampleData bool, today string) error {
	repos := repositories.NewRepositories(store.DB, store.Builder())

	lgr.Info().Msg("Checking/Creating instrument catalog...")
	var finalErr error

	if err := repos.InstrumentTypes.EnsureCatalog(ctx, Catalog); err != nil {
		lgr.Error().Err(err).Msg("Error seeding instrument catalog")
		finalErr = errors.Join(finalErr, err)
	}

	if sampleData && finalErr == nil {
		count, err := repos.Students.Count(ctx)
		switch {
		case err != nil:
			lgr.Error().Err(err).Msg("Error counting students")
			finalErr = errors.Join(finalErr, err)
		case count > 0:
			lgr.Info().Int("students", count).Msg("Roster not empty, skipping sample data")
		default:
			if err := seedSampleData(ctx, store, today); err != nil {
				lgr.Error().Err(err).Msg("Error seeding sample data")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int("students", len(sampleStudents)).Int("units", len(sampleUnits)).Msg("Sample data created")
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func seedSampleData(ctx context.Context, store *db.Store, today string) error {
	return store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		repos := repositories.NewRepositories(tx, store.Builder())

		for _, s := range sampleStudents {
			st := s.student
			st.UpdatedAt = today
			if err := repos.Students.Create(ctx, st); err != nil {
				return err
			}
			c := s.compliance
			c.LastVerifiedDate = &today
			if err := repos.Compliance.Upsert(ctx, c); err != nil {
				return err
			}
		}

		for _, u := range sampleUnits {
			spec, err := u.spec(ctx, repos)
			if err != nil {
				return err
			}
			id, err := repos.Equipment.Insert(ctx, spec)
			if err != nil {
				return err
			}
			notes := u.notes
			h := models.Holding{Category: spec.Category(), UnitID: id, ConditionNotes: &notes}
			if u.holder != 0 {
				holder := u.holder
				h.CheckedOutTo = &holder
				h.CheckedOutDate = &today
			}
			if err := repos.Equipment.SetHolding(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
}
