package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/bandroster/internal/app/migrations"
	"github.com/yigit/bandroster/internal/app/models"
	"github.com/yigit/bandroster/internal/app/repositories"
	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/db"
)

func TestCreateDefaultDataSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store, err := db.NewSQLiteStore(ctx, config.SQLiteDSN(filepath.Join(t.TempDir(), "seed.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()
	if err := migrations.NewMigrator(store).Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(ctx, store, zerolog.Nop(), true, "2026-09-01"); err != nil {
			t.Fatalf("CreateDefaultData run %d: %v", i+1, err)
		}
	}

	repos := repositories.NewRepositories(store.DB, store.Builder())
	types, err := repos.InstrumentTypes.List(ctx)
	if err != nil || len(types) != len(Catalog) {
		t.Fatalf("catalog = %d entries, %v; want %d", len(types), err, len(Catalog))
	}
	if n, err := repos.Students.Count(ctx); err != nil || n != len(sampleStudents) {
		t.Fatalf("students = %d, %v; want %d", n, err, len(sampleStudents))
	}

	instruments, err := repos.Equipment.ListInstruments(ctx, models.EquipmentFilter{})
	if err != nil || len(instruments) != 4 {
		t.Fatalf("instruments = %d, %v", len(instruments), err)
	}
	held, err := repos.Equipment.HeldBy(ctx, models.CategoryInstrument, 300819037)
	if err != nil || held == nil || held.Description != "CLARINET #CL-44321" {
		t.Fatalf("Jordan's instrument = %+v, %v", held, err)
	}
	if held.CheckedOutDate == nil || *held.CheckedOutDate != "2026-09-01" {
		t.Fatalf("checkout date = %v", held.CheckedOutDate)
	}

	report, err := repos.Compliance.Report(ctx)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	eligible := 0
	for _, row := range report {
		if row.Eligible {
			eligible++
		}
	}
	// Jordan and Ethan meet every requirement.
	if eligible != 2 {
		t.Fatalf("eligible = %d, want 2", eligible)
	}
}

func TestCatalogSections(t *testing.T) {
	seen := map[string]bool{}
	for _, it := range Catalog {
		if seen[it.TypeName] {
			t.Fatalf("duplicate catalog entry %s", it.TypeName)
		}
		seen[it.TypeName] = true
		switch it.Section {
		case models.SectionWoodwind, models.SectionBrass, models.SectionPercussion:
		default:
			t.Fatalf("%s has section %s", it.TypeName, it.Section)
		}
	}
	if len(Catalog) != 15 {
		t.Fatalf("catalog size = %d, want 15", len(Catalog))
	}
}
