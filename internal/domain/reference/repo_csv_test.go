package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, fileSites, "site_code,site_name\nLM-SNW,Snowberry General\nLM-BLH,Blue Heron Medical\n")
	writeFixture(t, dir, filePrograms, "program_id,program_name\n1,Medicine\n2,Inpatient MHSU\n6,Emergency\n")
	writeFixture(t, dir, fileSubprograms, "program_id,subprogram_id,subprogram_name\n1,1,General Medicine\n1,2,Hospitalist\n6,1,Adult ED\n")
	writeFixture(t, dir, fileLHAs, "lha_name,default_site_id\nHarborview,11\nRiverbend,6\n")
	writeFixture(t, dir, fileStaffedBeds, "site_id,program_id,schedule_code,staffed_beds\n1,1,Sched-A,64\n1,6,Sched-A,22\n2,1,Sched-B,50\n")
	writeFixture(t, dir, fileBaselines, "site_id,program_id,baseline_year,los_base_days,alc_rate\n1,1,2022,5.8,0.12\n1,1,2021,5.5,0.10\n")
	writeFixture(t, dir, fileSeasonality, "site_id,program_id,month,multiplier\n,,1,1.0\n,6,7,1.05\n1,6,12,1.08\n")
	writeFixture(t, dir, fileStaffing, "program_id,subprogram_id,hppd,annual_hours_per_fte,productivity_factor\n1,,6.5,1950,0.9\n")
	return dir
}

func TestCSVRepo_ListSites_AssignsPositionalIDs(t *testing.T) {
	repo := NewCSVRepo(fixtureDir(t))

	sites, err := repo.ListSites(context.Background())
	if err != nil {
		t.Fatalf("ListSites() error: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(sites))
	}
	if sites[0].SiteID != 1 || sites[1].SiteID != 2 {
		t.Errorf("expected positional IDs 1,2, got %d,%d", sites[0].SiteID, sites[1].SiteID)
	}
	if sites[0].SiteCode != "LM-SNW" {
		t.Errorf("expected LM-SNW, got %s", sites[0].SiteCode)
	}
}

func TestCSVRepo_ListSubprograms_FiltersByProgram(t *testing.T) {
	repo := NewCSVRepo(fixtureDir(t))

	pid := 1
	subs, err := repo.ListSubprograms(context.Background(), &pid)
	if err != nil {
		t.Fatalf("ListSubprograms() error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subprograms for program 1, got %d", len(subs))
	}

	all, err := repo.ListSubprograms(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListSubprograms(nil) error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 subprograms unfiltered, got %d", len(all))
	}
}

func TestCSVRepo_ListStaffedBeds_FiltersBySchedule(t *testing.T) {
	repo := NewCSVRepo(fixtureDir(t))

	beds, err := repo.ListStaffedBeds(context.Background(), "Sched-A")
	if err != nil {
		t.Fatalf("ListStaffedBeds() error: %v", err)
	}
	if len(beds) != 2 {
		t.Fatalf("expected 2 Sched-A rows, got %d", len(beds))
	}
	for _, b := range beds {
		if b.ScheduleCode != "Sched-A" {
			t.Errorf("unexpected schedule %s", b.ScheduleCode)
		}
	}
}

func TestCSVRepo_ListBaselines_FiltersByYear(t *testing.T) {
	repo := NewCSVRepo(fixtureDir(t))

	baselines, err := repo.ListBaselines(context.Background(), 2022)
	if err != nil {
		t.Fatalf("ListBaselines() error: %v", err)
	}
	if len(baselines) != 1 {
		t.Fatalf("expected 1 baseline for 2022, got %d", len(baselines))
	}
	if baselines[0].LOSBaseDays != 5.8 {
		t.Errorf("expected los_base_days 5.8, got %f", baselines[0].LOSBaseDays)
	}
}

func TestCSVRepo_ListSeasonality_NullTiers(t *testing.T) {
	repo := NewCSVRepo(fixtureDir(t))

	multipliers, err := repo.ListSeasonality(context.Background())
	if err != nil {
		t.Fatalf("ListSeasonality() error: %v", err)
	}
	if len(multipliers) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(multipliers))
	}

	global := multipliers[0]
	if global.SiteID != nil || global.ProgramID != nil {
		t.Error("expected global row to have nil site and program")
	}

	programOnly := multipliers[1]
	if programOnly.SiteID != nil || programOnly.ProgramID == nil || *programOnly.ProgramID != 6 {
		t.Error("expected program-only row for program 6")
	}

	siteProgram := multipliers[2]
	if siteProgram.SiteID == nil || *siteProgram.SiteID != 1 {
		t.Error("expected site+program row for site 1")
	}
}

func TestCSVRepo_MissingFile(t *testing.T) {
	repo := NewCSVRepo(t.TempDir())
	_, err := repo.ListSites(context.Background())
	if err == nil {
		t.Fatal("expected error when data directory is empty")
	}
}
