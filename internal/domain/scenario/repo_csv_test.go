package scenario

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeRefFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		fileSites: "site_code,site_name\n" +
			"LM-SNW,Snowberry General\n" +
			"LM-CDR,Cedarbrook Regional\n",
		fileBaselines: "site_id,program_id,baseline_year,los_base_days,alc_rate\n" +
			"1,1,2022,5.8,0.12\n" +
			"2,1,2022,4.0,0.10\n" +
			"1,1,2021,6.1,0.15\n",
		fileStaffedBeds: "site_id,program_id,schedule_code,staffed_beds\n" +
			"1,1,Sched-A,69\n" +
			"1,1,Sched-B,75\n" +
			"2,1,Sched-A,30\n",
		fileStays: "stay_id,patient_id,facility_id,program_id,admit_ts,los_days,alc_flag\n" +
			"S1,P1,1,1,2022-01-05T10:00:00,4.5,False\n" +
			"S2,P2,1,1,2022-06-12T08:30:00,6.0,True\n" +
			"S3,P3,1,1,2021-11-02T14:00:00,5.0,False\n" +
			"S4,P4,2,2,2022-03-20T09:00:00,3.0,False\n",
		fileStaffing: "program_id,subprogram_id,hppd,annual_hours_per_fte,productivity_factor\n" +
			"1,,6.5,1950,0.9\n" +
			"1,2,7.0,1950,0.9\n",
		fileSeasonality: "site_id,program_id,month,multiplier\n" +
			",,1,1.00\n" +
			",,12,1.04\n" +
			",6,12,1.08\n" +
			"1,6,12,1.10\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCSVRefData_Baselines(t *testing.T) {
	ref := NewCSVRefData(writeRefFixtures(t))

	baselines, err := ref.Baselines(context.Background(), []int{1, 2}, 1, 2022)
	if err != nil {
		t.Fatalf("baselines: %v", err)
	}
	if len(baselines) != 2 {
		t.Fatalf("got %d baselines, want 2", len(baselines))
	}
	if baselines[0].SiteCode != "LM-SNW" || baselines[0].LOSBaseDays != 5.8 {
		t.Errorf("baseline 0 = %+v, want LM-SNW with los 5.8", baselines[0])
	}

	// The 2021 row for site 1 must not leak into a 2022 request.
	only2021, err := ref.Baselines(context.Background(), []int{1}, 1, 2021)
	if err != nil {
		t.Fatalf("baselines 2021: %v", err)
	}
	if len(only2021) != 1 || only2021[0].LOSBaseDays != 6.1 {
		t.Errorf("2021 baselines = %+v, want single row with los 6.1", only2021)
	}
}

func TestCSVRefData_StaffedBedsFilterBySchedule(t *testing.T) {
	ref := NewCSVRefData(writeRefFixtures(t))

	beds, err := ref.StaffedBedsFor(context.Background(), []int{1}, 1, "Sched-B")
	if err != nil {
		t.Fatalf("staffed beds: %v", err)
	}
	if len(beds) != 1 || beds[0].StaffedBeds != 75 {
		t.Errorf("beds = %+v, want single Sched-B row with 75", beds)
	}
}

func TestCSVRefData_HistoricalAdmissions(t *testing.T) {
	ref := NewCSVRefData(writeRefFixtures(t))

	history, err := ref.HistoricalAdmissions(context.Background(), []int{1, 2}, 1, 2022)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	// Site 1 has two 2022 stays for program 1; the 2021 stay and the
	// program-2 stay at site 2 are excluded.
	if len(history) != 1 {
		t.Fatalf("got %d history rows, want 1", len(history))
	}
	h := history[0]
	if h.SiteID != 1 || h.AdmissionsBase != 2 {
		t.Errorf("history = %+v, want site 1 with 2 admissions", h)
	}
	if math.Abs(h.LOSObserved-5.25) > 1e-9 {
		t.Errorf("los_observed = %v, want 5.25", h.LOSObserved)
	}
	if math.Abs(h.ALCRateObserved-0.5) > 1e-9 {
		t.Errorf("alc_rate_observed = %v, want 0.5", h.ALCRateObserved)
	}
}

func TestCSVRefData_HistoricalAdmissionsOpenStay(t *testing.T) {
	dir := writeRefFixtures(t)
	// An in-progress stay has no discharge and no LOS yet. It still counts
	// as an admission; its LOS contributes zero to the observed average.
	stays := "stay_id,patient_id,facility_id,program_id,admit_ts,los_days,alc_flag\n" +
		"S1,P1,2,1,2022-02-01T10:00:00,,False\n" +
		"S2,P2,2,1,2022-04-01T10:00:00,4.0,False\n"
	if err := os.WriteFile(filepath.Join(dir, fileStays), []byte(stays), 0o644); err != nil {
		t.Fatal(err)
	}
	ref := NewCSVRefData(dir)

	history, err := ref.HistoricalAdmissions(context.Background(), []int{2}, 1, 2022)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].AdmissionsBase != 2 {
		t.Fatalf("history = %+v, want site 2 with 2 admissions", history)
	}
	if math.Abs(history[0].LOSObserved-2.0) > 1e-9 {
		t.Errorf("los_observed = %v, want 2.0", history[0].LOSObserved)
	}
}

func TestCSVRefData_StaffingFactorSkipsSubprogramRows(t *testing.T) {
	ref := NewCSVRefData(writeRefFixtures(t))

	factor, err := ref.StaffingFactor(context.Background(), 1)
	if err != nil {
		t.Fatalf("staffing factor: %v", err)
	}
	if factor == nil || factor.HPPD != 6.5 {
		t.Errorf("factor = %+v, want program-level row with hppd 6.5", factor)
	}

	missing, err := ref.StaffingFactor(context.Background(), 9)
	if err != nil {
		t.Fatalf("staffing factor: %v", err)
	}
	if missing != nil {
		t.Errorf("factor for unknown program = %+v, want nil", missing)
	}
}

func TestCSVRefData_SeasonalityFallbackOrder(t *testing.T) {
	ref := NewCSVRefData(writeRefFixtures(t))
	ctx := context.Background()

	cases := []struct {
		name              string
		siteID, programID int
		month             int
		want              float64
	}{
		{"site and program tier", 1, 6, 12, 1.10},
		{"program tier", 2, 6, 12, 1.08},
		{"global tier", 2, 1, 12, 1.04},
		{"no row at any tier", 2, 1, 7, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ref.SeasonalityMultiplier(ctx, tc.siteID, tc.programID, tc.month)
			if err != nil {
				t.Fatalf("seasonality: %v", err)
			}
			if got != tc.want {
				t.Errorf("multiplier = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCSVRefData_MissingFileErrors(t *testing.T) {
	ref := NewCSVRefData(t.TempDir())
	if _, err := ref.Baselines(context.Background(), []int{1}, 1, 2022); err == nil {
		t.Error("expected an error for a missing data file")
	}
}
