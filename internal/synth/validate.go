package synth

import (
	"fmt"

	"github.com/lowermainland/capacity/internal/platform/csvstore"
)

// requiredFiles lists every file a complete dataset must contain, with the
// columns each repository depends on.
var requiredFiles = []struct {
	Name    string
	Columns []string
}{
	{"dim_site.csv", []string{"site_code", "site_name"}},
	{"dim_program.csv", []string{"program_id", "program_name"}},
	{"dim_subprogram.csv", []string{"program_id", "subprogram_id", "subprogram_name"}},
	{"dim_lha.csv", []string{"lha_name", "default_site_id"}},
	{"population_projection.csv", []string{"year", "lha_id", "age_group", "gender", "population"}},
	{"ed_baseline_rates.csv", []string{"lha_id", "age_group", "gender", "ed_subservice", "baserate_per_1000"}},
	{"patients.csv", []string{"patient_id", "lha_id", "facility_home_id", "age_group", "gender", "dob"}},
	{"ed_encounters.csv", []string{"encounter_id", "patient_id", "facility_id", "arrival_ts"}},
	{"ip_stays.csv", []string{"stay_id", "patient_id", "facility_id", "program_id", "admit_ts", "los_days", "alc_flag"}},
	{"staffed_beds_schedule.csv", []string{"site_id", "program_id", "schedule_code", "staffed_beds"}},
	{"clinical_baseline.csv", []string{"site_id", "program_id", "baseline_year", "los_base_days", "alc_rate"}},
	{"seasonality_monthly.csv", []string{"site_id", "program_id", "month", "multiplier"}},
	{"staffing_factors.csv", []string{"program_id", "subprogram_id", "hppd", "annual_hours_per_fte", "productivity_factor"}},
}

// FileCheck is the validation outcome for one file.
type FileCheck struct {
	File        string   `json:"file"`
	Passed      bool     `json:"passed"`
	RecordCount int      `json:"record_count"`
	Errors      []string `json:"errors,omitempty"`
}

// Report is a file-level data quality summary for one data directory.
type Report struct {
	Passed bool        `json:"passed"`
	Files  []FileCheck `json:"files"`
}

// Validate checks that every required file exists, has rows, and carries
// the columns the repositories read.
func Validate(dir string) *Report {
	report := &Report{Passed: true}
	for _, rf := range requiredFiles {
		check := FileCheck{File: rf.Name, Passed: true}

		t, err := csvstore.Load(dir, rf.Name)
		if err != nil {
			check.Passed = false
			check.Errors = append(check.Errors, err.Error())
			report.Passed = false
			report.Files = append(report.Files, check)
			continue
		}

		check.RecordCount = t.Len()
		if t.Len() == 0 {
			check.Passed = false
			check.Errors = append(check.Errors, fmt.Sprintf("%s has no records", rf.Name))
		}
		for _, col := range rf.Columns {
			if !t.HasColumn(col) {
				check.Passed = false
				check.Errors = append(check.Errors, fmt.Sprintf("%s is missing column %s", rf.Name, col))
			}
		}
		if !check.Passed {
			report.Passed = false
		}
		report.Files = append(report.Files, check)
	}
	return report
}
