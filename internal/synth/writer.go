package synth

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

// WriteAll writes the dataset as CSV files under dir, creating it if
// needed. File and column names match what the repositories read.
func WriteAll(ds *Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	files := []struct {
		name   string
		header []string
		rows   func() [][]string
	}{
		{"dim_site.csv", []string{"site_code", "site_name"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Sites))
			for _, s := range ds.Sites {
				rows = append(rows, []string{s.SiteCode, s.SiteName})
			}
			return rows
		}},
		{"dim_program.csv", []string{"program_id", "program_name"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Programs))
			for _, p := range ds.Programs {
				rows = append(rows, []string{itoa(p.ProgramID), p.ProgramName})
			}
			return rows
		}},
		{"dim_subprogram.csv", []string{"program_id", "subprogram_id", "subprogram_name"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Subprograms))
			for _, sp := range ds.Subprograms {
				rows = append(rows, []string{itoa(sp.ProgramID), itoa(sp.SubprogramID), sp.SubprogramName})
			}
			return rows
		}},
		{"dim_lha.csv", []string{"lha_name", "default_site_id"}, func() [][]string {
			rows := make([][]string, 0, len(ds.LHAs))
			for _, l := range ds.LHAs {
				rows = append(rows, []string{l.LHAName, itoa(l.DefaultSiteID)})
			}
			return rows
		}},
		{"population_projection.csv", []string{"year", "lha_id", "age_group", "gender", "population"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Population))
			for _, p := range ds.Population {
				rows = append(rows, []string{itoa(p.Year), itoa(p.LHAID), p.AgeGroup, p.Gender, itoa(p.Population)})
			}
			return rows
		}},
		{"ed_baseline_rates.csv", []string{"lha_id", "age_group", "gender", "ed_subservice", "baserate_per_1000"}, func() [][]string {
			rows := make([][]string, 0, len(ds.EDRates))
			for _, r := range ds.EDRates {
				rows = append(rows, []string{itoa(r.LHAID), r.AgeGroup, r.Gender, r.EDSubservice, ftoa(r.BaseratePer1000)})
			}
			return rows
		}},
		{"patients.csv", []string{"patient_id", "lha_id", "facility_home_id", "age_group", "gender", "dob", "primary_ed_subservice", "expected_ed_rate", "ed_visits_year"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Patients))
			for _, p := range ds.Patients {
				rows = append(rows, []string{
					p.PatientID, itoa(p.LHAID), itoa(p.FacilityHomeID), p.AgeGroup, p.Gender,
					p.DOB.Format(dateLayout), p.PrimaryEDSubservice, ftoa(p.ExpectedEDRate), itoa(p.EDVisitsYear),
				})
			}
			return rows
		}},
		{"ed_encounters.csv", []string{"encounter_id", "patient_id", "facility_id", "ed_subservice", "arrival_ts", "acuity", "dispo"}, func() [][]string {
			rows := make([][]string, 0, len(ds.EDEncounters))
			for _, e := range ds.EDEncounters {
				rows = append(rows, []string{
					itoa(e.EncounterID), e.PatientID, itoa(e.FacilityID), e.EDSubservice,
					e.ArrivalTS.Format(timestampLayout), itoa(e.Acuity), e.Disposition,
				})
			}
			return rows
		}},
		{"ip_stays.csv", []string{"stay_id", "patient_id", "facility_id", "program_id", "subprogram_id", "admit_ts", "discharge_ts", "los_days", "alc_flag"}, func() [][]string {
			rows := make([][]string, 0, len(ds.IPStays))
			for _, s := range ds.IPStays {
				rows = append(rows, []string{
					itoa(s.StayID), s.PatientID, itoa(s.FacilityID), itoa(s.ProgramID), itoa(s.SubprogramID),
					s.AdmitTS.Format(timestampLayout), s.DischargeTS.Format(timestampLayout),
					ftoa(s.LOSDays), boolFlag(s.ALCFlag),
				})
			}
			return rows
		}},
		{"staffed_beds_schedule.csv", []string{"site_id", "program_id", "schedule_code", "staffed_beds"}, func() [][]string {
			rows := make([][]string, 0, len(ds.StaffedBeds))
			for _, b := range ds.StaffedBeds {
				rows = append(rows, []string{itoa(b.SiteID), itoa(b.ProgramID), b.ScheduleCode, itoa(b.StaffedBeds)})
			}
			return rows
		}},
		{"clinical_baseline.csv", []string{"site_id", "program_id", "baseline_year", "los_base_days", "alc_rate"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Baselines))
			for _, b := range ds.Baselines {
				rows = append(rows, []string{itoa(b.SiteID), itoa(b.ProgramID), itoa(b.BaselineYear), ftoa(b.LOSBaseDays), ftoa(b.ALCRate)})
			}
			return rows
		}},
		{"seasonality_monthly.csv", []string{"site_id", "program_id", "month", "multiplier"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Seasonality))
			for _, m := range ds.Seasonality {
				rows = append(rows, []string{optItoa(m.SiteID), optItoa(m.ProgramID), itoa(m.Month), ftoa(m.Multiplier)})
			}
			return rows
		}},
		{"staffing_factors.csv", []string{"program_id", "subprogram_id", "hppd", "annual_hours_per_fte", "productivity_factor"}, func() [][]string {
			rows := make([][]string, 0, len(ds.Staffing))
			for _, f := range ds.Staffing {
				rows = append(rows, []string{itoa(f.ProgramID), optItoa(f.SubprogramID), ftoa(f.HPPD), itoa(f.AnnualHoursPerFTE), ftoa(f.ProductivityFactor)})
			}
			return rows
		}},
	}

	for _, f := range files {
		if err := writeCSV(filepath.Join(dir, f.name), f.header, f.rows()); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func itoa(v int) string { return strconv.Itoa(v) }

func optItoa(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
