package reference

import (
	"context"

	"github.com/lowermainland/capacity/internal/platform/csvstore"
)

// CSV file names within the data directory.
const (
	fileSites       = "dim_site.csv"
	filePrograms    = "dim_program.csv"
	fileSubprograms = "dim_subprogram.csv"
	fileLHAs        = "dim_lha.csv"
	fileStaffedBeds = "staffed_beds_schedule.csv"
	fileBaselines   = "clinical_baseline.csv"
	fileSeasonality = "seasonality_monthly.csv"
	fileStaffing    = "staffing_factors.csv"
)

type repoCSV struct {
	dir string
}

// NewCSVRepo returns a Repository backed by the CSV files under dir. Files
// are re-read on every call so the data directory can be regenerated without
// restarting the server.
func NewCSVRepo(dir string) Repository {
	return &repoCSV{dir: dir}
}

func (r *repoCSV) ListSites(ctx context.Context) ([]*Site, error) {
	tbl, err := csvstore.Load(r.dir, fileSites)
	if err != nil {
		return nil, err
	}
	sites := make([]*Site, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		// The dimension files carry no IDs; position defines them, matching
		// the SERIAL column the loader would assign.
		sites = append(sites, &Site{
			SiteID:   i + 1,
			SiteCode: row.String("site_code"),
			SiteName: row.String("site_name"),
		})
	}
	return sites, nil
}

func (r *repoCSV) ListPrograms(ctx context.Context) ([]*Program, error) {
	tbl, err := csvstore.Load(r.dir, filePrograms)
	if err != nil {
		return nil, err
	}
	programs := make([]*Program, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		programs = append(programs, &Program{
			ProgramID:   row.Int("program_id"),
			ProgramName: row.String("program_name"),
		})
	}
	return programs, nil
}

func (r *repoCSV) ListSubprograms(ctx context.Context, programID *int) ([]*Subprogram, error) {
	tbl, err := csvstore.Load(r.dir, fileSubprograms)
	if err != nil {
		return nil, err
	}
	var out []*Subprogram
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		sp := &Subprogram{
			ProgramID:      row.Int("program_id"),
			SubprogramID:   row.Int("subprogram_id"),
			SubprogramName: row.String("subprogram_name"),
		}
		if programID != nil && sp.ProgramID != *programID {
			continue
		}
		out = append(out, sp)
	}
	return out, nil
}

func (r *repoCSV) ListLHAs(ctx context.Context) ([]*LHA, error) {
	tbl, err := csvstore.Load(r.dir, fileLHAs)
	if err != nil {
		return nil, err
	}
	lhas := make([]*LHA, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		lhas = append(lhas, &LHA{
			LHAID:         i + 1,
			LHAName:       row.String("lha_name"),
			DefaultSiteID: row.Int("default_site_id"),
		})
	}
	return lhas, nil
}

func (r *repoCSV) ListStaffedBeds(ctx context.Context, scheduleCode string) ([]*StaffedBeds, error) {
	tbl, err := csvstore.Load(r.dir, fileStaffedBeds)
	if err != nil {
		return nil, err
	}
	var out []*StaffedBeds
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		b := &StaffedBeds{
			SiteID:       row.Int("site_id"),
			ProgramID:    row.Int("program_id"),
			ScheduleCode: row.String("schedule_code"),
			StaffedBeds:  row.Int("staffed_beds"),
		}
		if scheduleCode != "" && b.ScheduleCode != scheduleCode {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *repoCSV) ListBaselines(ctx context.Context, year int) ([]*ClinicalBaseline, error) {
	tbl, err := csvstore.Load(r.dir, fileBaselines)
	if err != nil {
		return nil, err
	}
	var out []*ClinicalBaseline
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		b := &ClinicalBaseline{
			SiteID:       row.Int("site_id"),
			ProgramID:    row.Int("program_id"),
			BaselineYear: row.Int("baseline_year"),
			LOSBaseDays:  row.Float("los_base_days"),
			ALCRate:      row.Float("alc_rate"),
		}
		if year != 0 && b.BaselineYear != year {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *repoCSV) ListSeasonality(ctx context.Context) ([]*SeasonalityMultiplier, error) {
	tbl, err := csvstore.Load(r.dir, fileSeasonality)
	if err != nil {
		return nil, err
	}
	out := make([]*SeasonalityMultiplier, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		out = append(out, &SeasonalityMultiplier{
			SiteID:     row.NullInt("site_id"),
			ProgramID:  row.NullInt("program_id"),
			Month:      row.Int("month"),
			Multiplier: row.Float("multiplier"),
		})
	}
	return out, nil
}

func (r *repoCSV) ListStaffingFactors(ctx context.Context) ([]*StaffingFactor, error) {
	tbl, err := csvstore.Load(r.dir, fileStaffing)
	if err != nil {
		return nil, err
	}
	out := make([]*StaffingFactor, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := tbl.Row(i)
		out = append(out, &StaffingFactor{
			ProgramID:          row.Int("program_id"),
			SubprogramID:       row.NullInt("subprogram_id"),
			HPPD:               row.Float("hppd"),
			AnnualHoursPerFTE:  row.Float("annual_hours_per_fte"),
			ProductivityFactor: row.Float("productivity_factor"),
		})
	}
	return out, nil
}
