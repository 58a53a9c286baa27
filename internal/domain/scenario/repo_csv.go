package scenario

import (
	"context"
	"strconv"
	"strings"

	"github.com/lowermainland/capacity/internal/platform/csvstore"
)

const (
	fileSites       = "dim_site.csv"
	fileBaselines   = "clinical_baseline.csv"
	fileStaffedBeds = "staffed_beds_schedule.csv"
	fileStays       = "ip_stays.csv"
	fileStaffing    = "staffing_factors.csv"
	fileSeasonality = "seasonality_monthly.csv"
)

type refCSV struct {
	dir string
}

// NewCSVRefData serves scenario reference reads from the flat-file data
// directory. Files are re-read on every call so a regenerated data set is
// picked up without a restart.
func NewCSVRefData(dir string) ReferenceData {
	return &refCSV{dir: dir}
}

// siteIdentity returns site_code and site_name keyed by site ID. The sites
// file has no ID column; IDs are positional, starting at 1.
func (r *refCSV) siteIdentity() (map[int]string, map[int]string, error) {
	t, err := csvstore.Load(r.dir, fileSites)
	if err != nil {
		return nil, nil, err
	}
	codes := make(map[int]string, t.Len())
	names := make(map[int]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		codes[i+1] = row.String("site_code")
		names[i+1] = row.String("site_name")
	}
	return codes, names, nil
}

func (r *refCSV) Baselines(ctx context.Context, siteIDs []int, programID, year int) ([]*SiteBaseline, error) {
	t, err := csvstore.Load(r.dir, fileBaselines)
	if err != nil {
		return nil, err
	}
	codes, names, err := r.siteIdentity()
	if err != nil {
		return nil, err
	}
	wanted := intSet(siteIDs)

	var out []*SiteBaseline
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		siteID := row.Int("site_id")
		if !wanted[siteID] || row.Int("program_id") != programID || row.Int("baseline_year") != year {
			continue
		}
		out = append(out, &SiteBaseline{
			SiteID:       siteID,
			SiteCode:     codes[siteID],
			SiteName:     names[siteID],
			ProgramID:    programID,
			BaselineYear: year,
			LOSBaseDays:  row.Float("los_base_days"),
			ALCRate:      row.Float("alc_rate"),
		})
	}
	return out, nil
}

func (r *refCSV) StaffedBedsFor(ctx context.Context, siteIDs []int, programID int, scheduleCode string) ([]*StaffedBeds, error) {
	t, err := csvstore.Load(r.dir, fileStaffedBeds)
	if err != nil {
		return nil, err
	}
	wanted := intSet(siteIDs)

	var out []*StaffedBeds
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		siteID := row.Int("site_id")
		if !wanted[siteID] || row.Int("program_id") != programID || row.String("schedule_code") != scheduleCode {
			continue
		}
		out = append(out, &StaffedBeds{
			SiteID:      siteID,
			ProgramID:   programID,
			StaffedBeds: row.Int("staffed_beds"),
		})
	}
	return out, nil
}

func (r *refCSV) HistoricalAdmissions(ctx context.Context, siteIDs []int, programID, year int) ([]*HistoricalAdmissions, error) {
	t, err := csvstore.Load(r.dir, fileStays)
	if err != nil {
		return nil, err
	}
	wanted := intSet(siteIDs)

	type acc struct {
		count  int
		losSum float64
		alcSum float64
	}
	bySite := make(map[int]*acc)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		siteID := row.Int("facility_id")
		if !wanted[siteID] || row.Int("program_id") != programID {
			continue
		}
		if admitYear(row.String("admit_ts")) != year {
			continue
		}
		a := bySite[siteID]
		if a == nil {
			a = &acc{}
			bySite[siteID] = a
		}
		a.count++
		a.losSum += row.Float("los_days")
		if truthy(row.String("alc_flag")) {
			a.alcSum++
		}
	}

	var out []*HistoricalAdmissions
	for _, siteID := range siteIDs {
		a := bySite[siteID]
		if a == nil {
			continue
		}
		out = append(out, &HistoricalAdmissions{
			SiteID:          siteID,
			AdmissionsBase:  a.count,
			LOSObserved:     a.losSum / float64(a.count),
			ALCRateObserved: a.alcSum / float64(a.count),
		})
	}
	return out, nil
}

func (r *refCSV) StaffingFactor(ctx context.Context, programID int) (*StaffingFactor, error) {
	t, err := csvstore.Load(r.dir, fileStaffing)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if row.Int("program_id") != programID || row.NullInt("subprogram_id") != nil {
			continue
		}
		return &StaffingFactor{
			ProgramID:          programID,
			HPPD:               row.Float("hppd"),
			AnnualHoursPerFTE:  row.Float("annual_hours_per_fte"),
			ProductivityFactor: row.Float("productivity_factor"),
		}, nil
	}
	return nil, nil
}

func (r *refCSV) SeasonalityMultiplier(ctx context.Context, siteID, programID, month int) (float64, error) {
	t, err := csvstore.Load(r.dir, fileSeasonality)
	if err != nil {
		return 0, err
	}

	// Fallback tiers mirror the database lookup: site+program, program-wide,
	// then global.
	match := func(site, program *int) (float64, bool) {
		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)
			if row.Int("month") != month {
				continue
			}
			rowSite := row.NullInt("site_id")
			rowProgram := row.NullInt("program_id")
			if !optEq(rowSite, site) || !optEq(rowProgram, program) {
				continue
			}
			return row.Float("multiplier"), true
		}
		return 0, false
	}

	if m, ok := match(&siteID, &programID); ok {
		return m, nil
	}
	if m, ok := match(nil, &programID); ok {
		return m, nil
	}
	if m, ok := match(nil, nil); ok {
		return m, nil
	}
	return 1.0, nil
}

func intSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func optEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// admitYear extracts the year from an ISO-8601 timestamp without parsing the
// full value.
func admitYear(ts string) int {
	if len(ts) < 4 {
		return 0
	}
	y, err := strconv.Atoi(ts[:4])
	if err != nil {
		return 0
	}
	return y
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes":
		return true
	}
	return false
}
