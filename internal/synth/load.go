package synth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// tableLoad is one table's worth of rows ready for COPY.
type tableLoad struct {
	table   string
	columns []string
	rows    [][]interface{}
}

// tableLoads flattens the dataset into per-table rows, ordered so every
// foreign key target is loaded before its referrers. Site and LHA IDs are
// positional (starting at 1), matching how the CSV repositories assign them.
func tableLoads(ds *Dataset) []tableLoad {
	loads := make([]tableLoad, 0, 13)
	add := func(table string, columns []string, n int, row func(i int) []interface{}) {
		rows := make([][]interface{}, n)
		for i := 0; i < n; i++ {
			rows[i] = row(i)
		}
		loads = append(loads, tableLoad{table: table, columns: columns, rows: rows})
	}

	add("dim_site", []string{"site_id", "site_code", "site_name"},
		len(ds.Sites), func(i int) []interface{} {
			return []interface{}{i + 1, ds.Sites[i].SiteCode, ds.Sites[i].SiteName}
		})
	add("dim_program", []string{"program_id", "program_name"},
		len(ds.Programs), func(i int) []interface{} {
			return []interface{}{ds.Programs[i].ProgramID, ds.Programs[i].ProgramName}
		})
	add("dim_subprogram", []string{"program_id", "subprogram_id", "subprogram_name"},
		len(ds.Subprograms), func(i int) []interface{} {
			sp := ds.Subprograms[i]
			return []interface{}{sp.ProgramID, sp.SubprogramID, sp.SubprogramName}
		})
	add("dim_lha", []string{"lha_id", "lha_name", "default_site_id"},
		len(ds.LHAs), func(i int) []interface{} {
			return []interface{}{i + 1, ds.LHAs[i].LHAName, ds.LHAs[i].DefaultSiteID}
		})
	add("population_projection", []string{"year", "lha_id", "age_group", "gender", "population"},
		len(ds.Population), func(i int) []interface{} {
			p := ds.Population[i]
			return []interface{}{p.Year, p.LHAID, p.AgeGroup, p.Gender, p.Population}
		})
	add("ed_baseline_rates", []string{"lha_id", "age_group", "gender", "ed_subservice", "baserate_per_1000"},
		len(ds.EDRates), func(i int) []interface{} {
			r := ds.EDRates[i]
			return []interface{}{r.LHAID, r.AgeGroup, r.Gender, r.EDSubservice, r.BaseratePer1000}
		})
	add("staffed_beds_schedule", []string{"site_id", "program_id", "schedule_code", "staffed_beds"},
		len(ds.StaffedBeds), func(i int) []interface{} {
			b := ds.StaffedBeds[i]
			return []interface{}{b.SiteID, b.ProgramID, b.ScheduleCode, b.StaffedBeds}
		})
	add("clinical_baseline", []string{"site_id", "program_id", "baseline_year", "los_base_days", "alc_rate"},
		len(ds.Baselines), func(i int) []interface{} {
			b := ds.Baselines[i]
			return []interface{}{b.SiteID, b.ProgramID, b.BaselineYear, b.LOSBaseDays, b.ALCRate}
		})
	add("seasonality_monthly", []string{"site_id", "program_id", "month", "multiplier"},
		len(ds.Seasonality), func(i int) []interface{} {
			m := ds.Seasonality[i]
			return []interface{}{m.SiteID, m.ProgramID, m.Month, m.Multiplier}
		})
	add("staffing_factors", []string{"program_id", "subprogram_id", "hppd", "annual_hours_per_fte", "productivity_factor"},
		len(ds.Staffing), func(i int) []interface{} {
			f := ds.Staffing[i]
			return []interface{}{f.ProgramID, f.SubprogramID, f.HPPD, f.AnnualHoursPerFTE, f.ProductivityFactor}
		})
	add("patients", []string{"patient_id", "dob", "age_group", "gender", "lha_id",
		"facility_home_id", "primary_ed_subservice", "expected_ed_rate", "ed_visits_year"},
		len(ds.Patients), func(i int) []interface{} {
			p := ds.Patients[i]
			return []interface{}{p.PatientID, p.DOB, p.AgeGroup, p.Gender, p.LHAID,
				p.FacilityHomeID, p.PrimaryEDSubservice, p.ExpectedEDRate, p.EDVisitsYear}
		})
	add("ed_encounters", []string{"encounter_id", "patient_id", "facility_id", "ed_subservice", "arrival_ts", "acuity", "dispo"},
		len(ds.EDEncounters), func(i int) []interface{} {
			e := ds.EDEncounters[i]
			return []interface{}{e.EncounterID, e.PatientID, e.FacilityID, e.EDSubservice,
				e.ArrivalTS, e.Acuity, e.Disposition}
		})
	add("ip_stays", []string{"stay_id", "patient_id", "facility_id", "program_id", "subprogram_id",
		"admit_ts", "discharge_ts", "los_days", "alc_flag"},
		len(ds.IPStays), func(i int) []interface{} {
			s := ds.IPStays[i]
			return []interface{}{s.StayID, s.PatientID, s.FacilityID, s.ProgramID, s.SubprogramID,
				s.AdmitTS, s.DischargeTS, s.LOSDays, s.ALCFlag}
		})

	return loads
}

// Loader inserts a generated dataset into the relational schema the
// migrations create.
type Loader struct {
	pool *pgxpool.Pool
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// Load copies every table inside a single transaction, so a failed load
// leaves no partial data behind. It returns the total number of rows
// inserted. The target tables are assumed empty; reloading over existing
// data fails on the primary keys.
func (l *Loader) Load(ctx context.Context, ds *Dataset) (int64, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var total int64
	for _, t := range tableLoads(ds) {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{t.table}, t.columns, pgx.CopyFromRows(t.rows))
		if err != nil {
			return total, fmt.Errorf("load %s: %w", t.table, err)
		}
		total += n
	}

	return total, tx.Commit(ctx)
}
