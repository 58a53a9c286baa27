package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lowermainland/capacity/pkg/pagination"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// condition accumulates WHERE clauses with positional placeholders.
type condition struct {
	clauses []string
	args    []interface{}
}

func (c *condition) add(column string, value interface{}) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

func (c *condition) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// listPaged runs the count and page queries for one table.
func listPaged[T any](ctx context.Context, pool *pgxpool.Pool, columns, table, orderBy string,
	cond *condition, p pagination.Params, scan func(pgx.Rows) (*T, error)) ([]*T, int, error) {

	total := 0
	countSQL := "SELECT COUNT(*) FROM " + table + cond.where()
	if err := pool.QueryRow(ctx, countSQL, cond.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s",
		columns, table, cond.where(), orderBy, p.SQL())
	rows, err := pool.Query(ctx, pageSQL, cond.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, rows.Err()
}

func (r *repoPG) ListPatients(ctx context.Context, f Filter, p pagination.Params) ([]*Patient, int, error) {
	cond := &condition{}
	if f.FacilityID != nil {
		cond.add("facility_home_id", *f.FacilityID)
	}
	if f.LHAID != nil {
		cond.add("lha_id", *f.LHAID)
	}
	if f.AgeGroup != "" {
		cond.add("age_group", f.AgeGroup)
	}
	if f.Gender != "" {
		cond.add("gender", f.Gender)
	}
	return listPaged(ctx, r.pool,
		"patient_id, dob, age_group, gender, lha_id, facility_home_id, primary_ed_subservice, ed_visits_year",
		"patients", "patient_id", cond, p,
		func(rows pgx.Rows) (*Patient, error) {
			var pt Patient
			err := rows.Scan(&pt.PatientID, &pt.DOB, &pt.AgeGroup, &pt.Gender, &pt.LHAID,
				&pt.FacilityHomeID, &pt.PrimaryEDSubservice, &pt.EDVisitsYear)
			return &pt, err
		})
}

func (r *repoPG) ListEDEncounters(ctx context.Context, f Filter, p pagination.Params) ([]*EDEncounter, int, error) {
	cond := &condition{}
	if f.PatientID != "" {
		cond.add("patient_id", f.PatientID)
	}
	if f.FacilityID != nil {
		cond.add("facility_id", *f.FacilityID)
	}
	return listPaged(ctx, r.pool,
		"encounter_id, patient_id, facility_id, ed_subservice, arrival_ts, acuity, dispo",
		"ed_encounters", "encounter_id", cond, p,
		func(rows pgx.Rows) (*EDEncounter, error) {
			var e EDEncounter
			err := rows.Scan(&e.EncounterID, &e.PatientID, &e.FacilityID, &e.EDSubservice,
				&e.ArrivalTS, &e.Acuity, &e.Disposition)
			return &e, err
		})
}

func (r *repoPG) ListIPStays(ctx context.Context, f Filter, p pagination.Params) ([]*IPStay, int, error) {
	cond := &condition{}
	if f.PatientID != "" {
		cond.add("patient_id", f.PatientID)
	}
	if f.FacilityID != nil {
		cond.add("facility_id", *f.FacilityID)
	}
	return listPaged(ctx, r.pool,
		"stay_id, patient_id, facility_id, program_id, subprogram_id, admit_ts, discharge_ts, los_days, alc_flag",
		"ip_stays", "stay_id", cond, p,
		func(rows pgx.Rows) (*IPStay, error) {
			var s IPStay
			err := rows.Scan(&s.StayID, &s.PatientID, &s.FacilityID, &s.ProgramID, &s.SubprogramID,
				&s.AdmitTS, &s.DischargeTS, &s.LOSDays, &s.ALCFlag)
			return &s, err
		})
}

func (r *repoPG) ListPopulationProjections(ctx context.Context, f Filter, p pagination.Params) ([]*PopulationProjection, int, error) {
	cond := &condition{}
	if f.LHAID != nil {
		cond.add("lha_id", *f.LHAID)
	}
	if f.AgeGroup != "" {
		cond.add("age_group", f.AgeGroup)
	}
	if f.Gender != "" {
		cond.add("gender", f.Gender)
	}
	if f.Year != nil {
		cond.add("year", *f.Year)
	}
	return listPaged(ctx, r.pool,
		"year, lha_id, age_group, gender, population",
		"population_projection", "year, lha_id, age_group, gender", cond, p,
		func(rows pgx.Rows) (*PopulationProjection, error) {
			var pp PopulationProjection
			err := rows.Scan(&pp.Year, &pp.LHAID, &pp.AgeGroup, &pp.Gender, &pp.Population)
			return &pp, err
		})
}

func (r *repoPG) ListEDBaselineRates(ctx context.Context, f Filter, p pagination.Params) ([]*EDBaselineRate, int, error) {
	cond := &condition{}
	if f.LHAID != nil {
		cond.add("lha_id", *f.LHAID)
	}
	if f.AgeGroup != "" {
		cond.add("age_group", f.AgeGroup)
	}
	if f.Gender != "" {
		cond.add("gender", f.Gender)
	}
	return listPaged(ctx, r.pool,
		"lha_id, age_group, gender, ed_subservice, baserate_per_1000",
		"ed_baseline_rates", "lha_id, age_group, gender, ed_subservice", cond, p,
		func(rows pgx.Rows) (*EDBaselineRate, error) {
			var rate EDBaselineRate
			err := rows.Scan(&rate.LHAID, &rate.AgeGroup, &rate.Gender, &rate.EDSubservice, &rate.BaseratePer1000)
			return &rate, err
		})
}
