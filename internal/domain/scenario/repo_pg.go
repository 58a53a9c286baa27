package scenario

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type refPG struct {
	pool *pgxpool.Pool
}

func NewRefData(pool *pgxpool.Pool) ReferenceData {
	return &refPG{pool: pool}
}

func (r *refPG) Baselines(ctx context.Context, siteIDs []int, programID, year int) ([]*SiteBaseline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cb.site_id, s.site_code, s.site_name, cb.program_id,
		       cb.baseline_year, cb.los_base_days, cb.alc_rate
		FROM clinical_baseline cb
		JOIN dim_site s ON s.site_id = cb.site_id
		WHERE cb.site_id = ANY($1) AND cb.program_id = $2 AND cb.baseline_year = $3
		ORDER BY cb.site_id`, siteIDs, programID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (*SiteBaseline, error) {
		var b SiteBaseline
		err := rows.Scan(&b.SiteID, &b.SiteCode, &b.SiteName, &b.ProgramID, &b.BaselineYear, &b.LOSBaseDays, &b.ALCRate)
		return &b, err
	})
}

func (r *refPG) StaffedBedsFor(ctx context.Context, siteIDs []int, programID int, scheduleCode string) ([]*StaffedBeds, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT site_id, program_id, staffed_beds
		FROM staffed_beds_schedule
		WHERE site_id = ANY($1) AND program_id = $2 AND schedule_code = $3
		ORDER BY site_id`, siteIDs, programID, scheduleCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (*StaffedBeds, error) {
		var b StaffedBeds
		err := rows.Scan(&b.SiteID, &b.ProgramID, &b.StaffedBeds)
		return &b, err
	})
}

func (r *refPG) HistoricalAdmissions(ctx context.Context, siteIDs []int, programID, year int) ([]*HistoricalAdmissions, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT facility_id, COUNT(*) AS admissions,
		       COALESCE(AVG(los_days), 0) AS los_observed,
		       AVG(CASE WHEN alc_flag THEN 1.0 ELSE 0.0 END) AS alc_rate_observed
		FROM ip_stays
		WHERE facility_id = ANY($1) AND program_id = $2
		  AND EXTRACT(YEAR FROM admit_ts) = $3
		GROUP BY facility_id
		ORDER BY facility_id`, siteIDs, programID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(rows pgx.Rows) (*HistoricalAdmissions, error) {
		var h HistoricalAdmissions
		err := rows.Scan(&h.SiteID, &h.AdmissionsBase, &h.LOSObserved, &h.ALCRateObserved)
		return &h, err
	})
}

// StaffingFactor returns the program-level factor, skipping subprogram
// specialisations. A nil result with nil error means no factor is
// configured and FTE is not reported for the program.
func (r *refPG) StaffingFactor(ctx context.Context, programID int) (*StaffingFactor, error) {
	var f StaffingFactor
	err := r.pool.QueryRow(ctx, `
		SELECT program_id, hppd, annual_hours_per_fte, productivity_factor
		FROM staffing_factors
		WHERE program_id = $1 AND subprogram_id IS NULL
		LIMIT 1`, programID).Scan(&f.ProgramID, &f.HPPD, &f.AnnualHoursPerFTE, &f.ProductivityFactor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// SeasonalityMultiplier resolves the multiplier for one month with a
// three-tier fallback: site+program row, then program-wide row, then a
// global row, then 1.0 when nothing is configured.
func (r *refPG) SeasonalityMultiplier(ctx context.Context, siteID, programID, month int) (float64, error) {
	queries := []struct {
		sql  string
		args []interface{}
	}{
		{
			sql: `SELECT multiplier FROM seasonality_monthly
			      WHERE site_id = $1 AND program_id = $2 AND month = $3 LIMIT 1`,
			args: []interface{}{siteID, programID, month},
		},
		{
			sql: `SELECT multiplier FROM seasonality_monthly
			      WHERE site_id IS NULL AND program_id = $1 AND month = $2 LIMIT 1`,
			args: []interface{}{programID, month},
		},
		{
			sql: `SELECT multiplier FROM seasonality_monthly
			      WHERE site_id IS NULL AND program_id IS NULL AND month = $1 LIMIT 1`,
			args: []interface{}{month},
		},
	}
	for _, q := range queries {
		var m float64
		err := r.pool.QueryRow(ctx, q.sql, q.args...).Scan(&m)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return m, nil
	}
	return 1.0, nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
