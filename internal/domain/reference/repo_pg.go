package reference

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) ListSites(ctx context.Context) ([]*Site, error) {
	rows, err := r.pool.Query(ctx, `SELECT site_id, site_code, site_name FROM dim_site ORDER BY site_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*Site, error) {
		var s Site
		err := rows.Scan(&s.SiteID, &s.SiteCode, &s.SiteName)
		return &s, err
	})
}

func (r *repoPG) ListPrograms(ctx context.Context) ([]*Program, error) {
	rows, err := r.pool.Query(ctx, `SELECT program_id, program_name FROM dim_program ORDER BY program_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*Program, error) {
		var p Program
		err := rows.Scan(&p.ProgramID, &p.ProgramName)
		return &p, err
	})
}

func (r *repoPG) ListSubprograms(ctx context.Context, programID *int) ([]*Subprogram, error) {
	query := `SELECT program_id, subprogram_id, subprogram_name FROM dim_subprogram`
	args := []interface{}{}
	if programID != nil {
		query += ` WHERE program_id = $1`
		args = append(args, *programID)
	}
	query += ` ORDER BY program_id, subprogram_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*Subprogram, error) {
		var sp Subprogram
		err := rows.Scan(&sp.ProgramID, &sp.SubprogramID, &sp.SubprogramName)
		return &sp, err
	})
}

func (r *repoPG) ListLHAs(ctx context.Context) ([]*LHA, error) {
	rows, err := r.pool.Query(ctx, `SELECT lha_id, lha_name, default_site_id FROM dim_lha ORDER BY lha_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*LHA, error) {
		var l LHA
		err := rows.Scan(&l.LHAID, &l.LHAName, &l.DefaultSiteID)
		return &l, err
	})
}

func (r *repoPG) ListStaffedBeds(ctx context.Context, scheduleCode string) ([]*StaffedBeds, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT site_id, program_id, schedule_code, staffed_beds
		FROM staffed_beds_schedule
		WHERE schedule_code = $1
		ORDER BY site_id, program_id`, scheduleCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*StaffedBeds, error) {
		var b StaffedBeds
		err := rows.Scan(&b.SiteID, &b.ProgramID, &b.ScheduleCode, &b.StaffedBeds)
		return &b, err
	})
}

func (r *repoPG) ListBaselines(ctx context.Context, year int) ([]*ClinicalBaseline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT site_id, program_id, baseline_year, los_base_days, alc_rate
		FROM clinical_baseline
		WHERE baseline_year = $1
		ORDER BY site_id, program_id`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*ClinicalBaseline, error) {
		var b ClinicalBaseline
		err := rows.Scan(&b.SiteID, &b.ProgramID, &b.BaselineYear, &b.LOSBaseDays, &b.ALCRate)
		return &b, err
	})
}

func (r *repoPG) ListSeasonality(ctx context.Context) ([]*SeasonalityMultiplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT site_id, program_id, month, multiplier
		FROM seasonality_monthly
		ORDER BY site_id NULLS FIRST, program_id NULLS FIRST, month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*SeasonalityMultiplier, error) {
		var m SeasonalityMultiplier
		err := rows.Scan(&m.SiteID, &m.ProgramID, &m.Month, &m.Multiplier)
		return &m, err
	})
}

func (r *repoPG) ListStaffingFactors(ctx context.Context) ([]*StaffingFactor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT program_id, subprogram_id, hppd, annual_hours_per_fte, productivity_factor
		FROM staffing_factors
		ORDER BY program_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows, func(rows pgx.Rows) (*StaffingFactor, error) {
		var f StaffingFactor
		err := rows.Scan(&f.ProgramID, &f.SubprogramID, &f.HPPD, &f.AnnualHoursPerFTE, &f.ProductivityFactor)
		return &f, err
	})
}

func collectRows[T any](rows pgx.Rows, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
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
