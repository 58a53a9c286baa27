package scenario

import "context"

// ReferenceData is the read contract the compute engine needs. Reads are
// batched per program across all requested sites.
type ReferenceData interface {
	// Baselines returns clinical baseline rows joined with site identity
	// for the given sites, program, and baseline year.
	Baselines(ctx context.Context, siteIDs []int, programID, year int) ([]*SiteBaseline, error)

	// StaffedBedsFor returns the funded bed rows for the given sites and
	// program under a schedule.
	StaffedBedsFor(ctx context.Context, siteIDs []int, programID int, scheduleCode string) ([]*StaffedBeds, error)

	// HistoricalAdmissions aggregates inpatient stays admitted in the given
	// year, grouped by site. Sites with no stays produce no row.
	HistoricalAdmissions(ctx context.Context, siteIDs []int, programID, year int) ([]*HistoricalAdmissions, error)

	// StaffingFactor returns the program-level staffing factor, or nil when
	// none is defined.
	StaffingFactor(ctx context.Context, programID int) (*StaffingFactor, error)

	// SeasonalityMultiplier resolves the multiplier for a month using the
	// three-tier fallback: site+program, then program-only, then global,
	// then 1.0.
	SeasonalityMultiplier(ctx context.Context, siteID, programID, month int) (float64, error)
}
