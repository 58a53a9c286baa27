package reference

import "context"

type Repository interface {
	ListSites(ctx context.Context) ([]*Site, error)
	ListPrograms(ctx context.Context) ([]*Program, error)
	ListSubprograms(ctx context.Context, programID *int) ([]*Subprogram, error)
	ListLHAs(ctx context.Context) ([]*LHA, error)
	ListStaffedBeds(ctx context.Context, scheduleCode string) ([]*StaffedBeds, error)
	ListBaselines(ctx context.Context, year int) ([]*ClinicalBaseline, error)
	ListSeasonality(ctx context.Context) ([]*SeasonalityMultiplier, error)
	ListStaffingFactors(ctx context.Context) ([]*StaffingFactor, error)
}
