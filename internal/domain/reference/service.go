package reference

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListSites(ctx context.Context) ([]*Site, error) {
	return s.repo.ListSites(ctx)
}

func (s *Service) ListPrograms(ctx context.Context) ([]*Program, error) {
	return s.repo.ListPrograms(ctx)
}

func (s *Service) ListSubprograms(ctx context.Context, programID *int) ([]*Subprogram, error) {
	return s.repo.ListSubprograms(ctx, programID)
}

func (s *Service) ListLHAs(ctx context.Context) ([]*LHA, error) {
	return s.repo.ListLHAs(ctx)
}

func (s *Service) ListStaffedBeds(ctx context.Context, scheduleCode string) ([]*StaffedBeds, error) {
	return s.repo.ListStaffedBeds(ctx, scheduleCode)
}

func (s *Service) ListBaselines(ctx context.Context, year int) ([]*ClinicalBaseline, error) {
	return s.repo.ListBaselines(ctx, year)
}

func (s *Service) ListSeasonality(ctx context.Context) ([]*SeasonalityMultiplier, error) {
	return s.repo.ListSeasonality(ctx)
}

func (s *Service) ListStaffingFactors(ctx context.Context) ([]*StaffingFactor, error) {
	return s.repo.ListStaffingFactors(ctx)
}
