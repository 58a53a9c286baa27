package patient

import (
	"context"

	"github.com/lowermainland/capacity/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPatients(ctx context.Context, f Filter, p pagination.Params) ([]*Patient, int, error) {
	return s.repo.ListPatients(ctx, f, p)
}

func (s *Service) ListEDEncounters(ctx context.Context, f Filter, p pagination.Params) ([]*EDEncounter, int, error) {
	return s.repo.ListEDEncounters(ctx, f, p)
}

func (s *Service) ListIPStays(ctx context.Context, f Filter, p pagination.Params) ([]*IPStay, int, error) {
	return s.repo.ListIPStays(ctx, f, p)
}

func (s *Service) ListPopulationProjections(ctx context.Context, f Filter, p pagination.Params) ([]*PopulationProjection, int, error) {
	return s.repo.ListPopulationProjections(ctx, f, p)
}

func (s *Service) ListEDBaselineRates(ctx context.Context, f Filter, p pagination.Params) ([]*EDBaselineRate, int, error) {
	return s.repo.ListEDBaselineRates(ctx, f, p)
}
