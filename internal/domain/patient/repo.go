package patient

import (
	"context"

	"github.com/lowermainland/capacity/pkg/pagination"
)

// Repository reads the synthetic dataset. Every list returns the page and
// the unpaged total so handlers can report has_more.
type Repository interface {
	ListPatients(ctx context.Context, f Filter, p pagination.Params) ([]*Patient, int, error)
	ListEDEncounters(ctx context.Context, f Filter, p pagination.Params) ([]*EDEncounter, int, error)
	ListIPStays(ctx context.Context, f Filter, p pagination.Params) ([]*IPStay, int, error)
	ListPopulationProjections(ctx context.Context, f Filter, p pagination.Params) ([]*PopulationProjection, int, error)
	ListEDBaselineRates(ctx context.Context, f Filter, p pagination.Params) ([]*EDBaselineRate, int, error)
}
