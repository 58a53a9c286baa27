package scenario

import (
	"context"
	"math"
)

// FallbackAdmissions is assumed when a site has no historical stays for the
// requested program and year.
const FallbackAdmissions = 100

// losFloor is the minimum effective length of stay in days. No parameter
// combination may push LOS below it.
const losFloor = 0.25

// ProjectionInput bundles the reference rows for one (site, program) pair.
// Baseline and Beds may be nil; Project then yields no result. A zero
// SeasonalityFactor is treated as 1.0 (seasonality disabled).
type ProjectionInput struct {
	SiteID            int
	ProgramID         int
	Baseline          *SiteBaseline
	Beds              *StaffedBeds
	History           *HistoricalAdmissions
	Staffing          *StaffingFactor
	Params            ScenarioParams
	HorizonYears      int
	SeasonalityFactor float64
}

// Project runs the single-site, single-program projection. It returns nil
// when the site lacks baseline or staffed-bed data for the program; missing
// data is an omission, not an error.
//
// The step order is fixed: admissions growth, LOS adjustment, LOS floor,
// seasonality, patient days, census, required beds, gap, FTE. Admissions and
// patient days truncate toward zero rather than rounding.
func Project(in ProjectionInput) *SiteResult {
	if in.Baseline == nil || in.Beds == nil {
		return nil
	}

	baselineAdmissions := FallbackAdmissions
	if in.History != nil {
		baselineAdmissions = in.History.AdmissionsBase
	}

	g := in.Params.GrowthPct
	y := in.HorizonYears
	occ := in.Params.OccupancyTarget

	admissionsProjected := int(float64(baselineAdmissions) * math.Pow(1+g, float64(y)))

	losAcute := in.Baseline.LOSBaseDays * (1 + in.Params.LOSDelta)
	losEffective := losAcute * (1 + (in.Params.ALCTarget - in.Baseline.ALCRate))
	if losEffective < losFloor {
		losEffective = losFloor
	}

	seasonality := in.SeasonalityFactor
	if seasonality == 0 {
		seasonality = 1.0
	}

	patientDays := int(float64(admissionsProjected) * losEffective * seasonality)
	censusAverage := float64(patientDays) / 365.0

	requiredBeds := 0
	if occ > 0 {
		requiredBeds = int(math.Ceil(censusAverage / occ))
	}

	result := &SiteResult{
		SiteID:              in.SiteID,
		SiteCode:            in.Baseline.SiteCode,
		SiteName:            in.Baseline.SiteName,
		AdmissionsProjected: admissionsProjected,
		LOSEffective:        round2(losEffective),
		PatientDays:         patientDays,
		CensusAverage:       round1(censusAverage),
		RequiredBeds:        requiredBeds,
		StaffedBeds:         in.Beds.StaffedBeds,
		CapacityGap:         requiredBeds - in.Beds.StaffedBeds,
	}

	if sf := in.Staffing; sf != nil {
		denominator := sf.AnnualHoursPerFTE * sf.ProductivityFactor
		if denominator > 0 {
			totalHours := float64(requiredBeds) * sf.HPPD * 365
			fte := round1(totalHours / denominator)
			result.NursingFTE = &fte
		}
	}

	return result
}

// SeasonalityResolver is the slice of ReferenceData the averaging helper
// needs.
type SeasonalityResolver interface {
	SeasonalityMultiplier(ctx context.Context, siteID, programID, month int) (float64, error)
}

// AverageSeasonality returns the mean multiplier across the twelve months
// for a site and program, using the resolver's fallback chain per month.
func AverageSeasonality(ctx context.Context, r SeasonalityResolver, siteID, programID int) (float64, error) {
	total := 0.0
	for month := 1; month <= 12; month++ {
		m, err := r.SeasonalityMultiplier(ctx, siteID, programID, month)
		if err != nil {
			return 0, err
		}
		total += m
	}
	return total / 12, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
