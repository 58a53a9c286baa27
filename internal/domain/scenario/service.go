package scenario

import (
	"context"
	"fmt"
)

// modelVersion tags compute responses so saved scenarios can be compared
// across releases of the projection model.
const modelVersion = "1.0"

type Service struct {
	ref             ReferenceData
	defaultSchedule string
}

func NewService(ref ReferenceData, defaultSchedule string) *Service {
	return &Service{ref: ref, defaultSchedule: defaultSchedule}
}

// ComputeScenario runs the projection for every requested (site, program)
// pair and aggregates the results per site and globally. Sites with no
// baseline or staffed-bed data for any requested program are omitted from
// the output rather than reported as errors.
func (s *Service) ComputeScenario(ctx context.Context, req *ScenarioRequest) (*ScenarioResponse, error) {
	req.Normalize(s.defaultSchedule)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Reference reads are batched per program across all requested sites.
	perSite := make(map[int][]*SiteResult, len(req.Sites))
	for _, programID := range req.ProgramIDs {
		if err := s.projectProgram(ctx, req, programID, perSite); err != nil {
			return nil, err
		}
	}

	bySite := make([]*SiteResult, 0, len(req.Sites))
	kpis := ScenarioKPIs{}
	totalPatientDays := 0
	var totalFTE *float64

	// Sites are emitted in request order.
	for _, siteID := range req.Sites {
		results := perSite[siteID]
		if len(results) == 0 {
			continue
		}
		agg := aggregateSite(results)
		bySite = append(bySite, agg)

		kpis.TotalRequiredBeds += agg.RequiredBeds
		kpis.TotalStaffedBeds += agg.StaffedBeds
		kpis.TotalAdmissions += agg.AdmissionsProjected
		totalPatientDays += agg.PatientDays
		if agg.NursingFTE != nil {
			v := *agg.NursingFTE
			if totalFTE != nil {
				v += *totalFTE
			}
			v = round1(v)
			totalFTE = &v
		}
	}

	kpis.TotalCapacityGap = kpis.TotalRequiredBeds - kpis.TotalStaffedBeds
	kpis.TotalNursingFTE = totalFTE
	if kpis.TotalStaffedBeds > 0 {
		kpis.AvgOccupancy = round3(float64(totalPatientDays) / (float64(kpis.TotalStaffedBeds) * 365))
	}
	// Patient-day-weighted LOS recomputed from totals. This intentionally
	// differs from the per-site simple mean in aggregateSite.
	if kpis.TotalAdmissions > 0 {
		kpis.AvgLOSEffective = round2(float64(totalPatientDays) / float64(kpis.TotalAdmissions))
	}

	return &ScenarioResponse{
		KPIs:   kpis,
		BySite: bySite,
		Metadata: map[string]interface{}{
			"request_params": req,
			"model_version":  modelVersion,
		},
	}, nil
}

// projectProgram fetches the reference rows for one program across all
// requested sites and appends a per-program result for every site that has
// both a baseline and staffed beds.
func (s *Service) projectProgram(ctx context.Context, req *ScenarioRequest, programID int, perSite map[int][]*SiteResult) error {
	baselines, err := s.ref.Baselines(ctx, req.Sites, programID, req.BaselineYear)
	if err != nil {
		return fmt.Errorf("load baselines for program %d: %w", programID, err)
	}
	beds, err := s.ref.StaffedBedsFor(ctx, req.Sites, programID, req.Params.ScheduleCode)
	if err != nil {
		return fmt.Errorf("load staffed beds for program %d: %w", programID, err)
	}
	history, err := s.ref.HistoricalAdmissions(ctx, req.Sites, programID, req.BaselineYear)
	if err != nil {
		return fmt.Errorf("load historical admissions for program %d: %w", programID, err)
	}
	staffing, err := s.ref.StaffingFactor(ctx, programID)
	if err != nil {
		return fmt.Errorf("load staffing factor for program %d: %w", programID, err)
	}

	baselineBySite := make(map[int]*SiteBaseline, len(baselines))
	for _, b := range baselines {
		baselineBySite[b.SiteID] = b
	}
	bedsBySite := make(map[int]*StaffedBeds, len(beds))
	for _, b := range beds {
		bedsBySite[b.SiteID] = b
	}
	historyBySite := make(map[int]*HistoricalAdmissions, len(history))
	for _, h := range history {
		historyBySite[h.SiteID] = h
	}

	for _, siteID := range req.Sites {
		in := ProjectionInput{
			SiteID:       siteID,
			ProgramID:    programID,
			Baseline:     baselineBySite[siteID],
			Beds:         bedsBySite[siteID],
			History:      historyBySite[siteID],
			Staffing:     staffing,
			Params:       req.Params,
			HorizonYears: req.HorizonYears,
		}
		if in.Baseline == nil || in.Beds == nil {
			continue
		}
		if req.Params.Seasonality {
			factor, err := AverageSeasonality(ctx, s.ref, siteID, programID)
			if err != nil {
				return fmt.Errorf("resolve seasonality for site %d program %d: %w", siteID, programID, err)
			}
			in.SeasonalityFactor = factor
		}
		if result := Project(in); result != nil {
			perSite[siteID] = append(perSite[siteID], result)
		}
	}
	return nil
}

// aggregateSite folds the per-program results for one site into a single
// row. Counts are summed; LOS is the simple mean of the per-program display
// values, deliberately not weighted by admissions; FTE is summed over the
// programs that have one.
func aggregateSite(results []*SiteResult) *SiteResult {
	first := results[0]
	if len(results) == 1 {
		return first
	}

	agg := &SiteResult{
		SiteID:   first.SiteID,
		SiteCode: first.SiteCode,
		SiteName: first.SiteName,
	}
	losSum := 0.0
	var fteSum *float64
	for _, r := range results {
		agg.AdmissionsProjected += r.AdmissionsProjected
		agg.PatientDays += r.PatientDays
		agg.RequiredBeds += r.RequiredBeds
		agg.StaffedBeds += r.StaffedBeds
		losSum += r.LOSEffective
		if r.NursingFTE != nil {
			v := *r.NursingFTE
			if fteSum != nil {
				v += *fteSum
			}
			v = round1(v)
			fteSum = &v
		}
	}
	agg.LOSEffective = round2(losSum / float64(len(results)))
	agg.CensusAverage = round1(float64(agg.PatientDays) / 365.0)
	agg.CapacityGap = agg.RequiredBeds - agg.StaffedBeds
	agg.NursingFTE = fteSum
	return agg
}
