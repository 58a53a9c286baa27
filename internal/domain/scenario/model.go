package scenario

// SiteBaseline holds the clinical baseline for one site and program in the
// baseline year, joined with the site identity.
type SiteBaseline struct {
	SiteID       int     `db:"site_id" json:"site_id"`
	SiteCode     string  `db:"site_code" json:"site_code"`
	SiteName     string  `db:"site_name" json:"site_name"`
	ProgramID    int     `db:"program_id" json:"program_id"`
	BaselineYear int     `db:"baseline_year" json:"baseline_year"`
	LOSBaseDays  float64 `db:"los_base_days" json:"los_base_days"`
	ALCRate      float64 `db:"alc_rate" json:"alc_rate"`
}

// StaffedBeds is the funded bed count for one site and program.
type StaffedBeds struct {
	SiteID      int `db:"site_id" json:"site_id"`
	ProgramID   int `db:"program_id" json:"program_id"`
	StaffedBeds int `db:"staffed_beds" json:"staffed_beds"`
}

// HistoricalAdmissions aggregates observed inpatient stays for one site.
// The observed LOS and ALC rate are informational; only AdmissionsBase
// feeds the projection.
type HistoricalAdmissions struct {
	SiteID          int     `db:"site_id" json:"site_id"`
	AdmissionsBase  int     `db:"admissions_base" json:"admissions_base"`
	LOSObserved     float64 `db:"los_observed" json:"los_observed"`
	ALCRateObserved float64 `db:"alc_rate_observed" json:"alc_rate_observed"`
}

// StaffingFactor holds the program-level nursing workload constants.
type StaffingFactor struct {
	ProgramID          int     `db:"program_id" json:"program_id"`
	HPPD               float64 `db:"hppd" json:"hppd"`
	AnnualHoursPerFTE  float64 `db:"annual_hours_per_fte" json:"annual_hours_per_fte"`
	ProductivityFactor float64 `db:"productivity_factor" json:"productivity_factor"`
}

// ScenarioParams are the knobs a planner can turn on a what-if scenario.
type ScenarioParams struct {
	OccupancyTarget float64 `json:"occupancy_target"`
	LOSDelta        float64 `json:"los_delta"`
	ALCTarget       float64 `json:"alc_target"`
	GrowthPct       float64 `json:"growth_pct"`
	ScheduleCode    string  `json:"schedule_code"`
	Seasonality     bool    `json:"seasonality"`
}

// ScenarioRequest is a scenario computation request. A single program_id is
// accepted for backwards compatibility and folded into ProgramIDs by
// Normalize.
type ScenarioRequest struct {
	Sites        []int          `json:"sites"`
	ProgramID    *int           `json:"program_id,omitempty"`
	ProgramIDs   []int          `json:"program_ids,omitempty"`
	BaselineYear int            `json:"baseline_year"`
	HorizonYears int            `json:"horizon_years"`
	Params       ScenarioParams `json:"params"`
}

// DefaultBaselineYear is used when a request omits the baseline year.
const DefaultBaselineYear = 2022

// Normalize fills defaults and folds the legacy single program_id field into
// the program list.
func (r *ScenarioRequest) Normalize(defaultSchedule string) {
	if len(r.ProgramIDs) == 0 && r.ProgramID != nil {
		r.ProgramIDs = []int{*r.ProgramID}
	}
	if r.BaselineYear == 0 {
		r.BaselineYear = DefaultBaselineYear
	}
	if r.Params.ScheduleCode == "" {
		r.Params.ScheduleCode = defaultSchedule
	}
}

// Validate checks the documented parameter bounds. It assumes Normalize has
// already run.
func (r *ScenarioRequest) Validate() error {
	if len(r.Sites) == 0 {
		return &InvalidParameterError{Reason: "at least one site must be specified"}
	}
	if len(r.ProgramIDs) == 0 {
		return &InvalidParameterError{Reason: "at least one program must be specified"}
	}
	if r.HorizonYears < 0 {
		return &InvalidParameterError{Reason: "horizon_years must be non-negative"}
	}
	p := r.Params
	if p.OccupancyTarget < 0.80 || p.OccupancyTarget > 1.0 {
		return &InvalidParameterError{Reason: "occupancy_target must be between 0.80 and 1.0"}
	}
	if p.LOSDelta < -0.50 || p.LOSDelta > 0.50 {
		return &InvalidParameterError{Reason: "los_delta must be between -0.50 and 0.50"}
	}
	if p.ALCTarget < 0.0 || p.ALCTarget > 0.50 {
		return &InvalidParameterError{Reason: "alc_target must be between 0.0 and 0.50"}
	}
	if p.GrowthPct < -0.20 || p.GrowthPct > 0.20 {
		return &InvalidParameterError{Reason: "growth_pct must be between -0.20 and 0.20"}
	}
	return nil
}

// InvalidParameterError marks a request that violates a documented bound.
// Transport maps it to a client error.
type InvalidParameterError struct {
	Reason string
}

func (e *InvalidParameterError) Error() string { return e.Reason }

// SiteResult is the projection outcome for one site, aggregated across the
// requested programs.
type SiteResult struct {
	SiteID              int      `json:"site_id"`
	SiteCode            string   `json:"site_code"`
	SiteName            string   `json:"site_name"`
	AdmissionsProjected int      `json:"admissions_projected"`
	LOSEffective        float64  `json:"los_effective"`
	PatientDays         int      `json:"patient_days"`
	CensusAverage       float64  `json:"census_average"`
	RequiredBeds        int      `json:"required_beds"`
	StaffedBeds         int      `json:"staffed_beds"`
	CapacityGap         int      `json:"capacity_gap"`
	NursingFTE          *float64 `json:"nursing_fte,omitempty"`
}

// ScenarioKPIs roll SiteResult up across all emitted sites.
type ScenarioKPIs struct {
	TotalRequiredBeds int      `json:"total_required_beds"`
	TotalStaffedBeds  int      `json:"total_staffed_beds"`
	TotalCapacityGap  int      `json:"total_capacity_gap"`
	TotalNursingFTE   *float64 `json:"total_nursing_fte"`
	AvgOccupancy      float64  `json:"avg_occupancy"`
	TotalAdmissions   int      `json:"total_admissions"`
	AvgLOSEffective   float64  `json:"avg_los_effective"`
}

// ScenarioResponse is the full compute result.
type ScenarioResponse struct {
	KPIs     ScenarioKPIs           `json:"kpis"`
	BySite   []*SiteResult          `json:"by_site"`
	Metadata map[string]interface{} `json:"metadata"`
}
