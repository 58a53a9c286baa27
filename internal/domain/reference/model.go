package reference

// Site is one acute-care facility in the network. Maps to the dim_site table.
type Site struct {
	SiteID   int    `db:"site_id" json:"site_id"`
	SiteCode string `db:"site_code" json:"site_code"`
	SiteName string `db:"site_name" json:"site_name"`
}

// Program is a clinical program (Medicine, Surgery, ...). Maps to dim_program.
type Program struct {
	ProgramID   int    `db:"program_id" json:"program_id"`
	ProgramName string `db:"program_name" json:"program_name"`
}

// Subprogram is a unit within a program. Subprogram IDs are only unique
// within their parent program.
type Subprogram struct {
	ProgramID      int    `db:"program_id" json:"program_id"`
	SubprogramID   int    `db:"subprogram_id" json:"subprogram_id"`
	SubprogramName string `db:"subprogram_name" json:"subprogram_name"`
}

// LHA is a local health area with its default referral site.
type LHA struct {
	LHAID         int    `db:"lha_id" json:"lha_id"`
	LHAName       string `db:"lha_name" json:"lha_name"`
	DefaultSiteID int    `db:"default_site_id" json:"default_site_id"`
}

// StaffedBeds is the funded bed count for a site/program under a given
// bed schedule.
type StaffedBeds struct {
	SiteID       int    `db:"site_id" json:"site_id"`
	ProgramID    int    `db:"program_id" json:"program_id"`
	ScheduleCode string `db:"schedule_code" json:"schedule_code"`
	StaffedBeds  int    `db:"staffed_beds" json:"staffed_beds"`
}

// ClinicalBaseline holds the observed acute length of stay and ALC rate for
// a site/program in a baseline fiscal year.
type ClinicalBaseline struct {
	SiteID       int     `db:"site_id" json:"site_id"`
	ProgramID    int     `db:"program_id" json:"program_id"`
	BaselineYear int     `db:"baseline_year" json:"baseline_year"`
	LOSBaseDays  float64 `db:"los_base_days" json:"los_base_days"`
	ALCRate      float64 `db:"alc_rate" json:"alc_rate"`
}

// SeasonalityMultiplier is a monthly demand multiplier. Site and program are
// nullable: a row with both nil is the global curve, program-only rows
// override it, and site+program rows are the most specific tier.
type SeasonalityMultiplier struct {
	SiteID     *int    `db:"site_id" json:"site_id,omitempty"`
	ProgramID  *int    `db:"program_id" json:"program_id,omitempty"`
	Month      int     `db:"month" json:"month"`
	Multiplier float64 `db:"multiplier" json:"multiplier"`
}

// StaffingFactor holds the nursing workload constants for a program.
type StaffingFactor struct {
	ProgramID          int     `db:"program_id" json:"program_id"`
	SubprogramID       *int    `db:"subprogram_id" json:"subprogram_id,omitempty"`
	HPPD               float64 `db:"hppd" json:"hppd"`
	AnnualHoursPerFTE  float64 `db:"annual_hours_per_fte" json:"annual_hours_per_fte"`
	ProductivityFactor float64 `db:"productivity_factor" json:"productivity_factor"`
}
