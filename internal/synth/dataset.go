package synth

import "time"

// Dataset is one complete generated data set, in memory. Slices are ordered
// deterministically so equal seeds yield equal datasets.
type Dataset struct {
	Sites        []SiteRow
	Programs     []ProgramRow
	Subprograms  []SubprogramRow
	LHAs         []LHARow
	Population   []PopulationRow
	EDRates      []EDRateRow
	Patients     []PatientRow
	EDEncounters []EncounterRow
	IPStays      []StayRow
	StaffedBeds  []StaffedBedsRow
	Baselines    []BaselineRow
	Seasonality  []SeasonalityRow
	Staffing     []StaffingRow
}

type SiteRow struct {
	SiteCode string
	SiteName string
}

type ProgramRow struct {
	ProgramID   int
	ProgramName string
}

type SubprogramRow struct {
	ProgramID      int
	SubprogramID   int
	SubprogramName string
}

type LHARow struct {
	LHAName       string
	DefaultSiteID int
}

type PopulationRow struct {
	Year       int
	LHAID      int
	AgeGroup   string
	Gender     string
	Population int
}

type EDRateRow struct {
	LHAID           int
	AgeGroup        string
	Gender          string
	EDSubservice    string
	BaseratePer1000 float64
}

type PatientRow struct {
	PatientID           string
	LHAID               int
	FacilityHomeID      int
	AgeGroup            string
	Gender              string
	DOB                 time.Time
	PrimaryEDSubservice string
	ExpectedEDRate      float64
	EDVisitsYear        int
}

type EncounterRow struct {
	EncounterID  int
	PatientID    string
	FacilityID   int
	EDSubservice string
	ArrivalTS    time.Time
	Acuity       int
	Disposition  string
}

type StayRow struct {
	StayID       int
	PatientID    string
	FacilityID   int
	ProgramID    int
	SubprogramID int
	AdmitTS      time.Time
	DischargeTS  time.Time
	LOSDays      float64
	ALCFlag      bool
}

type StaffedBedsRow struct {
	SiteID       int
	ProgramID    int
	ScheduleCode string
	StaffedBeds  int
}

type BaselineRow struct {
	SiteID       int
	ProgramID    int
	BaselineYear int
	LOSBaseDays  float64
	ALCRate      float64
}

type SeasonalityRow struct {
	SiteID     *int
	ProgramID  *int
	Month      int
	Multiplier float64
}

type StaffingRow struct {
	ProgramID          int
	SubprogramID       *int
	HPPD               float64
	AnnualHoursPerFTE  int
	ProductivityFactor float64
}
