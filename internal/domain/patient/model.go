package patient

import "time"

// Patient is one synthetic patient demographic row.
type Patient struct {
	PatientID           string    `db:"patient_id" json:"patient_id"`
	DOB                 time.Time `db:"dob" json:"dob"`
	AgeGroup            string    `db:"age_group" json:"age_group"`
	Gender              string    `db:"gender" json:"gender"`
	LHAID               int       `db:"lha_id" json:"lha_id"`
	FacilityHomeID      int       `db:"facility_home_id" json:"facility_home_id"`
	PrimaryEDSubservice string    `db:"primary_ed_subservice" json:"primary_ed_subservice"`
	EDVisitsYear        int       `db:"ed_visits_year" json:"ed_visits_year"`
}

// EDEncounter is one emergency department visit.
type EDEncounter struct {
	EncounterID  int       `db:"encounter_id" json:"encounter_id"`
	PatientID    string    `db:"patient_id" json:"patient_id"`
	FacilityID   int       `db:"facility_id" json:"facility_id"`
	EDSubservice string    `db:"ed_subservice" json:"ed_subservice"`
	ArrivalTS    time.Time `db:"arrival_ts" json:"arrival_ts"`
	Acuity       int       `db:"acuity" json:"acuity"`
	Disposition  string    `db:"dispo" json:"disposition"`
}

// IPStay is one inpatient stay. Discharge and LOS are null while the stay
// is open.
type IPStay struct {
	StayID       int        `db:"stay_id" json:"stay_id"`
	PatientID    string     `db:"patient_id" json:"patient_id"`
	FacilityID   int        `db:"facility_id" json:"facility_id"`
	ProgramID    int        `db:"program_id" json:"program_id"`
	SubprogramID int        `db:"subprogram_id" json:"subprogram_id"`
	AdmitTS      time.Time  `db:"admit_ts" json:"admit_ts"`
	DischargeTS  *time.Time `db:"discharge_ts" json:"discharge_ts"`
	LOSDays      *float64   `db:"los_days" json:"los_days"`
	ALCFlag      bool       `db:"alc_flag" json:"alc_flag"`
}

// PopulationProjection is one projected population cohort count.
type PopulationProjection struct {
	Year       int    `db:"year" json:"year"`
	LHAID      int    `db:"lha_id" json:"lha_id"`
	AgeGroup   string `db:"age_group" json:"age_group"`
	Gender     string `db:"gender" json:"gender"`
	Population int    `db:"population" json:"population"`
}

// EDBaselineRate is the baseline ED utilisation rate for one cohort and
// subservice.
type EDBaselineRate struct {
	LHAID           int     `db:"lha_id" json:"lha_id"`
	AgeGroup        string  `db:"age_group" json:"age_group"`
	Gender          string  `db:"gender" json:"gender"`
	EDSubservice    string  `db:"ed_subservice" json:"ed_subservice"`
	BaseratePer1000 float64 `db:"baserate_per_1000" json:"baserate_per_1000"`
}

// Filter carries the optional list filters shared across the endpoints.
// Each field applies only where the underlying data has a matching column.
type Filter struct {
	FacilityID *int
	LHAID      *int
	AgeGroup   string
	Gender     string
	Year       *int
	PatientID  string
}
