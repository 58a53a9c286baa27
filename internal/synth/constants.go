package synth

// The fictional Lower Mainland hospital network. Site and LHA identifiers
// are positional, starting at 1, matching the order below.
var facilities = []struct {
	Code string
	Name string
}{
	{"LM-SNW", "Snowberry General"},
	{"LM-BLH", "Blue Heron Medical"},
	{"LM-SLM", "Salmon Run Hospital"},
	{"LM-MSC", "Mossy Cedar Community"},
	{"LM-OTB", "Otter Bay Medical Centre"},
	{"LM-BRC", "Bear Creek Hospital"},
	{"LM-DFT", "Driftwood Regional"},
	{"LM-STG", "Stargazer Health Centre"},
	{"LM-SRC", "Sunrise Coast Hospital"},
	{"LM-GRS", "Grouse Ridge Medical"},
	{"LM-FGH", "Foggy Harbor Hospital"},
	{"LM-GPK", "Granite Peak Medical"},
}

var lhasToFacilities = []struct {
	Name         string
	FacilityCode string
}{
	{"Harborview", "LM-FGH"},
	{"Riverbend", "LM-BRC"},
	{"North Shoreline", "LM-GRS"},
	{"Cedar Heights", "LM-MSC"},
	{"Lakeside Plains", "LM-SNW"},
	{"Granite Hills", "LM-GPK"},
	{"Sunset Promenade", "LM-SRC"},
	{"Driftwood Inlet", "LM-DFT"},
	{"Otter Cove", "LM-OTB"},
	{"Blueberry Meadows", "LM-BLH"},
	{"Silver Falls", "LM-SLM"},
	{"Stargazer Valley", "LM-STG"},
}

var programs = []struct {
	ID   int
	Name string
}{
	{1, "Medicine"},
	{2, "Inpatient MHSU"},
	{3, "MICY"},
	{4, "Critical Care"},
	{5, "Surgery / Periop"},
	{6, "Emergency"},
	{7, "Cardiac"},
	{8, "Renal"},
	{9, "Rehabilitation"},
	{10, "Primary Health Care"},
	{11, "Chronic Disease Mgmt"},
	{12, "Population & Public Health"},
	{13, "Palliative Care"},
	{14, "Trauma"},
	{15, "Specialized Community Services"},
	{16, "Pain Services"},
}

// Subprograms exist only for the first six programs.
var subprograms = []struct {
	ProgramID    int
	SubprogramID int
	Name         string
}{
	{1, 1, "General Medicine"},
	{1, 2, "Hospitalist"},
	{1, 3, "ACE (Acute Care for Elderly)"},
	{2, 1, "Adult Inpatient Psychiatry"},
	{2, 2, "Psychiatric High Acuity/ICU"},
	{2, 3, "Substance Use Stabilization"},
	{3, 1, "Labour & Delivery"},
	{3, 2, "Post-partum/Maternity"},
	{3, 3, "Inpatient Pediatrics"},
	{4, 1, "ICU (Med-Surg)"},
	{4, 2, "High Acuity/Step-Down"},
	{4, 3, "Rapid Response/Outreach"},
	{5, 1, "Operating Room"},
	{5, 2, "PACU/Day Surgery"},
	{5, 3, "Surgical Inpatient Unit"},
	{6, 1, "Adult ED"},
	{6, 2, "Pediatric ED"},
	{6, 3, "Urgent Care Centre"},
}

var ageGroups = []string{"0-4", "5-14", "15-24", "25-44", "45-64", "65-74", "75-84", "85+"}

// Inclusive age bounds per group, for DOB generation.
var ageBounds = map[string][2]int{
	"0-4":   {0, 4},
	"5-14":  {5, 14},
	"15-24": {15, 24},
	"25-44": {25, 44},
	"45-64": {45, 64},
	"65-74": {65, 74},
	"75-84": {75, 84},
	"85+":   {85, 95},
}

var basePopulationByAgeGroup = map[string]int{
	"0-4":   800,
	"5-14":  1200,
	"15-24": 1500,
	"25-44": 2000,
	"45-64": 1800,
	"65-74": 1200,
	"75-84": 800,
	"85+":   400,
}

var genders = []string{"Female", "Male", "Other"}

var edSubservices = []string{"Adult ED", "Pediatric ED", "Urgent Care Centre"}

// Bed allocations are modelled for the key inpatient programs only.
var keyBedPrograms = []int{1, 2, 4, 6}

// Per-program LOS and ALC distribution parameters for clinical baselines.
var programBaselines = map[int]struct {
	LOSMean float64
	LOSStd  float64
	ALCMean float64
	ALCStd  float64
}{
	1: {5.8, 0.8, 0.12, 0.02},
	2: {4.2, 0.4, 0.08, 0.01},
	3: {6.5, 1.0, 0.15, 0.03},
	4: {8.3, 1.2, 0.05, 0.02},
	5: {3.8, 0.5, 0.06, 0.01},
	6: {0.5, 0.1, 0.02, 0.01},
}

// Global monthly demand curve, indexed by month 1..12.
var globalSeasonality = []float64{1.00, 1.00, 1.02, 1.01, 1.00, 1.00, 0.98, 0.98, 1.01, 1.02, 1.03, 1.04}

// Emergency runs hotter in mid-summer and winter.
var emergencySeasonality = []struct {
	Month      int
	Multiplier float64
}{
	{7, 1.05},
	{8, 1.05},
	{12, 1.08},
	{1, 1.06},
}

const emergencyProgramID = 6

// Nursing hours per patient day by program.
var programHPPD = []struct {
	ProgramID int
	HPPD      float64
}{
	{1, 6.5},
	{2, 5.8},
	{3, 8.2},
	{4, 12.5},
	{5, 4.5},
	{6, 4.2},
}

const annualHoursPerFTE = 1950
