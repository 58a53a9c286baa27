// Package synth generates the deterministic synthetic dataset for the
// fictional Lower Mainland hospital network: dimension tables, population
// projections, ED utilisation rates, patients with encounters and stays,
// and the capacity-model reference tables.
package synth

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config controls one generation run. Zero values fall back to the
// defaults, so Config{} reproduces the stock dataset.
type Config struct {
	// Patients is the number of synthetic patients. Default 1000.
	Patients int
	// Seed drives every random draw. Equal seeds yield byte-identical
	// output. Default 42.
	Seed uint64
	// BaselineYear dates the encounters and stays, aligning them with the
	// clinical baseline that scenario projections read. Default 2022.
	BaselineYear int
	// ReferenceYear anchors patient ages and population projections.
	// Default 2025.
	ReferenceYear int
	// ScheduleCode labels the staffed-bed schedule. Default "Sched-A".
	ScheduleCode string
}

func (c Config) withDefaults() Config {
	if c.Patients <= 0 {
		c.Patients = 1000
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.BaselineYear == 0 {
		c.BaselineYear = 2022
	}
	if c.ReferenceYear == 0 {
		c.ReferenceYear = 2025
	}
	if c.ScheduleCode == "" {
		c.ScheduleCode = "Sched-A"
	}
	return c
}

type generator struct {
	cfg Config
	rng *rand.Rand
}

// Generate builds the full dataset for the given configuration.
func Generate(cfg Config) *Dataset {
	cfg = cfg.withDefaults()
	g := &generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}

	ds := &Dataset{}
	g.dimensions(ds)
	g.population(ds)
	g.edRates(ds)
	g.patients(ds)
	g.encounters(ds)
	g.stays(ds)
	g.staffedBeds(ds)
	g.baselines(ds)
	g.seasonality(ds)
	g.staffing(ds)
	return ds
}

func (g *generator) dimensions(ds *Dataset) {
	siteByCode := make(map[string]int, len(facilities))
	for i, f := range facilities {
		siteByCode[f.Code] = i + 1
		ds.Sites = append(ds.Sites, SiteRow{SiteCode: f.Code, SiteName: f.Name})
	}
	for _, p := range programs {
		ds.Programs = append(ds.Programs, ProgramRow{ProgramID: p.ID, ProgramName: p.Name})
	}
	for _, sp := range subprograms {
		ds.Subprograms = append(ds.Subprograms, SubprogramRow{
			ProgramID:      sp.ProgramID,
			SubprogramID:   sp.SubprogramID,
			SubprogramName: sp.Name,
		})
	}
	for _, l := range lhasToFacilities {
		ds.LHAs = append(ds.LHAs, LHARow{LHAName: l.Name, DefaultSiteID: siteByCode[l.FacilityCode]})
	}
}

// population projects ten years of cohort counts. Values are fully
// deterministic: size by age band, larger multiplier for three LHAs, near
// even gender split, one percent annual growth.
func (g *generator) population(ds *Dataset) {
	start := g.cfg.ReferenceYear
	for year := start; year < start+10; year++ {
		for lhaID := 1; lhaID <= len(lhasToFacilities); lhaID++ {
			lhaMultiplier := 1.0
			if lhaID == 1 || lhaID == 3 || lhaID == 5 {
				lhaMultiplier = 1.5
			}
			for _, ageGroup := range ageGroups {
				for _, gender := range genders {
					genderMultiplier := 0.02
					if gender == "Female" || gender == "Male" {
						genderMultiplier = 0.49
					}
					growth := 1 + 0.01*float64(year-start)
					population := int(float64(basePopulationByAgeGroup[ageGroup]) * lhaMultiplier * genderMultiplier * growth)
					ds.Population = append(ds.Population, PopulationRow{
						Year:       year,
						LHAID:      lhaID,
						AgeGroup:   ageGroup,
						Gender:     gender,
						Population: population,
					})
				}
			}
		}
	}
}

func (g *generator) edRates(ds *Dataset) {
	for lhaID := 1; lhaID <= len(lhasToFacilities); lhaID++ {
		for _, ageGroup := range ageGroups {
			for _, gender := range genders {
				for _, subservice := range edSubservices {
					base := g.baseEDRate(ageGroup, subservice)
					rate := base * g.genderRateFactor(gender)
					ds.EDRates = append(ds.EDRates, EDRateRow{
						LHAID:           lhaID,
						AgeGroup:        ageGroup,
						Gender:          gender,
						EDSubservice:    subservice,
						BaseratePer1000: round2(rate),
					})
				}
			}
		}
	}
}

func (g *generator) baseEDRate(ageGroup, subservice string) float64 {
	switch subservice {
	case "Pediatric ED":
		switch ageGroup {
		case "0-4", "5-14":
			return g.uniform(150, 250)
		case "15-24":
			return g.uniform(50, 100)
		default:
			return g.uniform(5, 20)
		}
	case "Adult ED":
		switch ageGroup {
		case "0-4", "5-14":
			return g.uniform(10, 30)
		case "75-84", "85+":
			return g.uniform(200, 400)
		default:
			return g.uniform(80, 150)
		}
	default: // Urgent Care Centre
		return g.uniform(40, 80)
	}
}

func (g *generator) genderRateFactor(gender string) float64 {
	switch gender {
	case "Female":
		return g.uniform(0.95, 1.05)
	case "Male":
		return g.uniform(0.90, 1.10)
	default:
		return g.uniform(0.85, 1.15)
	}
}

func (g *generator) patients(ds *Dataset) {
	for i := 0; i < g.cfg.Patients; i++ {
		lhaID := 1 + g.rng.Intn(len(lhasToFacilities))

		// Most patients use their LHA's default facility; a tenth cross
		// over to a random one.
		facilityHomeID := lhaID
		if g.rng.Float64() >= 0.9 {
			facilityHomeID = 1 + g.rng.Intn(len(facilities))
		}

		ageGroup := ageGroups[g.rng.Intn(len(ageGroups))]
		gender := g.weightedString(genders, []int{49, 49, 2})

		bounds := ageBounds[ageGroup]
		age := bounds[0] + g.rng.Intn(bounds[1]-bounds[0]+1)
		dob := time.Date(g.cfg.ReferenceYear-age, time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28), 0, 0, 0, 0, time.UTC)

		var primary string
		switch {
		case age < 18:
			primary = "Pediatric ED"
		case age >= 65:
			primary = g.weightedString([]string{"Adult ED", "Urgent Care Centre"}, []int{70, 30})
		default:
			primary = g.weightedString([]string{"Adult ED", "Urgent Care Centre"}, []int{60, 40})
		}

		expectedRate := g.uniform(0.5, 3.0)
		visits := int(distuv.Poisson{Lambda: expectedRate, Src: g.rng}.Rand())
		if visits < 1 {
			visits = 1
		}

		ds.Patients = append(ds.Patients, PatientRow{
			PatientID:           g.patientID(),
			LHAID:               lhaID,
			FacilityHomeID:      facilityHomeID,
			AgeGroup:            ageGroup,
			Gender:              gender,
			DOB:                 dob,
			PrimaryEDSubservice: primary,
			ExpectedEDRate:      round4(expectedRate),
			EDVisitsYear:        visits,
		})
	}
}

// patientID builds an uppercase 12-hex-digit identifier from the seeded
// stream, so IDs stay reproducible across runs.
func (g *generator) patientID() string {
	return fmt.Sprintf("P%012X", g.rng.Uint64()&0xFFFFFFFFFFFF)
}

const maxEncountersPerPatient = 2

func (g *generator) encounters(ds *Dataset) {
	encounterID := 1
	for _, p := range ds.Patients {
		n := p.EDVisitsYear
		if n > maxEncountersPerPatient {
			n = maxEncountersPerPatient
		}
		for j := 0; j < n; j++ {
			facilityID := p.FacilityHomeID
			if g.rng.Float64() >= 0.9 {
				facilityID = 1 + g.rng.Intn(len(facilities))
			}
			ds.EDEncounters = append(ds.EDEncounters, EncounterRow{
				EncounterID:  encounterID,
				PatientID:    p.PatientID,
				FacilityID:   facilityID,
				EDSubservice: p.PrimaryEDSubservice,
				ArrivalTS:    g.timestampIn(g.cfg.BaselineYear, time.January, time.December),
				Acuity:       g.weightedInt([]int{1, 2, 3, 4, 5}, []int{5, 15, 40, 30, 10}),
				Disposition:  g.weightedString([]string{"Discharge", "Admit", "Transfer", "AMA", "Death"}, []int{75, 15, 5, 4, 1}),
			})
			encounterID++
		}
	}
}

func (g *generator) stays(ds *Dataset) {
	stayID := 1
	for _, p := range ds.Patients {
		// A fifth of patients have an inpatient stay.
		if g.rng.Float64() >= 0.2 {
			continue
		}

		// Admissions stop at end of November so the stay can close within
		// the year.
		admit := g.timestampIn(g.cfg.BaselineYear, time.January, time.November)
		programID := 1 + g.rng.Intn(6)
		subprogramID := 1 + g.rng.Intn(3)

		var los float64
		switch {
		case p.AgeGroup == "75-84" || p.AgeGroup == "85+":
			los = distuv.LogNormal{Mu: 2.0, Sigma: 1.0, Src: g.rng}.Rand()
		case programID == 4:
			los = distuv.LogNormal{Mu: 1.5, Sigma: 0.8, Src: g.rng}.Rand()
		default:
			los = distuv.LogNormal{Mu: 1.0, Sigma: 0.6, Src: g.rng}.Rand()
		}
		if los < 0.25 {
			los = 0.25
		}
		los = round2(los)

		alcProb := 0.1
		if p.AgeGroup == "75-84" || p.AgeGroup == "85+" {
			alcProb = 0.3
		}
		if programID == 1 {
			alcProb *= 2
		}

		ds.IPStays = append(ds.IPStays, StayRow{
			StayID:       stayID,
			PatientID:    p.PatientID,
			FacilityID:   p.FacilityHomeID,
			ProgramID:    programID,
			SubprogramID: subprogramID,
			AdmitTS:      admit,
			DischargeTS:  admit.Add(time.Duration(los * float64(24*time.Hour))),
			LOSDays:      los,
			ALCFlag:      g.rng.Float64() < alcProb,
		})
		stayID++
	}
}

func (g *generator) staffedBeds(ds *Dataset) {
	for siteID := 1; siteID <= len(facilities); siteID++ {
		baseMedicine := 40 + g.rng.Intn(50)
		for _, programID := range keyBedPrograms {
			var beds int
			switch programID {
			case 1:
				beds = baseMedicine
			case 2:
				beds = int(float64(baseMedicine) * 0.3)
			case 4:
				beds = int(float64(baseMedicine) * 0.15)
				if beds < 8 {
					beds = 8
				}
			case 6:
				beds = 15 + g.rng.Intn(20)
			}
			ds.StaffedBeds = append(ds.StaffedBeds, StaffedBedsRow{
				SiteID:       siteID,
				ProgramID:    programID,
				ScheduleCode: g.cfg.ScheduleCode,
				StaffedBeds:  beds,
			})
		}
	}
}

func (g *generator) baselines(ds *Dataset) {
	for siteID := 1; siteID <= len(facilities); siteID++ {
		for programID := 1; programID <= 6; programID++ {
			b := programBaselines[programID]
			los := distuv.Normal{Mu: b.LOSMean, Sigma: b.LOSStd, Src: g.rng}.Rand()
			if los < 0.25 {
				los = 0.25
			}
			alc := distuv.Normal{Mu: b.ALCMean, Sigma: b.ALCStd, Src: g.rng}.Rand()
			alc = math.Max(0.0, math.Min(0.30, alc))

			ds.Baselines = append(ds.Baselines, BaselineRow{
				SiteID:       siteID,
				ProgramID:    programID,
				BaselineYear: g.cfg.BaselineYear,
				LOSBaseDays:  round3(los),
				ALCRate:      round4(alc),
			})
		}
	}
}

func (g *generator) seasonality(ds *Dataset) {
	for month := 1; month <= 12; month++ {
		ds.Seasonality = append(ds.Seasonality, SeasonalityRow{
			Month:      month,
			Multiplier: globalSeasonality[month-1],
		})
	}
	programID := emergencyProgramID
	for _, override := range emergencySeasonality {
		ds.Seasonality = append(ds.Seasonality, SeasonalityRow{
			ProgramID:  &programID,
			Month:      override.Month,
			Multiplier: override.Multiplier,
		})
	}
}

func (g *generator) staffing(ds *Dataset) {
	for _, p := range programHPPD {
		ds.Staffing = append(ds.Staffing, StaffingRow{
			ProgramID:          p.ProgramID,
			HPPD:               round3(p.HPPD * g.uniform(0.95, 1.05)),
			AnnualHoursPerFTE:  annualHoursPerFTE,
			ProductivityFactor: round3(g.uniform(0.88, 0.95)),
		})
	}
}

func (g *generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// timestampIn draws a timestamp between the first day of fromMonth and the
// last second of toMonth in the given year.
func (g *generator) timestampIn(year int, fromMonth, toMonth time.Month) time.Time {
	start := time.Date(year, fromMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, toMonth+1, 1, 0, 0, 0, 0, time.UTC)
	window := int64(end.Sub(start) / time.Second)
	return start.Add(time.Duration(g.rng.Int63n(window)) * time.Second)
}

func (g *generator) weightedString(values []string, weights []int) string {
	return values[g.weightedIndex(weights)]
}

func (g *generator) weightedInt(values []int, weights []int) int {
	return values[g.weightedIndex(weights)]
}

func (g *generator) weightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	pick := g.rng.Intn(total)
	for i, w := range weights {
		if pick < w {
			return i
		}
		pick -= w
	}
	return len(weights) - 1
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
