package patient

import (
	"context"
	"strings"
	"time"

	"github.com/lowermainland/capacity/internal/platform/csvstore"
	"github.com/lowermainland/capacity/pkg/pagination"
)

const (
	filePatients    = "patients.csv"
	fileEncounters  = "ed_encounters.csv"
	fileStays       = "ip_stays.csv"
	filePopulation  = "population_projection.csv"
	fileEDBaselines = "ed_baseline_rates.csv"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

type repoCSV struct {
	dir string
}

// NewCSVRepo serves the synthetic dataset directly from the generated CSV
// files, for running without a database.
func NewCSVRepo(dir string) Repository {
	return &repoCSV{dir: dir}
}

func (r *repoCSV) ListPatients(ctx context.Context, f Filter, p pagination.Params) ([]*Patient, int, error) {
	t, err := csvstore.Load(r.dir, filePatients)
	if err != nil {
		return nil, 0, err
	}
	var matched []*Patient
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if f.FacilityID != nil && row.Int("facility_home_id") != *f.FacilityID {
			continue
		}
		if f.LHAID != nil && row.Int("lha_id") != *f.LHAID {
			continue
		}
		if f.AgeGroup != "" && row.String("age_group") != f.AgeGroup {
			continue
		}
		if f.Gender != "" && row.String("gender") != f.Gender {
			continue
		}
		matched = append(matched, &Patient{
			PatientID:           row.String("patient_id"),
			DOB:                 parseDate(row.String("dob")),
			AgeGroup:            row.String("age_group"),
			Gender:              row.String("gender"),
			LHAID:               row.Int("lha_id"),
			FacilityHomeID:      row.Int("facility_home_id"),
			PrimaryEDSubservice: row.String("primary_ed_subservice"),
			EDVisitsYear:        row.Int("ed_visits_year"),
		})
	}
	paged, total := page(matched, p)
	return paged, total, nil
}

func (r *repoCSV) ListEDEncounters(ctx context.Context, f Filter, p pagination.Params) ([]*EDEncounter, int, error) {
	t, err := csvstore.Load(r.dir, fileEncounters)
	if err != nil {
		return nil, 0, err
	}
	var matched []*EDEncounter
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if f.PatientID != "" && row.String("patient_id") != f.PatientID {
			continue
		}
		if f.FacilityID != nil && row.Int("facility_id") != *f.FacilityID {
			continue
		}
		matched = append(matched, &EDEncounter{
			EncounterID:  row.Int("encounter_id"),
			PatientID:    row.String("patient_id"),
			FacilityID:   row.Int("facility_id"),
			EDSubservice: row.String("ed_subservice"),
			ArrivalTS:    parseTimestamp(row.String("arrival_ts")),
			Acuity:       row.Int("acuity"),
			Disposition:  row.String("dispo"),
		})
	}
	paged, total := page(matched, p)
	return paged, total, nil
}

func (r *repoCSV) ListIPStays(ctx context.Context, f Filter, p pagination.Params) ([]*IPStay, int, error) {
	t, err := csvstore.Load(r.dir, fileStays)
	if err != nil {
		return nil, 0, err
	}
	var matched []*IPStay
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if f.PatientID != "" && row.String("patient_id") != f.PatientID {
			continue
		}
		if f.FacilityID != nil && row.Int("facility_id") != *f.FacilityID {
			continue
		}
		stay := &IPStay{
			StayID:       row.Int("stay_id"),
			PatientID:    row.String("patient_id"),
			FacilityID:   row.Int("facility_id"),
			ProgramID:    row.Int("program_id"),
			SubprogramID: row.Int("subprogram_id"),
			AdmitTS:      parseTimestamp(row.String("admit_ts")),
			ALCFlag:      parseBool(row.String("alc_flag")),
		}
		if raw := row.String("discharge_ts"); raw != "" {
			ts := parseTimestamp(raw)
			stay.DischargeTS = &ts
		}
		if raw := row.String("los_days"); raw != "" {
			los := row.Float("los_days")
			stay.LOSDays = &los
		}
		matched = append(matched, stay)
	}
	paged, total := page(matched, p)
	return paged, total, nil
}

func (r *repoCSV) ListPopulationProjections(ctx context.Context, f Filter, p pagination.Params) ([]*PopulationProjection, int, error) {
	t, err := csvstore.Load(r.dir, filePopulation)
	if err != nil {
		return nil, 0, err
	}
	var matched []*PopulationProjection
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if f.LHAID != nil && row.Int("lha_id") != *f.LHAID {
			continue
		}
		if f.AgeGroup != "" && row.String("age_group") != f.AgeGroup {
			continue
		}
		if f.Gender != "" && row.String("gender") != f.Gender {
			continue
		}
		if f.Year != nil && row.Int("year") != *f.Year {
			continue
		}
		matched = append(matched, &PopulationProjection{
			Year:       row.Int("year"),
			LHAID:      row.Int("lha_id"),
			AgeGroup:   row.String("age_group"),
			Gender:     row.String("gender"),
			Population: row.Int("population"),
		})
	}
	paged, total := page(matched, p)
	return paged, total, nil
}

func (r *repoCSV) ListEDBaselineRates(ctx context.Context, f Filter, p pagination.Params) ([]*EDBaselineRate, int, error) {
	t, err := csvstore.Load(r.dir, fileEDBaselines)
	if err != nil {
		return nil, 0, err
	}
	var matched []*EDBaselineRate
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if f.LHAID != nil && row.Int("lha_id") != *f.LHAID {
			continue
		}
		if f.AgeGroup != "" && row.String("age_group") != f.AgeGroup {
			continue
		}
		if f.Gender != "" && row.String("gender") != f.Gender {
			continue
		}
		matched = append(matched, &EDBaselineRate{
			LHAID:           row.Int("lha_id"),
			AgeGroup:        row.String("age_group"),
			Gender:          row.String("gender"),
			EDSubservice:    row.String("ed_subservice"),
			BaseratePer1000: row.Float("baserate_per_1000"),
		})
	}
	paged, total := page(matched, p)
	return paged, total, nil
}

// page slices one page out of the matched rows and returns the unpaged
// total.
func page[T any](matched []*T, p pagination.Params) ([]*T, int) {
	total := len(matched)
	if p.Offset >= total {
		return []*T{}, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return matched[p.Offset:end], total
}

func parseDate(s string) time.Time {
	ts, _ := time.Parse(dateLayout, s)
	return ts
}

func parseTimestamp(s string) time.Time {
	if ts, err := time.Parse(timestampLayout, s); err == nil {
		return ts
	}
	ts, _ := time.Parse(time.RFC3339, s)
	return ts
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes":
		return true
	}
	return false
}
