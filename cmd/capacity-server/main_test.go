package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lowermainland/capacity/internal/config"
	"github.com/lowermainland/capacity/internal/synth"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dataDir := t.TempDir()
	ds := synth.Generate(synth.Config{Patients: 50})
	if err := synth.WriteAll(ds, dataDir); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	return &config.Config{
		Port:            "8080",
		Env:             "test",
		DataDir:         dataDir,
		SavedDir:        filepath.Join(t.TempDir(), "saved"),
		DefaultSchedule: "Sched-A",
		CORSOrigins:     []string{"http://localhost:3000"},
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		RequestTimeout:  10,
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := buildServer(testConfig(t), zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if body["version"] != version {
		t.Errorf("expected version %q, got %q", version, body["version"])
	}
}

func TestHealthDBRouteAbsentWithoutPool(t *testing.T) {
	e := buildServer(testConfig(t), zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /health/db without a pool, got %d", rec.Code)
	}
}

func TestReferenceRoutesServeGeneratedData(t *testing.T) {
	e := buildServer(testConfig(t), zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reference/sites", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []json.RawMessage `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Meta.Count != 12 {
		t.Errorf("expected 12 sites, got %d", body.Meta.Count)
	}
}

func TestComputeEndToEnd(t *testing.T) {
	e := buildServer(testConfig(t), zerolog.Nop(), nil)

	payload := `{
		"sites": [1, 2],
		"program_ids": [1],
		"horizon_years": 2,
		"params": {
			"growth_pct": 0.02,
			"occupancy_target": 0.9,
			"los_delta": 0,
			"alc_target": 0.1
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios/compute", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		BySite []struct {
			SiteID int `json:"site_id"`
		} `json:"by_site"`
		KPIs struct {
			TotalAdmissions int `json:"total_admissions"`
		} `json:"kpis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.BySite) == 0 {
		t.Fatal("expected at least one site in the projection")
	}
	if body.KPIs.TotalAdmissions <= 0 {
		t.Errorf("expected positive projected admissions, got %d", body.KPIs.TotalAdmissions)
	}
}
