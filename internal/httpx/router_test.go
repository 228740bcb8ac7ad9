package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rmartinez-edu/enrollcast/internal/config"
	"github.com/rmartinez-edu/enrollcast/internal/ingest"
	"github.com/rmartinez-edu/enrollcast/internal/models"
	"github.com/rmartinez-edu/enrollcast/internal/report"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	cfg := config.Config{TargetEnrollments: 100, SimTrials: 200}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	etl := ingest.NewETL(ingest.NewHTTPClient(0), st, log, cfg)
	rSvc := report.NewService(st, cfg, log)
	srv := httptest.NewServer(NewRouter(log, etl, rSvc))
	t.Cleanup(srv.Close)
	return srv, st
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestReportEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	st.AddLead(models.Lead{ID: "l1", Brand: "GRADO", Program: "Derecho"})
	st.AddEnrollment(models.Enrollment{ID: "e1", Brand: "GRADO", Program: "Derecho"})

	resp, err := http.Get(srv.URL + "/report/GRADO?seed=42&trials=100")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if rep.Brand != "GRADO" {
		t.Fatalf("expected brand GRADO, got %q", rep.Brand)
	}
	if rep.Metrics.LeadsAccumulated != 1 || rep.Metrics.EnrollmentsAccumulated != 1 {
		t.Fatalf("unexpected metrics: %+v", rep.Metrics)
	}
	if len(rep.Projection.Sample) != 100 {
		t.Fatalf("expected 100 simulated values, got %d", len(rep.Projection.Sample))
	}
}

func TestReportValidatesParams(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []string{
		"/report/GRADO?target=0",
		"/report/GRADO?target=-10",
		"/report/GRADO?trials=0",
		"/report/GRADO?budget=-1",
		"/report/GRADO?seed=abc",
	}
	for _, path := range cases {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 400 {
			t.Fatalf("%s: expected 400, got %d", path, resp.StatusCode)
		}
	}
}

func TestIngestRunBadDate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Post(srv.URL+"/ingest/run?since=31-12-2025", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
