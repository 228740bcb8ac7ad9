package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmartinez-edu/enrollcast/internal/ingest"
	"github.com/rmartinez-edu/enrollcast/internal/report"
	"github.com/rmartinez-edu/enrollcast/internal/utils"
)

func NewRouter(log *slog.Logger, etl *ingest.ETL, rSvc *report.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("since")
		var since *time.Time
		if q != "" {
			t, err := time.Parse("2006-01-02", q)
			if err != nil {
				http.Error(w, "bad since date (YYYY-MM-DD)", 400)
				return
			}
			since = &t
		}
		sum, err := etl.Run(r.Context(), since)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, sum)
	})

	mux.Get("/report/{brand}", func(w http.ResponseWriter, r *http.Request) {
		generate(w, r, rSvc, func(rep report.Report) any { return rep })
	})
	mux.Get("/report/{brand}/metrics", func(w http.ResponseWriter, r *http.Request) {
		generate(w, r, rSvc, func(rep report.Report) any {
			return map[string]any{"metrics": rep.Metrics, "pace": rep.Pace}
		})
	})
	mux.Get("/report/{brand}/projection", func(w http.ResponseWriter, r *http.Request) {
		generate(w, r, rSvc, func(rep report.Report) any { return rep.Projection })
	})
	mux.Get("/report/{brand}/programs", func(w http.ResponseWriter, r *http.Request) {
		generate(w, r, rSvc, func(rep report.Report) any { return rep.Programs })
	})

	return mux
}

// generate valida los parámetros comunes de reporte y responde la vista
// seleccionada. Errores de contrato (objetivo o iteraciones inválidos)
// regresan 400 en vez de números sin sentido.
func generate(w http.ResponseWriter, r *http.Request, svc *report.Service, view func(report.Report) any) {
	brand := chi.URLParam(r, "brand")
	if brand == "" {
		http.Error(w, "brand required", 400)
		return
	}
	opts, err := parseOptions(r)
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	rep, err := svc.Generate(r.Context(), brand, opts)
	if err != nil {
		if errors.Is(err, report.ErrInvalidTarget) || errors.Is(err, report.ErrInvalidTrials) {
			http.Error(w, err.Error(), 400)
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, view(rep))
}

func parseOptions(r *http.Request) (report.Options, error) {
	var opts report.Options
	q := r.URL.Query()
	if v := q.Get("target"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, errors.New("target must be a positive integer")
		}
		opts.Target = n
	}
	if v := q.Get("budget"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return opts, errors.New("budget must be a non-negative number")
		}
		opts.TotalBudget = f
	}
	if v := q.Get("trials"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errors.New("trials must be >= 1")
		}
		opts.Trials = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, errors.New("seed must be an integer")
		}
		opts.Seed = &n
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
