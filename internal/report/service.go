package report

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rmartinez-edu/enrollcast/internal/config"
	"github.com/rmartinez-edu/enrollcast/internal/models"
	"github.com/rmartinez-edu/enrollcast/internal/promx"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

// Service arma el reporte completo de una marca a partir del store. Los
// resultados son estructuras planas serializables; la capa de presentación
// no recalcula nada.
type Service struct {
	st  *store.MemoryStore
	cfg config.Config
	log *slog.Logger
}

func NewService(st *store.MemoryStore, cfg config.Config, log *slog.Logger) *Service {
	return &Service{st: st, cfg: cfg, log: log}
}

// Options sobreescribe la configuración por llamada. Cero significa "usar
// el valor configurado"; Seed fija el generador para corridas reproducibles.
type Options struct {
	Target      int
	TotalBudget float64
	Trials      int
	Seed        *int64
}

type Report struct {
	Brand       string                 `json:"brand"`
	GeneratedAt time.Time              `json:"generated_at"`
	Metrics     models.Metrics         `json:"metrics"`
	Pace        models.PaceStatus      `json:"pace"`
	Projection  models.Projection      `json:"projection"`
	Programs    models.ProgramAnalysis `json:"programs"`
	Plan        models.PlanSummary     `json:"plan"`
}

func (s *Service) Generate(ctx context.Context, brand string, opts Options) (Report, error) {
	data := s.st.Brand(brand)
	now := time.Now()

	target := opts.Target
	if target == 0 {
		target = s.cfg.TargetEnrollments
	}
	metrics, err := ComputeMetrics(data, brand, now, target)
	if err != nil {
		return Report{}, err
	}

	plan := SummarizePlan(data.Plan)

	// Prioridad de presupuesto total: opción por llamada, configuración,
	// suma del plan mensual.
	total := opts.TotalBudget
	if total == 0 {
		total = s.cfg.TotalBudget
	}
	if total == 0 {
		total, _ = plan.TotalBudget.Float64()
	}
	remaining := total - metrics.AccumulatedSpend
	if remaining < 0 {
		remaining = 0
	}

	trials := opts.Trials
	if trials == 0 {
		trials = s.cfg.SimTrials
	}
	if trials == 0 {
		trials = DefaultTrials
	}
	seed := now.UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	simStart := time.Now()
	projection, err := Project(metrics, remaining, trials, rng)
	if err != nil {
		return Report{}, err
	}
	promx.SimulationSeconds.Observe(time.Since(simStart).Seconds())

	rep := Report{
		Brand:       brand,
		GeneratedAt: now,
		Metrics:     metrics,
		Pace:        ClassifyPace(metrics),
		Projection:  projection,
		Programs:    AnalyzePrograms(data, DefaultClassifier),
		Plan:        plan,
	}

	promx.ReportsGenerated.WithLabelValues(brand).Inc()
	s.log.Info("report generated",
		slog.String("brand", brand),
		slog.Int("leads", metrics.LeadsAccumulated),
		slog.Int("enrollments", metrics.EnrollmentsAccumulated),
		slog.Int("trials", trials),
	)
	return rep, nil
}
