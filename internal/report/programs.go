package report

import (
	"sort"

	"github.com/rmartinez-edu/enrollcast/internal/models"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

// Etiquetas de clasificación automática de programas.
const (
	ClassTopEnrollments = "Top 5 enrollments"
	ClassLowConversion  = "Low conversion"
	ClassOpportunity    = "Opportunity"
)

// ClassifierConfig expone los umbrales heurísticos del negocio; los valores
// por defecto vienen del modelo original y son configurables, no derivados.
type ClassifierConfig struct {
	TopN                  int
	LowConversionMaxPct   float64
	LowConversionMinLeads int
	OpportunityMinPct     float64
	OpportunityMaxLeads   int
}

var DefaultClassifier = ClassifierConfig{
	TopN:                  5,
	LowConversionMaxPct:   5,
	LowConversionMinLeads: 10,
	OpportunityMinPct:     15,
	OpportunityMaxLeads:   20,
}

// AnalyzePrograms arma la tabla de rendimiento por programa con su
// clasificación y las dos vistas derivadas (top por matrículas y menor
// conversión). Programas sin leads ni matrículas quedan fuera de la tabla.
func AnalyzePrograms(data store.BrandData, cfg ClassifierConfig) models.ProgramAnalysis {
	if cfg.TopN <= 0 {
		cfg = DefaultClassifier
	}

	// Universo en orden de primera aparición para desempates estables.
	var universe []string
	seen := map[string]struct{}{}
	add := func(p string) {
		if p == "" || p == models.AllPrograms {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		universe = append(universe, p)
	}
	for _, e := range data.Enrollments {
		add(e.Program)
	}
	for _, l := range data.Leads {
		add(l.Program)
	}
	for _, w := range data.Calendar {
		add(w.Program)
	}

	leadCount := map[string]int{}
	for _, l := range data.Leads {
		leadCount[l.Program]++
	}
	enrollCount := map[string]int{}
	for _, e := range data.Enrollments {
		enrollCount[e.Program]++
	}

	rows := make([]models.ProgramRow, 0, len(universe))
	for _, p := range universe {
		leads := leadCount[p]
		enrolls := enrollCount[p]
		if leads == 0 && enrolls == 0 {
			continue
		}
		conv := 0.0
		if leads > 0 {
			conv = round2(float64(enrolls) / float64(leads) * 100)
		}
		rows = append(rows, models.ProgramRow{
			Program:           p,
			Leads:             leads,
			Enrollments:       enrolls,
			ConversionRatePct: conv,
		})
	}

	if len(rows) == 0 {
		empty := []models.ProgramRow{}
		return models.ProgramAnalysis{Table: empty, TopEnrollments: empty, LowestConversion: empty}
	}

	// Orden final: matrículas descendente, estable (conserva primera aparición).
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Enrollments > rows[j].Enrollments })

	topN := cfg.TopN
	if topN > len(rows) {
		topN = len(rows)
	}
	for i := range rows[:topN] {
		rows[i].Classification = ClassTopEnrollments
	}
	for i := topN; i < len(rows); i++ {
		r := &rows[i]
		switch {
		case r.ConversionRatePct < cfg.LowConversionMaxPct && r.Leads > cfg.LowConversionMinLeads:
			r.Classification = ClassLowConversion
		case r.ConversionRatePct > cfg.OpportunityMinPct && r.Leads < cfg.OpportunityMaxLeads:
			r.Classification = ClassOpportunity
		}
	}

	top := make([]models.ProgramRow, topN)
	copy(top, rows[:topN])

	lowest := make([]models.ProgramRow, len(rows))
	copy(lowest, rows)
	sort.SliceStable(lowest, func(i, j int) bool {
		return lowest[i].ConversionRatePct < lowest[j].ConversionRatePct
	})
	if len(lowest) > cfg.TopN {
		lowest = lowest[:cfg.TopN]
	}

	return models.ProgramAnalysis{Table: rows, TopEnrollments: top, LowestConversion: lowest}
}

func round2(f float64) float64 { return float64(int64(f*100+0.5)) / 100 }
