package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllPrograms es el valor centinela del calendario que aplica a toda la marca.
const AllPrograms = "Todos los programas"

// Marcas con convocatoria de fechas fijas; solo para ellas existe el
// porcentaje de tiempo transcurrido.
var cycleBasedBrands = map[string]struct{}{
	"GRADO":  {},
	"UNISUD": {},
}

func IsCycleBased(brand string) bool {
	_, ok := cycleBasedBrands[brand]
	return ok
}

type Enrollment struct {
	ID             string
	IntakeDate     *time.Time
	EnrollmentDate *time.Time
	Brand          string
	Program        string
}

type Lead struct {
	ID         string
	IntakeDate *time.Time
	Status     string
	Brand      string
	Program    string
}

// CampaignWindow describe una convocatoria o cohorte. Program puede ser
// AllPrograms cuando la ventana cubre toda la marca.
type CampaignWindow struct {
	Brand   string
	Program string
	Start   *time.Time
	End     *time.Time
}

// Usable devuelve true si la ventana tiene fechas y End > Start.
func (w CampaignWindow) Usable() bool {
	return w.Start != nil && w.End != nil && w.End.After(*w.Start)
}

type SpendRecord struct {
	Date         *time.Time
	Brand        string
	Channel      string
	Accumulated  decimal.Decimal
	EstimatedCPL decimal.Decimal
}

type PlanRow struct {
	Brand          string
	Channel        string
	MonthlyBudget  decimal.Decimal
	EstimatedCPL   decimal.Decimal
	EstimatedLeads int
}

// Metrics es el estado actual de la campaña de una marca. ElapsedTimePct es
// nil para marcas sin convocatoria fija (no aplica, distinto de 0).
type Metrics struct {
	ElapsedTimePct            *float64 `json:"elapsed_time_pct"`
	LeadsAccumulated          int      `json:"leads_accumulated"`
	EnrollmentsAccumulated    int      `json:"enrollments_accumulated"`
	TargetEnrollments         int      `json:"target_enrollments"`
	ConversionRatePct         float64  `json:"conversion_rate_pct"`
	PctEnrollmentsNew         float64  `json:"pct_enrollments_new"`
	PctEnrollmentsRemarketing float64  `json:"pct_enrollments_remarketing"`
	AccumulatedSpend          float64  `json:"accumulated_spend"`
	AverageCPL                float64  `json:"average_cost_per_lead"`
	ProgramsCount             int      `json:"programs_count"`
}

// Projection es el resultado de una corrida Monte Carlo. Sample conserva las
// matrículas simuladas de cada iteración (len == trials); una nueva corrida
// produce una muestra distinta.
type Projection struct {
	LeadsProjected    int     `json:"leads_projected"`
	LeadsProjectedStd float64 `json:"leads_projected_std"`

	EnrollmentsP5     int     `json:"enrollments_p5"`
	EnrollmentsQ1     int     `json:"enrollments_q1"`
	EnrollmentsMedian int     `json:"enrollments_median"`
	EnrollmentsQ3     int     `json:"enrollments_q3"`
	EnrollmentsP95    int     `json:"enrollments_p95"`
	EnrollmentsMean   int     `json:"enrollments_mean"`
	EnrollmentsStd    float64 `json:"enrollments_std"`

	ProbMeta80  float64 `json:"prob_meta_80"`
	ProbMeta90  float64 `json:"prob_meta_90"`
	ProbMeta100 float64 `json:"prob_meta_100"`
	ProbMeta110 float64 `json:"prob_meta_110"`
	ProbMeta120 float64 `json:"prob_meta_120"`

	ProjectedFulfillmentPct float64   `json:"projected_fulfillment_pct"`
	Sample                  []float64 `json:"simulated_enrollments"`
}

type ProgramRow struct {
	Program           string  `json:"program"`
	Leads             int     `json:"leads"`
	Enrollments       int     `json:"enrollments"`
	ConversionRatePct float64 `json:"conversion_rate_pct"`
	Classification    string  `json:"classification"`
}

// ProgramAnalysis agrupa la tabla completa y las dos vistas derivadas.
// Los slices nunca son nil: universo vacío produce tablas vacías.
type ProgramAnalysis struct {
	Table            []ProgramRow `json:"table"`
	TopEnrollments   []ProgramRow `json:"top_enrollments"`
	LowestConversion []ProgramRow `json:"lowest_conversion"`
}

type PaceStatus string

const (
	PaceOnTrack       PaceStatus = "on_pace"
	PaceTight         PaceStatus = "tight"
	PaceBehind        PaceStatus = "behind"
	PaceNotApplicable PaceStatus = "not_applicable"
)

type PlanSummary struct {
	TotalBudget    decimal.Decimal `json:"total_budget"`
	EstimatedLeads int             `json:"estimated_leads"`
	Channels       int             `json:"channels"`
}
