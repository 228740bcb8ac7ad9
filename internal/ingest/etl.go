package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmartinez-edu/enrollcast/internal/config"
	"github.com/rmartinez-edu/enrollcast/internal/models"
	"github.com/rmartinez-edu/enrollcast/internal/promx"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

// ETL descarga los cinco datasets de las URLs configuradas, normaliza cada
// fila y la vuelca al store. Las filas sin columnas requeridas se completan
// con valores nulos y se reportan como warning, no como error: un reporte
// parcial sigue siendo útil.
type ETL struct {
	c   HTTPClient
	st  *store.MemoryStore
	log *slog.Logger
	cfg config.Config
}

func NewETL(c HTTPClient, st *store.MemoryStore, log *slog.Logger, cfg config.Config) *ETL {
	return &ETL{c: c, st: st, log: log, cfg: cfg}
}

// Campos opcionales como punteros: distinguimos columna ausente de valor vacío.
type enrollmentRow struct {
	ID             *string `json:"id"`
	IntakeDate     *string `json:"intake_date"`
	EnrollmentDate *string `json:"enrollment_date"`
	Brand          *string `json:"brand"`
	Program        *string `json:"program"`
}

type leadRow struct {
	ID         *string `json:"id"`
	IntakeDate *string `json:"intake_date"`
	Status     *string `json:"status"`
	Brand      *string `json:"brand"`
	Program    *string `json:"program"`
}

type calendarRow struct {
	Brand   *string `json:"brand"`
	Program *string `json:"program"`
	Start   *string `json:"start_date"`
	End     *string `json:"end_date"`
}

type spendRow struct {
	Date         *string  `json:"date"`
	Brand        *string  `json:"brand"`
	Channel      *string  `json:"channel"`
	Accumulated  *float64 `json:"cumulative_spend"`
	EstimatedCPL *float64 `json:"estimated_cost_per_lead"`
}

type planRow struct {
	Brand          *string  `json:"brand"`
	Channel        *string  `json:"channel"`
	MonthlyBudget  *float64 `json:"monthly_budget"`
	EstimatedCPL   *float64 `json:"estimated_cost_per_lead"`
	EstimatedLeads *int     `json:"estimated_leads"`
}

type DatasetStats struct {
	Ingested    int `json:"ingested"`
	Dropped     int `json:"dropped"`
	Synthesized int `json:"synthesized"`
}

type RunSummary struct {
	Enrollments DatasetStats `json:"enrollments"`
	Leads       DatasetStats `json:"leads"`
	Calendar    DatasetStats `json:"calendar"`
	Spend       DatasetStats `json:"spend"`
	Plan        DatasetStats `json:"plan"`
}

func (e *ETL) Run(ctx context.Context, since *time.Time) (RunSummary, error) {
	var sum RunSummary

	if e.cfg.EnrollmentsURL != "" {
		var rows []enrollmentRow
		if err := GetJSONWithRetry(ctx, e.c, e.cfg.EnrollmentsURL, &rows); err != nil {
			return sum, err
		}
		sum.Enrollments = e.loadEnrollments(rows, since)
	}
	if e.cfg.LeadsURL != "" {
		var rows []leadRow
		if err := GetJSONWithRetry(ctx, e.c, e.cfg.LeadsURL, &rows); err != nil {
			return sum, err
		}
		sum.Leads = e.loadLeads(rows, since)
	}
	if e.cfg.CalendarURL != "" {
		var rows []calendarRow
		if err := GetJSONWithRetry(ctx, e.c, e.cfg.CalendarURL, &rows); err != nil {
			return sum, err
		}
		sum.Calendar = e.loadCalendar(rows)
	}
	if e.cfg.SpendURL != "" {
		var rows []spendRow
		if err := GetJSONWithRetry(ctx, e.c, e.cfg.SpendURL, &rows); err != nil {
			return sum, err
		}
		sum.Spend = e.loadSpend(rows)
	}
	if e.cfg.PlanURL != "" {
		var rows []planRow
		if err := GetJSONWithRetry(ctx, e.c, e.cfg.PlanURL, &rows); err != nil {
			return sum, err
		}
		sum.Plan = e.loadPlan(rows)
	}

	e.log.Info("ingest complete",
		slog.Int("enrollments", sum.Enrollments.Ingested),
		slog.Int("leads", sum.Leads.Ingested),
		slog.Int("calendar", sum.Calendar.Ingested),
		slog.Int("spend", sum.Spend.Ingested),
		slog.Int("plan", sum.Plan.Ingested),
	)
	return sum, nil
}

func (e *ETL) loadEnrollments(rows []enrollmentRow, since *time.Time) DatasetStats {
	var st DatasetStats
	for _, r := range rows {
		brand := strVal(r.Brand)
		program := NormalizeProgram(strVal(r.Program))
		if brand == "" || program == "" {
			st.Dropped++
			e.warnDrop("enrollments", "missing brand or program")
			continue
		}
		id := strVal(r.ID)
		if id == "" {
			id = uuid.NewString()
			st.Synthesized++
			promx.SynthesizedFields.WithLabelValues("enrollments").Inc()
		}
		intake := parseDate(r.IntakeDate)
		if r.IntakeDate == nil {
			st.Synthesized++
			promx.SynthesizedFields.WithLabelValues("enrollments").Inc()
		}
		if since != nil && intake != nil && dayUTC(*intake).Before(dayUTC(*since)) {
			continue
		}
		if !e.st.MarkSeen("enr|" + brand + "|" + id) {
			continue
		}
		e.st.AddEnrollment(models.Enrollment{
			ID:             id,
			IntakeDate:     intake,
			EnrollmentDate: parseDate(r.EnrollmentDate),
			Brand:          brand,
			Program:        program,
		})
		st.Ingested++
		promx.IngestedRecords.WithLabelValues("enrollments").Inc()
	}
	return st
}

func (e *ETL) loadLeads(rows []leadRow, since *time.Time) DatasetStats {
	var st DatasetStats
	for _, r := range rows {
		brand := strVal(r.Brand)
		program := NormalizeProgram(strVal(r.Program))
		if brand == "" || program == "" {
			st.Dropped++
			e.warnDrop("leads", "missing brand or program")
			continue
		}
		id := strVal(r.ID)
		if id == "" {
			id = uuid.NewString()
			st.Synthesized++
			promx.SynthesizedFields.WithLabelValues("leads").Inc()
		}
		intake := parseDate(r.IntakeDate)
		if since != nil && intake != nil && dayUTC(*intake).Before(dayUTC(*since)) {
			continue
		}
		if !e.st.MarkSeen("lead|" + brand + "|" + id) {
			continue
		}
		e.st.AddLead(models.Lead{
			ID:         id,
			IntakeDate: intake,
			Status:     strings.TrimSpace(strVal(r.Status)),
			Brand:      brand,
			Program:    program,
		})
		st.Ingested++
		promx.IngestedRecords.WithLabelValues("leads").Inc()
	}
	return st
}

func (e *ETL) loadCalendar(rows []calendarRow) DatasetStats {
	var st DatasetStats
	for _, r := range rows {
		brand := strVal(r.Brand)
		program := NormalizeProgram(strVal(r.Program))
		if brand == "" || program == "" {
			st.Dropped++
			e.warnDrop("calendar", "missing brand or program")
			continue
		}
		key := "cal|" + brand + "|" + program + "|" + strVal(r.Start) + "|" + strVal(r.End)
		if !e.st.MarkSeen(key) {
			continue
		}
		e.st.AddWindow(models.CampaignWindow{
			Brand:   brand,
			Program: program,
			Start:   parseDate(r.Start),
			End:     parseDate(r.End),
		})
		st.Ingested++
		promx.IngestedRecords.WithLabelValues("calendar").Inc()
	}
	return st
}

func (e *ETL) loadSpend(rows []spendRow) DatasetStats {
	var st DatasetStats
	for _, r := range rows {
		brand := strVal(r.Brand)
		if brand == "" {
			st.Dropped++
			e.warnDrop("spend", "missing brand")
			continue
		}
		channel := strings.TrimSpace(strVal(r.Channel))
		key := "spend|" + brand + "|" + channel + "|" + strVal(r.Date)
		if !e.st.MarkSeen(key) {
			continue
		}
		e.st.AddSpend(models.SpendRecord{
			Date:         parseDate(r.Date),
			Brand:        brand,
			Channel:      channel,
			Accumulated:  decFrom(r.Accumulated),
			EstimatedCPL: decFrom(r.EstimatedCPL),
		})
		st.Ingested++
		promx.IngestedRecords.WithLabelValues("spend").Inc()
	}
	return st
}

func (e *ETL) loadPlan(rows []planRow) DatasetStats {
	var st DatasetStats
	for _, r := range rows {
		brand := strVal(r.Brand)
		if brand == "" {
			st.Dropped++
			e.warnDrop("plan", "missing brand")
			continue
		}
		channel := strings.TrimSpace(strVal(r.Channel))
		if !e.st.MarkSeen("plan|" + brand + "|" + channel) {
			continue
		}
		leads := 0
		if r.EstimatedLeads != nil {
			leads = *r.EstimatedLeads
		}
		e.st.AddPlanRow(models.PlanRow{
			Brand:          brand,
			Channel:        channel,
			MonthlyBudget:  decFrom(r.MonthlyBudget),
			EstimatedCPL:   decFrom(r.EstimatedCPL),
			EstimatedLeads: leads,
		})
		st.Ingested++
		promx.IngestedRecords.WithLabelValues("plan").Inc()
	}
	return st
}

func (e *ETL) warnDrop(dataset, reason string) {
	promx.DroppedRows.WithLabelValues(dataset).Inc()
	e.log.Warn("row dropped", slog.String("dataset", dataset), slog.String("reason", reason))
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func decFrom(p *float64) decimal.Decimal {
	if p == nil || *p < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*p)
}

// parseDate acepta RFC3339 o fecha simple YYYY-MM-DD.
func parseDate(p *string) *time.Time {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
