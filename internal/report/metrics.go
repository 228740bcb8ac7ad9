// Package report contiene el núcleo de cálculo: métricas deterministas,
// proyección Monte Carlo, análisis de programas y ritmo de avance. Todas
// las funciones son puras sobre sus entradas; no tocan estado compartido.
package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmartinez-edu/enrollcast/internal/models"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

// DefaultTarget se usa cuando el llamador no configura objetivo.
const DefaultTarget = 100

var ErrInvalidTarget = errors.New("target enrollments must be positive")

const hoursPerDay = 24

// ComputeMetrics calcula los KPIs de estado actual de una marca.
// target == 0 significa "sin configurar" y toma DefaultTarget; un valor
// negativo es error de contrato del llamador.
func ComputeMetrics(data store.BrandData, brand string, now time.Time, target int) (models.Metrics, error) {
	if target < 0 {
		return models.Metrics{}, ErrInvalidTarget
	}
	if target == 0 {
		target = DefaultTarget
	}

	m := models.Metrics{
		TargetEnrollments:      target,
		LeadsAccumulated:       len(data.Leads),
		EnrollmentsAccumulated: len(data.Enrollments),
	}

	m.ElapsedTimePct = elapsedTimePct(data.Calendar, brand, now)

	if m.LeadsAccumulated > 0 {
		m.ConversionRatePct = float64(m.EnrollmentsAccumulated) / float64(m.LeadsAccumulated) * 100
	}

	newCount, remarketing := classifyEnrollments(data)
	if total := newCount + remarketing; total > 0 {
		m.PctEnrollmentsNew = float64(newCount) / float64(total) * 100
		m.PctEnrollmentsRemarketing = 100 - m.PctEnrollmentsNew
	}

	spend := decimal.Zero
	for _, r := range data.Spend {
		spend = spend.Add(r.Accumulated)
	}
	m.AccumulatedSpend, _ = spend.Float64()

	if m.LeadsAccumulated > 0 {
		m.AverageCPL = m.AccumulatedSpend / float64(m.LeadsAccumulated)
	}

	seen := map[string]struct{}{}
	for _, e := range data.Enrollments {
		if e.Program != "" {
			seen[e.Program] = struct{}{}
		}
	}
	m.ProgramsCount = len(seen)

	return m, nil
}

// elapsedTimePct implementa la prioridad documentada de selección de
// ventana: fila centinela de toda la marca, si no la primera fila; sin
// calendario devuelve 0 (distinto de nil, que significa "no aplica" para
// marcas sin convocatoria fija).
func elapsedTimePct(calendar []models.CampaignWindow, brand string, now time.Time) *float64 {
	if !models.IsCycleBased(brand) {
		return nil
	}
	zero := 0.0
	if len(calendar) == 0 {
		return &zero
	}
	w := calendar[0]
	for _, c := range calendar {
		if c.Program == models.AllPrograms {
			w = c
			break
		}
	}
	if !w.Usable() {
		return &zero
	}
	duration := w.End.Sub(*w.Start).Hours() / hoursPerDay
	elapsed := now.Sub(*w.Start).Hours() / hoursPerDay
	if duration <= 0 {
		return &zero
	}
	pct := elapsed / duration * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// classifyEnrollments separa matrículas nuevas de remarketing. Prioridad de
// fecha de referencia: inicio de la ventana centinela de la marca, si no el
// inicio de la ventana del programa; sin referencia la matrícula cuenta como
// nueva (sesgo por defecto heredado del modelo de negocio, documentado).
func classifyEnrollments(data store.BrandData) (newCount, remarketing int) {
	var brandStart *time.Time
	for _, w := range data.Calendar {
		if w.Program == models.AllPrograms && w.Start != nil {
			brandStart = w.Start
			break
		}
	}

	byProgram := map[string]*time.Time{}
	for _, w := range data.Calendar {
		if w.Program == models.AllPrograms || w.Start == nil {
			continue
		}
		if _, ok := byProgram[w.Program]; !ok {
			byProgram[w.Program] = w.Start
		}
	}

	for _, e := range data.Enrollments {
		switch {
		case brandStart != nil && e.IntakeDate != nil:
			if !e.IntakeDate.Before(*brandStart) {
				newCount++
			} else {
				remarketing++
			}
		case byProgram[e.Program] != nil && e.IntakeDate != nil:
			if !e.IntakeDate.Before(*byProgram[e.Program]) {
				newCount++
			} else {
				remarketing++
			}
		default:
			newCount++
		}
	}
	return newCount, remarketing
}
