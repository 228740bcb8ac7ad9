package report

import "github.com/rmartinez-edu/enrollcast/internal/models"

// Márgenes de tolerancia, en puntos porcentuales, entre avance de
// matrículas y tiempo transcurrido.
const (
	onPaceMargin = 5
	tightMargin  = 15
)

// ClassifyPace compara el avance de matrículas contra el tiempo transcurrido
// de la convocatoria. Marcas sin convocatoria fija no tienen ritmo medible.
func ClassifyPace(m models.Metrics) models.PaceStatus {
	if m.ElapsedTimePct == nil {
		return models.PaceNotApplicable
	}
	target := m.TargetEnrollments
	if target < 1 {
		target = 1
	}
	attainment := float64(m.EnrollmentsAccumulated) / float64(target) * 100
	if attainment > 100 {
		attainment = 100
	}
	elapsed := *m.ElapsedTimePct
	switch {
	case attainment >= elapsed-onPaceMargin:
		return models.PaceOnTrack
	case attainment >= elapsed-tightMargin:
		return models.PaceTight
	default:
		return models.PaceBehind
	}
}
