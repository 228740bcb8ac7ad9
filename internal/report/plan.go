package report

import (
	"github.com/shopspring/decimal"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

// SummarizePlan agrega el plan mensual de una marca: presupuesto total,
// leads estimados (presupuesto / CPL estimado por canal, truncado como en la
// planificación original) y número de canales.
func SummarizePlan(rows []models.PlanRow) models.PlanSummary {
	sum := models.PlanSummary{TotalBudget: decimal.Zero}
	channels := map[string]struct{}{}
	for _, r := range rows {
		sum.TotalBudget = sum.TotalBudget.Add(r.MonthlyBudget)
		if r.Channel != "" {
			channels[r.Channel] = struct{}{}
		}
		switch {
		case r.EstimatedLeads > 0:
			sum.EstimatedLeads += r.EstimatedLeads
		case r.EstimatedCPL.IsPositive():
			sum.EstimatedLeads += int(r.MonthlyBudget.Div(r.EstimatedCPL).IntPart())
		}
	}
	sum.Channels = len(channels)
	return sum
}
