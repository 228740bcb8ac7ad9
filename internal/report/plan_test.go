package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

func TestSummarizePlan(t *testing.T) {
	rows := []models.PlanRow{
		{Brand: "GRADO", Channel: "Facebook", MonthlyBudget: decimal.NewFromInt(3000), EstimatedLeads: 120},
		{Brand: "GRADO", Channel: "Google", MonthlyBudget: decimal.NewFromInt(2000), EstimatedCPL: decimal.NewFromInt(25)},
		{Brand: "GRADO", Channel: "Email", MonthlyBudget: decimal.NewFromInt(500), EstimatedCPL: decimal.NewFromInt(3)},
	}
	sum := SummarizePlan(rows)

	assert.True(t, sum.TotalBudget.Equal(decimal.NewFromInt(5500)), "total %s", sum.TotalBudget)
	// 120 declarados + 2000/25=80 + 500/3=166 (truncado)
	assert.Equal(t, 120+80+166, sum.EstimatedLeads)
	assert.Equal(t, 3, sum.Channels)
}

func TestSummarizePlanEmpty(t *testing.T) {
	sum := SummarizePlan(nil)
	assert.True(t, sum.TotalBudget.IsZero())
	assert.Zero(t, sum.EstimatedLeads)
	assert.Zero(t, sum.Channels)
}

func TestSummarizePlanZeroCPLIgnored(t *testing.T) {
	rows := []models.PlanRow{
		{Brand: "GRADO", Channel: "Orgánico", MonthlyBudget: decimal.NewFromInt(1000)},
	}
	sum := SummarizePlan(rows)
	assert.Zero(t, sum.EstimatedLeads, "sin CPL estimado no se proyectan leads")
	assert.Equal(t, 1, sum.Channels)
}
