package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

func metricsWithPace(elapsed float64, enrollments, target int) models.Metrics {
	return models.Metrics{
		ElapsedTimePct:         &elapsed,
		EnrollmentsAccumulated: enrollments,
		TargetEnrollments:      target,
	}
}

func TestClassifyPace(t *testing.T) {
	cases := []struct {
		name string
		m    models.Metrics
		want models.PaceStatus
	}{
		{"on pace", metricsWithPace(50, 50, 100), models.PaceOnTrack},
		{"on pace boundary", metricsWithPace(50, 45, 100), models.PaceOnTrack},
		{"tight", metricsWithPace(50, 40, 100), models.PaceTight},
		{"tight boundary", metricsWithPace(50, 35, 100), models.PaceTight},
		{"behind", metricsWithPace(50, 30, 100), models.PaceBehind},
		{"ahead of schedule", metricsWithPace(20, 80, 100), models.PaceOnTrack},
		{"attainment capped at 100", metricsWithPace(100, 250, 100), models.PaceOnTrack},
		{"no cycle", models.Metrics{EnrollmentsAccumulated: 10, TargetEnrollments: 100}, models.PaceNotApplicable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ClassifyPace(c.m))
		})
	}
}

func TestClassifyPaceZeroTarget(t *testing.T) {
	elapsed := 50.0
	m := models.Metrics{ElapsedTimePct: &elapsed}
	// objetivo 0 se trata como 1; sin matrículas el avance es 0
	assert.Equal(t, models.PaceBehind, ClassifyPace(m))
}
