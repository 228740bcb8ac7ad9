// Package promx concentra los colectores Prometheus del servicio.
package promx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollcast_ingest_records_total",
		Help: "Registros ingeridos por dataset.",
	}, []string{"dataset"})

	DroppedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollcast_ingest_rows_dropped_total",
		Help: "Filas descartadas durante la normalización.",
	}, []string{"dataset"})

	SynthesizedFields = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollcast_ingest_fields_synthesized_total",
		Help: "Campos faltantes rellenados con valores por defecto.",
	}, []string{"dataset"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "enrollcast_reports_generated_total",
		Help: "Reportes generados por marca.",
	}, []string{"brand"})

	SimulationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "enrollcast_simulation_duration_seconds",
		Help:    "Duración de la simulación Monte Carlo.",
		Buckets: prometheus.DefBuckets,
	})
)
