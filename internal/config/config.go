package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	EnrollmentsURL string
	LeadsURL       string
	CalendarURL    string
	SpendURL       string
	PlanURL        string

	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level

	// Valores por defecto del reporte; se pueden sobreescribir por query.
	TargetEnrollments int
	TotalBudget       float64
	SimTrials         int
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		EnrollmentsURL:    os.Getenv("ENROLLMENTS_URL"),
		LeadsURL:          os.Getenv("LEADS_URL"),
		CalendarURL:       os.Getenv("CALENDAR_URL"),
		SpendURL:          os.Getenv("SPEND_URL"),
		PlanURL:           os.Getenv("PLAN_URL"),
		Port:              envOr("PORT", "8080"),
		HTTPTimeout:       to,
		LogLevel:          lvl,
		TargetEnrollments: envInt("TARGET_ENROLLMENTS", 100),
		TotalBudget:       envFloat("TOTAL_BUDGET", 0),
		SimTrials:         envInt("SIM_TRIALS", 10000),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
