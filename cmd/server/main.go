package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rmartinez-edu/enrollcast/internal/config"
	"github.com/rmartinez-edu/enrollcast/internal/httpx"
	"github.com/rmartinez-edu/enrollcast/internal/ingest"
	"github.com/rmartinez-edu/enrollcast/internal/report"
	"github.com/rmartinez-edu/enrollcast/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore()
	etl := ingest.NewETL(cl, st, logger, cfg)
	rSvc := report.NewService(st, cfg, logger)

	r := httpx.NewRouter(logger, etl, rSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
