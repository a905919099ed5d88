// Command summarize generates the full survey report set offline: the
// per-function breakdown, ranked tallies, normalized responses, and a
// savings summary JSON, without running the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"aipulse/internal/config"
	"aipulse/internal/exporter"
	"aipulse/internal/infrastructure"
	"aipulse/internal/services"
)

func main() {
	input := flag.String("in", "", "survey responses file (defaults to configured path)")
	outputDir := flag.String("out", "", "output directory for report files (defaults to configured reports dir)")
	rate := flag.Float64("rate", 50, "automation rate for the savings projection (0-100)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *input != "" {
		cfg.Survey.ResponsesFile = *input
	}
	if *outputDir == "" {
		*outputDir = cfg.Survey.ReportsDir
	}

	ctx := context.Background()
	svc := services.NewSurveyService(cfg, nil, logger)

	status := svc.Status(ctx)
	if !status.Loaded {
		logger.Error("survey file could not be loaded",
			slog.String("path", status.Path),
			slog.String("error", status.Error))
		os.Exit(1)
	}
	logger.Info("survey loaded",
		slog.String("path", status.Path),
		slog.Int("responses", status.Responses))

	writer := exporter.NewReportWriter(*outputDir, svc, logger)
	reportID, err := writer.WriteAll(ctx, *rate)
	if err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Report %s written to %s\n", reportID, *outputDir)
}
