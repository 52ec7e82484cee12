package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"fairflow/internal/config"
	"fairflow/internal/exporter"
	"fairflow/internal/infrastructure"
	"fairflow/internal/ridership"
	"fairflow/internal/sankey"
	"fairflow/internal/services"
)

func main() {
	surveyFile := flag.String("survey", "", "survey workbook path (overrides configuration)")
	funnelFile := flag.String("funnel", "", "funnel definition YAML (overrides the built-in chain)")
	topN := flag.Int("top", 0, "destination ranking depth (defaults to configured top_n)")
	skipRidership := flag.Bool("skip-ridership", false, "skip the destination analysis")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *surveyFile != "" {
		cfg.Survey.File = *surveyFile
	}
	if *funnelFile != "" {
		cfg.Survey.FunnelFile = *funnelFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	if err := run(ctx, cfg, paths, logger, *topN, *skipRidership); err != nil {
		logger.ErrorContext(ctx, "Analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger, topN int, skipRidership bool) error {
	funnelService, err := services.NewFunnelService(cfg, paths, logger)
	if err != nil {
		return err
	}

	result, err := funnelService.Run(ctx)
	if err != nil {
		return err
	}

	flow, err := funnelService.Flow(ctx)
	if err != nil {
		return err
	}
	if err := sankey.WriteHTMLFile(paths.SankeyHTML, flow); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Sankey diagram written", "path", paths.SankeyHTML)

	csvWriter := exporter.NewCSVWriter(paths)
	if err := exporter.NewFunnelExporter(csvWriter).ExportCounts(result, paths.FunnelCSV); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Funnel counts written", "path", paths.FunnelCSV)

	ds, err := funnelService.Dataset(ctx)
	if err != nil {
		return err
	}
	def, err := funnelService.Definition()
	if err != nil {
		return err
	}

	reportWriter := exporter.NewReportWriter(paths)
	reportPath, err := reportWriter.WriteFunnelReport(ds, def, result, time.Now())
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Funnel report written", "path", reportPath)

	if skipRidership || len(cfg.Ridership.Files) == 0 {
		return nil
	}

	ridershipService := services.NewRidershipService(cfg, paths, logger)
	top, err := ridershipService.TopDestinations(ctx, ridership.Filter{}, topN)
	if err != nil {
		return err
	}
	bottom, err := ridershipService.BottomDestinations(ctx, ridership.Filter{}, topN)
	if err != nil {
		return err
	}

	if err := exporter.NewDestinationExporter(csvWriter).ExportFlows(top, paths.DestinationsCSV); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Top destinations written", "path", paths.DestinationsCSV)

	destPath, err := reportWriter.WriteDestinationReport(top, bottom, time.Now())
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Destination report written", "path", destPath)

	return nil
}
