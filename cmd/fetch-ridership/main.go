package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"fairflow/internal/config"
	"fairflow/internal/fetch"
	"fairflow/internal/infrastructure"
)

func main() {
	out := flag.String("out", "", "output csv path (defaults to data/ridership.csv)")
	monthFrom := flag.Int("month-from", 0, "first month of the export window")
	monthTo := flag.Int("month-to", 0, "last month of the export window")
	hourFrom := flag.Int("hour-from", 0, "first hour of day to include")
	hourTo := flag.Int("hour-to", 0, "last hour of day to include")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
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

	if *out == "" {
		*out = filepath.Join(paths.DataDir, "ridership.csv")
	}

	query := fetch.DefaultQuery()
	if *monthFrom > 0 {
		query.MonthFrom = *monthFrom
	}
	if *monthTo > 0 {
		query.MonthTo = *monthTo
	}
	if *hourFrom > 0 {
		query.HourFrom = *hourFrom
	}
	if *hourTo > 0 {
		query.HourTo = *hourTo
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	url := fetch.DatasetURL(query)

	logger.InfoContext(ctx, "Downloading ridership export",
		"url", url,
		"dest", *out)

	downloader := fetch.NewDownloader(logger)
	if err := downloader.Download(ctx, url, *out); err != nil {
		logger.ErrorContext(ctx, "Download failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Download complete", "path", *out)
}
