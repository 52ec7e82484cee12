package exporter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fairflow/internal/config"
	"fairflow/internal/dataset"
	"fairflow/internal/funnel"
	"fairflow/internal/sankey"
	"fairflow/pkg/contracts/domain"
)

// ReportWriter renders plain-text summaries of an analysis run
type ReportWriter struct {
	paths *config.Paths
}

// NewReportWriter creates a report writer
func NewReportWriter(paths *config.Paths) *ReportWriter {
	return &ReportWriter{paths: paths}
}

// WriteFunnelReport renders a funnel summary into a timestamped report file
// under the reports directory and returns the file path.
func (w *ReportWriter) WriteFunnelReport(ds *dataset.Dataset, def funnel.Definition, result *domain.FunnelResult, now time.Time) (string, error) {
	path := w.paths.ReportPath("fair_fares_report", now)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := RenderFunnelReport(file, ds, def, result, now); err != nil {
		return "", err
	}
	return path, nil
}

// RenderFunnelReport writes the funnel summary to w. The layout mirrors
// the survey team's original analysis printouts: dataset shape, the survey
// columns the funnel reads, then per-stage counts with stage-relative
// percentages.
func RenderFunnelReport(w io.Writer, ds *dataset.Dataset, def funnel.Definition, result *domain.FunnelResult, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Fair Fares Survey Funnel Report\n")
	fmt.Fprintf(bw, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "Definition: %s\n\n", def.Name)

	if ds != nil {
		fmt.Fprintf(bw, "Dataset: %d rows x %d columns\n", ds.RowCount(), len(ds.Columns()))
		fmt.Fprintf(bw, "Funnel columns:\n")
		for _, stage := range def.Stages {
			fmt.Fprintf(bw, "  %-18s %s\n", stage.Name+":", stage.Column.String())
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "Total responses: %d\n\n", result.GrandTotal)

	for _, stage := range result.Stages {
		fmt.Fprintf(bw, "%s (%d eligible)\n", stage.Stage, stage.Total)
		for _, cat := range stage.Categories {
			fmt.Fprintf(bw, "  %-24s %6d  (%.1f%%)\n",
				cat.Category, cat.Count, sankey.Percent(cat.Count, stage.Total))
		}
		fmt.Fprintf(bw, "  %-24s %6d  (%.1f%%)\n",
			residualRowLabel, stage.Residual, sankey.Percent(stage.Residual, stage.Total))
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteDestinationReport renders the top/bottom destination summary into a
// timestamped report file and returns the file path.
func (w *ReportWriter) WriteDestinationReport(top, bottom []domain.StationFlow, now time.Time) (string, error) {
	path := w.paths.ReportPath("destinations_report", now)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := RenderDestinationReport(file, top, bottom, now); err != nil {
		return "", err
	}
	return path, nil
}

// RenderDestinationReport writes the destination summary to w
func RenderDestinationReport(w io.Writer, top, bottom []domain.StationFlow, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Subway Destination Report\n")
	fmt.Fprintf(bw, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	writeFlows := func(title string, flows []domain.StationFlow) {
		fmt.Fprintf(bw, "%s\n%s\n", title, strings.Repeat("-", len(title)))
		for i, flow := range flows {
			fmt.Fprintf(bw, "%2d. %-40s %10.2f riders  (%d buckets)\n",
				i+1, flow.StationName, flow.Ridership, flow.Trips)
		}
		fmt.Fprintln(bw)
	}

	writeFlows("Top destinations by estimated ridership", top)
	writeFlows("Bottom destinations by estimated ridership", bottom)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
