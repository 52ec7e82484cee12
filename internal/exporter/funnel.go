package exporter

import (
	"fmt"

	"fairflow/internal/sankey"
	"fairflow/pkg/contracts/domain"
)

// residualRowLabel names the residual bucket in exports, matching the
// label used on the Sankey diagram.
const residualRowLabel = "No Response"

// FunnelExporter writes funnel aggregation results as CSV
type FunnelExporter struct {
	writer *CSVWriter
}

// NewFunnelExporter creates a funnel exporter on top of a CSV writer
func NewFunnelExporter(writer *CSVWriter) *FunnelExporter {
	return &FunnelExporter{writer: writer}
}

// ExportCounts writes one row per stage category plus one residual row.
// The share column is the category's percentage of the stage total.
func (e *FunnelExporter) ExportCounts(result *domain.FunnelResult, filePath string) error {
	if result == nil {
		return fmt.Errorf("failed to export funnel counts: nil result")
	}

	headers := []string{"Stage", "Category", "Count", "Share"}
	records := make([][]string, 0, len(result.Stages)*3)

	for _, stage := range result.Stages {
		for _, cat := range stage.Categories {
			records = append(records, []string{
				stage.Stage,
				cat.Category,
				formatInt(cat.Count),
				formatFloat(sankey.Percent(cat.Count, stage.Total)),
			})
		}
		records = append(records, []string{
			stage.Stage,
			residualRowLabel,
			formatInt(stage.Residual),
			formatFloat(sankey.Percent(stage.Residual, stage.Total)),
		})
	}

	if err := e.writer.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to export funnel counts: %w", err)
	}
	return nil
}
