package exporter

import (
	"fmt"

	"fairflow/pkg/contracts/domain"
)

// DestinationExporter writes aggregated station flows as CSV
type DestinationExporter struct {
	writer *CSVWriter
}

// NewDestinationExporter creates a destination exporter on top of a CSV writer
func NewDestinationExporter(writer *CSVWriter) *DestinationExporter {
	return &DestinationExporter{writer: writer}
}

// ExportFlows writes one row per station complex, in the order given
func (e *DestinationExporter) ExportFlows(flows []domain.StationFlow, filePath string) error {
	headers := []string{
		"Station Complex ID",
		"Station Complex Name",
		"Latitude",
		"Longitude",
		"Trips",
		"Estimated Ridership",
	}

	records := make([][]string, 0, len(flows))
	for _, flow := range flows {
		records = append(records, []string{
			flow.StationID,
			flow.StationName,
			fmt.Sprintf("%.6f", flow.Latitude),
			fmt.Sprintf("%.6f", flow.Longitude),
			formatInt(flow.Trips),
			formatFloat(flow.Ridership),
		})
	}

	if err := e.writer.WriteSimpleCSV(filePath, headers, records); err != nil {
		return fmt.Errorf("failed to export station flows: %w", err)
	}
	return nil
}
