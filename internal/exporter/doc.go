// Package exporter writes analysis results to files under the reports
// directory.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// FunnelExporter: Writes the per-stage category counts of a funnel run
// as a CSV file.
//
// ReportWriter: Renders a timestamped plain-text summary of a funnel run
// and of the top/bottom destination analysis.
package exporter
