package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string

	// Well-known output files.
	SankeyHTML      string
	FunnelCSV       string
	DestinationsCSV string
}

// GetPaths returns the application paths relative to the executable
// location, never the current working directory.
//
//	dist/
//	  ├── data/        (survey workbook, ridership CSVs)
//	  │   └── reports/ (generated reports, diagrams, CSV exports)
//	  └── logs/
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}
	exeDir := filepath.Dir(exe)

	dataDir := filepath.Join(exeDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(exeDir, "logs"),

		SankeyHTML:      filepath.Join(reportsDir, "fair_fares_sankey.html"),
		FunnelCSV:       filepath.Join(reportsDir, "funnel_counts.csv"),
		DestinationsCSV: filepath.Join(reportsDir, "top_destinations.csv"),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// GetLogPath returns a log file path inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// ReportPath returns a timestamped report path, matching the naming of the
// survey team's text reports.
func (p *Paths) ReportPath(prefix string, now time.Time) string {
	return filepath.Join(p.ReportsDir, fmt.Sprintf("%s_%s.txt", prefix, now.Format("20060102_150405")))
}

// Resolve turns a possibly relative path into one anchored at the
// executable directory.
func (p *Paths) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.ExecutableDir, path)
}
