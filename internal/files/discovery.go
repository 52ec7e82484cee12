package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations rooted at a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindSurveyWorkbooks finds Excel workbooks in the given directory,
// oldest first.
func (d *Discovery) FindSurveyWorkbooks(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".xlsx", ".xls")
}

// FindRidershipExports finds CSV exports in the given directory whose
// name carries the ridership prefix, oldest first. The yearly Socrata
// downloads are saved as ridership*.csv.
func (d *Discovery) FindRidershipExports(dir string) ([]FileInfo, error) {
	all, err := d.findByExtension(dir, ".csv")
	if err != nil {
		return nil, err
	}

	var exports []FileInfo
	for _, f := range all {
		if strings.HasPrefix(strings.ToLower(f.Name), "ridership") {
			exports = append(exports, f)
		}
	}
	return exports, nil
}

// Latest returns the most recently modified of the given files
func Latest(infos []FileInfo) (FileInfo, bool) {
	if len(infos) == 0 {
		return FileInfo{}, false
	}
	latest := infos[0]
	for _, f := range infos[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, true
}

// Paths extracts the path of every discovered file, preserving order
func Paths(infos []FileInfo) []string {
	paths := make([]string, len(infos))
	for i, f := range infos {
		paths[i] = f.Path
	}
	return paths
}

func (d *Discovery) findByExtension(dir string, exts ...string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !hasAnySuffix(strings.ToLower(name), exts) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

func hasAnySuffix(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
