package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestFindSurveyWorkbooks(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now().Add(-1 * time.Hour)

	writeFile(t, dir, "CunyMetroCard191.xlsx", recent)
	writeFile(t, dir, "older_export.xls", old)
	writeFile(t, dir, "notes.txt", recent)

	d := NewDiscovery(dir)
	found, err := d.FindSurveyWorkbooks(".")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "older_export.xls", found[0].Name)
	assert.Equal(t, "CunyMetroCard191.xlsx", found[1].Name)
}

func TestFindRidershipExports(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeFile(t, dir, "ridership_2023.csv", now.Add(-2*time.Hour))
	writeFile(t, dir, "ridership_2024.csv", now.Add(-1*time.Hour))
	writeFile(t, dir, "funnel_counts.csv", now)

	d := NewDiscovery(dir)
	found, err := d.FindRidershipExports(".")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "ridership_2023.csv", found[0].Name)
	assert.Equal(t, "ridership_2024.csv", found[1].Name)
}

func TestFindRidershipExportsMissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindRidershipExports("nope")
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	now := time.Now()
	infos := []FileInfo{
		{Name: "a.csv", ModTime: now.Add(-time.Hour)},
		{Name: "b.csv", ModTime: now},
		{Name: "c.csv", ModTime: now.Add(-2 * time.Hour)},
	}

	latest, ok := Latest(infos)
	require.True(t, ok)
	assert.Equal(t, "b.csv", latest.Name)

	_, ok = Latest(nil)
	assert.False(t, ok)
}

func TestPaths(t *testing.T) {
	infos := []FileInfo{{Path: "/data/a.csv"}, {Path: "/data/b.csv"}}
	assert.Equal(t, []string{"/data/a.csv", "/data/b.csv"}, Paths(infos))
}
