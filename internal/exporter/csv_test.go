package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairflow/internal/config"
)

func testWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: dir,
		ReportsDir:    filepath.Join(dir, "reports"),
	}
	return NewCSVWriter(paths), paths.ReportsDir
}

func TestWriteSimpleCSV(t *testing.T) {
	writer, reportsDir := testWriter(t)

	err := writer.WriteSimpleCSV("counts.csv",
		[]string{"Stage", "Count"},
		[][]string{{"awareness", "4"}, {"application", "2"}},
	)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(reportsDir, "counts.csv"))
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "expected UTF-8 BOM")
	assert.Contains(t, content, "Stage,Count")
	assert.Contains(t, content, "awareness,4")
	assert.Contains(t, content, "application,2")
}

func TestWriteCSVAbsolutePath(t *testing.T) {
	writer, _ := testWriter(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	err := writer.WriteCSV(target, WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestAppendToCSV(t *testing.T) {
	writer, reportsDir := testWriter(t)

	require.NoError(t, writer.WriteSimpleCSV("log.csv", []string{"n"}, [][]string{{"1"}}))
	require.NoError(t, writer.AppendToCSV("log.csv", [][]string{{"2"}}))

	raw, err := os.ReadFile(filepath.Join(reportsDir, "log.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2", lines[2])
}
