package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetURL(t *testing.T) {
	raw := DatasetURL(DefaultQuery())

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "data.ny.gov", u.Host)

	soql := u.Query().Get("$query")
	assert.Contains(t, soql, "month BETWEEN 8 AND 9")
	assert.Contains(t, soql, "hour_of_day BETWEEN 6 AND 20")
	assert.Contains(t, soql, "estimated_average_ridership")
}

func TestDownload(t *testing.T) {
	const body = "year,month\n2024,8\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "data", "ridership.csv")
	d := NewDownloader(nil)

	require.NoError(t, d.Download(context.Background(), srv.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestDownloadNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "ridership.csv")
	d := NewDownloader(nil)

	err := d.Download(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no partial file on failure")
}

func TestDownloadCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader(nil)
	err := d.Download(ctx, "http://127.0.0.1:0/never", filepath.Join(t.TempDir(), "x.csv"))
	require.Error(t, err)
}
