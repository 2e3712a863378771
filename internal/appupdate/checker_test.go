package appupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1.0.0", "1.0.0", 0},
		{"v1.2.0", "1.2", 0},
		{"1.2.0", "1.10.0", -1},
		{"2.0", "1.99.99", 1},
		{"1.0", "1.0.1", -1},
		{"dev", "1.0.0", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CompareVersions(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func newReleaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/releases/tag/"+tag, http.StatusFound)
	})
	mux.HandleFunc("/releases/tag/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_UpdateAvailable(t *testing.T) {
	srv := newReleaseServer(t, "v1.4.0")
	checker := NewChecker(srv.URL+"/releases/latest", srv.Client())

	result, err := checker.Check(context.Background(), "1.3.2")
	require.NoError(t, err)

	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "1.4.0", result.LatestVersion)
	assert.Equal(t, "1.3.2", result.CurrentVersion)
	assert.Equal(t, srv.URL+"/releases/tag/v1.4.0", result.ReleaseURL)
}

func TestChecker_UpToDate(t *testing.T) {
	srv := newReleaseServer(t, "v1.4.0")
	checker := NewChecker(srv.URL+"/releases/latest", srv.Client())

	result, err := checker.Check(context.Background(), "v1.4.0")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestChecker_NoRelease(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	checker := NewChecker(srv.URL+"/releases/latest", srv.Client())

	_, err := checker.Check(context.Background(), "1.0.0")
	assert.ErrorIs(t, err, ErrNoRelease)
}
