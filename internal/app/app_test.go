package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/lifecycle"
	"github.com/ytget/bing-wallpaper/internal/model"
)

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type recordingSetter struct {
	mu    sync.Mutex
	paths []string
}

func (s *recordingSetter) SetDesktopPicture(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return nil
}

func (s *recordingSetter) applied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func newBingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/HPImageArchive.aspx", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "de-DE", r.URL.Query().Get("mkt"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[
			{"startdate":"20240510","url":"/th?id=OHR.Fox.jpg","copyright":"Red fox (© Someone)","copyrightlink":"https://www.bing.com/search?q=fox"},
			{"startdate":"20240509","url":"/th?id=OHR.Owl.jpg","copyright":"Snowy owl (© Someone)","copyrightlink":"https://www.bing.com/search?q=owl"}
		]}`))
	})
	mux.HandleFunc("/th", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jpegHeader)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSettings(t *testing.T) *config.Settings {
	t.Helper()
	dir := t.TempDir()
	prefs, err := config.OpenFileStore(filepath.Join(dir, "settings.toml"))
	require.NoError(t, err)
	settings := config.NewSettingsWithStore(prefs)
	settings.SetImageDirectory(filepath.Join(dir, "images"))
	settings.SetMarketRegion("de-DE")
	settings.SetShowUpdateNotification(false)
	settings.SetKeepImageDuration(config.KeepForever)
	return settings
}

func TestService_FirstRunDownloadsAndApplies(t *testing.T) {
	srv := newBingServer(t)
	settings := newSettings(t)
	setter := &recordingSetter{}

	svc, err := New(Options{
		Settings:        settings,
		Version:         "1.2.3",
		BaseURL:         srv.URL,
		Primary:         setter,
		Fallback:        setter,
		DisableMonitors: true,
	})
	require.NoError(t, err)

	events, unsubscribe := svc.Orchestrator.Subscribe(32)
	defer unsubscribe()

	svc.Start(context.Background())
	defer svc.Close()

	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case ev := <-events:
			if cycle, ok := ev.(model.CycleFinishedEvent); ok {
				require.NoError(t, cycle.Err)
				assert.Equal(t, 2, cycle.Downloaded)
				finished = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for the first update cycle")
		}
	}

	assert.Len(t, svc.Catalog.OnDisk(), 2)
	newest, ok := svc.Catalog.Newest()
	require.True(t, ok)
	assert.Equal(t, []string{svc.Catalog.ImagePath(newest)}, setter.applied())
	assert.Equal(t, "20240510", settings.GetCurrentWallpaperStartDate())
	assert.Equal(t, config.CurrentSettingsVersion, settings.GetSettingsVersion())
}

func TestService_ScreenChangeReappliesWallpaper(t *testing.T) {
	srv := newBingServer(t)
	settings := newSettings(t)
	setter := &recordingSetter{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	var (
		mu     sync.Mutex
		layout = "0,0,1440,900"
		reads  atomic.Int32
	)
	screens := func(context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		reads.Add(1)
		return layout, nil
	}

	svc, err := New(Options{
		Settings:    settings,
		Clock:       clock,
		BaseURL:     srv.URL,
		Primary:     setter,
		Fallback:    setter,
		Probe:       func(context.Context) bool { return true },
		ScreenProbe: screens,
	})
	require.NoError(t, err)

	events, unsubscribe := svc.Orchestrator.Subscribe(32)
	defer unsubscribe()

	svc.Start(context.Background())
	defer svc.Close()

	timeout := time.After(5 * time.Second)
	for finished := false; !finished; {
		select {
		case ev := <-events:
			_, finished = ev.(model.CycleFinishedEvent)
		case <-timeout:
			t.Fatal("timed out waiting for the first update cycle")
		}
	}
	require.Len(t, setter.applied(), 1)
	require.Eventually(t, func() bool { return reads.Load() >= 1 }, 5*time.Second, 5*time.Millisecond)

	mu.Lock()
	layout = "0,0,1440,900;1440,0,2560,1440"
	mu.Unlock()
	clock.Advance(lifecycle.DefaultScreenCheckInterval)

	require.Eventually(t, func() bool { return len(setter.applied()) == 2 }, 5*time.Second, 5*time.Millisecond)
	applied := setter.applied()
	assert.Equal(t, applied[0], applied[1])
}

func TestService_RequiresSettings(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
