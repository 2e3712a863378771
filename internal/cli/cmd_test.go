package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/wallpaper"
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

func (s *recordingSetter) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.paths) == 0 {
		return ""
	}
	return s.paths[len(s.paths)-1]
}

type countingRescheduler struct {
	calls int
}

func (r *countingRescheduler) Reschedule() { r.calls++ }

// testEnv points the commands at a fake Bing server and a temporary settings file
type testEnv struct {
	configPath string
	imageDir   string
	setter     *recordingSetter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/HPImageArchive.aspx", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[
			{"startdate":"20240510","url":"/th?id=OHR.Fox.jpg","copyright":"Red fox (© Someone)","copyrightlink":"https://www.bing.com/search?q=fox"},
			{"startdate":"20240509","url":"/th?id=OHR.Owl.jpg","copyright":"Snowy owl (© Someone Else)","copyrightlink":"https://www.bing.com/search?q=owl"}
		]}`))
	})
	mux.HandleFunc("/th", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(jpegHeader)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	env := &testEnv{
		configPath: filepath.Join(dir, "settings.toml"),
		imageDir:   filepath.Join(dir, "images"),
		setter:     &recordingSetter{},
	}

	prevURL, prevSetters, prevMonitors, prevNow := bingBaseURL, setters, monitors, nowFunc
	bingBaseURL = srv.URL
	setters = func() (wallpaper.Setter, wallpaper.Setter) { return env.setter, env.setter }
	monitors = false
	nowFunc = func() time.Time { return time.Date(2024, 5, 12, 9, 0, 0, 0, time.Local) }
	t.Cleanup(func() {
		bingBaseURL, setters, monitors, nowFunc = prevURL, prevSetters, prevMonitors, prevNow
	})

	_, err := env.run("settings", "set", config.KeyImageDownloadPath, env.imageDir)
	require.NoError(t, err)
	_, err = env.run("settings", "set", config.KeyKeepImageDuration, "Forever")
	require.NoError(t, err)
	_, err = env.run("settings", "set", config.KeyShowUpdateNotification, "false")
	require.NoError(t, err)
	return env
}

func (e *testEnv) run(args ...string) (string, error) {
	listOnDisk, pruneBefore, infoCopy, marketsPopular, versionCheck = false, "", false, false, false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"run", "refresh", "list", "apply", "prune", "reset",
		"markets", "info", "settings", "version",
	}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.NotEmpty(t, cmd.Use)
			assert.NotEmpty(t, cmd.Short)
		})
	}
	assert.Equal(t, "bingwallpaper", rootCmd.Use)
}

func TestRefreshListInfoApply(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("refresh")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Downloaded 2 new wallpapers")
	assert.Equal(t, filepath.Join(env.imageDir, "20240510.jpg"), env.setter.last())

	out, err = env.run("refresh")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Already up to date")

	out, err = env.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-05-10")
	assert.Contains(t, out, "Red fox")
	assert.Contains(t, out, "Snowy owl")
	assert.Contains(t, out, "2 wallpapers")

	out, err = env.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "Red fox")
	assert.Contains(t, out, "© Someone")

	out, err = env.run("apply", "2024-05-09")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Snowy owl")
	assert.Equal(t, filepath.Join(env.imageDir, "20240509.jpg"), env.setter.last())

	out, err = env.run("info")
	require.NoError(t, err)
	assert.Contains(t, out, "Snowy owl")

	_, err = env.run("apply", "20200101")
	assert.Error(t, err)
}

func TestPrune(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("prune")
	require.NoError(t, err)
	assert.Contains(t, out, "forever")

	_, err = env.run("refresh")
	require.NoError(t, err)

	out, err = env.run("prune", "--before", "20240510")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Removed 1 wallpaper ")
	_, statErr := os.Stat(filepath.Join(env.imageDir, "20240509.jpg"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = env.run("settings", "set", config.KeyKeepImageDuration, "1 day")
	require.NoError(t, err)
	out, err = env.run("prune")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Removed 1 wallpaper ")

	out, err = env.run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No wallpapers yet")
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("refresh")
	require.NoError(t, err)

	out, err := env.run("reset")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Catalog reset")
	assert.Contains(t, out, "Downloaded 2 new wallpapers")
}

func TestSettingsShowAndSet(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("settings", "set", config.KeyMarketRegion, "de-DE")
	require.NoError(t, err)
	_, err = env.run("settings", "set", config.KeyScheduledUpdateHour, "7")
	require.NoError(t, err)

	out, err := env.run("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, env.configPath)
	assert.Contains(t, out, "de-DE")
	assert.Contains(t, out, config.KeySettingsVersion)

	out, err = env.run("markets")
	require.NoError(t, err)
	assert.Contains(t, out, "de-DE")
	assert.Contains(t, out, IconCurrent)

	out, err = env.run("markets", "--popular")
	require.NoError(t, err)
	assert.Contains(t, out, "ja-JP")
	assert.NotContains(t, out, "fi-FI")
}

func TestApplySetting(t *testing.T) {
	prefs, err := config.OpenFileStore(filepath.Join(t.TempDir(), "settings.toml"))
	require.NoError(t, err)
	settings := config.NewSettingsWithStore(prefs)

	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{config.KeyMarketRegion, "ja-JP", false},
		{config.KeyMarketRegion, "xx-XX", true},
		{config.KeyScheduledUpdateHour, "23", false},
		{config.KeyScheduledUpdateHour, "24", true},
		{config.KeyScheduledUpdateMinute, "-1", true},
		{config.KeyScheduledUpdateMinute, "30", false},
		{config.KeyUpdateIntervalHours, "1.5", false},
		{config.KeyUpdateIntervalHours, "0", true},
		{config.KeyUpdateIntervalHours, "soon", true},
		{config.KeyUpdateIntervalHours, "NaN", true},
		{config.KeyUpdateIntervalHours, "Inf", true},
		{config.KeyUpdateIntervalHours, "3e6", true},
		{config.KeyUpdateIntervalHours, "8760", false},
		{config.KeyKeepImageDuration, "2", false},
		{config.KeyKeepImageDuration, "9", true},
		{config.KeyKeepImageDuration, "forever", false},
		{config.KeyUseScheduledUpdate, "true", false},
		{config.KeyHideMenuBarIcon, "maybe", true},
		{config.KeyImageDownloadPath, "", true},
		{config.KeyLastUpdate, "20240101", true},
		{config.KeySettingsVersion, "9", true},
		{"unknown_key", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := applySetting(settings, tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "ja-JP", settings.GetMarketRegion())
	assert.Equal(t, 23, settings.GetScheduledUpdateHour())
	assert.Equal(t, 30, settings.GetScheduledUpdateMinute())
	assert.Equal(t, 8760.0, settings.GetUpdateIntervalHours())
	assert.Equal(t, config.KeepForever, settings.GetKeepImageDuration())
	assert.True(t, settings.GetUseScheduledUpdate())
}

func TestParseDateArg(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20240510", "20240510", false},
		{"2024-05-10", "20240510", false},
		{" 2024-05-10 ", "20240510", false},
		{"2024-13-01", "", true},
		{"yesterday", "", true},
	}
	for _, tt := range tests {
		got, err := parseDateArg(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestReloadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	daemonStore, err := config.OpenFileStore(path)
	require.NoError(t, err)
	daemonSettings := config.NewSettingsWithStore(daemonStore)

	editorStore, err := config.OpenFileStore(path)
	require.NoError(t, err)
	editor := config.NewSettingsWithStore(editorStore)

	orch := &countingRescheduler{}

	editor.SetUpdateIntervalHours(6)
	assert.True(t, reloadSettings(daemonStore, daemonSettings, orch))
	assert.Equal(t, 1, orch.calls)
	assert.Equal(t, 6.0, daemonSettings.GetUpdateIntervalHours())

	editor.SetLastUpdate(time.Now())
	assert.False(t, reloadSettings(daemonStore, daemonSettings, orch))
	assert.Equal(t, 1, orch.calls)

	editor.SetMarketRegion("fr-FR")
	assert.True(t, reloadSettings(daemonStore, daemonSettings, orch))
	assert.Equal(t, 2, orch.calls)
}

func TestWatchSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchSettings(ctx, path, 20*time.Millisecond, func() { changes.Add(1) })
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("market_region = \"en-GB\"\n"), 0o644)
		return changes.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestVersionCheck(t *testing.T) {
	env := newTestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/releases/tag/v9.9.9", http.StatusFound)
	})
	mux.HandleFunc("/releases/tag/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	prevURL, prevVersion := releasesURL, Version
	releasesURL, Version = srv.URL+"/releases/latest", "1.0.0"
	defer func() { releasesURL, Version = prevURL, prevVersion }()

	out, err := env.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0.0")
	assert.NotContains(t, out, "available")

	out, err = env.run("version", "--check")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Version 9.9.9 is available")
}
