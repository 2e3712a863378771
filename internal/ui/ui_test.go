package ui

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/bing-wallpaper/internal/bing"
	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/model"
)

type fakeController struct {
	mu          sync.Mutex
	reschedules int
	refreshes   int
	applied     []string
	state       model.UpdateState
}

func (c *fakeController) ForceRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshes++
}

func (c *fakeController) Reschedule() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reschedules++
}

func (c *fakeController) Snapshot() (model.UpdateState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}

func (c *fakeController) Subscribe(buffer int) (<-chan model.Event, func()) {
	ch := make(chan model.Event)
	return ch, func() { close(ch) }
}

func (c *fakeController) ApplyWallpaper(startDate string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applied = append(c.applied, startDate)
	return nil
}

func (c *fakeController) ResetCatalog() error {
	return nil
}

func (c *fakeController) appliedDates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.applied...)
}

type fakeLibrary struct {
	items []model.ImageDescriptor
}

func (l *fakeLibrary) OnDisk() []model.ImageDescriptor { return l.items }

func (l *fakeLibrary) ImagePath(d model.ImageDescriptor) string {
	return "/tmp/" + d.StartDate + ".jpg"
}

func descriptors(keys ...string) []model.ImageDescriptor {
	items := make([]model.ImageDescriptor, 0, len(keys))
	for _, k := range keys {
		items = append(items, model.ImageDescriptor{
			StartDate:     k,
			Copyright:     "Image " + k + " (© Photographer " + k + ")",
			CopyrightLink: "https://www.bing.com/search?q=" + k,
		})
	}
	return items
}

func TestBrowser(t *testing.T) {
	b := NewBrowser(descriptors("20240508", "20240509", "20240510"), "")

	d, ok := b.Current()
	if !ok || d.StartDate != "20240510" {
		t.Fatalf("Current() = %q, %v, want newest", d.StartDate, ok)
	}
	if b.HasNext() {
		t.Error("HasNext() on newest should be false")
	}
	if _, ok := b.Next(); ok {
		t.Error("Next() on newest should fail")
	}

	if d, _ := b.Previous(); d.StartDate != "20240509" {
		t.Errorf("Previous() = %q, want 20240509", d.StartDate)
	}
	if d, _ := b.Previous(); d.StartDate != "20240508" {
		t.Errorf("Previous() = %q, want 20240508", d.StartDate)
	}
	if b.HasPrevious() {
		t.Error("HasPrevious() on oldest should be false")
	}
	if d, _ := b.Next(); d.StartDate != "20240509" {
		t.Errorf("Next() = %q, want 20240509", d.StartDate)
	}
}

func TestBrowser_ResetSelectsCurrentKey(t *testing.T) {
	b := NewBrowser(descriptors("20240508", "20240509", "20240510"), "20240509")
	if d, _ := b.Current(); d.StartDate != "20240509" {
		t.Errorf("Current() = %q, want 20240509", d.StartDate)
	}

	b.Reset(nil, "20240509")
	if _, ok := b.Current(); ok {
		t.Error("Current() on empty browser should fail")
	}
	if b.HasNext() || b.HasPrevious() {
		t.Error("empty browser should not navigate")
	}
}

func TestStatusText(t *testing.T) {
	loc := NewLocalization()
	next := time.Date(2024, 5, 10, 15, 4, 0, 0, time.Local)

	tests := []struct {
		name  string
		state model.UpdateState
		want  string
	}{
		{"updating", model.UpdateState{Phase: model.PhaseUpdating, IsUpdating: true, IsNetworkAvailable: true}, "Updating…"},
		{"offline", model.UpdateState{Phase: model.PhaseIdle, IsNetworkAvailable: false}, "Waiting for network"},
		{"scheduled", model.UpdateState{Phase: model.PhaseScheduled, IsNetworkAvailable: true, NextUpdateTime: &next}, "Next update: 15:04"},
		{"retry pending", model.UpdateState{Phase: model.PhaseRetryPending, IsNetworkAvailable: true, NextUpdateTime: &next}, "Next update: 15:04"},
		{"idle", model.UpdateState{Phase: model.PhaseIdle, IsNetworkAvailable: true}, "No update scheduled"},
		{"stale time while idle", model.UpdateState{Phase: model.PhaseIdle, IsNetworkAvailable: true, NextUpdateTime: &next}, "No update scheduled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(loc, tt.state); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("short", 10); got != "short" {
		t.Errorf("TruncateLabel() = %q", got)
	}
	if got := TruncateLabel("Mönchengladbach", 6); got != "Mönch…" {
		t.Errorf("TruncateLabel() = %q, want Mönch…", got)
	}
}

func TestLocalization(t *testing.T) {
	loc := NewLocalization()
	if got := loc.GetText(KeyRefresh); got != "Refresh Now" {
		t.Errorf("GetText() = %q", got)
	}

	loc.SetLanguage("ru")
	if loc.GetCurrentLanguage() != "ru" {
		t.Fatalf("language = %q, want ru", loc.GetCurrentLanguage())
	}
	if got := loc.GetText(KeyQuit); got != "Выход" {
		t.Errorf("GetText() = %q", got)
	}

	loc.SetLanguage("xx")
	if loc.GetCurrentLanguage() != "ru" {
		t.Error("unknown language should be ignored")
	}
	if got := loc.GetText("missing_key"); got != "missing_key" {
		t.Errorf("GetText() = %q, want key fallback", got)
	}
}

func TestLocalization_EveryKeyTranslated(t *testing.T) {
	loc := NewLocalization()
	for lang := range loc.GetAvailableLanguages() {
		for key := range loc.texts["en"] {
			if _, ok := loc.texts[lang][key]; !ok {
				t.Errorf("%s: missing translation for %s", lang, key)
			}
		}
	}
}

func TestSystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "pt_BR.UTF-8")
	if got := SystemLanguage(); got != "pt" {
		t.Errorf("SystemLanguage() = %q, want pt", got)
	}

	t.Setenv("LANG", "C")
	if got := SystemLanguage(); got != "en" {
		t.Errorf("SystemLanguage() = %q, want en", got)
	}
}

func TestSettingsWindow_Save(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	ctl := &fakeController{}
	sw := NewSettingsWindow(app, settings, ctl, NewLocalization())
	sw.loadCurrentSettings()

	if sw.intervalEntry.Text != "3" {
		t.Errorf("interval = %q, want 3", sw.intervalEntry.Text)
	}
	if !sw.hourSelect.Disabled() {
		t.Error("hour select should be disabled in interval mode")
	}

	sw.intervalEntry.SetText("6")
	sw.scheduledCheck.SetChecked(true)
	sw.hourSelect.SetSelected("07")
	sw.minuteSelect.SetSelected("30")
	sw.retentionSelect.SetSelected(config.Keep2Days.String())
	sw.marketSelect.SetSelected(marketDisplayName(t, "ja-JP"))
	sw.notifyCheck.SetChecked(false)

	if err := sw.save(); err != nil {
		t.Fatalf("save() error = %v", err)
	}

	if got := settings.GetUpdateIntervalHours(); got != 6 {
		t.Errorf("interval = %v, want 6", got)
	}
	cfg := settings.ScheduleConfig()
	if !cfg.UseScheduledTime || cfg.Hour != 7 || cfg.Minute != 30 {
		t.Errorf("schedule = %+v", cfg)
	}
	if settings.GetKeepImageDuration() != config.Keep2Days {
		t.Errorf("retention = %v", settings.GetKeepImageDuration())
	}
	if settings.GetMarketRegion() != "ja-JP" {
		t.Errorf("market = %q", settings.GetMarketRegion())
	}
	if settings.GetShowUpdateNotification() {
		t.Error("notifications should be off")
	}
	if ctl.reschedules != 1 {
		t.Errorf("reschedules = %d, want 1", ctl.reschedules)
	}
}

func TestSettingsWindow_RejectsBadInterval(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	ctl := &fakeController{}
	sw := NewSettingsWindow(app, settings, ctl, NewLocalization())
	sw.loadCurrentSettings()

	for _, input := range []string{"abc", "0", "-2", "NaN", "+Inf", "3e6"} {
		sw.intervalEntry.SetText(input)
		if err := sw.save(); err == nil {
			t.Errorf("save(%q) should fail", input)
		}
	}
	if ctl.reschedules != 0 {
		t.Errorf("reschedules = %d, want 0", ctl.reschedules)
	}
}

func TestTray_MenuReflectsLibrary(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetCurrentWallpaperStartDate("20240509")
	ctl := &fakeController{}
	tray := NewTray(TrayOptions{
		App:        app,
		Settings:   settings,
		Controller: ctl,
		Library:    &fakeLibrary{items: descriptors("20240508", "20240509", "20240510")},
	})

	if tray.titleItem.Label != "Image 20240509" {
		t.Errorf("title = %q", tray.titleItem.Label)
	}
	if tray.creditItem.Label != "© Photographer 20240509" {
		t.Errorf("credit = %q", tray.creditItem.Label)
	}
	if tray.prevItem.Disabled || tray.nextItem.Disabled {
		t.Error("middle image should allow both directions")
	}

	tray.onNext()
	if tray.titleItem.Label != "Image 20240510" {
		t.Errorf("title after next = %q", tray.titleItem.Label)
	}
	if !tray.nextItem.Disabled {
		t.Error("next should be disabled on newest image")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(ctl.appliedDates()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := ctl.appliedDates(); len(got) != 1 || got[0] != "20240510" {
		t.Errorf("applied = %v, want [20240510]", got)
	}
}

func TestTray_EmptyLibrary(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	tray := NewTray(TrayOptions{
		App:        app,
		Settings:   config.NewSettings(app),
		Controller: &fakeController{},
		Library:    &fakeLibrary{},
	})

	if tray.titleItem.Label != "No wallpaper downloaded yet" {
		t.Errorf("title = %q", tray.titleItem.Label)
	}
	for _, item := range []struct {
		name     string
		disabled bool
	}{
		{"previous", tray.prevItem.Disabled},
		{"next", tray.nextItem.Disabled},
		{"open", tray.openItem.Disabled},
		{"about", tray.aboutItem.Disabled},
		{"copy", tray.copyItem.Disabled},
	} {
		if !item.disabled {
			t.Errorf("%s should be disabled", item.name)
		}
	}
}

func TestTray_InstallHonoursHiddenIcon(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetHideMenuBarIcon(true)
	tray := NewTray(TrayOptions{
		App:        app,
		Settings:   settings,
		Controller: &fakeController{},
		Library:    &fakeLibrary{},
	})

	if tray.Install() {
		t.Error("Install() should fail when the icon is hidden")
	}
}

func marketDisplayName(t *testing.T, code string) string {
	t.Helper()
	m, ok := bing.LookupMarket(code)
	if !ok {
		t.Fatalf("market %s not found", code)
	}
	return m.DisplayName()
}
