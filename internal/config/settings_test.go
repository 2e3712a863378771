package config

import (
	"math"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.prefs != app.Preferences() {
		t.Error("Settings should use the app preferences")
	}
}

func TestImageDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetImageDirectory()
	if dir == "" {
		t.Error("Image directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/wallpapers"
	settings.SetImageDirectory(customDir)

	if got := settings.GetImageDirectory(); got != customDir {
		t.Errorf("Expected image directory %s, got %s", customDir, got)
	}
}

func TestLastUpdate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetLastUpdate().IsZero() {
		t.Error("Last update should be zero before the first update")
	}

	now := time.Date(2025, 3, 4, 8, 30, 0, 0, time.UTC)
	settings.SetLastUpdate(now)
	if got := settings.GetLastUpdate(); !got.Equal(now) {
		t.Errorf("Expected last update %v, got %v", now, got)
	}

	settings.SetLastUpdate(time.Time{})
	if !settings.GetLastUpdate().IsZero() {
		t.Error("Zero time should clear the last update")
	}

	app.Preferences().SetString(KeyLastUpdate, "not a time")
	if !settings.GetLastUpdate().IsZero() {
		t.Error("Malformed last update should read as zero")
	}
}

func TestUpdateIntervalHours(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetUpdateIntervalHours(); got != DefaultUpdateIntervalHours {
		t.Errorf("Expected default interval %v, got %v", DefaultUpdateIntervalHours, got)
	}

	settings.SetUpdateIntervalHours(6)
	if got := settings.GetUpdateIntervalHours(); got != 6 {
		t.Errorf("Expected interval 6, got %v", got)
	}

	settings.SetUpdateIntervalHours(0) // Should be clamped to minimum
	if got := settings.GetUpdateIntervalHours(); got != MinUpdateIntervalHours {
		t.Errorf("Interval should be clamped to %v, got %v", MinUpdateIntervalHours, got)
	}
	tests := []struct {
		name  string
		hours float64
		want  float64
	}{
		{"NaN", math.NaN(), DefaultUpdateIntervalHours},
		{"+Inf", math.Inf(1), MaxUpdateIntervalHours},
		{"-Inf", math.Inf(-1), MinUpdateIntervalHours},
		{"3e6", 3e6, MaxUpdateIntervalHours},
	}
	for _, tt := range tests {
		settings.SetUpdateIntervalHours(tt.hours)
		if got := settings.GetUpdateIntervalHours(); got != tt.want {
			t.Errorf("SetUpdateIntervalHours(%s): got %v, want %v", tt.name, got, tt.want)
		}

		// Values written around the setter are bounded on read.
		app.Preferences().SetFloat(KeyUpdateIntervalHours, tt.hours)
		if got := settings.GetUpdateIntervalHours(); got != tt.want {
			t.Errorf("stored %s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	if ValidUpdateIntervalHours(math.NaN()) || ValidUpdateIntervalHours(math.Inf(1)) || ValidUpdateIntervalHours(3e6) {
		t.Error("non-finite and oversized intervals should be invalid")
	}
	if !ValidUpdateIntervalHours(MaxUpdateIntervalHours) || !ValidUpdateIntervalHours(MinUpdateIntervalHours) {
		t.Error("range bounds should be valid")
	}
}

func TestScheduledTimeClamping(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	tests := []struct {
		hour, minute         int
		wantHour, wantMinute int
	}{
		{9, 30, 9, 30},
		{-1, -5, 0, 0},
		{24, 60, 23, 59},
		{23, 59, 23, 59},
	}

	for _, test := range tests {
		settings.SetScheduledUpdateHour(test.hour)
		settings.SetScheduledUpdateMinute(test.minute)
		if settings.GetScheduledUpdateHour() != test.wantHour || settings.GetScheduledUpdateMinute() != test.wantMinute {
			t.Errorf("Set(%d:%d) stored %d:%d, expected %d:%d", test.hour, test.minute,
				settings.GetScheduledUpdateHour(), settings.GetScheduledUpdateMinute(), test.wantHour, test.wantMinute)
		}
	}
}

func TestMarketRegion(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetMarketRegion(); got != DefaultMarketRegion {
		t.Errorf("Expected default market %s, got %s", DefaultMarketRegion, got)
	}

	settings.SetMarketRegion("de-DE")
	if got := settings.GetMarketRegion(); got != "de-DE" {
		t.Errorf("Expected market de-DE, got %s", got)
	}

	settings.SetMarketRegion("")
	if got := settings.GetMarketRegion(); got != DefaultMarketRegion {
		t.Errorf("Empty market should fall back to %s, got %s", DefaultMarketRegion, got)
	}
}

func TestToggles(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetShowUpdateNotification() != DefaultShowUpdateNotification {
		t.Error("Unexpected default for update notification")
	}
	if settings.GetAutoSetNewestWallpaper() != DefaultAutoSetNewestWallpaper {
		t.Error("Unexpected default for auto set newest wallpaper")
	}

	settings.SetShowUpdateNotification(false)
	settings.SetAutoSetNewestWallpaper(false)
	settings.SetHideMenuBarIcon(true)

	if settings.GetShowUpdateNotification() || settings.GetAutoSetNewestWallpaper() || !settings.GetHideMenuBarIcon() {
		t.Error("Toggles were not persisted")
	}

	settings.Reset()
	if !settings.GetShowUpdateNotification() || settings.GetHideMenuBarIcon() {
		t.Error("Reset should restore toggle defaults")
	}
}

func TestScheduleConfig(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetUseScheduledUpdate(true)
	settings.SetScheduledUpdateHour(9)
	settings.SetScheduledUpdateMinute(15)
	settings.SetUpdateIntervalHours(2)

	cfg := settings.ScheduleConfig()
	if !cfg.UseScheduledTime || cfg.Hour != 9 || cfg.Minute != 15 || cfg.IntervalHours != 2 {
		t.Errorf("Unexpected schedule config: %+v", cfg)
	}
}

func TestOldestDateStringToKeep(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.Local)

	tests := []struct {
		duration RetentionDuration
		expected string
		finite   bool
	}{
		{Keep1Day, "20250303", true},
		{Keep2Days, "20250302", true},
		{Keep5Days, "20250227", true},
		{Keep10Days, "20250222", true},
		{KeepForever, "", false},
	}

	for _, test := range tests {
		settings.SetKeepImageDuration(test.duration)
		cutoff, ok := settings.OldestDateStringToKeep(now)
		if cutoff != test.expected || ok != test.finite {
			t.Errorf("%s: got (%q, %v), expected (%q, %v)", test.duration, cutoff, ok, test.expected, test.finite)
		}
	}
}
