package config

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/platform"
)

// Preferences is the key-value store settings are persisted in.
// fyne.Preferences satisfies it, as does FileStore.
type Preferences interface {
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
	FloatWithFallback(key string, fallback float64) float64
	SetFloat(key string, value float64)
	IntWithFallback(key string, fallback int) int
	SetInt(key string, value int)
	StringWithFallback(key, fallback string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

// Settings keys
const (
	KeyImageDownloadPath      = "image_download_path"
	KeyLastUpdate             = "last_update"
	KeyKeepImageDuration      = "keep_image_duration"
	KeyUpdateIntervalHours    = "update_interval_hours"
	KeyMarketRegion           = "market_region"
	KeyUseScheduledUpdate     = "use_scheduled_update"
	KeyScheduledUpdateHour    = "scheduled_update_hour"
	KeyScheduledUpdateMinute  = "scheduled_update_minute"
	KeyCurrentWallpaperDate   = "current_wallpaper_start_date"
	KeyShowUpdateNotification = "show_update_notification"
	KeyAutoSetNewestWallpaper = "auto_set_newest_wallpaper"
	KeyHideMenuBarIcon        = "hide_menu_bar_icon"
	KeySettingsVersion        = "settings_version"
)

// Default values
const (
	DefaultKeepImageDuration      = Keep10Days
	DefaultUpdateIntervalHours    = 3.0
	MinUpdateIntervalHours        = 0.1
	MaxUpdateIntervalHours        = 24 * 365
	DefaultMarketRegion           = "en-US"
	DefaultUseScheduledUpdate     = false
	DefaultScheduledUpdateHour    = 0
	DefaultScheduledUpdateMinute  = 0
	DefaultShowUpdateNotification = true
	DefaultAutoSetNewestWallpaper = true
	DefaultHideMenuBarIcon        = false

	// CurrentSettingsVersion is bumped whenever a stored value changes meaning
	CurrentSettingsVersion = 2
)

// Settings manages application configuration
type Settings struct {
	prefs Preferences
}

// NewSettings creates a settings manager backed by the app's preferences
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// NewSettingsWithStore creates a settings manager over an arbitrary preferences store
func NewSettingsWithStore(prefs Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// GetImageDirectory returns the directory downloaded images are stored in
func (s *Settings) GetImageDirectory() string {
	dir := s.prefs.StringWithFallback(KeyImageDownloadPath, "")
	if dir == "" {
		defaultDir, err := platform.DefaultImageDir()
		if err != nil {
			defaultDir = "/tmp/BingWallpaper"
		}
		s.SetImageDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetImageDirectory sets the image directory
func (s *Settings) SetImageDirectory(dir string) {
	s.prefs.SetString(KeyImageDownloadPath, dir)
}

// GetLastUpdate returns the start time of the last update cycle, zero if none ran yet
func (s *Settings) GetLastUpdate() time.Time {
	raw := s.prefs.StringWithFallback(KeyLastUpdate, "")
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Warn("ignoring malformed last update", "value", raw, "error", err)
		return time.Time{}
	}
	return t
}

// SetLastUpdate records the start time of an update cycle
func (s *Settings) SetLastUpdate(t time.Time) {
	if t.IsZero() {
		s.prefs.RemoveValue(KeyLastUpdate)
		return
	}
	s.prefs.SetString(KeyLastUpdate, t.Format(time.RFC3339))
}

// GetKeepImageDuration returns how long downloaded images are kept
func (s *Settings) GetKeepImageDuration() RetentionDuration {
	value := RetentionDuration(s.prefs.IntWithFallback(KeyKeepImageDuration, int(DefaultKeepImageDuration)))
	if !value.IsValid() {
		return DefaultKeepImageDuration
	}
	return value
}

// SetKeepImageDuration sets the retention duration
func (s *Settings) SetKeepImageDuration(d RetentionDuration) {
	if !d.IsValid() {
		d = DefaultKeepImageDuration
	}
	s.prefs.SetInt(KeyKeepImageDuration, int(d))
}

// GetUpdateIntervalHours returns the interval between updates in hours
func (s *Settings) GetUpdateIntervalHours() float64 {
	return clampInterval(s.prefs.FloatWithFallback(KeyUpdateIntervalHours, DefaultUpdateIntervalHours))
}

// SetUpdateIntervalHours sets the update interval, clamped to the allowed range
func (s *Settings) SetUpdateIntervalHours(hours float64) {
	s.prefs.SetFloat(KeyUpdateIntervalHours, clampInterval(hours))
}

// ValidUpdateIntervalHours reports whether hours is a finite value in the allowed range
func ValidUpdateIntervalHours(hours float64) bool {
	return hours >= MinUpdateIntervalHours && hours <= MaxUpdateIntervalHours
}

// clampInterval maps NaN to the default and bounds everything else
func clampInterval(hours float64) float64 {
	switch {
	case math.IsNaN(hours):
		return DefaultUpdateIntervalHours
	case hours < MinUpdateIntervalHours:
		return MinUpdateIntervalHours
	case hours > MaxUpdateIntervalHours:
		return MaxUpdateIntervalHours
	}
	return hours
}

// GetMarketRegion returns the Bing market code
func (s *Settings) GetMarketRegion() string {
	market := s.prefs.StringWithFallback(KeyMarketRegion, "")
	if market == "" {
		return DefaultMarketRegion
	}
	return market
}

// SetMarketRegion sets the Bing market code
func (s *Settings) SetMarketRegion(market string) {
	if market == "" {
		market = DefaultMarketRegion
	}
	s.prefs.SetString(KeyMarketRegion, market)
}

// GetUseScheduledUpdate returns whether updates run at a fixed daily time
func (s *Settings) GetUseScheduledUpdate() bool {
	return s.prefs.BoolWithFallback(KeyUseScheduledUpdate, DefaultUseScheduledUpdate)
}

// SetUseScheduledUpdate switches between fixed time and interval scheduling
func (s *Settings) SetUseScheduledUpdate(use bool) {
	s.prefs.SetBool(KeyUseScheduledUpdate, use)
}

// GetScheduledUpdateHour returns the hour of the daily update
func (s *Settings) GetScheduledUpdateHour() int {
	return s.prefs.IntWithFallback(KeyScheduledUpdateHour, DefaultScheduledUpdateHour)
}

// SetScheduledUpdateHour sets the hour of the daily update (0-23)
func (s *Settings) SetScheduledUpdateHour(hour int) {
	s.prefs.SetInt(KeyScheduledUpdateHour, clamp(hour, 0, 23))
}

// GetScheduledUpdateMinute returns the minute of the daily update
func (s *Settings) GetScheduledUpdateMinute() int {
	return s.prefs.IntWithFallback(KeyScheduledUpdateMinute, DefaultScheduledUpdateMinute)
}

// SetScheduledUpdateMinute sets the minute of the daily update (0-59)
func (s *Settings) SetScheduledUpdateMinute(minute int) {
	s.prefs.SetInt(KeyScheduledUpdateMinute, clamp(minute, 0, 59))
}

// GetCurrentWallpaperStartDate returns the key of the last applied wallpaper
func (s *Settings) GetCurrentWallpaperStartDate() string {
	return s.prefs.StringWithFallback(KeyCurrentWallpaperDate, "")
}

// SetCurrentWallpaperStartDate stores the key of the applied wallpaper
func (s *Settings) SetCurrentWallpaperStartDate(startDate string) {
	s.prefs.SetString(KeyCurrentWallpaperDate, startDate)
}

// GetShowUpdateNotification returns whether a notification is shown after downloads
func (s *Settings) GetShowUpdateNotification() bool {
	return s.prefs.BoolWithFallback(KeyShowUpdateNotification, DefaultShowUpdateNotification)
}

// SetShowUpdateNotification sets whether a notification is shown after downloads
func (s *Settings) SetShowUpdateNotification(show bool) {
	s.prefs.SetBool(KeyShowUpdateNotification, show)
}

// GetAutoSetNewestWallpaper returns whether the newest image is applied after an update
func (s *Settings) GetAutoSetNewestWallpaper() bool {
	return s.prefs.BoolWithFallback(KeyAutoSetNewestWallpaper, DefaultAutoSetNewestWallpaper)
}

// SetAutoSetNewestWallpaper sets whether the newest image is applied after an update
func (s *Settings) SetAutoSetNewestWallpaper(auto bool) {
	s.prefs.SetBool(KeyAutoSetNewestWallpaper, auto)
}

// GetHideMenuBarIcon returns whether the tray icon is hidden
func (s *Settings) GetHideMenuBarIcon() bool {
	return s.prefs.BoolWithFallback(KeyHideMenuBarIcon, DefaultHideMenuBarIcon)
}

// SetHideMenuBarIcon sets whether the tray icon is hidden
func (s *Settings) SetHideMenuBarIcon(hide bool) {
	s.prefs.SetBool(KeyHideMenuBarIcon, hide)
}

// GetSettingsVersion returns the stored settings schema version, 0 before the first migration
func (s *Settings) GetSettingsVersion() int {
	return s.prefs.IntWithFallback(KeySettingsVersion, 0)
}

// ScheduleConfig returns the current schedule configuration
func (s *Settings) ScheduleConfig() model.ScheduleConfig {
	return model.ScheduleConfig{
		UseScheduledTime: s.GetUseScheduledUpdate(),
		IntervalHours:    s.GetUpdateIntervalHours(),
		Hour:             s.GetScheduledUpdateHour(),
		Minute:           s.GetScheduledUpdateMinute(),
	}
}

// OldestDateStringToKeep returns the retention cutoff key for now.
// It returns false when images are kept forever.
func (s *Settings) OldestDateStringToKeep(now time.Time) (string, bool) {
	days, ok := s.GetKeepImageDuration().Days()
	if !ok {
		return "", false
	}
	return now.AddDate(0, 0, -days).Format(model.StartDateLayout), true
}

// Reset restores the defaults of all user facing settings
func (s *Settings) Reset() {
	for _, key := range []string{
		KeyKeepImageDuration,
		KeyUpdateIntervalHours,
		KeyMarketRegion,
		KeyUseScheduledUpdate,
		KeyScheduledUpdateHour,
		KeyScheduledUpdateMinute,
		KeyShowUpdateNotification,
		KeyAutoSetNewestWallpaper,
		KeyHideMenuBarIcon,
	} {
		s.prefs.RemoveValue(key)
	}
}

// Describe returns the current settings as display strings keyed by preference key
func (s *Settings) Describe() map[string]string {
	return map[string]string{
		KeyImageDownloadPath:      s.GetImageDirectory(),
		KeyLastUpdate:             s.prefs.StringWithFallback(KeyLastUpdate, ""),
		KeyKeepImageDuration:      s.GetKeepImageDuration().String(),
		KeyUpdateIntervalHours:    fmt.Sprintf("%g", s.GetUpdateIntervalHours()),
		KeyMarketRegion:           s.GetMarketRegion(),
		KeyUseScheduledUpdate:     fmt.Sprintf("%t", s.GetUseScheduledUpdate()),
		KeyScheduledUpdateHour:    fmt.Sprintf("%d", s.GetScheduledUpdateHour()),
		KeyScheduledUpdateMinute:  fmt.Sprintf("%d", s.GetScheduledUpdateMinute()),
		KeyCurrentWallpaperDate:   s.GetCurrentWallpaperStartDate(),
		KeyShowUpdateNotification: fmt.Sprintf("%t", s.GetShowUpdateNotification()),
		KeyAutoSetNewestWallpaper: fmt.Sprintf("%t", s.GetAutoSetNewestWallpaper()),
		KeyHideMenuBarIcon:        fmt.Sprintf("%t", s.GetHideMenuBarIcon()),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
