package ui

import "time"

// Text fragments
const (
	MiddleDotSeparator = " · "
	Ellipsis           = "…"
	StatusTimeLayout   = "15:04"
	MenuTitleMaxRunes  = 48
)

// Settings window sizing
const (
	SettingsWindowWidth  float32 = 460
	SettingsWindowHeight float32 = 520
)

// Settings form limits
const (
	IntervalPlaceholder = "3"
	HoursPerDay         = 24
	MinutesPerHour      = 60
)

// Timeouts for work started from menu callbacks
const (
	UpdateCheckTimeout = 15 * time.Second
)

// Tray icon file, looked up next to the binary
const (
	TrayIconFile = "bing-wallpaper.png"
)
