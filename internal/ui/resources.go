package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadTrayIcon loads the tray icon from disk, falling back to a theme icon
func LoadTrayIcon() fyne.Resource {
	icon, err := fyne.LoadResourceFromPath(TrayIconFile)
	if err != nil {
		slog.Debug("tray icon not found, using theme icon", "file", TrayIconFile, "error", err)
		return theme.FileImageIcon()
	}
	return icon
}
