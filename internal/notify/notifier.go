package notify

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
)

// UpdatedTitle is the title of the notification sent after new downloads
const UpdatedTitle = "Bing Wallpaper Updated"

// Notifier shows a user notification
type Notifier interface {
	Notify(title, body string)
}

// DownloadedBody returns the notification text for count new images
func DownloadedBody(count int) string {
	if count == 1 {
		return "A new wallpaper has been downloaded and set."
	}
	return fmt.Sprintf("%d new wallpapers have been downloaded.", count)
}

// FyneNotifier sends notifications through the fyne app
type FyneNotifier struct {
	app fyne.App
}

// NewFyneNotifier creates a notifier bound to app
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

// Notify sends a system notification
func (n *FyneNotifier) Notify(title, body string) {
	n.app.SendNotification(fyne.NewNotification(title, body))
}

// LogNotifier writes notifications to the log, for headless runs
type LogNotifier struct{}

// Notify logs the notification
func (LogNotifier) Notify(title, body string) {
	slog.Info("notification", "title", title, "body", body)
}
