package notify

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestDownloadedBody(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{1, "A new wallpaper has been downloaded and set."},
		{2, "2 new wallpapers have been downloaded."},
		{8, "8 new wallpapers have been downloaded."},
	}

	for _, test := range tests {
		if got := DownloadedBody(test.count); got != test.expected {
			t.Errorf("DownloadedBody(%d) = %q, expected %q", test.count, got, test.expected)
		}
	}
}

func TestFyneNotifier(t *testing.T) {
	app := test.NewApp()
	notifier := NewFyneNotifier(app)

	// The test driver accepts notifications without a desktop session.
	notifier.Notify(UpdatedTitle, DownloadedBody(3))
}

func TestLogNotifier(t *testing.T) {
	var n Notifier = LogNotifier{}
	n.Notify(UpdatedTitle, DownloadedBody(1))
}
