package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	wallpaperapp "github.com/ytget/bing-wallpaper/internal/app"
	"github.com/ytget/bing-wallpaper/internal/catalog"
	"github.com/ytget/bing-wallpaper/internal/config"
	"github.com/ytget/bing-wallpaper/internal/model"
	"github.com/ytget/bing-wallpaper/internal/wallpaper"
)

// cycleTimeout bounds how long one-shot commands wait for an update cycle
const cycleTimeout = 5 * time.Minute

// Overridable collaborators, replaced in tests
var (
	bingBaseURL string
	setters     func() (primary, fallback wallpaper.Setter)
	monitors    = true
	nowFunc     = time.Now
)

// newService builds the update service from the loaded settings
func newService(withMonitors bool) (*wallpaperapp.Service, error) {
	opts := wallpaperapp.Options{
		Settings:        appSettings,
		Version:         Version,
		BaseURL:         bingBaseURL,
		DisableMonitors: !withMonitors || !monitors,
	}
	if setters != nil {
		opts.Primary, opts.Fallback = setters()
	}
	return wallpaperapp.New(opts)
}

// openCatalog opens the catalog in the configured image directory
func openCatalog() (*catalog.Store, error) {
	dir, err := config.ExpandPath(appSettings.GetImageDirectory())
	if err != nil {
		return nil, fmt.Errorf("resolve image directory: %w", err)
	}
	return catalog.Open(dir)
}

// waitForCycle returns the next finished cycle published on events
func waitForCycle(ctx context.Context, events <-chan model.Event) (model.CycleFinishedEvent, error) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return model.CycleFinishedEvent{}, fmt.Errorf("update service stopped")
			}
			if finished, ok := ev.(model.CycleFinishedEvent); ok {
				return finished, nil
			}
		case <-ctx.Done():
			return model.CycleFinishedEvent{}, fmt.Errorf("waiting for update: %w", ctx.Err())
		}
	}
}

// parseDateArg accepts YYYYMMDD or YYYY-MM-DD and returns the catalog key
func parseDateArg(arg string) (string, error) {
	key := strings.ReplaceAll(strings.TrimSpace(arg), "-", "")
	if !model.IsValidStartDate(key) {
		return "", fmt.Errorf("invalid date %q, expected YYYYMMDD or YYYY-MM-DD", arg)
	}
	return key, nil
}

// formatDate renders a catalog key as YYYY-MM-DD
func formatDate(key string) string {
	t, err := time.Parse(model.StartDateLayout, key)
	if err != nil {
		return key
	}
	return t.Format(time.DateOnly)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
