package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Default screen layout polling settings
const (
	DefaultScreenCheckInterval = 5 * time.Second
	DefaultScreenProbeTimeout  = 3 * time.Second
)

// ScreenProbe returns a signature of the current display layout.
// Equal signatures mean an unchanged layout.
type ScreenProbe func(ctx context.Context) (string, error)

// ScreenWatcher polls a ScreenProbe and publishes SignalScreensChanged when
// the layout differs from the last successful reading. The first reading is
// the baseline; failed readings are skipped.
type ScreenWatcher struct {
	clock    clockwork.Clock
	interval time.Duration
	probe    ScreenProbe
	pub      Publisher
	last     string
	known    bool
}

// NewScreenWatcher creates a watcher publishing to pub
func NewScreenWatcher(clock clockwork.Clock, interval time.Duration, probe ScreenProbe, pub Publisher) *ScreenWatcher {
	if interval <= 0 {
		interval = DefaultScreenCheckInterval
	}
	return &ScreenWatcher{clock: clock, interval: interval, probe: probe, pub: pub}
}

// Run reads the layout immediately and then on every interval until ctx is done
func (w *ScreenWatcher) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			w.check(ctx)
		}
	}
}

func (w *ScreenWatcher) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, DefaultScreenProbeTimeout)
	defer cancel()

	layout, err := w.probe(probeCtx)
	if err != nil {
		slog.Debug("screen layout unavailable", "error", err)
		return
	}
	w.observe(layout)
}

func (w *ScreenWatcher) observe(layout string) bool {
	if !w.known {
		w.last, w.known = layout, true
		return false
	}
	if layout == w.last {
		return false
	}
	slog.Info("screen layout changed", "from", w.last, "to", layout)
	w.last = layout
	w.pub.Publish(SignalScreensChanged)
	return true
}
