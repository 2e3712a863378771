package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Default wake detection settings
const (
	DefaultWakeCheckInterval = 15 * time.Second
	DefaultWakeThreshold     = 60 * time.Second
)

// WakeDetector infers a system wake from a jump in wall-clock time between
// ticks. Go's monotonic clock stops while the machine sleeps, so readings are
// compared without it.
type WakeDetector struct {
	clock     clockwork.Clock
	interval  time.Duration
	threshold time.Duration
	pub       Publisher
	last      time.Time
}

// NewWakeDetector creates a detector publishing SignalWake to pub
func NewWakeDetector(clock clockwork.Clock, interval, threshold time.Duration, pub Publisher) *WakeDetector {
	if interval <= 0 {
		interval = DefaultWakeCheckInterval
	}
	if threshold <= 0 {
		threshold = DefaultWakeThreshold
	}
	return &WakeDetector{clock: clock, interval: interval, threshold: threshold, pub: pub}
}

// Run checks for clock jumps until ctx is done
func (d *WakeDetector) Run(ctx context.Context) {
	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	d.last = d.clock.Now().Round(0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			d.observe(d.clock.Now())
		}
	}
}

func (d *WakeDetector) observe(now time.Time) bool {
	now = now.Round(0)
	gap := now.Sub(d.last)
	d.last = now
	if gap <= d.interval+d.threshold {
		return false
	}
	slog.Info("wall clock jumped, assuming system woke", "gap", gap.Round(time.Second))
	d.pub.Publish(SignalWake)
	return true
}
