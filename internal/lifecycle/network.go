package lifecycle

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
)

// Default reachability probe settings
const (
	DefaultProbeAddress  = "www.bing.com:443"
	DefaultProbeInterval = 30 * time.Second
	DefaultProbeTimeout  = 5 * time.Second
)

// Prober reports whether the network is reachable
type Prober func(ctx context.Context) bool

// TCPProbe returns a Prober that dials addr
func TCPProbe(addr string, timeout time.Duration) Prober {
	return func(ctx context.Context) bool {
		dialer := net.Dialer{Timeout: timeout}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}
}

// NetworkMonitor polls a Prober and publishes only reachability changes.
// The network is assumed reachable until a probe says otherwise.
type NetworkMonitor struct {
	clock     clockwork.Clock
	interval  time.Duration
	probe     Prober
	pub       Publisher
	available bool
}

// NewNetworkMonitor creates a monitor publishing to pub
func NewNetworkMonitor(clock clockwork.Clock, interval time.Duration, probe Prober, pub Publisher) *NetworkMonitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &NetworkMonitor{
		clock:     clock,
		interval:  interval,
		probe:     probe,
		pub:       pub,
		available: true,
	}
}

// Run probes immediately and then on every interval until ctx is done
func (m *NetworkMonitor) Run(ctx context.Context) {
	ticker := m.clock.NewTicker(m.interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.check(ctx)
		}
	}
}

func (m *NetworkMonitor) check(ctx context.Context) {
	m.observe(m.probe(ctx))
}

func (m *NetworkMonitor) observe(available bool) {
	if available == m.available {
		return
	}
	m.available = available
	if available {
		slog.Info("network became available")
		m.pub.Publish(SignalNetworkUp)
	} else {
		slog.Info("network became unavailable")
		m.pub.Publish(SignalNetworkDown)
	}
}
