package lifecycle

import (
	"fmt"
	"sync"
)

// Signal is a lifecycle transition
type Signal int

const (
	SignalSleep Signal = iota + 1
	SignalWake
	SignalNetworkUp
	SignalNetworkDown
	SignalScreensChanged
	SignalSpaceChanged
)

var signalNames = map[Signal]string{
	SignalSleep:          "sleep",
	SignalWake:           "wake",
	SignalNetworkUp:      "network-up",
	SignalNetworkDown:    "network-down",
	SignalScreensChanged: "screens-changed",
	SignalSpaceChanged:   "space-changed",
}

// String returns the signal name
func (s Signal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// Source delivers signals to subscribers until they unsubscribe
type Source interface {
	Subscribe(fn func(Signal)) (unsubscribe func())
}

// Publisher accepts signals from an OS adapter
type Publisher interface {
	Publish(sig Signal)
}

// Hub fans published signals out to subscribers. Handlers run on the
// publishing goroutine and must not block.
type Hub struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Signal)
}

var (
	_ Source    = (*Hub)(nil)
	_ Publisher = (*Hub)(nil)
)

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(Signal))}
}

// Subscribe registers fn; the returned func removes it and is safe to call twice
func (h *Hub) Subscribe(fn func(Signal)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers sig to every current subscriber
func (h *Hub) Publish(sig Signal) {
	h.mu.RLock()
	handlers := make([]func(Signal), 0, len(h.subs))
	for _, fn := range h.subs {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(sig)
	}
}
