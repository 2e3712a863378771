package update

import (
	"log/slog"
	"sync"

	"github.com/ytget/bing-wallpaper/internal/model"
)

// DefaultSubscriberBuffer is the channel capacity used when Subscribe gets a non-positive size
const DefaultSubscriberBuffer = 16

// eventHub fans events out to subscriber channels without blocking the publisher
type eventHub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan model.Event
	closed bool
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[int]chan model.Event)}
}

func (h *eventHub) subscribe(buffer int) (<-chan model.Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	ch := make(chan model.Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.next
	h.next++
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

func (h *eventHub) publish(ev model.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("dropping event for slow subscriber", "subscriber", id, "event", eventName(ev))
		}
	}
}

func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func eventName(ev model.Event) string {
	switch ev.(type) {
	case model.StatusEvent:
		return "status"
	case model.NewImagesEvent:
		return "new_images"
	case model.DownloadedEvent:
		return "downloaded"
	case model.WallpaperEvent:
		return "wallpaper"
	case model.CycleFinishedEvent:
		return "cycle_finished"
	default:
		return "unknown"
	}
}
