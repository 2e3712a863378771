package update

// Package update runs the wallpaper update cycle: it keeps a single timer armed
// for the next fetch, retries failed fetches with a fixed backoff, reacts to
// network and sleep/wake transitions, and publishes typed events to observers.
// All state is owned by one goroutine that serialises commands.
