package schedule

// Package schedule computes how long to wait before the next wallpaper fetch,
// either a fixed interval after the last update or at a fixed time each day.
