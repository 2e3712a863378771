package wallpaper

// Package wallpaper applies a downloaded image as the desktop picture, using
// System Events for every desktop and a per-screen fallback for the active space.
