package notify

// Package notify delivers user notifications through fyne or the log.
