package update

import "errors"

var (
	// ErrFetchFailure wraps a failed archive request; only these are retried
	ErrFetchFailure = errors.New("fetch failure")

	// ErrImageDownload wraps a failed per-image download; the batch continues
	ErrImageDownload = errors.New("image download failure")

	// ErrUpdateInProgress is returned by operations that cannot run during a cycle
	ErrUpdateInProgress = errors.New("update in progress")

	// ErrNotFound is returned when a requested descriptor is not in the catalog
	ErrNotFound = errors.New("wallpaper not found")

	// ErrStopped is returned when the orchestrator no longer accepts commands
	ErrStopped = errors.New("orchestrator stopped")
)
