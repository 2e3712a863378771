package model

import "time"

// Event is a message published by the update orchestrator
type Event interface {
	isEvent()
}

// StatusEvent reports the next scheduled update and whether a cycle is running
type StatusEvent struct {
	NextUpdate *time.Time
	IsUpdating bool
}

// NewImagesEvent reports descriptors added to the catalog by a fetch cycle
type NewImagesEvent struct {
	Descriptors []ImageDescriptor
}

// DownloadedEvent reports how many image files a cycle wrote to disk
type DownloadedEvent struct {
	Count int
}

// WallpaperEvent reports that a descriptor was applied as the desktop picture
type WallpaperEvent struct {
	Descriptor ImageDescriptor
}

func (StatusEvent) isEvent()     {}
func (NewImagesEvent) isEvent()  {}
func (DownloadedEvent) isEvent() {}
func (WallpaperEvent) isEvent()  {}

// CycleFinishedEvent reports the outcome of a fetch cycle
type CycleFinishedEvent struct {
	Err        error // nil on success
	NewImages  int
	Downloaded int
	RetryCount int
}

func (CycleFinishedEvent) isEvent() {}
