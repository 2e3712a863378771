package model

// Package model defines domain data structures shared across the app: image
// descriptors, remote image entries, the update phase enum, and the typed events
// the update orchestrator publishes to its observers.
