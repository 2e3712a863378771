package lifecycle

// Package lifecycle delivers system lifecycle signals (sleep, wake, network
// reachability, screen and space changes) to subscribers as edge-triggered events.
