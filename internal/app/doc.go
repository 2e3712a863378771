package app

// Package app wires settings, catalog, Bing client, wallpaper applier and the
// update orchestrator into a running service shared by the tray app and the CLI.
