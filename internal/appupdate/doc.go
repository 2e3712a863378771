package appupdate

// Package appupdate checks whether a newer release of the app has been published.
