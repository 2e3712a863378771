package catalog

// Package catalog is the persistent, deduplicated collection of wallpaper
// descriptors keyed by start date, together with the image files they refer to.
