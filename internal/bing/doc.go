package bing

// Package bing is the HTTP client for Bing's image archive endpoint and the
// list of markets it serves wallpapers for.
