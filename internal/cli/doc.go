package cli

// Package cli implements the bingwallpaper command line: a headless daemon plus
// one-shot commands over the same catalog, settings and update engine.
