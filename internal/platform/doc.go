package platform

// Package platform contains OS integration glue: filesystem helpers, default
// directories, opening files and URLs, and running AppleScript through osascript.
