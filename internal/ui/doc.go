package ui

// Package ui contains the Fyne-based menu bar interface. It renders the tray
// menu and the settings window and forwards user actions to the update
// orchestrator. All UI strings are localized via Localization.
