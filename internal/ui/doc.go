package ui

// Package ui contains the Fyne desktop window: a single download form bound
// to AppState, the settings dialog, and localized texts. Downloads run through
// download.Downloader and their events are applied on the UI thread.
