package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	MiddleDotSeparator    = " · "
	PercentLabelFormat    = "%.1f%%"
	CompletedStatusFormat = "%s: %s"
)

// Layout sizing
const (
	PercentLabelWidth float32 = 56
	SettingsWidth     float32 = 480
	SettingsHeight    float32 = 260
)

// ProgressHideDelay is how long the progress bar stays visible after a download finishes
const ProgressHideDelay = 2 * time.Second
