package tui

import (
	"github.com/mmcdole/hema/internal/domain"
)

// Message types for the TUI

// queryUpdatedMsg signals that an observed query may have changed state
type queryUpdatedMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// HealthCheckedMsg reports the result of the startup API ping
type HealthCheckedMsg struct {
	Health domain.Health
	Err    error
}

// VideoOpenedMsg signals that the video player was launched
type VideoOpenedMsg struct {
	Technique domain.Technique
}

// VideoFailedMsg signals that the video could not be opened
type VideoFailedMsg struct {
	Technique domain.Technique
	Err       error
}
