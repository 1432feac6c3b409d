package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/service"
)

const healthCheckTimeout = 5 * time.Second

// waitForQueryUpdateCmd returns a command that blocks until the next query
// notification. The update handler re-arms it after every message.
func waitForQueryUpdateCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return queryUpdatedMsg{}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// HealthCheckCmd pings the API once so an unreachable server shows up
// in the status bar before any screen fails
func HealthCheckCmd(svc *service.ContentService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()

		health, err := svc.Health(ctx)
		return HealthCheckedMsg{Health: health, Err: err}
	}
}

// OpenVideoCmd opens the technique's video in the external player
func OpenVideoCmd(svc *service.PlaybackService, technique domain.Technique) tea.Cmd {
	return func() tea.Msg {
		if err := svc.OpenVideo(technique); err != nil {
			return VideoFailedMsg{Technique: technique, Err: err}
		}
		return VideoOpenedMsg{Technique: technique}
	}
}
