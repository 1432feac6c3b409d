package player

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens technique video URLs in an external player or the system
// default handler (browser for hosted videos)
type Launcher struct {
	command string   // configured player command, empty for system default
	args    []string // additional arguments for the player
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startCommand,
		logger:  logger,
	}
}

// startCommand starts the process without waiting for it
func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens rawURL exactly as given
func (l *Launcher) Launch(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid video URL: %w", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("invalid video URL %q: missing scheme", rawURL)
	}

	if l.command != "" {
		return l.launchConfigured(rawURL)
	}
	return l.launchDefault(rawURL)
}

// launchConfigured launches the URL using the configured player
func (l *Launcher) launchConfigured(rawURL string) error {
	args := append([]string{}, l.args...)

	// On macOS, launch GUI apps with 'open -a' if the command is not in PATH
	if l.goos == "darwin" {
		if _, err := exec.LookPath(l.command); err != nil {
			cmdArgs := []string{"-a", l.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, rawURL)
			l.logger.Info("using macOS 'open -a' to launch GUI app", "app", l.command, "args", cmdArgs)
			return l.start("open", cmdArgs...)
		}
	}

	args = append(args, rawURL)
	l.logger.Info("launching player", "command", l.command, "args", args)
	return l.start(l.command, args...)
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(rawURL string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", rawURL)

	switch l.goos {
	case "darwin":
		return l.start("open", rawURL)
	case "windows":
		return l.start("cmd", "/c", "start", "", rawURL)
	default:
		// Linux and other Unix-like systems
		return l.start("xdg-open", rawURL)
	}
}
