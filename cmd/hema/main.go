package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/hema/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// options holds the flags shared by every command
type options struct {
	env        string
	apiURL     string
	configPath string
	demo       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "hema",
		Short:         "Browse historical fencing manuals, chapters and techniques",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.env, "env", "", "API environment: development or production")
	flags.StringVar(&opts.apiURL, "api-url", "", "API base URL (overrides --env)")
	flags.StringVar(&opts.configPath, "config", "", "config file path")
	flags.BoolVar(&opts.demo, "demo", false, "serve a built-in sample catalogue instead of the API")

	cmd.AddCommand(
		newBooksCmd(opts),
		newBookCmd(opts),
		newChaptersCmd(opts),
		newTechniquesCmd(opts),
		newHealthCmd(opts),
	)
	return cmd
}

func runTUI(ctx context.Context, opts *options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the browser needs an interactive terminal; use a subcommand such as `hema books` for plain output")
	}

	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.content, a.playback, a.logger)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	a.logger.Info("starting TUI", "version", Version, "api", a.cfg.Server.BaseURL())

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
