package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evcraddock/villainapp/internal/logging"
	"github.com/evcraddock/villainapp/internal/panel"
	"github.com/evcraddock/villainapp/internal/tui"
)

func newPanelCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "panel <nombre>",
		Short: "Open the interactive comment panel for a villain",
		Long:  "Open a full-screen panel to read, add, edit and delete a villain's comments.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("panel needs an interactive terminal; use 'va comments %s' instead", args[0])
			}

			closeLog, err := setupPanelLogging(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			return tui.Run(panel.New(newAPIClient()), args[0])
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the panel is open (default with --verbose: ~/.villainapp/panel.log)")

	return cmd
}

// setupPanelLogging keeps log output off the terminal the panel draws on.
func setupPanelLogging(path string) (func(), error) {
	if path == "" && !flagVerbose {
		logging.SetupWriter(io.Discard, false)
		return func() {}, nil
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".villainapp", "panel.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logging.SetupWriter(f, true)

	return func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
		}
	}, nil
}
