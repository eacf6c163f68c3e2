// Package cli defines the cobra command tree for va.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/client"
	"github.com/evcraddock/villainapp/internal/db"
	"github.com/evcraddock/villainapp/internal/logging"
)

var (
	flagFormat  string
	flagServer  string
	flagVerbose bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "va",
		Short:         "Browse villains and their comments",
		Long:          "A client for the villain catalog API. List, search, add and remove villains, and read, write, edit and delete comments on them from the command line or an interactive panel.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagFormat != "text" && flagFormat != "json" {
				return fmt.Errorf("invalid --format %q (must be text or json)", flagFormat)
			}
			logging.Setup(flagVerbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API base URL (default: $VA_API_URL, config file, or http://localhost:8080)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log API requests to stderr")

	root.AddCommand(
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newCommentsCmd(),
		newCommentCmd(),
		newPanelCmd(),
		newServeCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database at path, or the default path when empty.
// Used by the serve command to back the development API.
func openDB(path string) (*sql.DB, error) {
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the villain API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
