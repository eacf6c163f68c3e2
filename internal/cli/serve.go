package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/logging"
	"github.com/evcraddock/villainapp/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port   int
		dbPath string
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development API server",
		Long:  "Start an HTTP server implementing the villain and comment REST API over a local SQLite database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(dev || flagVerbose)
			return runServe(cmd.Context(), port, dbPath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: ~/.villainapp/villains.db)")
	cmd.Flags().BoolVar(&dev, "dev", false, "human-readable debug logs")

	return cmd
}

func runServe(ctx context.Context, port int, dbPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	return web.NewServer(database).ListenAndServe(ctx, port)
}
