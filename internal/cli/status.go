package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/client"
)

const statusTimeout = 5 * time.Second

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the API server",
		Long:  "Shows the effective server URL and checks that it answers its health endpoint.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	serverURL := getServerURL()
	err := client.New(serverURL, client.WithTimeout(statusTimeout)).Health()

	if isJSON() {
		status := map[string]interface{}{"server": serverURL, "ok": err == nil}
		if err != nil {
			status["error"] = err.Error()
		}
		return printJSON(cmd.OutOrStdout(), status)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Server:  %s\n", serverURL)
	if err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	fmt.Fprintln(out, "Status:  ✓ connected")
	return nil
}
