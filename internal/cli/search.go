package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/villain"
)

func newSearchCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search villains by name or franchise",
		Long:  "Case-insensitive substring search over the villain list, by name (default) or franchise.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := villain.ParseSearchField(by)
			if err != nil {
				return err
			}
			return runSearch(cmd, strings.Join(args, " "), field)
		},
	}

	cmd.Flags().StringVar(&by, "by", string(villain.ByName), "field to search (nombre|franquicia)")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, field villain.SearchField) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query is required")
	}

	villains, err := newAPIClient().ListVillains()
	if err != nil {
		return err
	}

	matches := villain.Filter(villains, query, field)
	if matches == nil {
		matches = []*villain.Villain{}
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), matches)
	}

	return printVillainTable(cmd.OutOrStdout(), matches)
}
