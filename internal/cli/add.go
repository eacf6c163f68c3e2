package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/client"
	"github.com/evcraddock/villainapp/internal/villain"
)

func newAddCmd() *cobra.Command {
	var v villain.Villain
	var powers string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a villain",
		Long:  "Add a villain to the catalog. Powers are given as a comma-separated list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Powers = villain.ParsePowers(powers)
			return runAdd(cmd, &v)
		},
	}

	cmd.Flags().StringVar(&v.Name, "nombre", "", "villain name (required)")
	cmd.Flags().StringVar(&v.Franchise, "franquicia", "", "franchise")
	cmd.Flags().StringVar(&powers, "poderes", "", "comma-separated powers")
	cmd.Flags().StringVar(&v.DefeatedBy, "derrotado-por", "", "who defeated the villain")
	cmd.Flags().StringVar(&v.Image, "imagen", "", "image URL")

	return cmd
}

func runAdd(cmd *cobra.Command, v *villain.Villain) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("--nombre is required")
	}

	created, err := newAPIClient().CreateVillain(v)
	if err != nil {
		var se *client.StatusError
		if errors.As(err, &se) && se.Msg != "" {
			return fmt.Errorf("no se pudo añadir el villano: %s", se.Msg)
		}
		return fmt.Errorf("no se pudo añadir el villano: %w", err)
	}
	if created == nil || created.Name == "" {
		created = v
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), created)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "¡Villano añadido con éxito!")
	printVillainSummary(cmd.OutOrStdout(), created)
	return nil
}
