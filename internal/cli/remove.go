package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/client"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <nombre>",
		Short: "Remove a villain",
		Long:  "Remove a villain from the catalog. Asks for confirmation unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runRemove(cmd *cobra.Command, name string, yes bool) error {
	if !yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("¿Está seguro de que desea eliminar a %s? [s/N] ", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
			return nil
		}
	}

	if err := newAPIClient().DeleteVillain(name); err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("villano %q no encontrado", name)
		}
		return fmt.Errorf("no se pudo eliminar el villano: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"nombre":    name,
			"eliminado": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "El villano %s ha sido eliminado con éxito\n", name)
	return nil
}

// confirm writes prompt and reads a yes/no answer. Anything but s/si/sí/y/yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}
