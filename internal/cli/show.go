package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/client"
	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <nombre>",
		Short: "Show villain details",
		Long:  "Show full details for a villain, including all comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	c := newAPIClient()

	v, err := c.GetVillain(name)
	if client.IsNotFound(err) {
		return fmt.Errorf("villano %q no encontrado", name)
	}
	if err != nil {
		return err
	}

	p, err := loadPanel(c, v.Name)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), struct {
			Villain  *villain.Villain   `json:"villano"`
			Comments []*comment.Comment `json:"comentarios"`
		}{v, p.Comments()})
	}

	out := cmd.OutOrStdout()
	printVillainSummary(out, v)
	fmt.Fprintln(out)
	printCommentList(out, p.Comments(), time.Local)
	return nil
}
