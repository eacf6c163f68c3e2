package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/panel"
)

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <nombre>",
		Short: "List comments for a villain",
		Long:  "List all comments for a villain in the order the server returns them.",
		Args:  cobra.ExactArgs(1),
		RunE:  runComments,
	}
}

func runComments(cmd *cobra.Command, args []string) error {
	p, err := loadPanel(newAPIClient(), args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), p.Comments())
	}

	printCommentList(cmd.OutOrStdout(), p.Comments(), time.Local)
	return nil
}

// loadPanel binds a comment panel to villain and loads its comments.
// A failed load is returned as an error carrying the panel's banner.
func loadPanel(api panel.API, villainName string) (*panel.Panel, error) {
	p := panel.New(api)
	p.SetParent(villainName)
	if err := panelErr(p); err != nil {
		return nil, err
	}
	return p, nil
}

// panelErr converts the panel's banner into an error.
func panelErr(p *panel.Panel) error {
	if msg := p.Err(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
