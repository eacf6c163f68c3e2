package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/panel"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add, edit or delete a comment",
		Long:  "Manage comments on a villain. Every change is followed by a fresh listing from the server.",
	}

	cmd.AddCommand(
		newCommentAddCmd(),
		newCommentEditCmd(),
		newCommentDeleteCmd(),
	)

	return cmd
}

func newCommentAddCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   `add <nombre> "text"`,
		Short: "Add a comment to a villain",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentAdd(cmd, args[0], author, strings.Join(args[1:], " "))
		},
	}

	cmd.Flags().StringVarP(&author, "usuario", "u", "", "author name (required)")

	return cmd
}

func runCommentAdd(cmd *cobra.Command, villainName, author, body string) error {
	p, err := loadPanel(newAPIClient(), villainName)
	if err != nil {
		return err
	}

	p.SubmitComment(author, body)
	if err := panelErr(p); err != nil {
		return err
	}

	return printPanelResult(cmd, p, "Comentario agregado.")
}

func newCommentEditCmd() *cobra.Command {
	var author, body string

	cmd := &cobra.Command{
		Use:   "edit <nombre> <id>",
		Short: "Edit a comment",
		Long:  "Replace the author and/or text of a comment. Fields not given keep their current value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("usuario") && !cmd.Flags().Changed("texto") {
				return fmt.Errorf("nothing to change: pass --usuario and/or --texto")
			}
			return runCommentEdit(cmd, args[0], args[1], author, body)
		},
	}

	cmd.Flags().StringVarP(&author, "usuario", "u", "", "new author name")
	cmd.Flags().StringVarP(&body, "texto", "t", "", "new comment text")

	return cmd
}

func runCommentEdit(cmd *cobra.Command, villainName, id, author, body string) error {
	p, err := loadPanel(newAPIClient(), villainName)
	if err != nil {
		return err
	}

	c, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("comentario %q no encontrado en %s", id, villainName)
	}

	p.BeginEdit(c)
	d := p.EditDraft()
	if cmd.Flags().Changed("usuario") {
		d.Author = author
	}
	if cmd.Flags().Changed("texto") {
		d.Body = body
	}
	p.SetEditDraft(d)

	p.SaveEdit(id)
	if err := panelErr(p); err != nil {
		return err
	}

	return printPanelResult(cmd, p, "Comentario actualizado.")
}

func newCommentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <nombre> <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentDelete(cmd, args[0], args[1])
		},
	}
}

func runCommentDelete(cmd *cobra.Command, villainName, id string) error {
	p, err := loadPanel(newAPIClient(), villainName)
	if err != nil {
		return err
	}

	p.Delete(id)
	if err := panelErr(p); err != nil {
		return err
	}

	return printPanelResult(cmd, p, "Comentario eliminado.")
}

// printPanelResult reports a finished mutation followed by the refreshed list.
func printPanelResult(cmd *cobra.Command, p *panel.Panel, done string) error {
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), struct {
			Count    string             `json:"total"`
			Comments []*comment.Comment `json:"comentarios"`
		}{p.CountLabel(), p.Comments()})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, done)
	fmt.Fprintln(out)
	printCommentList(out, p.Comments(), time.Local)
	return nil
}
