package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/villain"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVillainSummary prints a single villain in text format.
func printVillainSummary(w io.Writer, v *villain.Villain) {
	fmt.Fprintf(w, "%s\n", v.Name)
	fmt.Fprintf(w, "  Franquicia:    %s\n", v.FranchiseLabel())
	fmt.Fprintf(w, "  Poderes:       %s\n", v.PowersLabel())
	fmt.Fprintf(w, "  Derrotado por: %s\n", v.DefeatedByLabel())
	fmt.Fprintf(w, "  Imagen:        %s\n", villain.ImageFor(v))
}

// printVillainTable prints a list of villains as a formatted table.
func printVillainTable(w io.Writer, villains []*villain.Villain) error {
	if len(villains) == 0 {
		fmt.Fprintln(w, "No se encontraron villanos.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "NOMBRE\tFRANQUICIA\tPODERES\tDERROTADO POR"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "------\t----------\t-------\t-------------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, v := range villains {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			truncate(v.Name, 30), truncate(v.FranchiseLabel(), 20),
			truncate(v.PowersLabel(), 40), truncate(v.DefeatedByLabel(), 25)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d villanos\n", len(villains))
	return nil
}

// printCommentList prints comments under their count label.
func printCommentList(w io.Writer, comments []*comment.Comment, loc *time.Location) {
	fmt.Fprintln(w, comment.CountLabel(len(comments)))
	if len(comments) == 0 {
		return
	}
	fmt.Fprintln(w)

	for _, c := range comments {
		edited := ""
		if c.Edited {
			edited = " (editado)"
		}
		fmt.Fprintf(w, "[%s] %s%s  #%s\n  %s\n\n",
			comment.FormatDate(c.CreatedAt, loc), c.Author, edited, c.ID, c.Body)
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
