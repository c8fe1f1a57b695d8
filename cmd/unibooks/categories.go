package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"unibooks/internal/domain"
	"unibooks/internal/ui/dropdown"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the category table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("KEY", "LABEL", "ICON", "EMPTY MESSAGE")
			for _, c := range domain.Categories() {
				t.Row(string(c.Key), c.Label, dropdown.Glyph(c.Icon)+" "+c.Icon, c.EmptyMessage)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
