// Show command for the tablectl CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		search string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one page of the table",
		Long: `Show fetches the data source, applies the search term and prints one page.

Example:
  tablectl show --source users.json
  tablectl show --source https://example.com/users --search ann
  tablectl show --source users.xlsx#People --page 2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c, err := a.loadTable(cmd.Context(), log)
			if err != nil {
				return err
			}

			if search != "" {
				c.SetSearch(search)
			}
			if last := max(1, c.TotalPages()); page < 1 || page > last {
				return userError(fmt.Errorf("page %d is out of range (1-%d)", page, last))
			}
			c.MoveTo(page)

			return a.newRenderer(cmd.OutOrStdout()).View(c.Snapshot(), c.Err())
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number to print")

	return cmd
}
