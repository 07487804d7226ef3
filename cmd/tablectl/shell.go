// Shell command for the tablectl CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/noobCode-69/reusable-table/internal/logging"
	"github.com/noobCode-69/reusable-table/internal/shell"
)

const shellPrompt = "tablectl> "

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session over the table",
		Long: `Shell fetches the data source once and reads commands from stdin, one per
line, until quit or end of input. Type help for the command list.

Example:
  tablectl shell --source users.json
  printf 'select 1\ndelete-selected\nshow\n' | tablectl shell --source users.json`,
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

			r := a.newRenderer(cmd.OutOrStdout())
			opts := []shell.Option{
				shell.WithLogger(logging.NewSlogLogger(log).With("session", c.ID())),
				shell.WithErrorWriter(cmd.ErrOrStderr()),
			}
			in := cmd.InOrStdin()
			if isTerminal(in) {
				opts = append(opts, shell.WithPrompt(shellPrompt))
			}

			sh := shell.New(c, r, opts...)
			if err := r.View(c.Snapshot(), c.Err()); err != nil {
				return sysError(err)
			}
			if err := sh.Run(cmd.Context(), in); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
