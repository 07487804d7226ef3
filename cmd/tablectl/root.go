// Root command for the tablectl CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flag values and the configuration loaded for the
// running command.
type app struct {
	configDir string
	source    string
	jsonMode  bool

	cfg      *viper.Viper
	settings settings
}

// newRootCmd creates the top-level "tablectl" command with global flags and
// all subcommands registered.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tablectl",
		Short: "Page, search and edit a table of records",
		Long: `tablectl fetches a collection of records once from a data source
(an HTTP endpoint, a JSON/JSONL file, an Excel workbook or a SQLite table)
and lets you page, search, select, edit and delete rows in memory.
Nothing is written back to the source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version and init need no loaded configuration.
			switch cmd.Name() {
			case "version", "init":
				return nil
			}
			return a.loadSettings(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir/tablectl)")
	pf.StringVar(&a.source, "source", "", "data source URI (overrides data_source in config.yaml)")
	pf.String("id", "", "row identifier field (overrides row_identifier)")
	pf.Int("page-size", 0, "rows per page (overrides page_size)")
	pf.String("log-level", "", "log level: debug, info, warn, error (overrides log_level)")
	pf.BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newShellCmd(a))

	return root
}
