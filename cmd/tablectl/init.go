// Init command for the tablectl CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/noobCode-69/reusable-table/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return sysError(fmt.Errorf("init: %w", err))
			}
			if err := ensureConfigDir(configDir); err != nil {
				return sysError(fmt.Errorf("init: %w", err))
			}
			created, err := ensureDefaultConfigFile(configDir)
			if err != nil {
				return sysError(fmt.Errorf("init: %w", err))
			}

			out := cmd.OutOrStdout()
			path := filepath.Join(configDir, configFileExt)
			if created {
				fmt.Fprintln(out, "Created", path)
			} else {
				fmt.Fprintln(out, "Config already exists:", path)
			}
			return nil
		},
	}
}
