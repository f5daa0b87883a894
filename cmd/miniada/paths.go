package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miniada/miniada"
)

func (c *cli) pathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show program search paths",
		Long: `Shows the program search paths that would be used. When -p paths are
specified, shows those. Otherwise shows the discovered paths (defaults,
~/.miniadarc and MINIADA_PATH).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := c.paths
			if len(paths) == 0 {
				paths = miniada.SearchPaths(c.logger)
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no search paths found")
				return nil
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
