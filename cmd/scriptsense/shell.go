package main

import (
	"github.com/spf13/cobra"

	"scriptsense/internal/shell"
)

func newShellCmd(a *app) *cobra.Command {
	cmd := scriptCmd("shell [FILE]", "Type script lines with TAB completion, optionally starting from FILE")
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().String("history", "", "readline history file")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var seed string
		if len(args) == 1 {
			src, err := loadScript(cmd, args)
			if err != nil {
				return err
			}
			seed = src
		}
		a.startWatch(cmd.Context())
		history, _ := cmd.Flags().GetString("history")
		return shell.Run(cmd.Context(), shell.Options{
			Engine:  a.engine,
			Seed:    seed,
			History: history,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		})
	}
	return cmd
}
