package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"scriptsense/internal/version"
)

// newRootCmd wires every subcommand to one shared app, built lazily in
// PersistentPreRunE from flags and scriptsense.toml.
func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "scriptsense",
		Short:         "Autocompletion engine for embedded scripts",
		Long:          `scriptsense infers types in script prefixes and lists completions for names, members and call arguments`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.close(cmd)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("config", "", "path to scriptsense.toml (default: search upwards)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("log-level", "warn", "log level (debug|info|warn|error)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "phase", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "text", "trace format (text|ndjson)")
	pf.Bool("timings", false, "print phase timings to stderr")
	pf.String("catalog", "", "host class catalog (overrides [host].catalog)")
	pf.StringSlice("path", nil, "extra module search root (repeatable)")
	pf.String("format", "text", "output format (text|json)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a runtime execution trace to file")

	root.AddCommand(
		newNamesCmd(a),
		newMembersCmd(a),
		newParamsCmd(a),
		newScopeCmd(a),
		newModulesCmd(a),
		newExploreCmd(a),
		newShellCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
