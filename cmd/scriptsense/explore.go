package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"scriptsense/internal/symbols"
	"scriptsense/internal/ui"
)

func newExploreCmd(a *app) *cobra.Command {
	cmd := scriptCmd("explore FILE", "Interactively explore completions at the end of FILE")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return errors.New("explore needs a terminal; use names or members instead")
		}
		src, err := loadScript(cmd, args)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		a.startWatch(ctx)
		imports := a.importedModules(ctx, src)
		return ui.Run(ui.Options{
			Engine: a.engine,
			Source: src,
			Title:  filepath.Base(args[0]),
			Warm: func(ctx context.Context) error {
				return a.index.Warm(ctx, imports)
			},
		})
	}
	return cmd
}

// startWatch polls the module roots in the background when [modules].watch
// is set; the goroutine ends with ctx.
func (a *app) startWatch(ctx context.Context) {
	interval := a.cfg.Modules.Watch
	if interval <= 0 {
		return
	}
	go func() {
		if err := a.index.Watch(ctx, interval); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error(err, "module watcher stopped")
		}
	}()
}

// importedModules lists the module paths the script imports at top level.
func (a *app) importedModules(ctx context.Context, src string) []string {
	an := a.engine.Analyze(ctx, src)
	root := an.Table.Scope(an.Root)
	if root == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, d := range root.Imports {
		if d.Kind != symbols.DescStatic {
			continue
		}
		if _, dup := seen[d.Name]; dup {
			continue
		}
		seen[d.Name] = struct{}{}
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}
