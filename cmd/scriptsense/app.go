package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scriptsense/internal/complete"
	"scriptsense/internal/config"
	"scriptsense/internal/host"
	"scriptsense/internal/logger"
	"scriptsense/internal/modindex"
	"scriptsense/internal/prof"
	"scriptsense/internal/source"
	"scriptsense/internal/trace"
)

// app holds the per-process capabilities shared by all commands.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	tracer  trace.Tracer
	index   *modindex.Index
	engine  *complete.Engine
	timings bool
	format  string
	prof    *prof.Session
	cancel  context.CancelFunc
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()

	if err := applyColor(stringFlag(flags, "color")); err != nil {
		return err
	}
	a.format = stringFlag(flags, "format")
	if a.format != "text" && a.format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", a.format)
	}
	a.timings, _ = flags.GetBool("timings")

	log, err := logger.New(logger.Options{Level: stringFlag(flags, "log-level"), Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	a.log = log

	if err := a.setupTracing(cmd); err != nil {
		return err
	}

	profOpts := prof.Options{
		CPU:   stringFlag(flags, "cpu-profile"),
		Mem:   stringFlag(flags, "mem-profile"),
		Trace: stringFlag(flags, "runtime-trace"),
	}
	if profOpts.Enabled() {
		session, err := prof.Start(profOpts)
		if err != nil {
			return err
		}
		a.prof = session
	}

	cfg, err := config.Discover(stringFlag(flags, "config"), ".")
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Path != "" {
		a.log.V(1).Info("config loaded", "path", cfg.Path)
	}

	catalog := cfg.Host.Catalog
	if c := stringFlag(flags, "catalog"); c != "" {
		catalog = c
	}
	var reflector host.Reflector = host.NewCatalog()
	if catalog != "" {
		cat, err := host.LoadCatalog(catalog)
		if err != nil {
			return err
		}
		reflector = cat
	}

	var disk *modindex.DiskCache
	if cfg.Modules.Cache {
		disk, err = modindex.OpenDiskCache("scriptsense")
		if err != nil {
			a.log.Info("module disk cache disabled", "error", err.Error())
			disk = nil
		}
	}
	roots := append([]string(nil), cfg.Modules.Paths...)
	extra, _ := flags.GetStringSlice("path")
	roots = append(roots, extra...)
	scriptName := ""
	// соседние модули скрипта тоже импортируемы
	if cmd.Annotations[scriptAnnotation] != "" && len(args) > 0 {
		scriptName = args[0]
		if dir, err := filepath.Abs(filepath.Dir(args[0])); err == nil {
			roots = append(roots, dir)
		}
	}
	a.index = modindex.New(modindex.Options{
		Roots:  roots,
		Disk:   disk,
		Log:    a.log.WithName("modindex"),
		Tracer: a.tracer,
	})

	a.engine = complete.New(complete.Options{
		Host:     reflector,
		Modules:  a.index,
		Builtins: host.NewBuiltins(cfg.Builtins.Extra...),
		Marker:   cfg.Complete.Marker,
		Name:     scriptName,
		Log:      a.log.WithName("complete"),
		Tracer:   a.tracer,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	a.cancel = cancel
	ctx = logger.WithLogger(ctx, a.log.Logger)
	ctx = trace.WithTracer(ctx, a.tracer)
	cmd.SetContext(ctx)
	return nil
}

func (a *app) setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	output := stringFlag(flags, "trace")
	if output == "" {
		a.tracer = trace.Nop
		return nil
	}
	level, err := trace.ParseLevel(stringFlag(flags, "trace-level"))
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(stringFlag(flags, "trace-format"))
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{Level: level, Format: format, Output: output})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer
	return nil
}

func (a *app) close(cmd *cobra.Command) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.timings && a.engine != nil {
		if t := a.engine.Timings(); t != nil {
			_ = t.WriteSummary(cmd.ErrOrStderr())
		}
	}
	if err := a.prof.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	if a.tracer != nil {
		if err := a.tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	if a.log != nil {
		if err := a.log.Sync(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "log: sync error: %v\n", err)
		}
	}
}

// stringFlag reads a flag registered by newRootCmd; a missing flag reads
// as empty.
func stringFlag(fs *pflag.FlagSet, name string) string {
	v, err := fs.GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func applyColor(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

const scriptAnnotation = "script"

// readScript loads path and keeps its first lines lines (0 = all).
func readScript(path string, lines uint32) (string, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(fs.Get(id).Prefix(lines)), nil
}
