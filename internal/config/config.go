// Package config reads scriptsense.toml. The file is optional: without it
// the engine runs with no module search paths, an empty host catalog and
// the default builtin table.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is looked up from the working directory upwards.
const FileName = "scriptsense.toml"

// ErrNotFound is returned by Find when no config file exists.
var ErrNotFound = errors.New(FileName + " not found")

// Config is the decoded file with paths made absolute.
type Config struct {
	// Path of the file; empty for defaults.
	Path string

	Modules  ModulesSection
	Host     HostSection
	Builtins BuiltinsSection
	Complete CompleteSection
}

type ModulesSection struct {
	Paths []string
	Cache bool
	// Watch is 0 when polling is off.
	Watch time.Duration
}

type HostSection struct {
	Catalog string
}

type BuiltinsSection struct {
	Extra []string
}

type CompleteSection struct {
	Marker string
}

type fileConfig struct {
	Modules struct {
		Paths []string `toml:"paths"`
		Cache bool     `toml:"cache"`
		Watch string   `toml:"watch"`
	} `toml:"modules"`
	Host struct {
		Catalog string `toml:"catalog"`
	} `toml:"host"`
	Builtins struct {
		Extra []string `toml:"extra"`
	} `toml:"builtins"`
	Complete struct {
		Marker string `toml:"marker"`
	} `toml:"complete"`
}

// Default is the configuration used when no file is found.
func Default() *Config { return &Config{} }

// Find walks up from startDir to locate FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes the file at path. Relative paths inside it are resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(abs)

	cfg := &Config{
		Path: abs,
		Modules: ModulesSection{
			Cache: raw.Modules.Cache,
		},
		Builtins: BuiltinsSection{Extra: raw.Builtins.Extra},
		Complete: CompleteSection{Marker: strings.TrimSpace(raw.Complete.Marker)},
	}
	for _, p := range raw.Modules.Paths {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Modules.Paths = append(cfg.Modules.Paths, resolve(base, p))
		}
	}
	if w := strings.TrimSpace(raw.Modules.Watch); w != "" {
		d, err := time.ParseDuration(w)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid [modules].watch %q: %w", path, w, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s: invalid [modules].watch %q: negative", path, w)
		}
		cfg.Modules.Watch = d
	}
	if c := strings.TrimSpace(raw.Host.Catalog); c != "" {
		cfg.Host.Catalog = resolve(base, c)
	}
	return cfg, nil
}

// Discover loads explicit when set, otherwise the nearest file above
// startDir, otherwise Default. An explicit path that does not exist is an
// error.
func Discover(explicit, startDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func resolve(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
