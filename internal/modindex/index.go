// Package modindex answers "is this dotted path a module, and what does it
// define" for scripts on a set of search roots. Results are cached in
// memory until ClearAll (or the polling watcher) drops them.
package modindex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"scriptsense/internal/trace"
)

// ErrNotModule is returned by Load when no search root provides the path.
var ErrNotModule = errors.New("not a module")

const (
	sourceExt   = ".py"
	packageInit = "__init__.py"
)

// Options configures an Index.
type Options struct {
	// Roots are searched in order; the first match wins.
	Roots  []string
	Disk   *DiskCache // optional
	Log    logr.Logger
	Tracer trace.Tracer
}

type entry struct {
	members []string
	file    string
}

// Index is safe for concurrent use. Loads racing a ClearAll are not
// committed: the caller gets its result but the next lookup is a miss.
type Index struct {
	disk   *DiskCache
	log    logr.Logger
	tracer trace.Tracer

	mu      sync.RWMutex
	roots   []string
	gen     uint64
	modules map[string]entry
	files   map[string]time.Time // loaded file -> modtime at load
}

func New(opts Options) *Index {
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	roots := make([]string, 0, len(opts.Roots))
	for _, r := range opts.Roots {
		if r != "" {
			roots = append(roots, filepath.Clean(r))
		}
	}
	return &Index{
		roots:   roots,
		disk:    opts.Disk,
		log:     log,
		tracer:  tr,
		modules: make(map[string]entry),
		files:   make(map[string]time.Time),
	}
}

// Roots returns the search roots.
func (ix *Index) Roots() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.roots)
}

// AddRoot appends dir to the search roots unless it is already there.
// Loads in flight when a root is added are not committed.
func (ix *Index) AddRoot(dir string) bool {
	if dir == "" {
		return false
	}
	dir = filepath.Clean(dir)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if slices.Contains(ix.roots, dir) {
		return false
	}
	ix.roots = append(ix.roots, dir)
	ix.gen++
	ix.log.V(1).Info("search root added", "root", dir)
	return true
}

// ModuleMembers implements host.ModuleIndex.
func (ix *Index) ModuleMembers(path string) ([]string, bool) {
	members, err := ix.Load(context.Background(), path)
	if err != nil {
		if !errors.Is(err, ErrNotModule) {
			ix.log.V(1).Info("module load failed", "module", path, "error", err.Error())
		}
		return nil, false
	}
	return members, true
}

// Load returns the sorted member names of path.
func (ix *Index) Load(ctx context.Context, path string) ([]string, error) {
	if !validPath(path) {
		return nil, fmt.Errorf("%w: %q", ErrNotModule, path)
	}
	ix.mu.RLock()
	e, ok := ix.modules[path]
	gen := ix.gen
	ix.mu.RUnlock()
	if ok {
		return slices.Clone(e.members), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span := trace.Begin(ix.tracer, trace.ScopeModule, "module.load", 0).WithExtra("module", path)
	file, pkgDir, err := ix.resolve(path)
	if err != nil {
		span.End("miss")
		return nil, err
	}
	members, modTime, err := ix.readMembers(file)
	if err != nil {
		span.End("error")
		return nil, err
	}
	if pkgDir != "" {
		subs, err := submodules(pkgDir)
		if err != nil {
			span.End("error")
			return nil, err
		}
		members = append(members, subs...)
	}
	slices.Sort(members)
	members = slices.Compact(members)
	span.End(fmt.Sprintf("%d members", len(members)))

	ix.mu.Lock()
	if ix.gen == gen {
		ix.modules[path] = entry{members: members, file: file}
		ix.files[file] = modTime
	}
	ix.mu.Unlock()
	return slices.Clone(members), nil
}

// ClearAll drops every cached module.
func (ix *Index) ClearAll() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.gen++
	clear(ix.modules)
	clear(ix.files)
	ix.log.V(1).Info("module cache cleared")
}

// Cached reports how many modules are held in memory.
func (ix *Index) Cached() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.modules)
}

// resolve finds the file for path. Every enclosing directory must be a
// package. pkgDir is set when path itself is a package.
func (ix *Index) resolve(path string) (file, pkgDir string, err error) {
	parts := strings.Split(path, ".")
	for _, root := range ix.Roots() {
		dir := root
		ok := true
		for _, p := range parts[:len(parts)-1] {
			dir = filepath.Join(dir, p)
			if !isFile(filepath.Join(dir, packageInit)) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		base := filepath.Join(dir, parts[len(parts)-1])
		if init := filepath.Join(base, packageInit); isFile(init) {
			return init, base, nil
		}
		if isFile(base + sourceExt) {
			return base + sourceExt, "", nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrNotModule, path)
}

func (ix *Index) readMembers(file string) ([]string, time.Time, error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat module: %w", err)
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read module: %w", err)
	}
	key := ContentKey(src)
	var cached DiskEntry
	if ok, err := ix.disk.Get(key, &cached); err != nil {
		ix.log.V(1).Info("disk cache read failed", "module", file, "error", err.Error())
	} else if ok && cached.Schema == diskSchemaVersion {
		return cached.Members, info.ModTime(), nil
	}
	members := TopLevelNames(file, src)
	if err := ix.disk.Put(key, &DiskEntry{Schema: diskSchemaVersion, Path: file, Members: members}); err != nil {
		ix.log.V(1).Info("disk cache write failed", "module", file, "error", err.Error())
	}
	return members, info.ModTime(), nil
}

func isNotModule(err error) bool { return errors.Is(err, ErrNotModule) }

func validPath(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.Split(path, ".") {
		if !isIdent(part) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
