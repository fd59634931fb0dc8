// Package complete drives one completion request: parse the script prefix,
// build its scope tree and answer the query against the scope active at
// the end of the prefix. Every request starts from scratch; nothing in the
// tree survives into the next one.
package complete

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"scriptsense/internal/diag"
	"scriptsense/internal/host"
	"scriptsense/internal/infer"
	"scriptsense/internal/observ"
	"scriptsense/internal/parser"
	"scriptsense/internal/source"
	"scriptsense/internal/symbols"
	"scriptsense/internal/trace"
)

const maxDiagnostics = 64

// Options are the capabilities an Engine consults. Nil providers behave
// as empty ones.
type Options struct {
	Host     host.Reflector
	Modules  host.ModuleIndex
	Builtins host.BuiltinIndex
	// Marker prefixes synthetic capture variables; symbols.CaptureMarker
	// when empty.
	Marker string
	// Tolerant keeps whatever the parser recovered from a broken prefix
	// instead of answering from an empty scope.
	Tolerant bool
	// Name labels the parsed prefix in diagnostics; "<script>" when empty.
	Name   string
	Log    logr.Logger
	Tracer trace.Tracer
}

// Engine answers completion requests. It is safe for concurrent use as
// long as its providers are.
type Engine struct {
	opts Options

	mu      sync.Mutex
	timings *observ.Timer
}

func New(opts Options) *Engine {
	if opts.Marker == "" {
		opts.Marker = symbols.CaptureMarker
	}
	if opts.Name == "" {
		opts.Name = "<script>"
	}
	return &Engine{opts: opts}
}

// Analysis is the result of parsing and walking one prefix.
type Analysis struct {
	Table *symbols.Table
	Root  symbols.ScopeID
	// Last is the scope active at the end of the prefix.
	Last symbols.ScopeID
	// SearchPaths are the sys.path.append roots found in the prefix.
	SearchPaths []string
	Bag         *diag.Bag
	Files       *source.FileSet
	Failed      bool
}

// Timings returns the phase timer of the most recent request.
func (e *Engine) Timings() *observ.Timer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timings
}

// request carries per-call logging and tracing.
type request struct {
	log    logr.Logger
	tracer trace.Tracer
	span   *trace.Span
	timer  *observ.Timer
}

func (e *Engine) begin(ctx context.Context, name string) *request {
	log := e.opts.Log
	if log.GetSink() == nil {
		log = logr.FromContextOrDiscard(ctx)
	}
	tr := trace.FromContext(ctx)
	if tr == trace.Nop && e.opts.Tracer != nil {
		tr = e.opts.Tracer
	}
	span := trace.Begin(tr, trace.ScopeDriver, name, 0)
	timer := observ.NewTimer(tr, span.ID())
	e.mu.Lock()
	e.timings = timer
	e.mu.Unlock()
	return &request{log: log, tracer: tr, span: span, timer: timer}
}

func (r *request) end(detail string) { r.span.End(detail) }

// Analyze parses src and builds its scope tree. A prefix that fails to
// parse yields an empty root scope; the diagnostics stay in Bag.
func (e *Engine) Analyze(ctx context.Context, src string) *Analysis {
	req := e.begin(ctx, "analyze")
	defer req.end("")
	return e.analyze(req, src)
}

func (e *Engine) analyze(req *request, src string) *Analysis {
	src = closeOpenBlock(src)

	p := req.timer.Begin("parse")
	bag := diag.NewBag(maxDiagnostics)
	files := source.NewFileSet()
	b, res := parser.ParseSource(files, e.opts.Name, []byte(src), bag)
	bag.Sort()
	req.timer.End(p, "")

	w := req.timer.Begin("walk")
	table := symbols.NewTable(symbols.Hints{}, symbols.Env{
		Host:     e.opts.Host,
		Modules:  e.opts.Modules,
		Builtins: e.opts.Builtins,
		Marker:   e.opts.Marker,
		Log:      req.log,
	})
	var root symbols.ScopeID
	if res.Failed && !e.opts.Tolerant {
		req.log.V(1).Info("prefix does not parse", "diagnostics", bag.Len())
		root = table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, "")
	} else {
		root = infer.BuildScope(b, res.Module.Body, table)
	}
	req.timer.End(w, "")

	return &Analysis{
		Table:       table,
		Root:        root,
		Last:        table.Last(root),
		SearchPaths: table.SearchPaths(),
		Bag:         bag,
		Files:       files,
		Failed:      res.Failed,
	}
}
