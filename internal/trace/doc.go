// Package trace records spans of completion requests: parse, walk and
// query phases, and module loads inside the module index.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// StreamTracer writes events as they happen (text or NDJSON); RingTracer
// keeps the most recent events in memory for the explorer.
package trace
