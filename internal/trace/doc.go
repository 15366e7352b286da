// Package trace records what a logdoc run spends its time on.
//
// A run is a tree of spans: one run span, one pass span per severity and one
// file span per scanned file. Spans travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartPass(ctx, "INFO")
//	defer span.End(nil)
//
// File spans inherit the severity of the pass that opened them.
//
// The level decides how deep the tree is recorded: run, pass or file.
// A Recorder either streams events to a writer as text or NDJSON, or keeps
// the most recent ones in a ring that is written out on Close.
//
//	logdoc messages --trace=trace.ndjson --trace-level=file
package trace
