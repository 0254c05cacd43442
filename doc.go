/*
Package strokes is the decision core of a stroke-based input method for Chinese
characters.

Users type abstract stroke shapes (一 丨 丿 丶 フ) plus a joker symbol (＊).
The accumulated stroke sequence is resolved against a dictionary of
code→character entries. Resolution is an anchored prefix match: the typed
strokes have to match the beginning of a code, the joker matches exactly one
stroke, and codes may run longer than the input. Results are returned in
dictionary order with duplicates suppressed.

The base package is format-agnostic. It compiles entries from a streaming
EntryReader into a frozen Table, and wraps tables into a Dictionary which
memoizes pattern and reverse lookups. File formats are handled by adapter
packages (package tsv, package strokejson); key classification, the
composition state machine and the composition session live in packages
keys, machine and session.

Logging is injected: every component accepting a Tracer defaults to NoTrace.
SchukoTracer adapts the schuko tracing facility.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package strokes

import (
	"github.com/npillmayer/schuko/tracing"
)

// Tracer is the logging capability handed to components.
// tracing.Trace from package schuko satisfies it.
type Tracer interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

type nopTracer struct{}

func (nopTracer) Debugf(string, ...interface{}) {}
func (nopTracer) Infof(string, ...interface{})  {}
func (nopTracer) Errorf(string, ...interface{}) {}

// NoTrace discards everything.
var NoTrace Tracer = nopTracer{}

// SchukoTracer returns a tracer writing to trace with the given key.
func SchukoTracer(key string) Tracer {
	return tracing.Select(key)
}

// TracerOrNop returns t, or NoTrace if t is nil.
func TracerOrNop(t Tracer) Tracer {
	if t == nil {
		return NoTrace
	}
	return t
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
