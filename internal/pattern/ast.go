// Package pattern implements the text grammar that compiles pattern
// lines into event sequences (§4.7): a lexer/parser for pattern lines,
// parameter modulations, and variable bindings; a compiler that turns
// parsed lines into eventseq.EventSequence values; and an Engine that
// holds the live sequence list and variable table, hot-swapping
// sequences on re-evaluation while preserving generator state (§4.6).
package pattern

import "github.com/drunkcoder/ruffbox-go/internal/seqgen"

// eventSpec is one event token: either the literal silent-tick symbol or
// a named event with optional inline parameter assignments
// (NAME;K=V;K=V...).
type eventSpec struct {
	name   string
	params map[string]float64
}

// paramMod is one `@PARAM: KIND >> v1 v2 v3 ...` modulation clause,
// attached to the pattern block it trails.
type paramMod struct {
	param  string
	kind   seqgen.Kind
	values []float64
}

// patternBlock is one compiled unit of pattern text: a primary
// `KIND >> events...` line plus any `@PARAM` modulation lines that
// immediately follow it, up to the next primary line (§4.7 Open
// Question, resolved in DESIGN.md: modulation lines bind to the nearest
// preceding primary line).
type patternBlock struct {
	kind   seqgen.Kind
	events []eventSpec
	mods   []paramMod
}

// varBinding is a `let NAME = EVENT` line.
type varBinding struct {
	name  string
	event eventSpec
}
