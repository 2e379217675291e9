package pattern

import (
	"math/rand"

	"github.com/drunkcoder/ruffbox-go/internal/eventseq"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithOnParseError installs a diagnostic hook invoked once per line that
// fails to parse. The pattern text's existing sequence at that position,
// if any, is left untouched (§7 ParseError).
func WithOnParseError(fn func(lineNo int, line string, err error)) Option {
	return func(e *Engine) { e.onParseError = fn }
}

// WithRand overrides the engine's random source. Without this option,
// NewEngine uses a deterministic source seeded with 1.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// Engine holds the live, positionally-indexed list of event sequences
// compiled from pattern text, plus the variable table accumulated from
// `let` bindings, and hot-swaps sequences on every Evaluate call while
// preserving Cycle generator position (§4.6, §4.7).
type Engine struct {
	sequences []*eventseq.EventSequence
	metas     []blockMeta
	vars      map[string]eventSpec
	rng       *rand.Rand

	onParseError func(lineNo int, line string, err error)
}

// NewEngine creates an empty Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		vars: make(map[string]eventSpec),
		rng:  rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate recompiles pattern text against the engine's current state
// (§4.7 compile rules): comment/blank lines are ignored, `let` lines
// update the variable table immediately, and every other non-empty line
// is parsed as a pattern block and mapped positionally to the existing
// sequence list — updating (hot-swapping) a sequence already at that
// index, or appending a new one. A line that fails to parse reports a
// diagnostic via OnParseError and leaves the sequence at that position
// unchanged. After all lines are processed, the sequence list is
// truncated to the number of pattern blocks actually supplied.
func (e *Engine) Evaluate(text string) {
	blocks, vars, errs := parseBlocks(text)

	for _, vb := range vars {
		e.vars[vb.name] = vb.event
	}

	newSequences := make([]*eventseq.EventSequence, len(blocks))
	newMetas := make([]blockMeta, len(blocks))

	for i, block := range blocks {
		var prevSeq *eventseq.EventSequence
		var prevMeta *blockMeta
		if i < len(e.sequences) {
			prevSeq = e.sequences[i]
			prevMeta = &e.metas[i]
		}
		if block == nil {
			// Parse error at this position: leave whatever was already
			// there (or nothing) untouched.
			newSequences[i] = prevSeq
			if prevMeta != nil {
				newMetas[i] = *prevMeta
			}
			continue
		}
		seq, meta := compileBlock(*block, e.vars, e.rng, prevSeq, prevMeta)
		newSequences[i] = seq
		newMetas[i] = meta
	}

	for _, le := range errs {
		if e.onParseError != nil {
			e.onParseError(le.lineNo, le.line, le.err)
		}
	}

	e.sequences = newSequences
	e.metas = newMetas
}

// Sequences returns the engine's current positionally-indexed sequence
// list. The returned slice must not be mutated by the caller.
func (e *Engine) Sequences() []*eventseq.EventSequence {
	return e.sequences
}

// Len returns the number of live sequences.
func (e *Engine) Len() int { return len(e.sequences) }
