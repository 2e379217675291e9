package pattern

import (
	"math/rand"

	"github.com/drunkcoder/ruffbox-go/internal/eventseq"
	"github.com/drunkcoder/ruffbox-go/internal/seqgen"
)

// blockMeta records the generator Kind used for a compiled block's symbol
// generator and each of its parameter generators, so the next Evaluate
// call can decide whether a hot-swap should resume (same Kind, Cycle
// only) or reset fresh (§4.6).
type blockMeta struct {
	symbolKind seqgen.Kind
	paramKinds map[string]seqgen.Kind
}

// resolveEvent substitutes a let-bound variable's event for tok's name
// when tok names one, merging in any inline parameters from tok itself
// (tok's own assignments win on key conflict). A token that names no
// variable is returned unchanged.
func resolveEvent(tok eventSpec, vars map[string]eventSpec) eventSpec {
	if tok.name == eventseq.SilentSymbol {
		return tok
	}
	bound, ok := vars[tok.name]
	if !ok {
		return tok
	}
	merged := eventSpec{name: bound.name}
	if len(bound.params) > 0 || len(tok.params) > 0 {
		merged.params = make(map[string]float64, len(bound.params)+len(tok.params))
		for k, v := range bound.params {
			merged.params[k] = v
		}
		for k, v := range tok.params {
			merged.params[k] = v
		}
	}
	return merged
}

// compileBlock builds an EventSequence and its metadata from a parsed
// patternBlock, resolving variable references and, where the previous
// compilation of the same block index used a Cycle generator of matching
// Kind, resuming its position instead of restarting at zero (§4.6).
func compileBlock(block patternBlock, vars map[string]eventSpec, rng *rand.Rand, prevSeq *eventseq.EventSequence, prevMeta *blockMeta) (*eventseq.EventSequence, blockMeta) {
	refs := make(map[uint64]eventseq.EventRef, len(block.events))
	hashes := make([]uint64, len(block.events))
	for i, tok := range block.events {
		resolved := resolveEvent(tok, vars)
		ref := eventseq.EventRef{Name: resolved.name, Params: resolved.params}
		h := ref.Hash()
		refs[h] = ref
		hashes[i] = h
	}

	var prevSymbolState int
	canResumeSymbol := prevSeq != nil && prevMeta != nil && prevMeta.symbolKind == seqgen.KindCycle && block.kind == seqgen.KindCycle
	if canResumeSymbol {
		prevSymbolState = prevSeq.SymbolState()
	}
	symbolGen := buildSymbolGenerator(block.kind, hashes, rng, canResumeSymbol, prevSymbolState)

	params := make(map[string]seqgen.Generator[float64], len(block.mods))
	paramKinds := make(map[string]seqgen.Kind, len(block.mods))
	for _, mod := range block.mods {
		var prevState int
		canResume := false
		if prevSeq != nil && prevMeta != nil {
			if prevKind, ok := prevMeta.paramKinds[mod.param]; ok && prevKind == seqgen.KindCycle && mod.kind == seqgen.KindCycle {
				if s, ok := prevSeq.ParamState(mod.param); ok {
					prevState = s
					canResume = true
				}
			}
		}
		params[mod.param] = buildParamGenerator(mod, rng, canResume, prevState)
		paramKinds[mod.param] = mod.kind
	}

	seq := eventseq.New(symbolGen, params, refs)
	return seq, blockMeta{symbolKind: block.kind, paramKinds: paramKinds}
}

func buildSymbolGenerator(kind seqgen.Kind, hashes []uint64, rng *rand.Rand, resume bool, prevState int) seqgen.Generator[uint64] {
	switch kind {
	case seqgen.KindRandom:
		return seqgen.NewRandom(hashes, rng)
	case seqgen.KindLearn:
		pfa := seqgen.NewPFA[uint64](rng)
		pfa.Learn(hashes)
		return seqgen.NewAdapter(pfa)
	default: // KindCycle (Ramp/Bounce are rejected for symbols at parse time)
		if resume {
			return seqgen.Resume(hashes, prevState)
		}
		return seqgen.NewCycle(hashes)
	}
}

func buildParamGenerator(mod paramMod, rng *rand.Rand, resume bool, prevState int) seqgen.Generator[float64] {
	switch mod.kind {
	case seqgen.KindRandom:
		return seqgen.NewRandom(mod.values, rng)
	case seqgen.KindRamp:
		return seqgen.NewRamp(mod.values[0], mod.values[1], int(mod.values[2]))
	case seqgen.KindBounce:
		return seqgen.NewBounce(mod.values[0], mod.values[1], int(mod.values[2]))
	case seqgen.KindLearn:
		pfa := seqgen.NewPFA[float64](rng)
		pfa.Learn(mod.values)
		return seqgen.NewAdapter(pfa)
	default: // KindCycle
		if resume {
			return seqgen.Resume(mod.values, prevState)
		}
		return seqgen.NewCycle(mod.values)
	}
}
