package eventseq

import "github.com/drunkcoder/ruffbox-go/internal/seqgen"

// symbolGenerator is the narrow interface the event-symbol generator
// must satisfy: Next returns a content-hash key, State exposes position
// for hot-swap preservation.
type symbolGenerator = seqgen.Generator[uint64]

// paramGenerator is the narrow interface a parameter value generator
// must satisfy.
type paramGenerator = seqgen.Generator[float64]

// EventSequence couples one event-symbol generator to a bag of named
// parameter generators and the event-ref table the symbol generator's
// hash keys resolve against (§3, §4.6).
type EventSequence struct {
	symbolGen symbolGenerator
	params    map[string]paramGenerator
	refs      map[uint64]EventRef
}

// New builds an EventSequence from its three compiled parts. Compilation
// itself (turning parsed pattern text into these parts) lives in the
// pattern package.
func New(symbolGen symbolGenerator, params map[string]paramGenerator, refs map[uint64]EventRef) *EventSequence {
	if params == nil {
		params = map[string]paramGenerator{}
	}
	return &EventSequence{symbolGen: symbolGen, params: params, refs: refs}
}

// NextEvent advances the sequence by one tick (§4.6 "Tick"). If the
// symbol resolves to the silent-tick event, it returns ("~", {}).
// Otherwise it returns a copy of the resolved EventRef's static
// parameters overlaid with the current value from every live parameter
// generator (dynamic overrides static on name clash).
func (s *EventSequence) NextEvent() (name string, values map[string]float64) {
	hash := s.symbolGen.Next()
	ref, ok := s.refs[hash]
	if !ok || ref.Name == SilentSymbol {
		return SilentSymbol, map[string]float64{}
	}

	out := make(map[string]float64, len(ref.Params)+len(s.params))
	for k, v := range ref.Params {
		out[k] = v
	}
	for name, gen := range s.params {
		out[name] = gen.Next()
	}
	return ref.Name, out
}

// SymbolState returns the symbol generator's position, for hot-swap.
func (s *EventSequence) SymbolState() int { return s.symbolGen.State() }

// ParamState returns the named parameter generator's position, or
// (0, false) if no generator with that name exists.
func (s *EventSequence) ParamState(name string) (int, bool) {
	g, ok := s.params[name]
	if !ok {
		return 0, false
	}
	return g.State(), true
}
