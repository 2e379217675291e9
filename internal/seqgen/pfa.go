package seqgen

import "math/rand"

const (
	pfaMaxOrder         = 3
	pfaPruneThreshold   = 0.01
	pfaHistoryCap       = 30
)

type weighted[T comparable] struct {
	sym    T
	weight float64
}

// PFA is a probabilistic finite automaton: a variable-order (up to 3)
// Markov model learned from a short seed sequence, emitting successive
// symbols by sampling the highest-order context that matches recent
// history, falling back to lower orders, and finally to a uniform draw
// over the seed alphabet (§4.5). Transitions with learned probability
// below pfaPruneThreshold are dropped, and a context left with no
// transitions is dropped with them. An unseeded PFA (§4.5
// "restart on empty seed") returns ok=false from Next until Learn is
// called with a non-empty seed.
type PFA[T comparable] struct {
	order1 map[T][]weighted[T]
	order2 map[[2]T][]weighted[T]
	order3 map[[3]T][]weighted[T]

	alphabet []T
	history  []T
	rng      *rand.Rand
	seeded   bool
}

// NewPFA creates an unseeded PFA. Call Learn to seed it.
func NewPFA[T comparable](rng *rand.Rand) *PFA[T] {
	return &PFA[T]{rng: rng}
}

// Learn builds the Markov model from seed, replacing any prior model and
// clearing history.
func (p *PFA[T]) Learn(seed []T) {
	p.order1 = make(map[T][]weighted[T])
	p.order2 = make(map[[2]T][]weighted[T])
	p.order3 = make(map[[3]T][]weighted[T])
	p.history = nil
	p.alphabet = nil
	p.seeded = len(seed) > 0
	if !p.seeded {
		return
	}

	seen := make(map[T]bool)
	for _, s := range seed {
		if !seen[s] {
			seen[s] = true
			p.alphabet = append(p.alphabet, s)
		}
	}

	counts1 := make(map[T]map[T]int)
	counts2 := make(map[[2]T]map[T]int)
	counts3 := make(map[[3]T]map[T]int)

	for i, next := range seed {
		if i >= 1 {
			ctx := seed[i-1]
			if counts1[ctx] == nil {
				counts1[ctx] = make(map[T]int)
			}
			counts1[ctx][next]++
		}
		if i >= 2 {
			ctx := [2]T{seed[i-2], seed[i-1]}
			if counts2[ctx] == nil {
				counts2[ctx] = make(map[T]int)
			}
			counts2[ctx][next]++
		}
		if i >= 3 {
			ctx := [3]T{seed[i-3], seed[i-2], seed[i-1]}
			if counts3[ctx] == nil {
				counts3[ctx] = make(map[T]int)
			}
			counts3[ctx][next]++
		}
	}

	p.order1 = prune(counts1)
	p.order2 = prune(counts2)
	p.order3 = prune(counts3)
}

func prune[K comparable, T comparable](counts map[K]map[T]int) map[K][]weighted[T] {
	out := make(map[K][]weighted[T], len(counts))
	for ctx, dist := range counts {
		total := 0
		for _, c := range dist {
			total += c
		}
		if total == 0 {
			continue
		}
		var ws []weighted[T]
		for sym, c := range dist {
			prob := float64(c) / float64(total)
			if prob < pfaPruneThreshold {
				continue
			}
			ws = append(ws, weighted[T]{sym: sym, weight: prob})
		}
		if len(ws) > 0 {
			out[ctx] = ws
		}
	}
	return out
}

// Next emits the next symbol. ok is false if the PFA has never been
// seeded (empty seed); callers map that to the silent-tick symbol.
func (p *PFA[T]) Next() (T, bool) {
	var zero T
	if !p.seeded {
		return zero, false
	}

	var sym T
	found := false

	if n := len(p.history); n >= 3 {
		ctx := [3]T{p.history[n-3], p.history[n-2], p.history[n-1]}
		if ws, ok := p.order3[ctx]; ok {
			sym, found = sampleWeighted(ws, p.rng)
		}
	}
	if !found {
		if n := len(p.history); n >= 2 {
			ctx := [2]T{p.history[n-2], p.history[n-1]}
			if ws, ok := p.order2[ctx]; ok {
				sym, found = sampleWeighted(ws, p.rng)
			}
		}
	}
	if !found {
		if n := len(p.history); n >= 1 {
			ctx := p.history[n-1]
			if ws, ok := p.order1[ctx]; ok {
				sym, found = sampleWeighted(ws, p.rng)
			}
		}
	}
	if !found {
		sym = p.alphabet[p.rng.Intn(len(p.alphabet))]
	}

	p.history = append(p.history, sym)
	if len(p.history) > pfaHistoryCap {
		p.history = p.history[len(p.history)-pfaHistoryCap:]
	}
	return sym, true
}

func sampleWeighted[T comparable](ws []weighted[T], rng *rand.Rand) (T, bool) {
	if len(ws) == 0 {
		var zero T
		return zero, false
	}
	var total float64
	for _, w := range ws {
		total += w.weight
	}
	r := rng.Float64() * total
	for _, w := range ws {
		r -= w.weight
		if r <= 0 {
			return w.sym, true
		}
	}
	return ws[len(ws)-1].sym, true
}

// State always returns 0: PFA has no externally preserved position
// across hot-swap (§4.5 state column, §4.6 "other variants reset").
func (p *PFA[T]) State() int { return 0 }
