package seqgen

// Adapter wraps a PFA so it satisfies Generator[T]'s single-return Next.
// When the PFA is unseeded, Next returns the zero value of T; for the
// uint64 symbol-generator instantiation that zero value never matches a
// real EventRef hash, so it naturally falls through to the silent-tick
// symbol (§7 "PFA empty: surfaces as the silent tick") without any
// special-casing in eventseq.
type Adapter[T comparable] struct {
	pfa *PFA[T]
}

// NewAdapter wraps pfa for use wherever a Generator[T] is required.
func NewAdapter[T comparable](pfa *PFA[T]) *Adapter[T] {
	return &Adapter[T]{pfa: pfa}
}

// PFA returns the wrapped automaton, for Learn calls.
func (a *Adapter[T]) PFA() *PFA[T] { return a.pfa }

// Next returns the PFA's next symbol, or the zero value of T if unseeded.
func (a *Adapter[T]) Next() T {
	v, _ := a.pfa.Next()
	return v
}

// State returns the PFA's State, which is always 0.
func (a *Adapter[T]) State() int { return a.pfa.State() }
