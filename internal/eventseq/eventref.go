// Package eventseq implements the event-sequence data model (§4.6): one
// symbol generator over content-hashed event references, paired with a
// map of named per-parameter value generators.
package eventseq

import (
	"hash/fnv"
	"sort"
	"strconv"

	"github.com/drunkcoder/ruffbox-go/internal/dsp"
)

// SilentSymbol is the event name meaning "silent tick" (§3 EventSymbol);
// it passes through every generator unchanged.
const SilentSymbol = "~"

// EventRef is a concrete event: a symbolic name plus its static
// parameter assignments, content-hashed to a stable 64-bit key so that
// re-compiling an identical pattern line reuses the same key across
// re-edits (§3).
type EventRef struct {
	Name   string
	Params map[string]float64
}

// Hash computes the EventRef's content hash: the name and a
// deterministically-ordered (sorted by parameter name) encoding of its
// parameters, via the float64 total-order key wrapper so equal floats
// always hash identically.
func (e EventRef) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(e.Name))
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
		h.Write([]byte{0})
		fk := dsp.NewFloatKey(e.Params[k])
		h.Write([]byte(strconv.FormatUint(uint64(fk), 16)))
	}
	return h.Sum64()
}
