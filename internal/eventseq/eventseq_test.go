package eventseq

import (
	"testing"

	"github.com/drunkcoder/ruffbox-go/internal/seqgen"
)

func buildRefs(names ...string) (map[uint64]EventRef, []uint64) {
	refs := make(map[uint64]EventRef, len(names))
	keys := make([]uint64, len(names))
	for i, n := range names {
		ref := EventRef{Name: n, Params: map[string]float64{}}
		h := ref.Hash()
		refs[h] = ref
		keys[i] = h
	}
	return refs, keys
}

func TestRoundTripNonSilentEvent(t *testing.T) {
	refs, keys := buildRefs("bd", "sn")
	gen := seqgen.NewCycle(keys)
	seq := New(gen, nil, refs)

	name, _ := seq.NextEvent()
	if name != "bd" {
		t.Fatalf("expected bd, got %s", name)
	}
	name, _ = seq.NextEvent()
	if name != "sn" {
		t.Fatalf("expected sn, got %s", name)
	}
}

func TestSilentTickTransparency(t *testing.T) {
	refs, keys := buildRefs("bd", "~", "sn")
	gen := seqgen.NewCycle(keys)
	seq := New(gen, nil, refs)

	seq.NextEvent() // bd
	name, params := seq.NextEvent()
	if name != SilentSymbol {
		t.Fatalf("expected silent tick, got %s", name)
	}
	if len(params) != 0 {
		t.Fatalf("expected empty params on silent tick, got %v", params)
	}
}

func TestDynamicParamOverridesStatic(t *testing.T) {
	ref := EventRef{Name: "bd", Params: map[string]float64{"Level": 0.5}}
	refs := map[uint64]EventRef{ref.Hash(): ref}
	symGen := seqgen.NewCycle([]uint64{ref.Hash()})

	dynamic := seqgen.NewRamp(0.1, 0.9, 4)
	seq := New(symGen, map[string]paramGenerator{"Level": dynamic}, refs)

	_, params := seq.NextEvent()
	if params["Level"] != 0.1 {
		t.Fatalf("expected dynamic override 0.1, got %v", params["Level"])
	}
}

func TestUnknownHashSurfacesAsSilent(t *testing.T) {
	refs, _ := buildRefs("bd")
	gen := seqgen.NewCycle([]uint64{999})
	seq := New(gen, nil, refs)
	name, _ := seq.NextEvent()
	if name != SilentSymbol {
		t.Fatalf("expected silent tick for unresolved hash, got %s", name)
	}
}

func TestEventRefHashIsOrderIndependentOverParams(t *testing.T) {
	a := EventRef{Name: "bd", Params: map[string]float64{"Level": 1, "Attack": 0.1}}
	b := EventRef{Name: "bd", Params: map[string]float64{"Attack": 0.1, "Level": 1}}
	if a.Hash() != b.Hash() {
		t.Fatal("expected identical hash regardless of map iteration order")
	}
}
