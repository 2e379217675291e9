package pattern

import (
	"math/rand"
	"testing"

	"github.com/drunkcoder/ruffbox-go/internal/eventseq"
)

func TestSimpleCyclePatternRoundTrips(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))
	e.Evaluate("cyc >> bd sn hh")

	if e.Len() != 1 {
		t.Fatalf("expected 1 sequence, got %d", e.Len())
	}
	seq := e.Sequences()[0]
	names := []string{}
	for i := 0; i < 6; i++ {
		name, _ := seq.NextEvent()
		names = append(names, name)
	}
	want := []string{"bd", "sn", "hh", "bd", "sn", "hh"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tick %d: want %q, got %q", i, want[i], names[i])
		}
	}
}

func TestSilentTickPassesThrough(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd ~ sn")
	seq := e.Sequences()[0]

	name, params := seq.NextEvent()
	if name != "bd" {
		t.Fatalf("expected bd, got %q", name)
	}
	name, params = seq.NextEvent()
	if name != eventseq.SilentSymbol || len(params) != 0 {
		t.Fatalf("expected silent tick, got %q %v", name, params)
	}
}

func TestInlineParamsParsed(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd;dur=0.2;pitch=440")
	seq := e.Sequences()[0]
	name, params := seq.NextEvent()
	if name != "bd" {
		t.Fatalf("expected bd, got %q", name)
	}
	if params["dur"] != 0.2 || params["pitch"] != 440 {
		t.Fatalf("unexpected params: %v", params)
	}
}

func TestLetBindingSubstitutesEvent(t *testing.T) {
	e := NewEngine()
	e.Evaluate("let kick = bd;dur=0.3\ncyc >> kick kick")
	seq := e.Sequences()[0]
	name, params := seq.NextEvent()
	if name != "bd" || params["dur"] != 0.3 {
		t.Fatalf("expected resolved bd;dur=0.3, got %q %v", name, params)
	}
}

func TestInlineModulationOnSameLine(t *testing.T) {
	// §6 BNF / scenario S2: a `@PARAM: KIND >> values` clause appended to
	// the same line as its pattern-func, not on a line of its own.
	e := NewEngine()
	e.Evaluate("cyc >> sine;freq=440 ~ @lvl: cyc >> 0.5 0.25")
	if e.Len() != 1 {
		t.Fatalf("expected 1 sequence, got %d", e.Len())
	}
	seq := e.Sequences()[0]

	name, params := seq.NextEvent()
	if name != "sine" || params["freq"] != 440 || params["lvl"] != 0.5 {
		t.Fatalf("tick 0: want sine freq=440 lvl=0.5, got %q %v", name, params)
	}
	name, params = seq.NextEvent()
	if name != eventseq.SilentSymbol {
		t.Fatalf("tick 1: expected silent tick, got %q %v", name, params)
	}
	name, params = seq.NextEvent()
	if name != "sine" || params["freq"] != 440 || params["lvl"] != 0.25 {
		t.Fatalf("tick 2: want sine freq=440 lvl=0.25, got %q %v", name, params)
	}
}

func TestModulationLineDrivesParameter(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd\n@dur: cyc >> 0.1 0.2 0.3")
	seq := e.Sequences()[0]
	for i, want := range []float64{0.1, 0.2, 0.3, 0.1} {
		_, params := seq.NextEvent()
		if params["dur"] != want {
			t.Fatalf("tick %d: want dur=%v, got %v", i, want, params["dur"])
		}
	}
}

func TestHotSwapPreservesCyclePosition(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd sn hh")
	seq := e.Sequences()[0]
	seq.NextEvent() // bd, idx now 1
	seq.NextEvent() // sn, idx now 2

	e.Evaluate("cyc >> bd sn hh cp")
	seq2 := e.Sequences()[0]
	name, _ := seq2.NextEvent()
	if name != "hh" {
		t.Fatalf("expected hot-swap to resume at index 2 (hh), got %q", name)
	}
}

func TestHotSwapResetsOnKindChange(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd sn hh")
	seq := e.Sequences()[0]
	seq.NextEvent()
	seq.NextEvent()

	e.Evaluate("rnd >> bd sn hh")
	if e.Sequences()[0] == seq {
		t.Fatal("expected a freshly compiled sequence on kind change")
	}
}

func TestParseErrorLeavesSequenceUntouchedAndPositional(t *testing.T) {
	var errs []string
	e := NewEngine(WithOnParseError(func(lineNo int, line string, err error) {
		errs = append(errs, line)
	}))
	e.Evaluate("cyc >> bd\ncyc >> sn")
	firstSeq := e.Sequences()[0]
	secondSeq := e.Sequences()[1]

	e.Evaluate("cyc >> bd\nnot a valid line at all")
	if len(errs) != 1 {
		t.Fatalf("expected exactly one parse error, got %d: %v", len(errs), errs)
	}
	if e.Len() != 2 {
		t.Fatalf("expected positional slot preserved, got %d sequences", e.Len())
	}
	if e.Sequences()[1] != secondSeq {
		t.Fatal("expected second sequence to remain the prior instance after a parse error")
	}
	_ = firstSeq
}

func TestTruncatesToSuppliedBlockCount(t *testing.T) {
	e := NewEngine()
	e.Evaluate("cyc >> bd\ncyc >> sn\ncyc >> hh")
	if e.Len() != 3 {
		t.Fatalf("expected 3 sequences, got %d", e.Len())
	}
	e.Evaluate("cyc >> bd")
	if e.Len() != 1 {
		t.Fatalf("expected truncation to 1 sequence, got %d", e.Len())
	}
}

func TestCommentsAndBlankLinesIgnored(t *testing.T) {
	e := NewEngine()
	e.Evaluate("# a comment\n\ncyc >> bd\n")
	if e.Len() != 1 {
		t.Fatalf("expected 1 sequence, got %d", e.Len())
	}
}

func TestLearnKindSeededEmitsSeedSymbol(t *testing.T) {
	// learn with an empty event list is rejected at parse time; here we
	// confirm a learn pattern with a real seed still resolves normally.
	e := NewEngine()
	e.Evaluate("learn >> bd sn bd sn bd hh")
	seq := e.Sequences()[0]
	name, _ := seq.NextEvent()
	if name != "bd" && name != "sn" && name != "hh" {
		t.Fatalf("unexpected symbol from learn generator: %q", name)
	}
}
