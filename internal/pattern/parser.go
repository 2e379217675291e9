package pattern

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/drunkcoder/ruffbox-go/internal/seqgen"
)

// ErrParse is the sentinel wrapped by every parse error this package
// returns; callers can match on it with errors.Is.
var ErrParse = errors.New("pattern: parse error")

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrParse}, args...)...)
}

// isIgnorable reports whether a line is blank or a comment (§4.7).
func isIgnorable(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#")
}

// isLetLine reports whether a trimmed line begins a variable binding.
func isLetLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "let ")
}

// isModLine reports whether a trimmed line is a parameter modulation.
func isModLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "@")
}

// parseEventSpec parses one event token: "~", "NAME", or
// "NAME;K=V;K=V...".
func parseEventSpec(tok string) (eventSpec, error) {
	if tok == "~" {
		return eventSpec{name: "~"}, nil
	}
	parts := strings.Split(tok, ";")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return eventSpec{}, parseErrorf("empty event name in %q", tok)
	}
	ev := eventSpec{name: name}
	if len(parts) > 1 {
		ev.params = make(map[string]float64, len(parts)-1)
		for _, kv := range parts[1:] {
			kv = strings.TrimSpace(kv)
			if kv == "" {
				continue
			}
			eq := strings.IndexByte(kv, '=')
			if eq < 0 {
				return eventSpec{}, parseErrorf("malformed key=value %q", kv)
			}
			key := strings.TrimSpace(kv[:eq])
			valStr := strings.TrimSpace(kv[eq+1:])
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return eventSpec{}, parseErrorf("bad value for %q: %v", key, err)
			}
			ev.params[key] = val
		}
	}
	return ev, nil
}

// parseLetLine parses "let NAME = EVENT".
func parseLetLine(line string) (varBinding, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "let "))
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		return varBinding{}, parseErrorf("let binding missing '=': %q", line)
	}
	name := strings.TrimSpace(body[:eq])
	evTok := strings.TrimSpace(body[eq+1:])
	if name == "" || evTok == "" {
		return varBinding{}, parseErrorf("let binding missing name or event: %q", line)
	}
	ev, err := parseEventSpec(evTok)
	if err != nil {
		return varBinding{}, err
	}
	return varBinding{name: name, event: ev}, nil
}

// parsePrimaryLine parses "KIND >> ev1 ev2 ev3 ... (@param: kind >> v1 v2 ...)*"
// (§6 "<pattern-line> ::= <pattern-func> ( <ws>+ <param-func-with-values> )*"):
// the event list runs up to the first '@' token, and everything from
// there to the end of the line is one or more whitespace-appended
// `@PARAM: KIND >> values` modulation clauses trailing the same line.
func parsePrimaryLine(line string) (seqgen.Kind, []eventSpec, []paramMod, error) {
	idx := strings.Index(line, ">>")
	if idx < 0 {
		return 0, nil, nil, parseErrorf("missing '>>' in pattern line %q", line)
	}
	kindStr := strings.TrimSpace(line[:idx])
	kind, ok := seqgen.ParseKind(kindStr)
	if !ok {
		return 0, nil, nil, parseErrorf("unknown generator kind %q", kindStr)
	}
	if kind == seqgen.KindRamp || kind == seqgen.KindBounce {
		return 0, nil, nil, parseErrorf("kind %q is not valid for an event-symbol generator", kindStr)
	}
	rest := strings.TrimSpace(line[idx+2:])
	if rest == "" {
		return 0, nil, nil, parseErrorf("pattern line has no events: %q", line)
	}

	eventSection := rest
	var modSection string
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		eventSection = strings.TrimSpace(rest[:at])
		modSection = strings.TrimSpace(rest[at:])
	}
	if eventSection == "" {
		return 0, nil, nil, parseErrorf("pattern line has no events: %q", line)
	}

	toks := strings.Fields(eventSection)
	events := make([]eventSpec, 0, len(toks))
	for _, tok := range toks {
		ev, err := parseEventSpec(tok)
		if err != nil {
			return 0, nil, nil, err
		}
		events = append(events, ev)
	}

	var mods []paramMod
	for _, clause := range splitModClauses(modSection) {
		mod, err := parseModLine(clause)
		if err != nil {
			return 0, nil, nil, err
		}
		mods = append(mods, mod)
	}
	return kind, events, mods, nil
}

// splitModClauses splits a run of whitespace-appended "@PARAM: KIND >>
// values..." clauses into its individual clauses. '@' never appears
// inside an event name, parameter name, kind keyword, or float value, so
// every '@' byte in s marks the start of a new clause.
func splitModClauses(s string) []string {
	if s == "" {
		return nil
	}
	var clauses []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '@' {
			if start >= 0 {
				clauses = append(clauses, strings.TrimSpace(s[start:i]))
			}
			start = i
		}
	}
	clauses = append(clauses, strings.TrimSpace(s[start:]))
	return clauses
}

// parseModLine parses "@PARAM: KIND >> v1 v2 v3 ...".
func parseModLine(line string) (paramMod, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "@")
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return paramMod{}, parseErrorf("missing ':' in modulation line %q", line)
	}
	param := strings.TrimSpace(line[:colon])
	if param == "" {
		return paramMod{}, parseErrorf("empty parameter name in modulation line")
	}
	rest := strings.TrimSpace(line[colon+1:])
	sepIdx := strings.Index(rest, ">>")
	if sepIdx < 0 {
		return paramMod{}, parseErrorf("missing '>>' in modulation line for %q", param)
	}
	kindStr := strings.TrimSpace(rest[:sepIdx])
	kind, ok := seqgen.ParseKind(kindStr)
	if !ok {
		return paramMod{}, parseErrorf("unknown modulation kind %q", kindStr)
	}
	valuesStr := strings.TrimSpace(rest[sepIdx+2:])
	if valuesStr == "" {
		return paramMod{}, parseErrorf("modulation %q has no values", param)
	}
	toks := strings.Fields(valuesStr)
	values := make([]float64, 0, len(toks))
	for _, tok := range toks {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return paramMod{}, parseErrorf("bad value %q for %q: %v", tok, param, err)
		}
		values = append(values, v)
	}
	if (kind == seqgen.KindRamp || kind == seqgen.KindBounce) && len(values) != 3 {
		return paramMod{}, parseErrorf("modulation %q kind requires exactly 3 values (min max steps), got %d", param, len(values))
	}
	return paramMod{param: param, kind: kind, values: values}, nil
}

// parseBlocks splits program text into ignorable lines, let bindings,
// and pattern blocks (a primary line followed by its trailing @ mod
// lines). Each positional slot in blocks corresponds to one primary
// pattern line in source order; a slot is nil if that line failed to
// parse, so the caller can leave whatever sequence already lives at that
// position untouched instead of shifting later positions down (§7
// ParseError).
func parseBlocks(text string) (blocks []*patternBlock, vars []varBinding, errs []lineError) {
	rawLines := strings.Split(text, "\n")
	var current *patternBlock

	flush := func() {
		if current != nil {
			blocks = append(blocks, current)
			current = nil
		}
	}

	for i, raw := range rawLines {
		lineNo := i + 1
		if isIgnorable(raw) {
			continue
		}
		if isLetLine(raw) {
			flush()
			vb, err := parseLetLine(raw)
			if err != nil {
				errs = append(errs, lineError{line: raw, lineNo: lineNo, err: err})
				continue
			}
			vars = append(vars, vb)
			continue
		}
		if isModLine(raw) {
			mod, err := parseModLine(raw)
			if err != nil {
				errs = append(errs, lineError{line: raw, lineNo: lineNo, err: err})
				continue
			}
			if current == nil {
				errs = append(errs, lineError{line: raw, lineNo: lineNo, err: parseErrorf("modulation line with no preceding pattern line")})
				continue
			}
			current.mods = append(current.mods, mod)
			continue
		}
		// Primary pattern line: starts a new positional slot.
		flush()
		kind, events, mods, err := parsePrimaryLine(raw)
		if err != nil {
			errs = append(errs, lineError{line: raw, lineNo: lineNo, err: err})
			blocks = append(blocks, nil)
			continue
		}
		current = &patternBlock{kind: kind, events: events, mods: mods}
	}
	flush()
	return blocks, vars, errs
}

type lineError struct {
	line   string
	lineNo int
	err    error
}
