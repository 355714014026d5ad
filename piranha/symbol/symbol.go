// Package symbol implements SymbolSet: an ordered, insertion-stable set of
// symbol names that establishes the positions monomial exponent vectors
// are indexed by (spec §3).
package symbol

import "golang.org/x/text/unicode/norm"

// SymbolSet is an ordered set of normalized symbol names with stable
// insertion-order positions.
type SymbolSet struct {
	names []string
	pos   map[string]int
}

// New builds a SymbolSet from names, in the given order. Names are
// NFC-normalized before comparison so that two series built from
// differently-composed Unicode identifiers for "the same" symbol are
// still recognized as compatible.
func New(names ...string) SymbolSet {
	s := SymbolSet{
		names: make([]string, 0, len(names)),
		pos:   make(map[string]int, len(names)),
	}
	for _, n := range names {
		nn := norm.NFC.String(n)
		if _, ok := s.pos[nn]; ok {
			continue
		}
		s.pos[nn] = len(s.names)
		s.names = append(s.names, nn)
	}
	return s
}

// Size returns the number of symbols.
func (s SymbolSet) Size() int { return len(s.names) }

// Names returns the symbols in position order. The returned slice must not
// be mutated by the caller.
func (s SymbolSet) Names() []string { return s.names }

// PositionOf returns the position of name and whether it was found.
func (s SymbolSet) PositionOf(name string) (int, bool) {
	p, ok := s.pos[norm.NFC.String(name)]
	return p, ok
}

// Equal reports whether two symbol sets have the same names in the same
// order — the compatibility test the multiplier uses to decide whether
// two series can be multiplied directly (spec §3, §4.5 step 1).
func (s SymbolSet) Equal(o SymbolSet) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i := range s.names {
		if s.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

// Union returns the ordered union of s and o: every name of s, in order,
// followed by any name of o not already present. This is the alignment
// helper spec §3/§6 delegates to the series collaborator; piranha.Multiply
// itself never calls it — callers align operands before multiplying.
func Union(s, o SymbolSet) SymbolSet {
	out := New(s.names...)
	for _, n := range o.names {
		if _, ok := out.pos[n]; !ok {
			out.pos[n] = len(out.names)
			out.names = append(out.names, n)
		}
	}
	return out
}
