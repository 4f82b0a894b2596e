package slr

import (
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/util"
)

// FirstSets holds, for each nonterminal of a grammar, the set of terminals
// that can begin a derivation from it, along with whether the nonterminal is
// nullable. Epsilon is never a member of a terminal set; nullability carries
// that information instead.
type FirstSets struct {
	g        grammar.Grammar
	terms    map[grammar.Symbol]util.KeySet[grammar.Symbol]
	nullable util.KeySet[grammar.Symbol]
}

// NewFirstSets computes the FIRST sets of a grammar by iterating the
// per-production transfer to a fixed point: each production's right side is
// walked left to right, adding terminals directly and merging the FIRST sets
// of nonterminals, stopping at the first symbol that cannot derive ε; a
// production whose walk runs off the end marks its left side nullable.
func NewFirstSets(g grammar.Grammar) *FirstSets {
	fs := &FirstSets{
		g:        g,
		terms:    map[grammar.Symbol]util.KeySet[grammar.Symbol]{},
		nullable: util.NewKeySet[grammar.Symbol](),
	}
	for _, A := range g.Nonterminals() {
		fs.terms[A] = util.NewKeySet[grammar.Symbol]()
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			A := p.LHS
			ranOff := true
			for _, X := range p.RHS {
				if X.IsNonterminal() {
					for _, t := range fs.terms[X].Elements() {
						if !fs.terms[A].Has(t) {
							fs.terms[A].Add(t)
							changed = true
						}
					}
					if fs.nullable.Has(X) {
						continue
					}
					ranOff = false
					break
				}

				if !fs.terms[A].Has(X) {
					fs.terms[A].Add(X)
					changed = true
				}
				ranOff = false
				break
			}
			if ranOff && !fs.nullable.Has(A) {
				fs.nullable.Add(A)
				changed = true
			}
		}
	}

	return fs
}

// Terminals returns the FIRST set of the given nonterminal. The returned set
// is a copy.
func (fs *FirstSets) Terminals(A grammar.Symbol) util.KeySet[grammar.Symbol] {
	return fs.terms[A].Copy().(util.KeySet[grammar.Symbol])
}

// Nullable returns whether the given nonterminal derives ε.
func (fs *FirstSets) Nullable(A grammar.Symbol) bool {
	return fs.nullable.Has(A)
}

// StringFirst computes the FIRST set of a sequence of symbols by the same
// left-to-right rule used per production, returning the set of terminals and
// whether the whole sequence is nullable.
func (fs *FirstSets) StringFirst(s []grammar.Symbol) (util.KeySet[grammar.Symbol], bool) {
	result := util.NewKeySet[grammar.Symbol]()
	for _, X := range s {
		if terms, ok := fs.terms[X]; ok {
			result.AddAll(terms)
			if !fs.nullable.Has(X) {
				return result, false
			}
			continue
		}
		result.Add(X)
		return result, false
	}
	return result, true
}
