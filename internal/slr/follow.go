package slr

import (
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/util"
)

// EndMarker is the input endmarker $ used in FOLLOW sets and SLR tables.
var EndMarker = grammar.Marker("$")

// FollowSets holds, for each nonterminal of a grammar, the set of terminals
// that may appear immediately after it in a sentential form derived from the
// start symbol followed by the endmarker. The endmarker appears only in
// FOLLOW sets, never in FIRST sets.
type FollowSets struct {
	g     grammar.Grammar
	first *FirstSets
	terms map[grammar.Symbol]util.KeySet[grammar.Symbol]
}

// NewFollowSets computes the FOLLOW sets of a grammar from its previously
// computed FIRST sets, iterating to a fixed point: FOLLOW(S) contains $; for
// every production A → α B β, FOLLOW(B) gains FIRST(β); and when β is
// nullable or empty, FOLLOW(B) gains FOLLOW(A).
func NewFollowSets(g grammar.Grammar, first *FirstSets) *FollowSets {
	fs := &FollowSets{
		g:     g,
		first: first,
		terms: map[grammar.Symbol]util.KeySet[grammar.Symbol]{},
	}
	for _, A := range g.Nonterminals() {
		fs.terms[A] = util.NewKeySet[grammar.Symbol]()
	}
	fs.terms[g.Start()].Add(EndMarker)

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			A := p.LHS
			for i, B := range p.RHS {
				if !B.IsNonterminal() {
					continue
				}

				bFirst, bNullable := first.StringFirst(p.RHS[i+1:])
				for _, t := range bFirst.Elements() {
					if !fs.terms[B].Has(t) {
						fs.terms[B].Add(t)
						changed = true
					}
				}
				if bNullable {
					for _, t := range fs.terms[A].Elements() {
						if !fs.terms[B].Has(t) {
							fs.terms[B].Add(t)
							changed = true
						}
					}
				}
			}
		}
	}

	return fs
}

// Terminals returns the FOLLOW set of the given nonterminal. The returned
// set is a copy.
func (fs *FollowSets) Terminals(A grammar.Symbol) util.KeySet[grammar.Symbol] {
	return fs.terms[A].Copy().(util.KeySet[grammar.Symbol])
}
