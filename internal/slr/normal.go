package slr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/util"
)

// NormalForm is a representation of a multi-valued SLR parse table that
// facilitates comparing tables built by different construction paths. State
// numbering is significant only up to isomorphism: two normal forms are
// equivalent when a breadth-first traversal from their start states can match
// their transitions one-to-one with identical reductions and accepts at every
// matched pair.
type NormalForm struct {
	reductions map[int]map[grammar.Symbol][]int
	gotoshifts map[int]map[grammar.Symbol]int
	accepts    map[int]util.KeySet[grammar.Symbol]

	terminals    util.KeySet[grammar.Symbol]
	nonterminals util.KeySet[grammar.Symbol]
}

// NewNormalForm creates an empty normal-form table.
func NewNormalForm() *NormalForm {
	return &NormalForm{
		reductions:   map[int]map[grammar.Symbol][]int{},
		gotoshifts:   map[int]map[grammar.Symbol]int{},
		accepts:      map[int]util.KeySet[grammar.Symbol]{},
		terminals:    util.NewKeySet[grammar.Symbol](),
		nonterminals: util.NewKeySet[grammar.Symbol](),
	}
}

// AddReduction records a reduce entry: in the given state on the given
// terminal, reduce by the production with the given number.
func (nf *NormalForm) AddReduction(state int, terminal grammar.Symbol, production int) {
	row, ok := nf.reductions[state]
	if !ok {
		row = map[grammar.Symbol][]int{}
		nf.reductions[state] = row
	}
	row[terminal] = append(row[terminal], production)
	nf.addSymbol(terminal)
}

// SetGotoShift records a shift (on a terminal) or goto (on a nonterminal)
// entry from the given state to another.
func (nf *NormalForm) SetGotoShift(state int, symbol grammar.Symbol, to int) {
	row, ok := nf.gotoshifts[state]
	if !ok {
		row = map[grammar.Symbol]int{}
		nf.gotoshifts[state] = row
	}
	row[symbol] = to
	nf.addSymbol(symbol)
}

// SetAccept records an accept entry in the given state on the given terminal.
func (nf *NormalForm) SetAccept(state int, terminal grammar.Symbol) {
	set, ok := nf.accepts[state]
	if !ok {
		set = util.NewKeySet[grammar.Symbol]()
		nf.accepts[state] = set
	}
	set.Add(terminal)
	nf.addSymbol(terminal)
}

func (nf *NormalForm) addSymbol(X grammar.Symbol) {
	if X.IsNonterminal() {
		nf.nonterminals.Add(X)
	} else if X != EndMarker {
		nf.terminals.Add(X)
	}
}

// reductionsAt returns the reduce entries of a state as multisets per
// terminal, each sorted for comparison.
func (nf *NormalForm) reductionsAt(state int) map[grammar.Symbol][]int {
	result := map[grammar.Symbol][]int{}
	for a, ps := range nf.reductions[state] {
		sorted := make([]int, len(ps))
		copy(sorted, ps)
		sort.Ints(sorted)
		result[a] = sorted
	}
	return result
}

func (nf *NormalForm) gotoshiftAt(state int, X grammar.Symbol) (int, bool) {
	to, ok := nf.gotoshifts[state][X]
	return to, ok
}

func (nf *NormalForm) acceptsAt(state int) util.KeySet[grammar.Symbol] {
	set, ok := nf.accepts[state]
	if !ok {
		return util.NewKeySet[grammar.Symbol]()
	}
	return set
}

// Equivalent returns whether this table and another are the same up to a
// renumbering of states. Both must range over the same terminals and
// nonterminals; the traversal starts by pairing the two start states (state
// 0 in each) and follows shifts and gotos in lockstep, requiring identical
// reduction multisets in every paired state, a consistent state mapping, and
// identical accept entries under the mapping.
func (nf *NormalForm) Equivalent(other *NormalForm) bool {
	if !nf.terminals.Equal(other.terminals) || !nf.nonterminals.Equal(other.nonterminals) {
		return false
	}

	symbols := append(nf.terminals.Elements(), nf.nonterminals.Elements()...)
	symbols = append(symbols, EndMarker)

	type pair struct{ s, t int }
	queue := []pair{{0, 0}}
	mapping := map[int]int{0: 0}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if !equalReductions(nf.reductionsAt(p.s), other.reductionsAt(p.t)) {
			return false
		}

		for _, X := range symbols {
			ss, okS := nf.gotoshiftAt(p.s, X)
			tt, okT := other.gotoshiftAt(p.t, X)
			if !okS && !okT {
				continue
			}
			if okS != okT {
				return false
			}
			if mapped, seen := mapping[ss]; seen {
				if mapped != tt {
					return false
				}
			} else {
				mapping[ss] = tt
				queue = append(queue, pair{ss, tt})
			}
		}
	}

	for s, t := range mapping {
		if !nf.acceptsAt(s).Equal(other.acceptsAt(t)) {
			return false
		}
	}
	return true
}

// String renders the normal form as a spaced table with terminals, the
// endmarker, and nonterminals as columns and states as rows.
func (nf *NormalForm) String() string {
	symbols := grammar.SortSymbols(nf.terminals.Elements())
	symbols = append(symbols, EndMarker)
	symbols = append(symbols, grammar.SortSymbols(nf.nonterminals.Elements())...)

	cells := map[int]map[grammar.Symbol][]string{}
	ensure := func(i int) map[grammar.Symbol][]string {
		row, ok := cells[i]
		if !ok {
			row = map[grammar.Symbol][]string{}
			cells[i] = row
		}
		return row
	}

	for i, row := range nf.gotoshifts {
		for X, j := range row {
			if X.IsNonterminal() {
				ensure(i)[X] = append(ensure(i)[X], fmt.Sprintf("%d", j))
			} else {
				ensure(i)[X] = append(ensure(i)[X], fmt.Sprintf("sh%d", j))
			}
		}
	}
	for i, row := range nf.reductions {
		for a, ps := range row {
			sorted := make([]int, len(ps))
			copy(sorted, ps)
			sort.Ints(sorted)
			for _, p := range sorted {
				ensure(i)[a] = append(ensure(i)[a], fmt.Sprintf("re%d", p))
			}
		}
	}
	for i, set := range nf.accepts {
		for _, a := range grammar.SortSymbols(set.Elements()) {
			ensure(i)[a] = append(ensure(i)[a], "acc")
		}
	}

	var states []int
	for i := range cells {
		states = append(states, i)
	}
	sort.Ints(states)

	var lines []string
	header := []string{""}
	for _, X := range symbols {
		header = append(header, X.String())
	}
	lines = append(lines, strings.Join(header, "\t"))
	for _, i := range states {
		row := []string{fmt.Sprintf("%d", i)}
		for _, X := range symbols {
			row = append(row, strings.Join(cells[i][X], ","))
		}
		lines = append(lines, strings.Join(row, "\t"))
	}
	return strings.Join(lines, "\n")
}

func equalReductions(a, b map[grammar.Symbol][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for sym, ps := range a {
		if !util.EqualSlices(ps, b[sym]) {
			return false
		}
	}
	return true
}
