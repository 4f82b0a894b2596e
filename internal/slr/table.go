package slr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/dekarrin/rosed"
)

// ActionType distinguishes the kinds of entries in the ACTION half of an SLR
// parse table.
type ActionType int

const (
	// ActionShift consumes the lookahead terminal and moves to a new state.
	ActionShift ActionType = iota

	// ActionReduce applies a production in reverse.
	ActionReduce

	// ActionAccept finishes a successful parse.
	ActionAccept
)

// Action is one entry of an ACTION cell: a shift to a state, a reduction by a
// production of the augmented grammar, or accept.
type Action struct {
	// Type is the kind of action.
	Type ActionType

	// State is the destination state of a shift.
	State int

	// Production is the 1-based number, within the augmented grammar, of the
	// production a reduce applies.
	Production int
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("sh%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("re%d", a.Production)
	case ActionAccept:
		return "acc"
	}
	return "?"
}

// ParseTable is an SLR(1) parse table. The ACTION half maps a state and a
// terminal (or the endmarker) to a list of actions: instead of treating
// shift/reduce and reduce/reduce conflicts as errors, conflicting entries
// accumulate in the cell, with exact duplicates suppressed. The GOTO half
// maps a state and a nonterminal to a single state.
type ParseTable struct {
	g      grammar.Grammar
	m      *Automaton
	first  *FirstSets
	follow *FollowSets

	action map[int]map[grammar.Symbol][]Action
	gotos  map[int]map[grammar.Symbol]int
}

// NewParseTable constructs the SLR(1) parse table of a grammar: the LR(0)
// automaton of the augmented grammar provides the shift and goto entries, and
// each state's completed items provide reduce entries for every terminal in
// the FOLLOW set of their left side, with the completed start production
// providing the accept entry on the endmarker.
func NewParseTable(g grammar.Grammar) *ParseTable {
	m := NewAutomaton(g)
	gPrime := m.AugmentedGrammar()
	first := NewFirstSets(gPrime)
	follow := NewFollowSets(gPrime, first)

	pt := &ParseTable{
		g:      g,
		m:      m,
		first:  first,
		follow: follow,
		action: map[int]map[grammar.Symbol][]Action{},
		gotos:  map[int]map[grammar.Symbol]int{},
	}

	// shifts and gotos come straight from the automaton's transitions
	for _, t := range m.Transitions() {
		if t.On.IsTerminal() {
			pt.addAction(t.From, t.On, Action{Type: ActionShift, State: t.To})
		} else {
			pt.setGoto(t.From, t.On, t.To)
		}
	}

	// completed items produce reduce entries over FOLLOW of their left side;
	// the completed start production produces accept on the endmarker
	for i := 0; i < m.NumStates(); i++ {
		for _, item := range m.State(i).Items() {
			if !item.Complete() {
				continue
			}
			A := item.Production().LHS
			if A == gPrime.Start() {
				pt.addAction(i, EndMarker, Action{Type: ActionAccept})
				continue
			}
			p := gPrime.IndexOf(item.Production())
			for _, a := range grammar.SortSymbols(follow.Terminals(A).Elements()) {
				pt.addAction(i, a, Action{Type: ActionReduce, Production: p})
			}
		}
	}

	return pt
}

func (pt *ParseTable) addAction(i int, a grammar.Symbol, act Action) {
	row, ok := pt.action[i]
	if !ok {
		row = map[grammar.Symbol][]Action{}
		pt.action[i] = row
	}
	for _, existing := range row[a] {
		if existing == act {
			return
		}
	}
	row[a] = append(row[a], act)
}

func (pt *ParseTable) setGoto(i int, A grammar.Symbol, j int) {
	row, ok := pt.gotos[i]
	if !ok {
		row = map[grammar.Symbol]int{}
		pt.gotos[i] = row
	}
	row[A] = j
}

// Actions returns the list of actions in ACTION[i][a]. The list is empty for
// an error entry.
func (pt *ParseTable) Actions(i int, a grammar.Symbol) []Action {
	acts := pt.action[i][a]
	out := make([]Action, len(acts))
	copy(out, acts)
	return out
}

// Goto returns GOTO[i][A] and whether the entry exists.
func (pt *ParseTable) Goto(i int, A grammar.Symbol) (int, bool) {
	j, ok := pt.gotos[i][A]
	return j, ok
}

// NumStates returns the number of states of the underlying automaton.
func (pt *ParseTable) NumStates() int {
	return pt.m.NumStates()
}

// Automaton returns the LR(0) automaton the table was built from.
func (pt *ParseTable) Automaton() *Automaton {
	return pt.m
}

// Grammar returns the original grammar the table was built for.
func (pt *ParseTable) Grammar() grammar.Grammar {
	return pt.g
}

// AugmentedGrammar returns the augmented grammar to which the table's
// production numbers refer.
func (pt *ParseTable) AugmentedGrammar() grammar.Grammar {
	return pt.m.AugmentedGrammar()
}

// FirstSets returns the FIRST sets of the augmented grammar.
func (pt *ParseTable) FirstSets() *FirstSets {
	return pt.first
}

// FollowSets returns the FOLLOW sets of the augmented grammar.
func (pt *ParseTable) FollowSets() *FollowSets {
	return pt.follow
}

// HasConflicts returns whether any ACTION cell holds more than one entry.
func (pt *ParseTable) HasConflicts() bool {
	for _, row := range pt.action {
		for _, cell := range row {
			if len(cell) > 1 {
				return true
			}
		}
	}
	return false
}

// HasReduceReduceConflicts returns whether any ACTION cell holds more than
// one reduce entry.
func (pt *ParseTable) HasReduceReduceConflicts() bool {
	for _, row := range pt.action {
		for _, cell := range row {
			reduces := 0
			for _, act := range cell {
				if act.Type == ActionReduce {
					reduces++
				}
			}
			if reduces > 1 {
				return true
			}
		}
	}
	return false
}

// String renders the table with one row per state and one column per
// terminal (plus the endmarker) and nonterminal. Two tables with identical
// String output are identical entry for entry, though not necessarily
// equivalent-only tables; use NormalForm equivalence for that.
func (pt *ParseTable) String() string {
	gPrime := pt.m.AugmentedGrammar()
	allTerms := append(gPrime.Terminals(), EndMarker)
	nonTerms := gPrime.Nonterminals()

	data := [][]string{}

	headers := []string{"S", "|"}
	for _, t := range allTerms {
		headers = append(headers, "A:"+t.String())
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt.String())
	}
	data = append(data, headers)

	for i := 0; i < pt.m.NumStates(); i++ {
		row := []string{fmt.Sprintf("%d", i), "|"}

		for _, t := range allTerms {
			acts := sortActions(pt.Actions(i, t))
			cellStrs := make([]string, len(acts))
			for k := range acts {
				cellStrs[k] = acts[k].String()
			}
			row = append(row, strings.Join(cellStrs, ","))
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := pt.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10+8*len(allTerms)+8*len(nonTerms), rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// NormalForm converts the table to its normal form for equivalence testing.
func (pt *ParseTable) NormalForm() *NormalForm {
	nf := NewNormalForm()
	for i, row := range pt.action {
		for a, cell := range row {
			for _, act := range cell {
				switch act.Type {
				case ActionShift:
					nf.SetGotoShift(i, a, act.State)
				case ActionReduce:
					nf.AddReduction(i, a, act.Production)
				case ActionAccept:
					nf.SetAccept(i, a)
				}
			}
		}
	}
	for i, row := range pt.gotos {
		for A, j := range row {
			nf.SetGotoShift(i, A, j)
		}
	}
	return nf
}

// Equivalent returns whether this table and another accept the same inputs
// with the same reductions, up to a renumbering of states.
func (pt *ParseTable) Equivalent(other *ParseTable) bool {
	return pt.NormalForm().Equivalent(other.NormalForm())
}

// sortActions orders a copy of the given actions for display: shifts first,
// then reduces by production number, then accept.
func sortActions(acts []Action) []Action {
	sorted := make([]Action, len(acts))
	copy(sorted, acts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		if sorted[i].Type == ActionReduce {
			return sorted[i].Production < sorted[j].Production
		}
		return sorted[i].State < sorted[j].State
	})
	return sorted
}
