package slr

import (
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/emirpasic/gods/lists/arraylist"
)

// IsAugmented returns whether a grammar's start symbol appears at most once
// on the left side of a production rule and never on a right side.
func IsAugmented(g grammar.Grammar) bool {
	onLeft := 0
	for _, p := range g.Productions() {
		if p.LHS == g.Start() {
			onLeft++
		}
		for _, s := range p.RHS {
			if s == g.Start() {
				return false
			}
		}
	}
	return onLeft <= 1
}

// Augment returns a grammar augmented with a fresh primed start symbol S' and
// the rule S' → S placed first, or g unchanged if it is already augmented.
func Augment(g grammar.Grammar) grammar.Grammar {
	if IsAugmented(g) {
		return g
	}

	sPrime := grammar.NextPrimed(g.Start().Name(), g.NonterminalSet())
	nonterminals := append([]grammar.Symbol{sPrime}, g.Nonterminals()...)
	productions := append([]grammar.Rule{{LHS: sPrime, RHS: []grammar.Symbol{g.Start()}}}, g.Productions()...)

	gPrime, err := grammar.New(nonterminals, g.Terminals(), productions, sPrime)
	if err != nil {
		// augmentation of a valid grammar cannot produce an invalid one
		panic(err.Error())
	}
	return gPrime
}

// Transition is a directed edge of the LR(0) automaton: from state From, on
// grammar symbol On, to state To.
type Transition struct {
	From int
	On   grammar.Symbol
	To   int
}

// Automaton is the canonical collection of sets of LR(0) items of an
// augmented grammar, with its goto transitions: the LR(0) state machine.
// States are numbered in the order they are discovered by a breadth-first
// construction starting from the closure of the start item, so numbering is
// deterministic. The automaton is built once and read-only afterwards.
type Automaton struct {
	g      grammar.Grammar
	states []Closure
	edges  *arraylist.List
}

// NewAutomaton builds the LR(0) automaton for a grammar, augmenting it first
// if necessary.
func NewAutomaton(g grammar.Grammar) *Automaton {
	gPrime := Augment(g)

	m := &Automaton{
		g:     gPrime,
		edges: arraylist.New(),
	}

	startRules := gPrime.ProductionsFor(gPrime.Start())
	initial := NewClosure([]Item{NewItem(startRules[0], 0)}, gPrime)
	m.states = append(m.states, initial)

	for i := 0; i < len(m.states); i++ {
		for _, X := range m.states[i].GotoSymbols() {
			next := m.states[i].Goto(X)
			index := m.stateIndex(next)
			if index < 0 {
				index = len(m.states)
				m.states = append(m.states, next)
			}
			m.edges.Add(Transition{From: i, On: X, To: index})
		}
	}

	return m
}

func (m *Automaton) stateIndex(c Closure) int {
	for i := range m.states {
		if m.states[i].Equal(c) {
			return i
		}
	}
	return -1
}

// AugmentedGrammar returns the augmented grammar the automaton was built
// over. Production numbers in SLR actions refer to this grammar.
func (m *Automaton) AugmentedGrammar() grammar.Grammar {
	return m.g
}

// NumStates returns the number of states in the automaton.
func (m *Automaton) NumStates() int {
	return len(m.states)
}

// State returns the closure that is state i of the automaton.
func (m *Automaton) State(i int) Closure {
	return m.states[i]
}

// Transitions returns every edge of the automaton in construction order.
func (m *Automaton) Transitions() []Transition {
	ts := make([]Transition, 0, m.edges.Size())
	it := m.edges.Iterator()
	for it.Next() {
		ts = append(ts, it.Value().(Transition))
	}
	return ts
}

// Next returns the state reached from state i on symbol X, or -1 when the
// automaton has no such transition.
func (m *Automaton) Next(i int, X grammar.Symbol) int {
	it := m.edges.Iterator()
	for it.Next() {
		t := it.Value().(Transition)
		if t.From == i && t.On == X {
			return t.To
		}
	}
	return -1
}
