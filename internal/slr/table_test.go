package slr

import (
	"testing"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func exprGrammar() grammar.Grammar {
	return setupGrammar(
		[]string{"+", "*", "(", ")", "a"},
		[]string{
			"E -> E + T | T",
			"T -> T * F | F",
			"F -> ( E ) | a",
		},
	)
}

func Test_NewParseTable_ExpressionGrammar(t *testing.T) {
	assert := assert.New(t)

	pt := NewParseTable(exprGrammar())

	// the expression grammar is SLR(1): no conflicts anywhere
	assert.False(pt.HasConflicts())
	assert.False(pt.HasReduceReduceConflicts())

	// state 0 shifts on ( and a and has gotos for E, T, F
	for _, term := range []string{"(", "a"} {
		acts := pt.Actions(0, grammar.T(term))
		if assert.Lenf(acts, 1, "ACTION[0][%s]", term) {
			assert.Equal(ActionShift, acts[0].Type)
		}
	}
	for _, nt := range []string{"E", "T", "F"} {
		_, ok := pt.Goto(0, grammar.NT(nt))
		assert.Truef(ok, "GOTO[0][%s] is missing", nt)
	}

	// ACTION[0][+] is an error entry
	assert.Empty(pt.Actions(0, grammar.T("+")))

	// the state reached on E from state 0 accepts on $ and shifts on +
	eState, ok := pt.Goto(0, grammar.NT("E"))
	if assert.True(ok) {
		acts := pt.Actions(eState, EndMarker)
		if assert.Len(acts, 1) {
			assert.Equal(ActionAccept, acts[0].Type)
		}
		acts = pt.Actions(eState, grammar.T("+"))
		if assert.Len(acts, 1) {
			assert.Equal(ActionShift, acts[0].Type)
		}
	}

	// the state reached on a single a reduces by F -> a over FOLLOW(F)
	aState := pt.Automaton().Next(0, grammar.T("a"))
	fRule := pt.AugmentedGrammar().IndexOf(grammar.Rule{LHS: grammar.NT("F"), RHS: []grammar.Symbol{grammar.T("a")}})
	for _, term := range []grammar.Symbol{grammar.T("+"), grammar.T("*"), grammar.T(")"), EndMarker} {
		acts := pt.Actions(aState, term)
		if assert.Lenf(acts, 1, "ACTION[%d][%s]", aState, term) {
			assert.Equal(ActionReduce, acts[0].Type)
			assert.Equal(fRule, acts[0].Production)
		}
	}
}

func Test_NewParseTable_ConflictsArePreserved(t *testing.T) {
	assert := assert.New(t)

	// the dangling-else grammar has a shift/reduce conflict; both entries
	// must be kept in the cell
	g := setupGrammar(
		[]string{"i", "e", "x"},
		[]string{
			"S -> i S | i S e S | x",
		},
	)

	pt := NewParseTable(g)

	assert.True(pt.HasConflicts())
	assert.False(pt.HasReduceReduceConflicts())

	conflicted := false
	for i := 0; i < pt.NumStates(); i++ {
		acts := pt.Actions(i, grammar.T("e"))
		if len(acts) > 1 {
			conflicted = true
			hasShift, hasReduce := false, false
			for _, a := range acts {
				if a.Type == ActionShift {
					hasShift = true
				}
				if a.Type == ActionReduce {
					hasReduce = true
				}
			}
			assert.True(hasShift && hasReduce)
		}
	}
	assert.True(conflicted)
}

func Test_ParseTable_String(t *testing.T) {
	assert := assert.New(t)

	pt := NewParseTable(exprGrammar())

	out := pt.String()

	assert.Contains(out, "A:$")
	assert.Contains(out, "G:E")
	assert.Contains(out, "acc")
}

func Test_ParseTable_Equivalent_SameGrammar(t *testing.T) {
	assert := assert.New(t)

	pt1 := NewParseTable(exprGrammar())
	pt2 := NewParseTable(exprGrammar())

	assert.True(pt1.Equivalent(pt2))
	assert.True(pt2.Equivalent(pt1))

	// reflexivity
	assert.True(pt1.Equivalent(pt1))
}

func Test_ParseTable_Equivalent_DifferentGrammars(t *testing.T) {
	assert := assert.New(t)

	pt1 := NewParseTable(exprGrammar())
	pt2 := NewParseTable(setupGrammar(
		[]string{"+", "*", "(", ")", "a"},
		[]string{
			"E -> T + E | T",
			"T -> F * T | F",
			"F -> ( E ) | a",
		},
	))

	assert.False(pt1.Equivalent(pt2))
}
