package slr

import (
	"testing"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Item_AfterDot(t *testing.T) {
	rule := grammar.Rule{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.T("a"), grammar.NT("S"), grammar.T("b")}}

	testCases := []struct {
		name         string
		dotPos       int
		expectSym    grammar.Symbol
		expectOK     bool
		expectDone   bool
		expectString string
	}{
		{
			name:         "dot at start",
			dotPos:       0,
			expectSym:    grammar.T("a"),
			expectOK:     true,
			expectString: "S -> .aSb",
		},
		{
			name:         "dot in middle",
			dotPos:       1,
			expectSym:    grammar.NT("S"),
			expectOK:     true,
			expectString: "S -> a.Sb",
		},
		{
			name:         "dot at end",
			dotPos:       3,
			expectDone:   true,
			expectString: "S -> aSb.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			item := NewItem(rule, tc.dotPos)

			sym, ok := item.AfterDot()
			assert.Equal(tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(tc.expectSym, sym)
			}
			assert.Equal(tc.expectDone, item.Complete())
			assert.Equal(tc.expectString, item.String())
		})
	}
}

func Test_Item_Advanced(t *testing.T) {
	assert := assert.New(t)

	rule := grammar.Rule{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.T("a")}}
	item := NewItem(rule, 0)

	adv := item.Advanced()

	assert.Equal(1, adv.DotPos())
	assert.True(adv.Complete())
	// the original is unchanged
	assert.Equal(0, item.DotPos())

	assert.Panics(func() {
		adv.Advanced()
	})
}

func Test_Item_Equal(t *testing.T) {
	assert := assert.New(t)

	r1 := grammar.Rule{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.T("a")}}
	r2 := grammar.Rule{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.T("b")}}

	assert.True(NewItem(r1, 0).Equal(NewItem(r1, 0)))
	assert.False(NewItem(r1, 0).Equal(NewItem(r1, 1)))
	assert.False(NewItem(r1, 0).Equal(NewItem(r2, 0)))
}

func Test_Closure_Items(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(
		[]string{"+", "*", "(", ")", "a"},
		[]string{
			"Z -> E",
			"E -> E + T | T",
			"T -> T * F | F",
			"F -> ( E ) | a",
		},
	)

	start := NewItem(g.Production(1), 0)
	c := NewClosure([]Item{start}, g)

	items := c.Items()

	// every production of E, T, and F is predicted from Z -> .E
	assert.Len(items, 7)
	assert.Equal(start, items[0])
}

func Test_Closure_Goto(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(
		[]string{"+", "*", "(", ")", "a"},
		[]string{
			"Z -> E",
			"E -> E + T | T",
			"T -> T * F | F",
			"F -> ( E ) | a",
		},
	)

	c := NewClosure([]Item{NewItem(g.Production(1), 0)}, g)

	onE := c.Goto(grammar.NT("E"))

	// kernel of goto on E is {Z -> E., E -> E.+T}
	kernel := onE.KernelItems()
	if assert.Len(kernel, 2) {
		assert.Equal("Z -> E.", kernel[0].String())
		assert.Equal("E -> E.+T", kernel[1].String())
	}

	// no transition on ) from the initial closure
	assert.True(c.Goto(grammar.T(")")).Empty())
}

func Test_Closure_Equal_IgnoresKernelOrder(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(
		[]string{"a", "b"},
		[]string{"S -> a S | b"},
	)

	i1 := NewItem(g.Production(1), 1)
	i2 := NewItem(g.Production(2), 1)

	c1 := NewClosure([]Item{i1, i2}, g)
	c2 := NewClosure([]Item{i2, i1}, g)
	c3 := NewClosure([]Item{i1}, g)

	assert.True(c1.Equal(c2))
	assert.False(c1.Equal(c3))
}
