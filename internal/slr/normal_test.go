package slr

import (
	"sort"
	"testing"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// renumbered returns a copy of nf with every state renamed through the given
// permutation function.
func renumbered(nf *NormalForm, perm func(int) int) *NormalForm {
	out := NewNormalForm()
	for state, row := range nf.reductions {
		for a, ps := range row {
			for _, p := range ps {
				out.AddReduction(perm(state), a, p)
			}
		}
	}
	for state, row := range nf.gotoshifts {
		for X, to := range row {
			out.SetGotoShift(perm(state), X, perm(to))
		}
	}
	for state, set := range nf.accepts {
		for _, a := range set.Elements() {
			out.SetAccept(perm(state), a)
		}
	}
	return out
}

func Test_NormalForm_Equivalent_UpToRenumbering(t *testing.T) {
	assert := assert.New(t)

	pt := NewParseTable(exprGrammar())
	nf := pt.NormalForm()

	// renumber every state except 0, reversing the order of the rest; the
	// tables describe the same machine
	n := pt.NumStates()
	perm := func(s int) int {
		if s == 0 {
			return 0
		}
		return n - s
	}

	other := renumbered(nf, perm)

	assert.True(nf.Equivalent(other))
	assert.True(other.Equivalent(nf))
}

func Test_NormalForm_Equivalent_Properties(t *testing.T) {
	assert := assert.New(t)

	// reflexive, symmetric, transitive over equivalent renumberings
	pt := NewParseTable(exprGrammar())
	a := pt.NormalForm()
	b := renumbered(a, func(s int) int { return s * 2 })
	c := renumbered(a, func(s int) int { return s * 3 })

	assert.True(a.Equivalent(a))

	assert.True(a.Equivalent(b))
	assert.True(b.Equivalent(a))

	assert.True(b.Equivalent(c))
	assert.True(a.Equivalent(c))
}

func Test_NormalForm_Equivalent_DetectsDifferences(t *testing.T) {
	assert := assert.New(t)

	base := NewParseTable(exprGrammar()).NormalForm()

	t.Run("extra reduction", func(t *testing.T) {
		other := renumbered(base, func(s int) int { return s })
		other.AddReduction(0, grammar.T("a"), 1)
		assert.False(base.Equivalent(other))
	})

	t.Run("different symbol universe", func(t *testing.T) {
		other := renumbered(base, func(s int) int { return s })
		other.SetGotoShift(0, grammar.T("z"), 1)
		assert.False(base.Equivalent(other))
	})

	t.Run("rewired shift", func(t *testing.T) {
		other := renumbered(base, func(s int) int { return s })
		// find a state with a shift on ( and point it somewhere else
		var states []int
		for s := range other.gotoshifts {
			states = append(states, s)
		}
		sort.Ints(states)
		rewired := false
		for _, s := range states {
			if to, ok := other.gotoshiftAt(s, grammar.T("(")); ok {
				other.SetGotoShift(s, grammar.T("("), to+1000)
				rewired = true
				break
			}
		}
		if assert.True(rewired) {
			assert.False(base.Equivalent(other))
		}
	})
}

func Test_NormalForm_String(t *testing.T) {
	assert := assert.New(t)

	nf := NewParseTable(exprGrammar()).NormalForm()

	out := nf.String()
	assert.Contains(out, "sh")
	assert.Contains(out, "re")
	assert.Contains(out, "acc")
}
