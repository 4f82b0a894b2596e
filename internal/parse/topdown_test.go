package parse

import (
	"strings"
	"testing"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func terms(names ...string) []grammar.Symbol {
	w := make([]grammar.Symbol, len(names))
	for i := range names {
		w[i] = grammar.T(names[i])
	}
	return w
}

func Test_NewTopDownParser_RejectsLeftRecursion(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		E -> E+T | T
		T -> a
	`)

	_, err := NewTopDownParser(g)

	assert.ErrorIs(err, cfgerrors.ErrPrecondition)
}

func Test_TopDownParser_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		w         []string
		expect    []int
		expectErr error
	}{
		{
			name:   "expression grammar, a+a",
			input:  "E -> T+E | T\nT -> F*T | F\nF -> a",
			w:      []string{"a", "+", "a"},
			expect: []int{1, 4, 5, 2, 4, 5},
		},
		{
			name:   "expression grammar, single a",
			input:  "E -> T+E | T\nT -> F*T | F\nF -> a",
			w:      []string{"a"},
			expect: []int{2, 4, 5},
		},
		{
			name:   "expression grammar, a*a",
			input:  "E -> T+E | T\nT -> F*T | F\nF -> a",
			w:      []string{"a", "*", "a"},
			expect: []int{2, 3, 5, 4, 5},
		},
		{
			name:      "input not in language",
			input:     "E -> T+E | T\nT -> F*T | F\nF -> a",
			w:         []string{"a", "+"},
			expectErr: cfgerrors.ErrParseFailure,
		},
		{
			name:      "input symbol not in alphabet",
			input:     "E -> T+E | T\nT -> F*T | F\nF -> a",
			w:         []string{"a", "-", "a"},
			expectErr: cfgerrors.ErrInputMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.input)
			td, err := NewTopDownParser(g)
			if !assert.NoError(err) {
				return
			}

			lp, err := td.Parse(terms(tc.w...))

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, lp.Indices())

			// reapplying the productions must give back the input
			tree, err := lp.Tree()
			if assert.NoError(err) {
				assert.Equal(terms(tc.w...), tree.Leaves())
			}
		})
	}
}

func Test_TopDownParser_Trace(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a
	`)
	td, err := NewTopDownParser(g)
	if !assert.NoError(err) {
		return
	}

	var lines []string
	td.RegisterTraceListener(func(s string) {
		lines = append(lines, s)
	})

	_, err = td.Parse(terms("a"))
	if !assert.NoError(err) {
		return
	}

	// (q, 1, e, S$) |- (q, 1, S1, a$) |- (q, 2, S1 a, $) |- (t, 2, S1 a, e)
	if assert.Len(lines, 4) {
		assert.Equal("(q, 1, e, S$)", lines[0])
		assert.Equal("|- (q, 1, S1, a$)", lines[1])
		assert.Equal("|- (q, 2, S1 a, $)", lines[2])
		assert.Equal("|- (t, 2, S1 a, e)", lines[3])
	}
	assert.True(strings.HasPrefix(lines[len(lines)-1], "|- (t"))
}
