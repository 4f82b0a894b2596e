package parse

import (
	"testing"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_NewBottomUpParser_Preconditions(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "grammar with empty rules",
			input: "S -> aS |",
		},
		{
			name:  "cyclic grammar",
			input: "S -> A | a\nA -> S",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.input)
			_, err := NewBottomUpParser(g)

			assert.ErrorIs(err, cfgerrors.ErrPrecondition)
		})
	}
}

func Test_BottomUpParser_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		w         []string
		expect    []int
		expectErr error
	}{
		{
			name:   "expression grammar, a*a",
			input:  "E -> E+T | T\nT -> T*F | F\nF -> a",
			w:      []string{"a", "*", "a"},
			expect: []int{2, 3, 5, 4, 5},
		},
		{
			name:   "expression grammar, single a",
			input:  "E -> E+T | T\nT -> T*F | F\nF -> a",
			w:      []string{"a"},
			expect: []int{2, 4, 5},
		},
		{
			name:   "expression grammar, a+a",
			input:  "E -> E+T | T\nT -> T*F | F\nF -> a",
			w:      []string{"a", "+", "a"},
			expect: []int{1, 4, 5, 2, 4, 5},
		},
		{
			name:      "input not in language",
			input:     "E -> E+T | T\nT -> T*F | F\nF -> a",
			w:         []string{"a", "+"},
			expectErr: cfgerrors.ErrParseFailure,
		},
		{
			name:      "input symbol not in alphabet",
			input:     "E -> E+T | T\nT -> T*F | F\nF -> a",
			w:         []string{"b"},
			expectErr: cfgerrors.ErrInputMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.input)
			bu, err := NewBottomUpParser(g)
			if !assert.NoError(err) {
				return
			}

			rp, err := bu.Parse(terms(tc.w...))

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}

			// the machine emits the right parse in reverse
			assert.Equal(tc.expect, rp.Reversed())

			// reapplying the productions must give back the input
			tree, err := rp.Tree()
			if assert.NoError(err) {
				assert.Equal(terms(tc.w...), tree.Leaves())
			}
		})
	}
}

func Test_BottomUpParser_Trace(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse("S -> a")
	bu, err := NewBottomUpParser(g)
	if !assert.NoError(err) {
		return
	}

	var lines []string
	bu.RegisterTraceListener(func(s string) {
		lines = append(lines, s)
	})

	_, err = bu.Parse(terms("a"))
	if !assert.NoError(err) {
		return
	}

	// (q, 1, $, e) |- (q, 2, $a, s) |- (q, 2, $S, 1s) |- (t, 2, $S, 1s)
	if assert.Len(lines, 4) {
		assert.Equal("(q, 1, $, e)", lines[0])
		assert.Equal("|- (q, 2, $a, s)", lines[1])
		assert.Equal("|- (q, 2, $S, 1s)", lines[2])
		assert.Equal("|- (t, 2, $S, 1s)", lines[3])
	}
}
