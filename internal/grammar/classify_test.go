package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_LeftRecursive(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect bool
	}{
		{
			name:   "no recursion at all",
			input:  "S -> a | b",
			expect: false,
		},
		{
			name:   "immediate left recursion",
			input:  "E -> E+T | T\nT -> a",
			expect: true,
		},
		{
			name:   "right recursion only",
			input:  "E -> T+E | T\nT -> a",
			expect: false,
		},
		{
			name:   "indirect left recursion",
			input:  "A -> Ba | a\nB -> Cb | b\nC -> Ac | c",
			expect: true,
		},
		{
			name:   "recursion not in first position",
			input:  "S -> aS | b",
			expect: false,
		},
		{
			// the first-symbol graph does not see through nullable prefixes,
			// so hidden left recursion goes undetected
			name:   "hidden left recursion is not detected",
			input:  "S -> AS | b\nA -> ",
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := MustParse(tc.input)
			assert.Equal(tc.expect, g.LeftRecursive())
		})
	}
}

func Test_Grammar_Cyclic(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect bool
	}{
		{
			name:   "no unit rules",
			input:  "S -> ab | b",
			expect: false,
		},
		{
			name:   "self unit rule",
			input:  "S -> S | a",
			expect: true,
		},
		{
			name:   "two-step cycle",
			input:  "S -> A | a\nA -> S",
			expect: true,
		},
		{
			name:   "unit chain without cycle",
			input:  "S -> A\nA -> B\nB -> b",
			expect: false,
		},
		{
			name:   "left recursion is not a cycle",
			input:  "E -> E+T | T\nT -> a",
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := MustParse(tc.input)
			assert.Equal(tc.expect, g.Cyclic())
		})
	}
}
