package parse

import (
	"testing"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_NewCYKParser_Preconditions(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		check     bool
		expectErr bool
	}{
		{
			name:      "grammar with empty rules",
			input:     "S -> AB |\nA -> a\nB -> b",
			check:     true,
			expectErr: true,
		},
		{
			name:      "grammar not in CNF",
			input:     "S -> aSb | ab",
			check:     true,
			expectErr: true,
		},
		{
			name:      "grammar not in CNF with checks disabled",
			input:     "S -> aSb | ab",
			check:     false,
			expectErr: false,
		},
		{
			name:      "CNF grammar",
			input:     "S -> AB | b\nA -> a\nB -> b",
			check:     true,
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.MustParse(tc.input)
			_, err := NewCYKParser(g, tc.check)

			if tc.expectErr {
				assert.ErrorIs(err, cfgerrors.ErrPrecondition)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_CYKParser_BuildTable(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> AA | AS | b
		A -> SA | AS | a
	`)
	// S appears on right sides, so the grammar fails IsCNF; skip the check
	cyk, err := NewCYKParser(g, false)
	if !assert.NoError(err) {
		return
	}

	w := terms("a", "b", "a", "a", "b")
	table, err := cyk.BuildTable(w)
	if !assert.NoError(err) {
		return
	}

	// base row holds the single-terminal producers
	assert.True(table.Has(1, 1, grammar.NT("A")))
	assert.False(table.Has(1, 1, grammar.NT("S")))
	assert.True(table.Has(2, 1, grammar.NT("S")))

	// membership: S covers the whole input
	assert.True(table.Has(1, 5, grammar.NT("S")))
}

func Test_CYKParser_Membership(t *testing.T) {
	testCases := []struct {
		name   string
		w      []string
		expect bool
	}{
		{name: "in language", w: []string{"a", "b", "a", "a", "b"}, expect: true},
		{name: "single b", w: []string{"b"}, expect: true},
		{name: "single a", w: []string{"a"}, expect: false},
		{name: "ab", w: []string{"a", "b"}, expect: true},
	}

	g := grammar.MustParse(`
		S -> AA | AS | b
		A -> SA | AS | a
	`)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cyk, err := NewCYKParser(g, false)
			if !assert.NoError(err) {
				return
			}

			w := terms(tc.w...)
			table, err := cyk.BuildTable(w)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, table.Has(1, len(w), g.Start()))
		})
	}
}

func Test_CYKParser_LeftParseFromTable(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> AA | AS | b
		A -> SA | AS | a
	`)
	cyk, err := NewCYKParser(g, false)
	if !assert.NoError(err) {
		return
	}

	w := terms("a", "b", "a", "a", "b")
	lp, err := cyk.Parse(w)
	if !assert.NoError(err) {
		return
	}

	// at each cell the smallest split point is taken, and among the rules
	// usable there the one with the smallest number
	assert.Equal([]int{1, 6, 4, 3, 5, 6, 2, 6, 3}, lp.Indices())

	tree, err := lp.Tree()
	if assert.NoError(err) {
		assert.Equal(w, tree.Leaves())
	}
}

func Test_CYKParser_ParseFailure(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> AA | AS | b
		A -> SA | AS | a
	`)
	cyk, err := NewCYKParser(g, false)
	if !assert.NoError(err) {
		return
	}

	_, err = cyk.Parse(terms("a"))

	assert.ErrorIs(err, cfgerrors.ErrParseFailure)
}

func Test_CYKTable_String(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> AB | b
		A -> a
		B -> b
	`)
	cyk, err := NewCYKParser(g, true)
	if !assert.NoError(err) {
		return
	}

	table, err := cyk.BuildTable(terms("a", "b"))
	if !assert.NoError(err) {
		return
	}

	out := table.String()
	assert.Contains(out, "S")
	assert.Contains(out, "A")
	assert.Contains(out, "B")
}
