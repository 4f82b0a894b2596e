package slr

import (
	"testing"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_FollowSets(t *testing.T) {
	terminals := []string{"a", "h", "c", "b", "g", "f"}
	rules := []string{
		"S -> a B D h",
		"B -> c C",
		"C -> b C | ε",
		"D -> E F",
		"E -> g | ε",
		"F -> f | ε",
	}

	testCases := []struct {
		name   string
		of     string
		expect []string
	}{
		{name: "S", of: "S", expect: []string{"$"}},
		{name: "B", of: "B", expect: []string{"f", "g", "h"}},
		{name: "C", of: "C", expect: []string{"f", "g", "h"}},
		{name: "D", of: "D", expect: []string{"h"}},
		{name: "E", of: "E", expect: []string{"f", "h"}},
		{name: "F", of: "F", expect: []string{"h"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(terminals, rules)
			first := NewFirstSets(g)
			follow := NewFollowSets(g, first)

			actual := follow.Terminals(grammar.NT(tc.of))

			assert.Equal(tc.expect, sortedNames(actual.Elements()))
		})
	}
}

func Test_FollowSets_ExpressionGrammar(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(
		[]string{"+", "*", "(", ")", "a"},
		[]string{
			"E -> E + T | T",
			"T -> T * F | F",
			"F -> ( E ) | a",
		},
	)

	first := NewFirstSets(g)
	follow := NewFollowSets(g, first)

	// FIRST(E) = FIRST(T) = FIRST(F) = {(, a}
	for _, nt := range []string{"E", "T", "F"} {
		assert.Equalf([]string{"(", "a"}, sortedNames(first.Terminals(grammar.NT(nt)).Elements()), "FIRST(%s)", nt)
	}

	followE := follow.Terminals(grammar.NT("E"))
	for _, expect := range []grammar.Symbol{grammar.T("+"), grammar.T(")"), EndMarker} {
		assert.Truef(followE.Has(expect), "FOLLOW(E) is missing %s", expect)
	}
}
