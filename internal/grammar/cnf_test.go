package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsCNFRule(t *testing.T) {
	start := NT("S")

	testCases := []struct {
		name   string
		rule   Rule
		expect bool
	}{
		{
			name:   "single terminal",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{T("a")}},
			expect: true,
		},
		{
			name:   "two nonterminals",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{NT("B"), NT("C")}},
			expect: true,
		},
		{
			name:   "start on the right side",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{NT("B"), NT("S")}},
			expect: false,
		},
		{
			name:   "start epsilon rule",
			rule:   Rule{LHS: NT("S"), RHS: nil},
			expect: true,
		},
		{
			name:   "non-start epsilon rule",
			rule:   Rule{LHS: NT("A"), RHS: nil},
			expect: false,
		},
		{
			name:   "single nonterminal",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{NT("B")}},
			expect: false,
		},
		{
			name:   "terminal pair",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{T("a"), T("b")}},
			expect: false,
		},
		{
			name:   "three symbols",
			rule:   Rule{LHS: NT("A"), RHS: []Symbol{NT("B"), NT("C"), NT("D")}},
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, IsCNFRule(tc.rule, start))
		})
	}
}

func Test_ToCNF(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectEpsilon bool
	}{
		{
			name:          "sipser conversion example",
			input:         "S -> ASA | aB\nA -> B | S\nB -> b |",
			expectEpsilon: false,
		},
		{
			name:          "epsilon in the language",
			input:         "S -> a |",
			expectEpsilon: true,
		},
		{
			name:          "long right sides",
			input:         "S -> abcd | aAbB\nA -> abc\nB -> b",
			expectEpsilon: false,
		},
		{
			name:          "unit chains",
			input:         "S -> A\nA -> B\nB -> ab",
			expectEpsilon: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParse(tc.input)
			gPrime := ToCNF(g)

			// every resulting rule must be in normal form
			assert.True(IsCNF(gPrime), "grammar is not in CNF:\n%s", gPrime.String())

			// the new start symbol is the subscripted original
			assert.Equal(SubscriptedNT(g.Start().Name(), 0), gPrime.Start())

			// the start epsilon rule exists exactly when epsilon is in the
			// language
			hasEps := false
			for _, r := range gPrime.Productions() {
				if r.IsEpsilon() {
					assert.Equal(gPrime.Start(), r.LHS)
					hasEps = true
				}
			}
			assert.Equal(tc.expectEpsilon, hasEps)

			// the original grammar is untouched
			assert.True(g.Equal(MustParse(tc.input)))
		})
	}
}

func Test_ToCNF_BinarizationCoversEveryRule(t *testing.T) {
	// the binarization scan advances by the length of each rule's own
	// replacement list; several consecutive long rules must all end up
	// chained and proxied
	assert := assert.New(t)

	g := MustParse(`
		S -> abcde | ABCDA
		A -> aaaa
		B -> bbbb
		C -> cccc
		D -> dddd
	`)

	gPrime := ToCNF(g)

	for _, r := range gPrime.Productions() {
		assert.Truef(IsCNFRule(r, gPrime.Start()), "rule %q is not in CNF", r.String())
		assert.LessOrEqual(len(r.RHS), 2)
	}
}

func Test_Substitutions(t *testing.T) {
	assert := assert.New(t)

	// applying B -> ε to a B b B must give every subset of occurrences
	pe := Rule{LHS: NT("B"), RHS: nil}
	sentence := []Symbol{T("a"), NT("B"), T("b"), NT("B")}

	subs := substitutions(sentence, pe)

	assert.Len(subs, 4)
	assert.Equal(sentence, subs[0])

	var strs []string
	for _, s := range subs {
		strs = append(strs, sentenceString(s))
	}
	assert.Contains(strs, "aBbB")
	assert.Contains(strs, "abB")
	assert.Contains(strs, "aBb")
	assert.Contains(strs, "ab")
}

func Test_Substitutions_DeduplicatesSentences(t *testing.T) {
	assert := assert.New(t)

	// erasing either single occurrence of A in A A gives the same sentence,
	// which must appear only once
	pe := Rule{LHS: NT("A"), RHS: nil}

	subs := substitutions([]Symbol{NT("A"), NT("A")}, pe)

	assert.Len(subs, 3)
}
