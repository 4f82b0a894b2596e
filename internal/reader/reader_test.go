package reader

import (
	"testing"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_ParseFormat(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Format
		expectErr bool
	}{
		{name: "short", input: "short", expect: FormatShort},
		{name: "ext", input: "ext", expect: FormatExtended},
		{name: "extended long name", input: "extended", expect: FormatExtended},
		{name: "toml", input: "TOML", expect: FormatTOML},
		{name: "unknown", input: "yaml", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseFormat(tc.input)

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(tc.expect, actual)
			}
		})
	}
}

func Test_DetectFormat(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FormatTOML, DetectFormat("grammars/expr.toml"))
	assert.Equal(FormatTOML, DetectFormat("expr.TOML"))
	assert.Equal(FormatExtended, DetectFormat("expr.cfg"))
	assert.Equal(FormatExtended, DetectFormat("expr"))
}

func Test_ReadExtended(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectErr   bool
		expectRules []grammar.Rule
		expectStart grammar.Symbol
	}{
		{
			name:      "empty text",
			input:     "",
			expectErr: true,
		},
		{
			name:      "missing arrow",
			input:     `<S> "a"`,
			expectErr: true,
		},
		{
			name:  "single rule",
			input: `<S> -> "a"`,
			expectRules: []grammar.Rule{
				{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.T("a")}},
			},
			expectStart: grammar.NT("S"),
		},
		{
			name: "sentence grammar",
			input: `<S> -> <NP> <VP> | <S> <PP> | <S> "and" <S>
<NP> -> "n"
<NP> -> "det" "n"
<VP> -> "v" <NP>
<PP> -> "p" <NP>`,
			expectRules: []grammar.Rule{
				{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.NT("NP"), grammar.NT("VP")}},
				{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.NT("S"), grammar.NT("PP")}},
				{LHS: grammar.NT("S"), RHS: []grammar.Symbol{grammar.NT("S"), grammar.T("and"), grammar.NT("S")}},
				{LHS: grammar.NT("NP"), RHS: []grammar.Symbol{grammar.T("n")}},
				{LHS: grammar.NT("NP"), RHS: []grammar.Symbol{grammar.T("det"), grammar.T("n")}},
				{LHS: grammar.NT("VP"), RHS: []grammar.Symbol{grammar.T("v"), grammar.NT("NP")}},
				{LHS: grammar.NT("PP"), RHS: []grammar.Symbol{grammar.T("p"), grammar.NT("NP")}},
			},
			expectStart: grammar.NT("S"),
		},
		{
			name:  "empty alternate is epsilon",
			input: `<A> -> "a" <A> |`,
			expectRules: []grammar.Rule{
				{LHS: grammar.NT("A"), RHS: []grammar.Symbol{grammar.T("a"), grammar.NT("A")}},
				{LHS: grammar.NT("A"), RHS: nil},
			},
			expectStart: grammar.NT("A"),
		},
		{
			name:  "names with special characters",
			input: `<expr list> -> "," | <expr list> "ε-ish"`,
			expectRules: []grammar.Rule{
				{LHS: grammar.NT("expr list"), RHS: []grammar.Symbol{grammar.T(",")}},
				{LHS: grammar.NT("expr list"), RHS: []grammar.Symbol{grammar.NT("expr list"), grammar.T("ε-ish")}},
			},
			expectStart: grammar.NT("expr list"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ReadExtended(tc.input)

			if tc.expectErr {
				assert.ErrorIs(err, cfgerrors.ErrInvalidGrammar)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Len(actual.Productions(), len(tc.expectRules))
			for i, exp := range tc.expectRules {
				act := actual.Production(i + 1)
				assert.Truef(exp.Equal(act), "expected rules[%d] to be %q but was %q", i, exp.String(), act.String())
			}
			assert.Equal(tc.expectStart, actual.Start())
		})
	}
}

func Test_ReadTOML(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectErr   bool
		expectStart grammar.Symbol
		expectProds int
	}{
		{
			name:      "missing format declaration",
			input:     "[[rule]]\nlhs = \"S\"\nalts = [\"a\"]\n",
			expectErr: true,
		},
		{
			name: "wrong type",
			input: `format = "chomsky/v1"
type = "WORLD"

[[rule]]
lhs = "S"
alts = ["a"]
`,
			expectErr: true,
		},
		{
			name: "terminal on a left side",
			input: `format = "chomsky/v1"
type = "GRAMMAR"

[grammar]
terminals = ["a"]

[[rule]]
lhs = "a"
alts = ["a"]
`,
			expectErr: true,
		},
		{
			name: "expression grammar",
			input: `format = "chomsky/v1"
type = "GRAMMAR"

[grammar]
terminals = ["+", "*", "(", ")", "a"]
start = "E"

[[rule]]
lhs = "E"
alts = ["E + T", "T"]

[[rule]]
lhs = "T"
alts = ["T * F", "F"]

[[rule]]
lhs = "F"
alts = ["( E )", "a"]
`,
			expectStart: grammar.NT("E"),
			expectProds: 6,
		},
		{
			name: "epsilon alternate",
			input: `format = "chomsky/v1"
type = "GRAMMAR"

[grammar]
terminals = ["a"]

[[rule]]
lhs = "A"
alts = ["a A", "ε"]
`,
			expectStart: grammar.NT("A"),
			expectProds: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ReadTOML(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectStart, actual.Start())
			assert.Equal(tc.expectProds, actual.NumProductions())
		})
	}
}

func Test_Read_ShortForm(t *testing.T) {
	assert := assert.New(t)

	g, err := Read("S -> aSb |", FormatShort)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(grammar.NT("S"), g.Start())
	assert.Equal(2, g.NumProductions())
	assert.True(g.HasEmptyRules())
}
