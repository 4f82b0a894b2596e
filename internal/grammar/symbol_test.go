package grammar

import (
	"testing"

	"github.com/ashware/chomsky/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_Symbol_Equality(t *testing.T) {
	testCases := []struct {
		name   string
		left   Symbol
		right  Symbol
		expect bool
	}{
		{
			name:   "same nonterminal",
			left:   NT("S"),
			right:  NT("S"),
			expect: true,
		},
		{
			name:   "different nonterminal names",
			left:   NT("S"),
			right:  NT("T"),
			expect: false,
		},
		{
			name:   "nonterminal vs terminal with same name",
			left:   NT("x"),
			right:  T("x"),
			expect: false,
		},
		{
			name:   "marker vs terminal with same name",
			left:   Marker("$"),
			right:  T("$"),
			expect: false,
		},
		{
			name:   "plain vs subscripted",
			left:   NT("S"),
			right:  SubscriptedNT("S", 0),
			expect: false,
		},
		{
			name:   "same subscript",
			left:   SubscriptedNT("S", 2),
			right:  SubscriptedNT("S", 2),
			expect: true,
		},
		{
			name:   "different subscripts",
			left:   SubscriptedNT("S", 1),
			right:  SubscriptedNT("S", 2),
			expect: false,
		},
		{
			name:   "plain vs primed",
			left:   NT("E"),
			right:  PrimedNT("E", 1),
			expect: false,
		},
		{
			name:   "same prime count",
			left:   PrimedNT("E", 2),
			right:  PrimedNT("E", 2),
			expect: true,
		},
		{
			name:   "subscripted vs primed",
			left:   SubscriptedNT("E", 1),
			right:  PrimedNT("E", 1),
			expect: false,
		},
		{
			name:   "epsilon vs empty terminal name",
			left:   Epsilon,
			right:  T(""),
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := tc.left == tc.right

			assert.Equal(tc.expect, actual)
			if tc.expect {
				// equal symbols must behave as the same map key
				m := map[Symbol]bool{tc.left: true}
				assert.True(m[tc.right])
			}
		})
	}
}

func Test_Symbol_Compare(t *testing.T) {
	testCases := []struct {
		name   string
		before Symbol
		after  Symbol
	}{
		{name: "nonterminal before terminal", before: NT("Z"), after: T("a")},
		{name: "terminal before epsilon", before: T("z"), after: Epsilon},
		{name: "epsilon before marker", before: Epsilon, after: Marker("$")},
		{name: "nonterminals by name", before: NT("A"), after: NT("B")},
		{name: "terminals by name", before: T("a"), after: T("b")},
		{name: "plain before subscripted", before: NT("S"), after: SubscriptedNT("S", 0)},
		{name: "subscripts in order", before: SubscriptedNT("S", 1), after: SubscriptedNT("S", 2)},
		{name: "fewer primes first", before: PrimedNT("E", 1), after: PrimedNT("E", 2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Less(tc.before.Compare(tc.after), 0)
			assert.Greater(tc.after.Compare(tc.before), 0)
			assert.Zero(tc.before.Compare(tc.before))
		})
	}
}

func Test_Symbol_String(t *testing.T) {
	testCases := []struct {
		name   string
		sym    Symbol
		expect string
	}{
		{name: "single-letter nonterminal is bare", sym: NT("S"), expect: "S"},
		{name: "long nonterminal is bracketed", sym: NT("expr"), expect: "<expr>"},
		{name: "lowercase nonterminal is bracketed", sym: NT("s"), expect: "<s>"},
		{name: "single-char terminal is bare", sym: T("a"), expect: "a"},
		{name: "long terminal is quoted", sym: T("int"), expect: `"int"`},
		{name: "uppercase terminal is quoted", sym: T("A"), expect: `"A"`},
		{name: "marker is its identifier", sym: Marker("$"), expect: "$"},
		{name: "epsilon is empty", sym: Epsilon, expect: ""},
		{name: "subscript", sym: SubscriptedNT("S", 0), expect: "S0"},
		{name: "primes", sym: PrimedNT("E", 2), expect: "E''"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.sym.String())
		})
	}
}

func Test_NextSubscripted(t *testing.T) {
	assert := assert.New(t)

	taken := util.NewKeySet[Symbol]()
	assert.Equal(SubscriptedNT("X", 1), NextSubscripted("X", 1, taken))

	taken.Add(SubscriptedNT("X", 1))
	taken.Add(SubscriptedNT("X", 2))
	assert.Equal(SubscriptedNT("X", 3), NextSubscripted("X", 1, taken))
}

func Test_NextPrimed(t *testing.T) {
	assert := assert.New(t)

	taken := util.NewKeySet[Symbol]()
	assert.Equal(PrimedNT("E", 1), NextPrimed("E", taken))

	taken.Add(PrimedNT("E", 1))
	assert.Equal(PrimedNT("E", 2), NextPrimed("E", taken))
}
