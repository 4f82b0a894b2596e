package grammar

import (
	"strings"

	"github.com/ashware/chomsky/internal/util"
)

// IsCNFRule returns whether a production rule is in Chomsky normal form with
// respect to the given start symbol: the right side is a single terminal, or
// two nonterminals neither of which is the start symbol, or the rule is the
// start symbol's ε-production.
func IsCNFRule(r Rule, start Symbol) bool {
	rs := r.RHS
	if len(rs) == 1 && rs[0].IsTerminal() {
		return true
	}
	if len(rs) == 2 && rs[0].IsNonterminal() && rs[0] != start && rs[1].IsNonterminal() && rs[1] != start {
		return true
	}
	return r.LHS == start && len(rs) == 0
}

// IsCNF returns whether every rule of the grammar is in Chomsky normal form.
func IsCNF(g Grammar) bool {
	for _, r := range g.Productions() {
		if !IsCNFRule(r, g.Start()) {
			return false
		}
	}
	return true
}

// ToCNF returns a grammar in Chomsky normal form equivalent to g on
// L(g) \ {ε}, with the new start symbol producing ε exactly when ε ∈ L(g).
//
// The conversion proceeds in order: start augmentation with a fresh
// subscripted start symbol, ε-production removal, unit-production removal,
// binarization of long right sides, and proxying of terminals in rules of
// length two. The ε- and unit-removal passes always act on the first
// remaining matching rule, so results are reproducible.
func ToCNF(g Grammar) Grammar {
	productions := g.Productions()

	// Add a new start variable S0 and the rule S0 -> S first.
	taken := variablesOf(productions)
	s0 := SubscriptedNT(g.Start().Name(), 0)
	if taken.Has(s0) {
		s0 = NextSubscripted(g.Start().Name(), 1, taken)
	}
	productions = append([]Rule{{LHS: s0, RHS: []Symbol{g.Start()}}}, productions...)

	productions = removeEpsilonRules(productions, s0)
	productions = removeUnitRules(productions)
	productions = chainLongRules(productions)
	productions = proxyTerminals(productions, g.Terminals())

	gPrime, err := FromRules(productions)
	if err != nil {
		// the passes above cannot produce an empty or ill-formed rule list
		// from a valid grammar
		panic(err.Error())
	}
	return gPrime
}

// removeEpsilonRules deletes ε-productions other than the start symbol's own,
// substituting every subset of occurrences of each deleted rule's left side
// with ε in the remaining rules. Rules recreated after having been removed
// are discarded.
func removeEpsilonRules(productions []Rule, start Symbol) []Rule {
	var removed []Rule
	for {
		idx := -1
		for i, p := range productions {
			if p.IsEpsilon() && p.LHS != start {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}

		pe := productions[idx]
		removed = append(removed, pe)
		productions = append(productions[:idx], productions[idx+1:]...)

		var next []Rule
		for _, rule := range productions {
			for _, sentence := range substitutions(rule.RHS, pe) {
				r := Rule{LHS: rule.LHS, RHS: sentence}
				if !containsRule(removed, r) {
					next = append(next, r)
				}
			}
		}
		productions = next
	}
	return productions
}

// substitutions returns all distinct right sides obtainable by replacing any
// subset of the occurrences of the rule's left side in the sentence with the
// rule's right side, including the unchanged sentence first.
func substitutions(sentence []Symbol, production Rule) [][]Symbol {
	var indices []int
	for i, s := range sentence {
		if s == production.LHS {
			indices = append(indices, i)
		}
	}

	var result [][]Symbol
	seen := util.NewKeySet[string]()
	for _, subset := range powersets(indices) {
		inSubset := util.KeySetOf(subset)
		substitution := []Symbol{}
		for i, symbol := range sentence {
			if inSubset.Has(i) {
				substitution = append(substitution, production.RHS...)
			} else {
				substitution = append(substitution, symbol)
			}
		}
		key := sentenceKey(substitution)
		if !seen.Has(key) {
			seen.Add(key)
			result = append(result, substitution)
		}
	}
	return result
}

// powersets enumerates the subsets of the given indices, smallest subsets
// first, in a stable order beginning with the empty subset.
func powersets(indices []int) [][]int {
	result := [][]int{{}}
	for size := 1; size <= len(indices); size++ {
		result = append(result, combinations(indices, size)...)
	}
	return result
}

// combinations enumerates the size-k combinations of the given values in
// lexicographic order of position.
func combinations(values []int, k int) [][]int {
	var result [][]int
	var build func(startAt int, cur []int)
	build = func(startAt int, cur []int) {
		if len(cur) == k {
			comb := make([]int, k)
			copy(comb, cur)
			result = append(result, comb)
			return
		}
		for i := startAt; i < len(values); i++ {
			build(i+1, append(cur, values[i]))
		}
	}
	build(0, nil)
	return result
}

func sentenceKey(sentence []Symbol) string {
	var sb strings.Builder
	for _, s := range sentence {
		if s.IsNonterminal() {
			sb.WriteString("N:")
		} else {
			sb.WriteString("T:")
		}
		sb.WriteString(s.String())
		sb.WriteRune('|')
	}
	return sb.String()
}

// removeUnitRules eliminates unit productions A → B by splicing in A → β for
// every rule B → β, skipping rules already present or previously removed.
// Always acts on the first remaining unit rule.
func removeUnitRules(productions []Rule) []Rule {
	var removed []Rule
	for {
		idx := -1
		for i, p := range productions {
			if p.IsUnit() {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}

		pu := productions[idx]
		removed = append(removed, pu)

		var newRules []Rule
		for _, p := range productions {
			if p.LHS == pu.RHS[0] {
				newRules = append(newRules, Rule{LHS: pu.LHS, RHS: p.Copy().RHS})
			}
		}

		var splice []Rule
		for _, r := range newRules {
			if !containsRule(productions, r) && !containsRule(removed, r) {
				splice = append(splice, r)
			}
		}

		rest := make([]Rule, 0, len(productions)-1+len(splice))
		rest = append(rest, productions[:idx]...)
		rest = append(rest, splice...)
		rest = append(rest, productions[idx+1:]...)
		productions = rest
	}
	return productions
}

// chainLongRules rewrites every rule with more than two right-side symbols
// into a chain of two-symbol rules, introducing fresh subscripted
// nonterminals named after the concatenated tail. The scan index advances by
// the length of each rule's replacement list.
func chainLongRules(productions []Rule) []Rule {
	i := 0
	for i < len(productions) {
		newRules := chain(productions[i], variablesOf(productions))

		rest := make([]Rule, 0, len(productions)-1+len(newRules))
		rest = append(rest, productions[:i]...)
		rest = append(rest, newRules...)
		rest = append(rest, productions[i+1:]...)
		productions = rest

		i += len(newRules)
	}
	return productions
}

// chain returns a list of rules equivalent to p in which no right side is
// more than two symbols long.
func chain(p Rule, usedVariables util.KeySet[Symbol]) []Rule {
	rs := p.RHS
	if len(rs) <= 2 {
		return []Rule{p}
	}

	first := rs[0]
	var nameSB strings.Builder
	for _, s := range rs[1:] {
		nameSB.WriteString(s.String())
	}
	second := NextSubscripted(nameSB.String(), 1, usedVariables)

	firstNewRule := Rule{LHS: p.LHS, RHS: []Symbol{first, second}}
	secondNewRule := Rule{LHS: second, RHS: rs[1:]}

	childUsed := usedVariables.Copy().(util.KeySet[Symbol])
	childUsed.Add(second)
	return append([]Rule{firstNewRule}, chain(secondNewRule, childUsed)...)
}

// variablesOf returns the set of all nonterminals appearing in the given
// productions.
func variablesOf(productions []Rule) util.KeySet[Symbol] {
	result := util.NewKeySet[Symbol]()
	for _, p := range productions {
		result.Add(p.LHS)
		for _, s := range p.RHS {
			if s.IsNonterminal() {
				result.Add(s)
			}
		}
	}
	return result
}

// proxyTerminals replaces every terminal appearing in a rule of length two or
// more with a fresh proxy nonterminal deriving exactly that terminal. Proxy
// nonterminals are named with the upper-cased terminal name, subscripted to
// avoid collisions, and their rules are appended on first use.
func proxyTerminals(productions []Rule, terminals []Symbol) []Rule {
	variables := variablesOf(productions)

	proxyRules := map[Symbol]Rule{}
	for _, t := range terminals {
		proxy := NextSubscripted(strings.ToUpper(t.Name()), 1, variables)
		variables.Add(proxy)
		proxyRules[t] = Rule{LHS: proxy, RHS: []Symbol{t}}
	}

	added := util.NewKeySet[Symbol]()
	for i := 0; i < len(productions); i++ {
		newRule, replaced := replaceTerminals(productions[i], proxyRules)
		productions[i] = newRule
		for _, t := range replaced {
			if !added.Has(t) {
				productions = append(productions, proxyRules[t])
				added.Add(t)
			}
		}
	}
	return productions
}

// replaceTerminals swaps each terminal in the rule's right side for its proxy
// nonterminal, returning the fixed rule and the terminals replaced. Rules
// shorter than two symbols, and the proxy rules themselves, are untouched.
func replaceTerminals(p Rule, proxyRules map[Symbol]Rule) (Rule, []Symbol) {
	if len(p.RHS) < 2 {
		return p, nil
	}
	for _, pr := range proxyRules {
		if p.Equal(pr) {
			return p, nil
		}
	}

	newRHS := make([]Symbol, 0, len(p.RHS))
	var replaced []Symbol
	for _, s := range p.RHS {
		if s.IsTerminal() {
			newRHS = append(newRHS, proxyRules[s].LHS)
			replaced = append(replaced, s)
		} else {
			newRHS = append(newRHS, s)
		}
	}
	return Rule{LHS: p.LHS, RHS: newRHS}, replaced
}
