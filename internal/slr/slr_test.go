package slr

import (
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
)

// setupGrammar builds a grammar from rule strings whose symbols are
// space-separated names; names in the terminals list are terminals and every
// other name is a nonterminal. The name ε denotes an empty alternate.
func setupGrammar(terminals []string, rules []string) grammar.Grammar {
	isTerm := map[string]bool{}
	for _, t := range terminals {
		isTerm[t] = true
	}

	var parsed []grammar.Rule
	for _, r := range rules {
		sides := strings.SplitN(r, "->", 2)
		lhs := grammar.NT(strings.TrimSpace(sides[0]))
		for _, alt := range strings.Split(sides[1], "|") {
			var rhs []grammar.Symbol
			for _, name := range strings.Fields(alt) {
				if name == "ε" {
					continue
				}
				if isTerm[name] {
					rhs = append(rhs, grammar.T(name))
				} else {
					rhs = append(rhs, grammar.NT(name))
				}
			}
			parsed = append(parsed, grammar.Rule{LHS: lhs, RHS: rhs})
		}
	}

	g, err := grammar.FromRules(parsed)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// sortedNames returns the string forms of symbols in sorted symbol order.
func sortedNames(syms []grammar.Symbol) []string {
	sorted := grammar.SortSymbols(syms)
	names := make([]string, len(sorted))
	for i := range sorted {
		names[i] = sorted[i].String()
	}
	return names
}
