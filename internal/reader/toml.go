package reader

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
)

// CurrentFormat is the format value a TOML grammar file must declare.
const CurrentFormat = "chomsky/v1"

// topLevelGrammar is the top-level structure containing all keys in a TOML
// grammar file.
type topLevelGrammar struct {
	Format  string      `toml:"format"`
	Type    string      `toml:"type"`
	Grammar grammarInfo `toml:"grammar"`
	Rules   []tomlRule  `toml:"rule"`
}

type grammarInfo struct {
	Terminals []string `toml:"terminals"`
	Start     string   `toml:"start"`
}

type tomlRule struct {
	LHS  string   `toml:"lhs"`
	Alts []string `toml:"alts"`
}

// ReadTOML parses a grammar from the TOML grammar file format:
//
//	format = "chomsky/v1"
//	type = "GRAMMAR"
//
//	[grammar]
//	terminals = ["+", "*", "(", ")", "a"]
//	start = "E"
//
//	[[rule]]
//	lhs = "E"
//	alts = ["E + T", "T"]
//
// Each alternate is a space-separated list of symbol names; names declared in
// the terminals list are terminals and every other name is a nonterminal. An
// empty alternate, or the name ε, denotes the empty string. The start key is
// optional and defaults to the left side of the first rule.
func ReadTOML(text string) (grammar.Grammar, error) {
	var unmarshaled topLevelGrammar
	if err := toml.Unmarshal([]byte(text), &unmarshaled); err != nil {
		return grammar.Grammar{}, cfgerrors.Invalidf("bad grammar file: %v", err)
	}

	if unmarshaled.Format != CurrentFormat {
		return grammar.Grammar{}, cfgerrors.Invalidf("grammar file does not declare format = %q", CurrentFormat)
	}
	if !strings.EqualFold(unmarshaled.Type, "GRAMMAR") {
		return grammar.Grammar{}, cfgerrors.Invalidf("grammar file has type %q, not \"GRAMMAR\"", unmarshaled.Type)
	}

	terminals := map[string]bool{}
	for _, t := range unmarshaled.Grammar.Terminals {
		terminals[t] = true
	}

	var rules []grammar.Rule
	for _, tr := range unmarshaled.Rules {
		if tr.LHS == "" {
			return grammar.Grammar{}, cfgerrors.Invalidf("rule is missing its lhs")
		}
		if terminals[tr.LHS] {
			return grammar.Grammar{}, cfgerrors.Invalidf("%q is declared as a terminal but appears on the left side of a rule", tr.LHS)
		}
		lhs := grammar.NT(tr.LHS)

		for _, alt := range tr.Alts {
			var rhs []grammar.Symbol
			for _, name := range strings.Fields(alt) {
				if name == "ε" {
					continue
				}
				if terminals[name] {
					rhs = append(rhs, grammar.T(name))
				} else {
					rhs = append(rhs, grammar.NT(name))
				}
			}
			rules = append(rules, grammar.Rule{LHS: lhs, RHS: rhs})
		}
	}

	g, err := grammar.FromRules(rules)
	if err != nil {
		return grammar.Grammar{}, err
	}

	if unmarshaled.Grammar.Start != "" {
		start := grammar.NT(unmarshaled.Grammar.Start)
		return grammar.New(g.Nonterminals(), g.Terminals(), g.Productions(), start)
	}
	return g, nil
}
