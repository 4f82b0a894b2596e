package grammar

import (
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/util"
)

// Grammar is an immutable context-free grammar: a set of nonterminals, a set
// of terminals, an ordered list of production rules, and a start symbol.
// Algorithms that transform a grammar return a new one.
//
// Many algorithms refer to productions by their 1-based position in the
// definition order, which is preserved from construction.
type Grammar struct {
	nonterminals util.KeySet[Symbol]
	terminals    util.KeySet[Symbol]
	productions  []Rule
	start        Symbol
}

// Parse builds a grammar from a string listing its production rules in the
// short form, which allows test grammars to be specified quickly. The names
// of all symbols are one character long and all capital letters are treated
// as nonterminals. Each non-blank line of the string is of the form
//
//	A -> X1 | X2 | ... | Xn
//
// where A is a nonterminal and the Xi are sentential forms. An empty
// alternate denotes ε. The nonterminals and terminals are inferred from the
// productions and the left side of the first rule becomes the start symbol.
func Parse(s string) (Grammar, error) {
	var rules []Rule

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sides := strings.SplitN(line, "->", 2)
		if len(sides) != 2 {
			return Grammar{}, cfgerrors.Invalidf("line %q is missing the -> separator", line)
		}

		left := strings.TrimSpace(sides[0])
		if len(left) != 1 || !(left >= "A" && left <= "Z") {
			return Grammar{}, cfgerrors.Invalidf("%q is not valid on the left side of a production rule", left)
		}
		lhs := NT(left)

		for _, alt := range strings.Split(sides[1], "|") {
			var rhs []Symbol
			for _, c := range strings.TrimSpace(alt) {
				if c == ' ' || c == '\t' {
					continue
				}
				if c >= 'A' && c <= 'Z' {
					rhs = append(rhs, NT(string(c)))
				} else {
					rhs = append(rhs, T(string(c)))
				}
			}
			rules = append(rules, Rule{LHS: lhs, RHS: rhs})
		}
	}

	return FromRules(rules)
}

// FromRules builds a grammar from a list of production rules alone. The
// nonterminals and terminals are inferred from the symbols appearing in the
// rules, and the left side of the first rule becomes the start symbol.
func FromRules(rules []Rule) (Grammar, error) {
	if len(rules) == 0 {
		return Grammar{}, cfgerrors.Invalidf("no production rules were given")
	}

	g := Grammar{
		nonterminals: util.NewKeySet[Symbol](),
		terminals:    util.NewKeySet[Symbol](),
		productions:  make([]Rule, len(rules)),
	}

	for i, r := range rules {
		if !r.LHS.IsNonterminal() {
			return Grammar{}, cfgerrors.Invalidf("%s is on the left side of a production rule but is not a nonterminal", r.LHS)
		}
		g.nonterminals.Add(r.LHS)
		g.productions[i] = r.Copy()

		for _, s := range r.RHS {
			switch s.Kind() {
			case KindNonterminal:
				g.nonterminals.Add(s)
			case KindTerminal:
				g.terminals.Add(s)
			default:
				return Grammar{}, cfgerrors.Invalidf("%q cannot appear on the right side of a production rule", s)
			}
		}
	}

	g.start = rules[0].LHS
	return g, nil
}

// New builds a grammar from an explicit 4-tuple of nonterminals, terminals,
// productions, and start symbol, validating each part: every right-side
// symbol must be a declared nonterminal or terminal, every left side a
// declared nonterminal, the production list non-empty, and the start symbol a
// declared nonterminal.
func New(nonterminals []Symbol, terminals []Symbol, productions []Rule, start Symbol) (Grammar, error) {
	nts := util.NewKeySet[Symbol]()
	for _, n := range nonterminals {
		if !n.IsNonterminal() {
			return Grammar{}, cfgerrors.Invalidf("%s is not a nonterminal", n)
		}
		nts.Add(n)
	}

	terms := util.NewKeySet[Symbol]()
	for _, t := range terminals {
		if !t.IsTerminal() {
			return Grammar{}, cfgerrors.Invalidf("%s is not a terminal", t)
		}
		terms.Add(t)
	}

	if len(productions) == 0 {
		return Grammar{}, cfgerrors.Invalidf("no production rules were given")
	}
	for _, p := range productions {
		if !nts.Has(p.LHS) {
			return Grammar{}, cfgerrors.Invalidf("%s is on the left side of a production rule but is not a nonterminal in the grammar", p.LHS)
		}
		for _, s := range p.RHS {
			if !nts.Has(s) && !terms.Has(s) {
				return Grammar{}, cfgerrors.Invalidf("%s is on the right side of a production rule but is not a symbol in the grammar", s)
			}
		}
	}

	if !start.IsNonterminal() {
		return Grammar{}, cfgerrors.Invalidf("start symbol %s is not a nonterminal", start)
	}
	if !nts.Has(start) {
		return Grammar{}, cfgerrors.Invalidf("start symbol %s is not a nonterminal in the grammar", start)
	}

	g := Grammar{
		nonterminals: nts,
		terminals:    terms,
		productions:  make([]Rule, len(productions)),
		start:        start,
	}
	for i := range productions {
		g.productions[i] = productions[i].Copy()
	}
	return g, nil
}

// MustParse is like Parse but panics on error. It is intended for use in
// tests and for grammars known valid at compile time.
func MustParse(s string) Grammar {
	g, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Start returns the grammar's start symbol.
func (g Grammar) Start() Symbol {
	return g.start
}

// Nonterminals returns the nonterminal symbols of the grammar, sorted in
// symbol order.
func (g Grammar) Nonterminals() []Symbol {
	return SortSymbols(g.nonterminals.Elements())
}

// Terminals returns the terminal symbols of the grammar, sorted in symbol
// order.
func (g Grammar) Terminals() []Symbol {
	return SortSymbols(g.terminals.Elements())
}

// NonterminalSet returns the grammar's nonterminals as a set. The returned
// set is a copy.
func (g Grammar) NonterminalSet() util.KeySet[Symbol] {
	return g.nonterminals.Copy().(util.KeySet[Symbol])
}

// TerminalSet returns the grammar's terminals as a set. The returned set is a
// copy.
func (g Grammar) TerminalSet() util.KeySet[Symbol] {
	return g.terminals.Copy().(util.KeySet[Symbol])
}

// IsNonterminal returns whether sym is a nonterminal declared in the grammar.
func (g Grammar) IsNonterminal(sym Symbol) bool {
	return g.nonterminals.Has(sym)
}

// IsTerminal returns whether sym is a terminal declared in the grammar.
func (g Grammar) IsTerminal(sym Symbol) bool {
	return g.terminals.Has(sym)
}

// Productions returns a copy of the grammar's production rules in definition
// order.
func (g Grammar) Productions() []Rule {
	ps := make([]Rule, len(g.productions))
	for i := range g.productions {
		ps[i] = g.productions[i].Copy()
	}
	return ps
}

// NumProductions returns the number of production rules in the grammar.
func (g Grammar) NumProductions() int {
	return len(g.productions)
}

// Production returns the production rule with the given 1-based number. It
// panics if n is out of range.
func (g Grammar) Production(n int) Rule {
	return g.productions[n-1].Copy()
}

// IndexOf returns the 1-based number of the first production equal to r, or
// 0 if the grammar has no such production.
func (g Grammar) IndexOf(r Rule) int {
	for i := range g.productions {
		if g.productions[i].Equal(r) {
			return i + 1
		}
	}
	return 0
}

// ProductionsFor returns the rules whose left side is the given nonterminal,
// in definition order.
func (g Grammar) ProductionsFor(lhs Symbol) []Rule {
	var rules []Rule
	for i := range g.productions {
		if g.productions[i].LHS == lhs {
			rules = append(rules, g.productions[i].Copy())
		}
	}
	return rules
}

// ProductionDict returns a mapping of each nonterminal to the right sides it
// produces, in definition order. Nonterminals with no rules map to an empty
// list.
func (g Grammar) ProductionDict() map[Symbol][][]Symbol {
	result := map[Symbol][][]Symbol{}
	for _, n := range g.nonterminals.Elements() {
		result[n] = [][]Symbol{}
	}
	for _, p := range g.productions {
		result[p.LHS] = append(result[p.LHS], p.Copy().RHS)
	}
	return result
}

// HasEmptyRules returns whether the grammar has any ε-production.
func (g Grammar) HasEmptyRules() bool {
	for _, r := range g.productions {
		if r.IsEpsilon() {
			return true
		}
	}
	return false
}

// Equal returns whether the grammar equals another Grammar or *Grammar: same
// symbol sets, same start symbol, and the same productions in the same order.
func (g Grammar) Equal(o any) bool {
	other, ok := o.(Grammar)
	if !ok {
		otherPtr, ok := o.(*Grammar)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if g.start != other.start {
		return false
	}
	if !g.nonterminals.Equal(other.nonterminals) {
		return false
	}
	if !g.terminals.Equal(other.terminals) {
		return false
	}
	if len(g.productions) != len(other.productions) {
		return false
	}
	for i := range g.productions {
		if !g.productions[i].Equal(other.productions[i]) {
			return false
		}
	}
	return true
}

// String lists the grammar's productions in definition order, one per line.
func (g Grammar) String() string {
	lines := make([]string, len(g.productions))
	for i := range g.productions {
		lines[i] = g.productions[i].String()
	}
	return strings.Join(lines, "\n")
}
