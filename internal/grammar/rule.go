package grammar

import (
	"strings"
)

// Rule is a single production rule in a context-free grammar: a nonterminal
// left side deriving an ordered sequence of symbols. An empty right side
// denotes an ε-production. Rules are immutable values; treat the RHS slice as
// read-only.
type Rule struct {
	// LHS is the nonterminal on the left side of the rule.
	LHS Symbol

	// RHS is the sequence of symbols the left side derives. It may be empty.
	RHS []Symbol
}

// NewRule creates a production rule. It panics if lhs is not a nonterminal;
// grammar constructors surface that condition as an InvalidGrammar error
// before rules are built.
func NewRule(lhs Symbol, rhs ...Symbol) Rule {
	if !lhs.IsNonterminal() {
		panic("rule left side must be a nonterminal")
	}
	rhsCopy := make([]Symbol, len(rhs))
	copy(rhsCopy, rhs)
	return Rule{LHS: lhs, RHS: rhsCopy}
}

// IsEpsilon returns whether the rule is an ε-production.
func (r Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

// IsUnit returns whether the rule is a unit production A → B with B a
// nonterminal.
func (r Rule) IsUnit() bool {
	return len(r.RHS) == 1 && r.RHS[0].IsNonterminal()
}

// Equal returns whether the rule equals another Rule or *Rule, structurally
// over (LHS, RHS).
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.LHS != other.LHS {
		return false
	}
	if len(r.RHS) != len(other.RHS) {
		return false
	}
	for i := range r.RHS {
		if r.RHS[i] != other.RHS[i] {
			return false
		}
	}

	return true
}

// Copy returns a rule with a freshly allocated right side.
func (r Rule) Copy() Rule {
	rhs := make([]Symbol, len(r.RHS))
	copy(rhs, r.RHS)
	return Rule{LHS: r.LHS, RHS: rhs}
}

// String renders the rule in arrow notation. The right-side symbols are
// joined without spaces when every symbol renders as a single character, with
// spaces otherwise. An empty right side renders as ε.
func (r Rule) String() string {
	if len(r.RHS) == 0 {
		return r.LHS.String() + " -> ε"
	}

	strs := make([]string, len(r.RHS))
	sep := ""
	for i := range r.RHS {
		strs[i] = r.RHS[i].String()
		if len(strs[i]) != 1 {
			sep = " "
		}
	}
	return r.LHS.String() + " -> " + strings.Join(strs, sep)
}

// key gives a string that uniquely identifies the rule, for use as a map key.
func (r Rule) key() string {
	var sb strings.Builder
	sb.WriteString(r.LHS.String())
	sb.WriteString(" ->")
	for _, s := range r.RHS {
		sb.WriteRune(' ')
		if s.IsNonterminal() {
			sb.WriteString("N:")
		} else {
			sb.WriteString("T:")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// containsRule reports whether rules contains a rule equal to r.
func containsRule(rules []Rule, r Rule) bool {
	for i := range rules {
		if rules[i].Equal(r) {
			return true
		}
	}
	return false
}

// sentenceString renders a sequence of symbols with the same separator policy
// as Rule.String. An empty sequence renders as ε.
func sentenceString(sentence []Symbol) string {
	if len(sentence) == 0 {
		return "ε"
	}
	strs := make([]string, len(sentence))
	sep := ""
	for i := range sentence {
		strs[i] = sentence[i].String()
		if len(strs[i]) != 1 {
			sep = " "
		}
	}
	return strings.Join(strs, sep)
}
