// Package report renders grammars and analysis results for consumption by
// the CLI and the HTTP service: terse text for programmatic comparison, HTML
// for browsing, and Graphviz DOT for the graph-shaped results.
package report

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/slr"
	"github.com/dekarrin/rosed"
)

// GrammarText lists a grammar's productions with their 1-based numbers.
func GrammarText(g grammar.Grammar) string {
	var lines []string
	for i := 1; i <= g.NumProductions(); i++ {
		lines = append(lines, fmt.Sprintf("(%d) %s", i, g.Production(i).String()))
	}
	return strings.Join(lines, "\n")
}

// FirstFollowText renders the FIRST and FOLLOW sets of every nonterminal of
// the grammar the sets were computed over as an aligned table.
func FirstFollowText(g grammar.Grammar, first *slr.FirstSets, follow *slr.FollowSets) string {
	data := [][]string{
		{"SYMBOL", "|", "FIRST", "|", "NULLABLE", "|", "FOLLOW"},
	}

	for _, A := range g.Nonterminals() {
		nullable := "no"
		if first.Nullable(A) {
			nullable = "yes"
		}
		data = append(data, []string{
			A.String(), "|",
			symbolSetText(first.Terminals(A).Elements()), "|",
			nullable, "|",
			symbolSetText(follow.Terminals(A).Elements()),
		})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 72, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// AutomatonText lists each state of an LR(0) automaton with its items and
// outgoing transitions.
func AutomatonText(m *slr.Automaton) string {
	var sb strings.Builder
	for i := 0; i < m.NumStates(); i++ {
		sb.WriteString(fmt.Sprintf("state %d:\n", i))
		for _, item := range m.State(i).Items() {
			sb.WriteString("  " + item.String() + "\n")
		}
		for _, t := range m.Transitions() {
			if t.From == i {
				sb.WriteString(fmt.Sprintf("  --%s--> %d\n", t.On, t.To))
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FullReportText renders a complete analysis of a grammar: its productions,
// the augmented grammar, FIRST and FOLLOW sets, and the SLR(1) parse table.
func FullReportText(g grammar.Grammar, pt *slr.ParseTable) string {
	var sb strings.Builder

	sb.WriteString("GRAMMAR\n")
	sb.WriteString(GrammarText(g))
	sb.WriteString("\n\nAUGMENTED GRAMMAR\n")
	sb.WriteString(GrammarText(pt.AugmentedGrammar()))
	sb.WriteString("\n\nFIRST AND FOLLOW\n")
	sb.WriteString(FirstFollowText(pt.AugmentedGrammar(), pt.FirstSets(), pt.FollowSets()))
	sb.WriteString("\n\nSLR(1) PARSE TABLE\n")
	sb.WriteString(pt.String())
	if pt.HasConflicts() {
		sb.WriteString("\n\nthe table has conflicts; multi-valued cells are comma-separated")
	}
	return sb.String()
}

func symbolSetText(syms []grammar.Symbol) string {
	sorted := grammar.SortSymbols(syms)
	strs := make([]string, len(sorted))
	for i := range sorted {
		strs[i] = sorted[i].String()
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
