package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/slr"
)

// SymbolHTML renders a symbol for HTML output: one-character nonterminals in
// var tags and longer ones in angle brackets, followed by subscripts and
// primes; terminals in code tags; epsilon as an italic ε; and markers plain.
func SymbolHTML(sym grammar.Symbol) string {
	switch sym.Kind() {
	case grammar.KindEpsilon:
		return "<i>&epsilon;</i>"
	case grammar.KindMarker:
		return html.EscapeString(sym.Name())
	case grammar.KindTerminal:
		if sym.Name() == "" {
			return "&ldquo;&rdquo;"
		}
		return "<code>" + html.EscapeString(sym.Name()) + "</code>"
	}

	var name string
	if len(sym.Name()) == 1 {
		name = "<var>" + html.EscapeString(sym.Name()) + "</var>"
	} else {
		name = "&lang;" + html.EscapeString(sym.Name()) + "&rang;"
	}
	if sub, ok := sym.Subscript(); ok {
		name += fmt.Sprintf("<sub>%d</sub>", sub)
	}
	if sym.Primes() > 0 {
		name += strings.Repeat("&prime;", sym.Primes())
	}
	return name
}

// RuleHTML renders a production rule with an HTML arrow, showing an empty
// right side as ε.
func RuleHTML(r grammar.Rule) string {
	if len(r.RHS) == 0 {
		return SymbolHTML(r.LHS) + " &rarr; <i>&epsilon;</i>"
	}

	sep := ""
	strs := make([]string, len(r.RHS))
	for i, X := range r.RHS {
		if X.IsTerminal() && len(X.Name()) != 1 {
			sep = " "
		}
		strs[i] = SymbolHTML(X)
	}
	return SymbolHTML(r.LHS) + " &rarr; " + strings.Join(strs, sep)
}

// GrammarHTML renders a grammar as a table of its productions.
func GrammarHTML(g grammar.Grammar) string {
	var rows []string
	for i := 1; i <= g.NumProductions(); i++ {
		rows = append(rows, fmt.Sprintf("<tr><td>(%d)</td><td>%s</td></tr>", i, RuleHTML(g.Production(i))))
	}
	return "<table>\n  " + strings.Join(rows, "\n  ") + "\n</table>\n"
}

// ItemHTML renders an LR(0) item with a middle dot for the parser position.
func ItemHTML(item slr.Item) string {
	rule := item.Production()
	strs := make([]string, len(rule.RHS))
	for i, X := range rule.RHS {
		strs[i] = SymbolHTML(X)
	}
	strs = append(strs[:item.DotPos()], append([]string{"&middot;"}, strs[item.DotPos():]...)...)
	return SymbolHTML(rule.LHS) + " &rarr; " + strings.Join(strs, "")
}

// ClosureHTML renders the items of a closure as a one-column table.
func ClosureHTML(c slr.Closure) string {
	var rows []string
	for _, item := range c.Items() {
		rows = append(rows, "<tr><td>"+ItemHTML(item)+"</td></tr>")
	}
	return "<table>\n  " + strings.Join(rows, "\n  ") + "\n</table>\n"
}

// FirstFollowHTML renders the FIRST and FOLLOW sets of the grammar's
// nonterminals as a table.
func FirstFollowHTML(g grammar.Grammar, first *slr.FirstSets, follow *slr.FollowSets) string {
	rows := []string{"<tr><th></th><th>FIRST</th><th>FOLLOW</th></tr>"}
	for _, A := range g.Nonterminals() {
		firstSyms := grammar.SortSymbols(first.Terminals(A).Elements())
		firstStrs := make([]string, len(firstSyms))
		for i := range firstSyms {
			firstStrs[i] = SymbolHTML(firstSyms[i])
		}
		if first.Nullable(A) {
			firstStrs = append(firstStrs, SymbolHTML(grammar.Epsilon))
		}

		followSyms := grammar.SortSymbols(follow.Terminals(A).Elements())
		followStrs := make([]string, len(followSyms))
		for i := range followSyms {
			followStrs[i] = SymbolHTML(followSyms[i])
		}

		rows = append(rows, fmt.Sprintf("<tr><th>%s</th><td>{ %s }</td><td>{ %s }</td></tr>",
			SymbolHTML(A), strings.Join(firstStrs, ", "), strings.Join(followStrs, ", ")))
	}
	return "<table>\n  " + strings.Join(rows, "\n  ") + "\n</table>\n"
}

// TableHTML renders an SLR parse table with its ACTION and GOTO halves.
// Multi-valued ACTION cells are comma-separated.
func TableHTML(pt *slr.ParseTable) string {
	gPrime := pt.AugmentedGrammar()
	terms := append(gPrime.Terminals(), slr.EndMarker)
	nonterms := gPrime.Nonterminals()

	var sb strings.Builder
	sb.WriteString("<table>\n")
	sb.WriteString(fmt.Sprintf("  <tr><th rowspan=\"2\">STATE</th><th colspan=\"%d\">ACTION</th><th colspan=\"%d\">GOTO</th></tr>\n",
		len(terms), len(nonterms)))

	sb.WriteString("  <tr>")
	for _, X := range terms {
		sb.WriteString("<th>" + SymbolHTML(X) + "</th>")
	}
	for _, A := range nonterms {
		sb.WriteString("<th>" + SymbolHTML(A) + "</th>")
	}
	sb.WriteString("</tr>\n")

	for i := 0; i < pt.NumStates(); i++ {
		sb.WriteString(fmt.Sprintf("  <tr><th>%d</th>", i))
		for _, a := range terms {
			acts := pt.Actions(i, a)
			strs := make([]string, len(acts))
			for k := range acts {
				strs[k] = acts[k].String()
			}
			sb.WriteString("<td>" + strings.Join(strs, ",") + "</td>")
		}
		for _, A := range nonterms {
			cell := ""
			if j, ok := pt.Goto(i, A); ok {
				cell = fmt.Sprintf("%d", j)
			}
			sb.WriteString("<td>" + cell + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n")
	return sb.String()
}

// FullReportHTML renders a complete analysis of a grammar as a standalone
// HTML document.
func FullReportHTML(g grammar.Grammar, pt *slr.ParseTable) string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")
	sb.WriteString("<h2>Grammar</h2>\n")
	sb.WriteString(GrammarHTML(g))
	sb.WriteString("<h2>Augmented grammar</h2>\n")
	sb.WriteString(GrammarHTML(pt.AugmentedGrammar()))
	sb.WriteString("<h2>FIRST and FOLLOW</h2>\n")
	sb.WriteString(FirstFollowHTML(pt.AugmentedGrammar(), pt.FirstSets(), pt.FollowSets()))
	sb.WriteString("<h2>SLR(1) parse table</h2>\n")
	sb.WriteString(TableHTML(pt))
	sb.WriteString("</body></html>\n")
	return sb.String()
}
