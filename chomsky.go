// Package chomsky analyzes context-free grammars. It bundles the library's
// pieces — grammar representation, classification, Chomsky normal form, the
// classic backtrack/CYK/Earley parsers, and the SLR(1) pipeline — behind a
// single façade used by the CLI and the analysis server.
package chomsky

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/parse"
	"github.com/ashware/chomsky/internal/reader"
	"github.com/ashware/chomsky/internal/report"
	"github.com/ashware/chomsky/internal/slr"
	"github.com/dekarrin/rezi"
)

// Operation selects what to compute about a grammar.
type Operation string

const (
	// OpShow displays the grammar's numbered productions.
	OpShow Operation = "show"

	// OpCNF converts the grammar to Chomsky normal form and displays the
	// result.
	OpCNF Operation = "cnf"

	// OpAugment augments the grammar for LR parsing and displays the result.
	OpAugment Operation = "augment"

	// OpFirstFollow displays the FIRST and FOLLOW sets of every nonterminal.
	OpFirstFollow Operation = "firstfollow"

	// OpLR0 builds the LR(0) automaton. Output is graph-shaped, so only the
	// dot and html formats apply.
	OpLR0 Operation = "lr0"

	// OpSLR builds the SLR(1) parse table.
	OpSLR Operation = "slr"

	// OpReport produces the full analysis report.
	OpReport Operation = "report"
)

// OutputFormat selects the rendering of an operation's result.
type OutputFormat string

const (
	// FormatText is plain text suitable for terminals and comparisons.
	FormatText OutputFormat = "text"

	// FormatHTML is a standalone HTML fragment or document.
	FormatHTML OutputFormat = "html"

	// FormatDOT is Graphviz DOT input, for the graph-shaped results.
	FormatDOT OutputFormat = "dot"
)

// ParseOperation returns the Operation named by s.
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToLower(s)) {
	case OpShow, OpCNF, OpAugment, OpFirstFollow, OpLR0, OpSLR, OpReport:
		return Operation(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// ParseOutputFormat returns the OutputFormat named by s.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText, FormatHTML, FormatDOT:
		return OutputFormat(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Run performs the given operation on a grammar and renders the result in the
// given format. Not all combinations are valid: the LR(0) automaton is
// graph-shaped and only renders to dot or html, while every other operation
// renders to text or html.
func Run(g grammar.Grammar, op Operation, format OutputFormat) (string, error) {
	if op == OpLR0 {
		if format == FormatText {
			return "", fmt.Errorf("the LR(0) automaton only renders to graphical output; use dot or html")
		}
	} else if format == FormatDOT {
		return "", fmt.Errorf("operation %s does not render to dot", op)
	}

	switch op {
	case OpShow:
		return renderGrammar(g, format), nil
	case OpCNF:
		return renderGrammar(grammar.ToCNF(g), format), nil
	case OpAugment:
		return renderGrammar(slr.Augment(g), format), nil
	case OpFirstFollow:
		first := slr.NewFirstSets(g)
		follow := slr.NewFollowSets(g, first)
		if format == FormatHTML {
			return report.FirstFollowHTML(g, first, follow), nil
		}
		return report.FirstFollowText(g, first, follow), nil
	case OpLR0:
		m := slr.NewAutomaton(g)
		if format == FormatHTML {
			var sb strings.Builder
			sb.WriteString("<html><body>\n")
			for i := 0; i < m.NumStates(); i++ {
				sb.WriteString(fmt.Sprintf("<h3>State %d</h3>\n", i))
				sb.WriteString(report.ClosureHTML(m.State(i)))
			}
			sb.WriteString("</body></html>\n")
			return sb.String(), nil
		}
		return report.AutomatonDOT(m), nil
	case OpSLR:
		pt := slr.NewParseTable(g)
		if format == FormatHTML {
			return report.TableHTML(pt), nil
		}
		return pt.String(), nil
	case OpReport:
		pt := slr.NewParseTable(g)
		if format == FormatHTML {
			return report.FullReportHTML(g, pt), nil
		}
		return report.FullReportText(g, pt), nil
	}
	return "", fmt.Errorf("unknown operation %q", op)
}

func renderGrammar(g grammar.Grammar, format OutputFormat) string {
	if format == FormatHTML {
		return report.GrammarHTML(g)
	}
	return report.GrammarText(g)
}

// ParserKind selects one of the parsing algorithms.
type ParserKind string

const (
	// ParserTopDown is the top-down backtrack parser.
	ParserTopDown ParserKind = "topdown"

	// ParserBottomUp is the bottom-up backtrack parser.
	ParserBottomUp ParserKind = "bottomup"

	// ParserCYK is the Cocke-Younger-Kasami parser.
	ParserCYK ParserKind = "cyk"

	// ParserEarley is the Earley parser.
	ParserEarley ParserKind = "earley"
)

// ParseParserKind returns the ParserKind named by s.
func ParseParserKind(s string) (ParserKind, error) {
	switch ParserKind(strings.ToLower(s)) {
	case ParserTopDown, ParserBottomUp, ParserCYK, ParserEarley:
		return ParserKind(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown parser %q", s)
}

// ParseResult is the outcome of running one of the parsers over an input
// string.
type ParseResult struct {
	// Parser is the algorithm that produced the result.
	Parser ParserKind

	// Indices is the parse: the production numbers output by the parser, in
	// the parser's own output convention (a left parse in derivation order
	// for the top-down and CYK parsers; a right parse in reduction order for
	// the Earley parser; the reverse of a right parse for the bottom-up
	// parser).
	Indices []int

	// Tree is the parse tree reconstructed from the parse.
	Tree *parse.Tree
}

// TreeDOT renders the result's parse tree in Graphviz DOT format.
func (res ParseResult) TreeDOT() string {
	return report.TreeDOT(res.Tree)
}

// Tokens converts a whitespace-separated input string into terminal symbols
// of the grammar. When every token is a single character and none are
// declared multi-character terminals, an unseparated string like "a+a" works
// as well.
func Tokens(g grammar.Grammar, input string) []grammar.Symbol {
	fields := strings.Fields(input)
	if len(fields) == 1 {
		word := fields[0]
		if !g.IsTerminal(grammar.T(word)) {
			// split into single-character terminals
			var syms []grammar.Symbol
			for _, c := range word {
				syms = append(syms, grammar.T(string(c)))
			}
			return syms
		}
	}

	syms := make([]grammar.Symbol, len(fields))
	for i := range fields {
		syms[i] = grammar.T(fields[i])
	}
	return syms
}

// ParseInput runs the selected parser over the input tokens, with an optional
// trace listener receiving the parser's step-by-step output.
func ParseInput(g grammar.Grammar, kind ParserKind, w []grammar.Symbol, trace func(s string)) (ParseResult, error) {
	res := ParseResult{Parser: kind}

	switch kind {
	case ParserTopDown:
		td, err := parse.NewTopDownParser(g)
		if err != nil {
			return res, err
		}
		if trace != nil {
			td.RegisterTraceListener(trace)
		}
		lp, err := td.Parse(w)
		if err != nil {
			return res, err
		}
		res.Indices = lp.Indices()
		res.Tree, err = lp.Tree()
		return res, err

	case ParserBottomUp:
		bu, err := parse.NewBottomUpParser(g)
		if err != nil {
			return res, err
		}
		if trace != nil {
			bu.RegisterTraceListener(trace)
		}
		rp, err := bu.Parse(w)
		if err != nil {
			return res, err
		}
		res.Indices = rp.Reversed()
		res.Tree, err = rp.Tree()
		return res, err

	case ParserCYK:
		cyk, err := parse.NewCYKParser(g, true)
		if err != nil {
			return res, err
		}
		if trace != nil {
			cyk.RegisterTraceListener(trace)
		}
		lp, err := cyk.Parse(w)
		if err != nil {
			return res, err
		}
		res.Indices = lp.Indices()
		res.Tree, err = lp.Tree()
		return res, err

	case ParserEarley:
		ep := parse.NewEarleyParser(g)
		if trace != nil {
			ep.RegisterTraceListener(trace)
		}
		rp, err := ep.Parse(w)
		if err != nil {
			return res, err
		}
		res.Indices = rp.Indices()
		res.Tree, err = rp.Tree()
		return res, err
	}

	return res, fmt.Errorf("unknown parser %q", kind)
}

// Snapshot is a saveable grammar: its source text, the surface form the text
// is in, and a display name. Snapshots round-trip through a binary encoding
// for the CLI's save/load flags and the analysis server's store.
type Snapshot struct {
	// Name is a human-readable label for the grammar.
	Name string

	// Format is the reader format of Text.
	Format string

	// Text is the grammar's source text.
	Text string
}

// MarshalBinary encodes the snapshot to bytes.
func (snap Snapshot) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(snap.Name)...)
	data = append(data, rezi.EncString(snap.Format)...)
	data = append(data, rezi.EncString(snap.Text)...)
	return data, nil
}

// UnmarshalBinary decodes the snapshot from bytes produced by MarshalBinary.
func (snap *Snapshot) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	snap.Name, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	data = data[n:]

	snap.Format, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	data = data[n:]

	snap.Text, _, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	return nil
}

// Grammar loads the snapshot's grammar from its text.
func (snap Snapshot) Grammar() (grammar.Grammar, error) {
	f, err := reader.ParseFormat(snap.Format)
	if err != nil {
		return grammar.Grammar{}, err
	}
	g, err := reader.Read(snap.Text, f)
	if err != nil {
		return grammar.Grammar{}, cfgerrors.Invalidf("grammar %q: %v", snap.Name, err)
	}
	return g, nil
}
