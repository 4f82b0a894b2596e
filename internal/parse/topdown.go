package parse

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
)

// machine states shared by the backtrack parsers
const (
	stateNormal       = "q"
	stateBacktracking = "b"
	stateTerminating  = "t"
)

// TopDownParser is a top-down backtrack parser over a non-left-recursive
// grammar (Aho & Ullman, "The Theory of Parsing, Translation, and Compiling",
// Algorithm 4.1). It simulates a nondeterministic pushdown machine over
// configurations (state, input pointer, history pushdown, prediction
// pushdown) and produces a leftmost derivation.
type TopDownParser struct {
	g     grammar.Grammar
	alts  map[grammar.Symbol][][]grammar.Symbol
	trace func(s string)
}

// tdEntry is an entry on the top-down parser's history pushdown: either a
// matched terminal, or a nonterminal paired with the 1-based number of the
// alternate currently being tried.
type tdEntry struct {
	sym grammar.Symbol
	alt int
}

func (e tdEntry) isAlternate() bool {
	return e.alt > 0
}

func (e tdEntry) String() string {
	if e.isAlternate() {
		return fmt.Sprintf("%s%d", e.sym, e.alt)
	}
	return e.sym.String()
}

// NewTopDownParser creates a top-down backtrack parser for g. It returns an
// error wrapping ErrPrecondition if g is left-recursive.
func NewTopDownParser(g grammar.Grammar) (*TopDownParser, error) {
	if g.LeftRecursive() {
		return nil, cfgerrors.Preconditionf("top-down backtrack parsing requires a grammar that is not left-recursive")
	}

	alts := map[grammar.Symbol][][]grammar.Symbol{}
	for _, n := range g.Nonterminals() {
		for _, p := range g.ProductionsFor(n) {
			alts[n] = append(alts[n], p.RHS)
		}
	}

	return &TopDownParser{g: g, alts: alts}, nil
}

// RegisterTraceListener sets a function to be called with one line of text
// per machine configuration as the parse progresses.
func (td *TopDownParser) RegisterTraceListener(listener func(s string)) {
	td.trace = listener
}

func (td *TopDownParser) notifyTrace(s string) {
	if td.trace != nil {
		td.trace(s)
	}
}

// Parse finds one left parse for the input string w, or returns an error
// wrapping ErrParseFailure if w is not in the language of the grammar.
func (td *TopDownParser) Parse(w []grammar.Symbol) (LeftParse, error) {
	if err := checkInput(td.g, w); err != nil {
		return LeftParse{}, err
	}

	endMarker := grammar.Marker("$")
	n := len(w)
	S := td.g.Start()

	// input tape including the right endmarker at position n+1, 1-based
	at := func(i int) grammar.Symbol {
		if i == n+1 {
			return endMarker
		}
		return w[i-1]
	}

	// initial configuration (q, 1, e, S$)
	s := stateNormal
	i := 1
	var alpha []tdEntry
	beta := []grammar.Symbol{S, endMarker}

	td.notifyTrace(topdownConfigString(s, i, alpha, beta))

	for {
		next := true
		switch {

		// successful conclusion:
		// (q, n+1, alpha, $) |- (t, n+1, alpha, e)
		case s == stateNormal && i == n+1 && len(beta) == 1 && beta[0] == endMarker:
			s = stateTerminating
			beta = nil

		// tree expansion:
		// (q, i, alpha, A beta) |- (q, i, alpha A1, gamma1 beta)
		case s == stateNormal && len(beta) > 0 && beta[0].IsNonterminal():
			A := beta[0]
			if len(td.alts[A]) == 0 {
				// a nonterminal with no rules derives nothing
				s = stateBacktracking
				break
			}
			alpha = append(alpha, tdEntry{sym: A, alt: 1})
			beta = prepend(td.alts[A][0], beta[1:])

		// input symbol test
		case s == stateNormal && len(beta) > 0 && beta[0].IsTerminal():
			if i <= n && beta[0] == at(i) {
				// successful match:
				// (q, i, alpha, a beta) |- (q, i+1, alpha a, beta)
				alpha = append(alpha, tdEntry{sym: beta[0]})
				beta = beta[1:]
				i++
			} else {
				// unsuccessful match: enter backtracking
				s = stateBacktracking
			}

		// backtracking on input:
		// (b, i, alpha a, beta) |- (b, i-1, alpha, a beta)
		case s == stateBacktracking && len(alpha) > 0 && !alpha[len(alpha)-1].isAlternate():
			a := alpha[len(alpha)-1]
			alpha = alpha[:len(alpha)-1]
			beta = prepend([]grammar.Symbol{a.sym}, beta)
			i--

		// try next alternate
		case s == stateBacktracking && len(alpha) > 0:
			top := alpha[len(alpha)-1]
			A, j := top.sym, top.alt
			gammaj := td.alts[A][j-1]
			if !isPrefix(gammaj, beta) {
				next = false
				break
			}
			if j+1 <= len(td.alts[A]) {
				// (q, i, alpha Aj+1, gammaj+1 beta)
				alpha[len(alpha)-1] = tdEntry{sym: A, alt: j + 1}
				beta = prepend(td.alts[A][j], beta[len(gammaj):])
				s = stateNormal
			} else if i == 1 && A == S && len(td.alts[S]) >= j {
				// all left-sentential forms are exhausted
				next = false
			} else {
				// (b, i, alpha, A beta)
				alpha = alpha[:len(alpha)-1]
				beta = prepend([]grammar.Symbol{A}, beta[len(gammaj):])
			}

		default:
			next = false
		}

		if !next {
			break
		}
		td.notifyTrace("|- " + topdownConfigString(s, i, alpha, beta))
	}

	if s != stateTerminating || i != n+1 || len(beta) != 0 {
		return LeftParse{}, cfgerrors.Parsef("input is not in the language of the grammar")
	}

	// recover the left parse by mapping each alternate entry of the history
	// pushdown to its production number and discarding terminals
	var indices []int
	for _, entry := range alpha {
		if !entry.isAlternate() {
			continue
		}
		rule := grammar.Rule{LHS: entry.sym, RHS: td.alts[entry.sym][entry.alt-1]}
		indices = append(indices, td.g.IndexOf(rule))
	}
	return NewLeftParse(td.g, indices), nil
}

// prepend returns head followed by tail in a fresh slice.
func prepend(head []grammar.Symbol, tail []grammar.Symbol) []grammar.Symbol {
	result := make([]grammar.Symbol, 0, len(head)+len(tail))
	result = append(result, head...)
	result = append(result, tail...)
	return result
}

func isPrefix(prefix []grammar.Symbol, of []grammar.Symbol) bool {
	if len(prefix) > len(of) {
		return false
	}
	for i := range prefix {
		if of[i] != prefix[i] {
			return false
		}
	}
	return true
}

// topdownConfigString renders one configuration of the top-down machine, with
// history entries space-separated and the prediction pushdown concatenated.
// Empty pushdowns render as e.
func topdownConfigString(s string, i int, alpha []tdEntry, beta []grammar.Symbol) string {
	alphaStr := "e"
	if len(alpha) > 0 {
		strs := make([]string, len(alpha))
		for k := range alpha {
			strs[k] = alpha[k].String()
		}
		alphaStr = strings.Join(strs, " ")
	}

	betaStr := "e"
	if len(beta) > 0 {
		var sb strings.Builder
		for _, b := range beta {
			sb.WriteString(b.String())
		}
		betaStr = sb.String()
	}

	return fmt.Sprintf("(%s, %d, %s, %s)", s, i, alphaStr, betaStr)
}
