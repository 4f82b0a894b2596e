package parse

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
)

// BottomUpParser is a shift-reduce backtrack parser over a grammar with no
// ε-productions and no cycles (Aho & Ullman Algorithm 4.2). It keeps a
// sentential-form pushdown holding the part of the input consumed so far and
// a history pushdown of shifts and reduction numbers, and produces a
// rightmost derivation.
type BottomUpParser struct {
	g     grammar.Grammar
	trace func(s string)
}

// buEntry is an entry on the bottom-up parser's history pushdown: the shift
// marker, or the number of an applied reduction.
type buEntry struct {
	shift bool
	rule  int
}

func (e buEntry) String() string {
	if e.shift {
		return "s"
	}
	return fmt.Sprintf("%d", e.rule)
}

// NewBottomUpParser creates a bottom-up backtrack parser for g. It returns an
// error wrapping ErrPrecondition if g has ε-productions or cycles.
func NewBottomUpParser(g grammar.Grammar) (*BottomUpParser, error) {
	if g.HasEmptyRules() {
		return nil, cfgerrors.Preconditionf("bottom-up backtrack parsing requires a grammar with no empty rules")
	}
	if g.Cyclic() {
		return nil, cfgerrors.Preconditionf("bottom-up backtrack parsing requires a grammar that is not cyclic")
	}
	return &BottomUpParser{g: g}, nil
}

// RegisterTraceListener sets a function to be called with one line of text
// per machine configuration as the parse progresses.
func (bu *BottomUpParser) RegisterTraceListener(listener func(s string)) {
	bu.trace = listener
}

func (bu *BottomUpParser) notifyTrace(s string) {
	if bu.trace != nil {
		bu.trace(s)
	}
}

// Parse finds one right parse for the input string w. The returned parse
// holds the production numbers in reduction order; read in reverse they are
// the rightmost derivation of w. An error wrapping ErrParseFailure is
// returned if w is not in the language of the grammar.
func (bu *BottomUpParser) Parse(w []grammar.Symbol) (RightParse, error) {
	if err := checkInput(bu.g, w); err != nil {
		return RightParse{}, err
	}

	endMarker := grammar.Marker("$")
	n := len(w)
	S := bu.g.Start()
	p := bu.g.NumProductions()

	// firstSuffix finds the lowest production number, counting from start,
	// whose right side is a suffix of alpha; 0 if there is none.
	firstSuffix := func(alpha []grammar.Symbol, start int) int {
		for k := start; k <= p; k++ {
			if isSuffix(bu.g.Production(k).RHS, alpha) {
				return k
			}
		}
		return 0
	}

	// initial configuration (q, 1, $, e)
	s := stateNormal
	i := 1
	alpha := []grammar.Symbol{endMarker}
	var beta []buEntry

	bu.notifyTrace(bottomupConfigString(s, i, alpha, beta))

	for {
		// step 1: attempt to reduce the first right side that is a suffix of
		// alpha, recording the production number
		if s == stateNormal {
			if k := firstSuffix(alpha, 1); k > 0 {
				rr := bu.g.Production(k)
				alpha = append(alpha[:len(alpha)-len(rr.RHS)], rr.LHS)
				beta = append([]buEntry{{rule: k}}, beta...)
				bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
				continue
			}
		}

		// step 2: shift the next input symbol
		if s == stateNormal && i != n+1 {
			alpha = append(alpha, w[i-1])
			beta = append([]buEntry{{shift: true}}, beta...)
			i++
			bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
			continue
		}

		// step 3: accept when the whole input reduces to $S
		if s == stateNormal && i == n+1 && len(alpha) == 2 && alpha[0] == endMarker && alpha[1] == S {
			s = stateTerminating
			bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
			var indices []int
			for _, e := range beta {
				if !e.shift {
					indices = append(indices, e.rule)
				}
			}
			// beta holds the most recent reduction first; reversing gives
			// the right parse in reduction order
			return NewRightParse(bu.g, reverseInts(indices)), nil
		}

		// step 4: enter backtracking mode
		s = stateBacktracking
		bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))

		// step 5: backtrack
		backtracked := false
		for {
			if s == stateBacktracking && len(alpha) > 0 && alpha[len(alpha)-1].IsNonterminal() &&
				len(beta) > 0 && !beta[0].shift {
				A := alpha[len(alpha)-1]
				j := beta[0].rule
				if bu.g.Production(j).LHS == A {
					tempalpha := append(append([]grammar.Symbol{}, alpha[:len(alpha)-1]...), bu.g.Production(j).RHS...)
					if k := firstSuffix(tempalpha, j+1); k > 0 {
						// (a) try the next alternative reduction
						rr := bu.g.Production(k)
						s = stateNormal
						alpha = append(tempalpha[:len(tempalpha)-len(rr.RHS)], rr.LHS)
						beta[0] = buEntry{rule: k}
						bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
						backtracked = true
						break
					} else if i == n+1 {
						// (b) no alternative reductions remain; undo the
						// reduction and keep backtracking
						alpha = tempalpha
						beta = beta[1:]
						bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
						continue
					} else {
						// (c) no alternative reductions remain; undo the
						// reduction and try a shift instead
						s = stateNormal
						alpha = append(tempalpha, w[i-1])
						i++
						beta[0] = buEntry{shift: true}
						bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
						backtracked = true
						break
					}
				}
			}
			if s == stateBacktracking && len(alpha) > 0 && alpha[len(alpha)-1].IsTerminal() &&
				len(beta) > 0 && beta[0].shift {
				// (d) undo a shift, moving the input pointer back
				i--
				alpha = alpha[:len(alpha)-1]
				beta = beta[1:]
				bu.notifyTrace("|- " + bottomupConfigString(s, i, alpha, beta))
				continue
			}
			return RightParse{}, cfgerrors.Parsef("input is not in the language of the grammar")
		}
		if backtracked {
			continue
		}
	}
}

func isSuffix(suffix []grammar.Symbol, of []grammar.Symbol) bool {
	if len(suffix) > len(of) {
		return false
	}
	offset := len(of) - len(suffix)
	for i := range suffix {
		if of[offset+i] != suffix[i] {
			return false
		}
	}
	return true
}

func reverseInts(in []int) []int {
	out := make([]int, len(in))
	for i := range in {
		out[i] = in[len(in)-1-i]
	}
	return out
}

// bottomupConfigString renders one configuration of the bottom-up machine,
// with both pushdowns concatenated. Empty pushdowns render as e.
func bottomupConfigString(s string, i int, alpha []grammar.Symbol, beta []buEntry) string {
	alphaStr := "e"
	if len(alpha) > 0 {
		var sb strings.Builder
		for _, a := range alpha {
			sb.WriteString(a.String())
		}
		alphaStr = sb.String()
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
