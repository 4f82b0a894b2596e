package parse

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
)

// EarleyItem is an item on one of the parse lists built by Earley's
// algorithm: a production with a dot marking progress through its right side,
// plus the number of the parse list where recognition of the production
// began.
type EarleyItem struct {
	// Prod is the 1-based production number within the grammar.
	Prod int

	// Dot is the position of the dot within the right side, from 0 to the
	// length of the right side.
	Dot int

	// Origin is the index of the parse list where this item was first
	// predicted.
	Origin int
}

// EarleyParser parses input strings with Earley's algorithm (Aho & Ullman
// Algorithm 4.5), building the parse lists I0, I1, ..., In and extracting a
// rightmost derivation from them.
type EarleyParser struct {
	g     grammar.Grammar
	trace func(s string)
}

// NewEarleyParser creates an Earley parser for g. The parse lists can be
// built for any grammar; extracting a right parse additionally requires that
// the grammar is not cyclic, which is checked at extraction time.
func NewEarleyParser(g grammar.Grammar) *EarleyParser {
	return &EarleyParser{g: g}
}

// RegisterTraceListener sets a function to be called with a rendering of each
// parse list as it is saturated.
func (ep *EarleyParser) RegisterTraceListener(listener func(s string)) {
	ep.trace = listener
}

func (ep *EarleyParser) notifyTrace(I [][]EarleyItem, j int) {
	if ep.trace != nil {
		ep.trace(ep.ParseListString(I, j))
	}
}

// ItemString renders an item in the form [A -> α.β, i].
func (ep *EarleyParser) ItemString(item EarleyItem) string {
	rule := ep.g.Production(item.Prod)

	strs := make([]string, 0, len(rule.RHS)+1)
	sep := ""
	for _, s := range rule.RHS {
		str := s.String()
		if len(str) > 1 {
			sep = " "
		}
		strs = append(strs, str)
	}
	strs = append(strs[:item.Dot], append([]string{"."}, strs[item.Dot:]...)...)
	return fmt.Sprintf("[%s -> %s, %d]", rule.LHS, strings.Join(strs, sep), item.Origin)
}

// ParseListString renders parse list number j for display.
func (ep *EarleyParser) ParseListString(I [][]EarleyItem, j int) string {
	lines := []string{fmt.Sprintf("I%d", j)}
	for _, item := range I[j] {
		lines = append(lines, ep.ItemString(item))
	}
	return strings.Join(lines, "\n")
}

// afterDot returns the symbol following the dot, or false when the item is
// complete.
func (ep *EarleyParser) afterDot(item EarleyItem) (grammar.Symbol, bool) {
	rule := ep.g.Production(item.Prod)
	if item.Dot < len(rule.RHS) {
		return rule.RHS[item.Dot], true
	}
	return grammar.Symbol{}, false
}

func (ep *EarleyParser) complete(item EarleyItem) bool {
	_, ok := ep.afterDot(item)
	return !ok
}

// BuildParseLists constructs the parse lists I0 through In for w. List Ij
// contains [A → α·β, i] exactly when the grammar can derive the first j input
// symbols using α to cover symbols i+1 through j with A predicted at
// position i.
func (ep *EarleyParser) BuildParseLists(w []grammar.Symbol) ([][]EarleyItem, error) {
	if err := checkInput(ep.g, w); err != nil {
		return nil, err
	}

	n := len(w)
	I := make([][]EarleyItem, n+1)
	S := ep.g.Start()

	contains := containsItem

	// seed I0 with [S -> .alpha, 0] for every S-production
	for m := 1; m <= ep.g.NumProductions(); m++ {
		if ep.g.Production(m).LHS == S {
			I[0] = append(I[0], EarleyItem{Prod: m, Dot: 0, Origin: 0})
		}
	}

	// saturate a list under the completer and predictor rules; for I0 the
	// completer only ever consults I0 itself
	saturate := func(j int) {
		added := true
		for added {
			added = false
			ep.notifyTrace(I, j)

			// completer: for each complete [B -> gamma., i] in Ij, advance
			// every [A -> alpha . B beta, k] of Ii into Ij
			var newItems []EarleyItem
			for _, item := range I[j] {
				if !ep.complete(item) {
					continue
				}
				B := ep.g.Production(item.Prod).LHS
				for _, other := range I[item.Origin] {
					if sym, ok := ep.afterDot(other); ok && sym == B {
						newItem := EarleyItem{Prod: other.Prod, Dot: other.Dot + 1, Origin: other.Origin}
						if !contains(I[j], newItem) && !contains(newItems, newItem) {
							newItems = append(newItems, newItem)
							added = true
						}
					}
				}
			}
			I[j] = append(I[j], newItems...)

			// predictor: for each [A -> alpha . B beta, i] in Ij, add
			// [B -> .gamma, j] for every B-production
			newItems = nil
			for _, item := range I[j] {
				B, ok := ep.afterDot(item)
				if !ok || !B.IsNonterminal() {
					continue
				}
				for m := 1; m <= ep.g.NumProductions(); m++ {
					if ep.g.Production(m).LHS == B {
						newItem := EarleyItem{Prod: m, Dot: 0, Origin: j}
						if !contains(I[j], newItem) && !contains(newItems, newItem) {
							newItems = append(newItems, newItem)
							added = true
						}
					}
				}
			}
			I[j] = append(I[j], newItems...)
		}
	}

	saturate(0)

	for j := 1; j <= n; j++ {
		// scanner: advance items of I(j-1) whose dot precedes the j-th input
		// symbol
		for _, item := range I[j-1] {
			if sym, ok := ep.afterDot(item); ok && sym == w[j-1] {
				newItem := EarleyItem{Prod: item.Prod, Dot: item.Dot + 1, Origin: item.Origin}
				if !contains(I[j], newItem) {
					I[j] = append(I[j], newItem)
				}
			}
		}
		saturate(j)
	}

	return I, nil
}

// Accepted returns whether the parse lists witness that w is in the language
// of the grammar: the final list contains a completed start production with
// origin 0.
func (ep *EarleyParser) Accepted(I [][]EarleyItem) bool {
	S := ep.g.Start()
	for _, item := range I[len(I)-1] {
		if ep.g.Production(item.Prod).LHS == S && ep.complete(item) && item.Origin == 0 {
			return true
		}
	}
	return false
}

// RightParseFromLists extracts a right parse for w from the parse lists built
// by BuildParseLists (Aho & Ullman Algorithm 4.6). The returned parse holds
// the production numbers in reduction order. An error wrapping
// ErrPrecondition is returned if the grammar is cyclic, and one wrapping
// ErrParseFailure if w is not in the language of the grammar.
func (ep *EarleyParser) RightParseFromLists(w []grammar.Symbol, I [][]EarleyItem) (RightParse, error) {
	if err := checkInput(ep.g, w); err != nil {
		return RightParse{}, err
	}
	if ep.g.Cyclic() {
		return RightParse{}, cfgerrors.Preconditionf("right-parse extraction requires a grammar that is not cyclic")
	}

	n := len(w)
	if len(I) != n+1 {
		return RightParse{}, cfgerrors.Parsef("parse lists were built for an input of length %d, not %d", len(I)-1, n)
	}

	var pi []int

	// R recursively emits the production of a completed item and then finds,
	// right to left, the witnessing completed child item for each
	// nonterminal constituent
	var R func(item EarleyItem, j int) error
	R = func(item EarleyItem, j int) error {
		rule := ep.g.Production(item.Prod)
		X := rule.RHS
		i := item.Origin

		pi = append([]int{item.Prod}, pi...)

		k := len(X)
		l := j
		for k > 0 {
			if X[k-1].IsTerminal() {
				k--
				l--
				continue
			}

			found := false
			for _, other := range I[l] {
				otherRule := ep.g.Production(other.Prod)
				if otherRule.LHS == X[k-1] && ep.complete(other) {
					r := other.Origin
					checkItem := EarleyItem{Prod: item.Prod, Dot: k - 1, Origin: i}
					if containsItem(I[r], checkItem) {
						if err := R(other, l); err != nil {
							return err
						}
						k--
						l = r
						found = true
						break
					}
				}
			}
			if !found {
				return cfgerrors.Parsef("parse lists contain no derivation of %s ending at position %d", X[k-1], l)
			}
		}
		return nil
	}

	S := ep.g.Start()
	for _, item := range I[n] {
		if ep.g.Production(item.Prod).LHS == S && ep.complete(item) && item.Origin == 0 {
			pi = nil
			if err := R(item, n); err != nil {
				return RightParse{}, err
			}
			return NewRightParse(ep.g, pi), nil
		}
	}
	return RightParse{}, cfgerrors.Parsef("input is not in the language of the grammar")
}

// Parse builds the parse lists for w and extracts a right parse from them.
func (ep *EarleyParser) Parse(w []grammar.Symbol) (RightParse, error) {
	I, err := ep.BuildParseLists(w)
	if err != nil {
		return RightParse{}, err
	}
	return ep.RightParseFromLists(w, I)
}

func containsItem(list []EarleyItem, item EarleyItem) bool {
	for _, x := range list {
		if x == item {
			return true
		}
	}
	return false
}
