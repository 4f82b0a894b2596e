package parse

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/cfgerrors"
	"github.com/ashware/chomsky/internal/grammar"
	"github.com/ashware/chomsky/internal/util"
)

// CYKTable is the triangular parse table built by the Cocke-Younger-Kasami
// algorithm for an input string of length n. Cell (i, j), with 1 ≤ i ≤ n and
// 1 ≤ j ≤ n-i+1, holds the set of nonterminals that derive the substring of
// length j starting at position i. The table is built once and read-only
// afterwards.
type CYKTable struct {
	n     int
	cells [][]util.KeySet[grammar.Symbol]
}

func newCYKTable(n int) *CYKTable {
	t := &CYKTable{n: n, cells: make([][]util.KeySet[grammar.Symbol], n)}
	for i := 0; i < n; i++ {
		t.cells[i] = make([]util.KeySet[grammar.Symbol], n-i)
		for j := range t.cells[i] {
			t.cells[i][j] = util.NewKeySet[grammar.Symbol]()
		}
	}
	return t
}

// Len returns the input length n the table was built for.
func (t *CYKTable) Len() int {
	return t.n
}

// Cell returns the set of nonterminals in cell (i, j), 1-based.
func (t *CYKTable) Cell(i, j int) util.KeySet[grammar.Symbol] {
	return t.cells[i-1][j-1]
}

// Has returns whether nonterminal A is in cell (i, j).
func (t *CYKTable) Has(i, j int, A grammar.Symbol) bool {
	return t.Cell(i, j).Has(A)
}

// String renders the table with rows of longest substrings on top, each cell
// listing its nonterminals, and a final row of input positions.
func (t *CYKTable) String() string {
	return t.stringMarking(nil)
}

// stringMarking renders the table with the cells at the given (i, j)
// coordinates bracketed.
func (t *CYKTable) stringMarking(marks [][2]int) string {
	cellStrs := make([][]string, t.n)
	for i := 0; i < t.n; i++ {
		cellStrs[i] = make([]string, t.n-i)
		for j := range cellStrs[i] {
			names := util.Alphabetized[grammar.Symbol](t.cells[i][j])
			cellStrs[i][j] = strings.Join(names, ", ")
		}
	}
	for _, m := range marks {
		i, j := m[0]-1, m[1]-1
		if i >= 0 && j >= 0 && i < t.n && j < len(cellStrs[i]) {
			cellStrs[i][j] = "[" + cellStrs[i][j] + "]"
		}
	}

	width := 1
	for i := range cellStrs {
		for j := range cellStrs[i] {
			if len(cellStrs[i][j]) > width {
				width = len(cellStrs[i][j])
			}
		}
	}
	if w := len(fmt.Sprintf("%d", t.n)); w > width {
		width = w
	}

	pad := func(s string) string {
		for len(s) < width {
			s += " "
		}
		return s
	}

	var lines []string
	for j := t.n; j >= 1; j-- {
		row := []string{pad(fmt.Sprintf("%d", j))}
		for i := 1; i <= t.n-j+1; i++ {
			row = append(row, pad(cellStrs[i-1][j-1]))
		}
		lines = append(lines, strings.Join(row, "|"))
	}
	footer := []string{pad("")}
	for i := 1; i <= t.n; i++ {
		footer = append(footer, pad(fmt.Sprintf("%d", i)))
	}
	lines = append(lines, strings.Join(footer, " "))
	return strings.Join(lines, "\n")
}

// CYKParser parses input strings with the Cocke-Younger-Kasami dynamic
// programming algorithm (Aho & Ullman Algorithm 4.3). The grammar must be in
// Chomsky normal form with no ε-productions; pass check as false to
// NewCYKParser to skip the normal-form validation, e.g. when experimenting
// with partially-converted grammars.
type CYKParser struct {
	g     grammar.Grammar
	trace func(s string)
}

// NewCYKParser creates a CYK parser for g, validating the preconditions. An
// error wrapping ErrPrecondition is returned if g has ε-productions, or if
// check is true and g is not in Chomsky normal form.
func NewCYKParser(g grammar.Grammar, check bool) (*CYKParser, error) {
	if g.HasEmptyRules() {
		return nil, cfgerrors.Preconditionf("CYK parsing requires a grammar with no empty rules")
	}
	if check && !grammar.IsCNF(g) {
		return nil, cfgerrors.Preconditionf("CYK parsing requires a grammar in Chomsky normal form")
	}
	return &CYKParser{g: g}, nil
}

// RegisterTraceListener sets a function to be called with a rendering of the
// parse table after each cell update.
func (cyk *CYKParser) RegisterTraceListener(listener func(s string)) {
	cyk.trace = listener
}

func (cyk *CYKParser) notifyTrace(t *CYKTable, marks [][2]int) {
	if cyk.trace != nil {
		cyk.trace(t.stringMarking(marks))
	}
}

// BuildTable constructs the CYK parse table for w: cell (i, j) contains A if
// and only if A derives (in one or more steps) the substring of w of length j
// starting at position i.
func (cyk *CYKParser) BuildTable(w []grammar.Symbol) (*CYKTable, error) {
	if err := checkInput(cyk.g, w); err != nil {
		return nil, err
	}
	if len(w) == 0 {
		return nil, cfgerrors.Inputf("CYK parsing requires a non-empty input string")
	}

	n := len(w)
	t := newCYKTable(n)
	P := cyk.g.Productions()

	// base row: cell (i, 1) holds every A with rule A -> w_i
	for i := 1; i <= n; i++ {
		for _, pp := range P {
			if len(pp.RHS) == 1 && pp.RHS[0] == w[i-1] {
				t.Cell(i, 1).Add(pp.LHS)
			}
		}
		cyk.notifyTrace(t, nil)
	}

	// cell (i, j) holds A when some split k admits a rule A -> BC with B in
	// (i, k) and C in (i+k, j-k)
	for j := 2; j <= n; j++ {
		for i := 1; i <= n-j+1; i++ {
			for k := 1; k <= j-1; k++ {
				for _, pp := range P {
					if len(pp.RHS) != 2 {
						continue
					}
					if t.Cell(i, k).Has(pp.RHS[0]) && t.Cell(i+k, j-k).Has(pp.RHS[1]) {
						t.Cell(i, j).Add(pp.LHS)
					}
				}
				cyk.notifyTrace(t, [][2]int{{i, j}, {i, k}, {i + k, j - k}})
			}
		}
	}

	return t, nil
}

// LeftParseFromTable extracts a left parse for w from the parse table built
// by BuildTable (Aho & Ullman Algorithm 4.4). At each cell the smallest
// usable split point is chosen, and among rules usable at that split the one
// with the smallest production number. An error wrapping ErrParseFailure is
// returned if the start symbol does not derive w.
func (cyk *CYKParser) LeftParseFromTable(w []grammar.Symbol, t *CYKTable) (LeftParse, error) {
	if err := checkInput(cyk.g, w); err != nil {
		return LeftParse{}, err
	}

	n := len(w)
	if n == 0 {
		return LeftParse{}, cfgerrors.Inputf("CYK parsing requires a non-empty input string")
	}
	if n != t.Len() {
		return LeftParse{}, cfgerrors.Parsef("parse table was built for an input of length %d, not %d", t.Len(), n)
	}
	if !t.Has(1, n, cyk.g.Start()) {
		return LeftParse{}, cfgerrors.Parsef("input is not in the language of the grammar")
	}

	var gen func(i, j int, A grammar.Symbol) ([]int, error)
	gen = func(i, j int, A grammar.Symbol) ([]int, error) {
		if j == 1 {
			m := cyk.g.IndexOf(grammar.Rule{LHS: A, RHS: []grammar.Symbol{w[i-1]}})
			if m == 0 {
				return nil, cfgerrors.Parsef("no production %s -> %s", A, w[i-1])
			}
			return []int{m}, nil
		}

		for k := 1; k <= j-1; k++ {
			bestM := 0
			for m := 1; m <= cyk.g.NumProductions(); m++ {
				rule := cyk.g.Production(m)
				if len(rule.RHS) != 2 || rule.LHS != A {
					continue
				}
				if t.Has(i, k, rule.RHS[0]) && t.Has(i+k, j-k, rule.RHS[1]) {
					bestM = m
					break
				}
			}
			if bestM == 0 {
				continue
			}

			rule := cyk.g.Production(bestM)
			left, err := gen(i, k, rule.RHS[0])
			if err != nil {
				return nil, err
			}
			right, err := gen(i+k, j-k, rule.RHS[1])
			if err != nil {
				return nil, err
			}
			return append(append([]int{bestM}, left...), right...), nil
		}
		return nil, cfgerrors.Parsef("no production of %s covers positions %d through %d", A, i, i+j-1)
	}

	indices, err := gen(1, n, cyk.g.Start())
	if err != nil {
		return LeftParse{}, err
	}
	return NewLeftParse(cyk.g, indices), nil
}

// Parse builds the parse table for w and extracts a left parse from it.
func (cyk *CYKParser) Parse(w []grammar.Symbol) (LeftParse, error) {
	t, err := cyk.BuildTable(w)
	if err != nil {
		return LeftParse{}, err
	}
	return cyk.LeftParseFromTable(w, t)
}
