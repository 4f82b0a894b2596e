// Package grammar defines context-free grammars: their symbols, production
// rules, derived properties, classification predicates, and conversion to
// Chomsky normal form.
package grammar

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/util"
)

// SymbolKind distinguishes the variants of grammar symbols.
type SymbolKind int

const (
	// KindNonterminal is a nonterminal symbol (a variable).
	KindNonterminal SymbolKind = iota

	// KindTerminal is an ordinary terminal symbol.
	KindTerminal

	// KindEpsilon is the empty-string terminal. Its identifier is always
	// empty.
	KindEpsilon

	// KindMarker is a special marker terminal such as the $ at the bottom of
	// a stack or the end of an input tape. A marker is equal to no ordinary
	// terminal, even when their identifiers coincide.
	KindMarker
)

// Symbol is a symbol appearing in a grammar: a nonterminal, a terminal, the
// empty-string terminal, or a marker. Symbols are immutable values; they can
// be compared with ==, used as map keys, and ordered with Compare.
//
// Nonterminals may additionally carry a subscript or a number of prime marks.
// These refinements produce symbols distinct from the plain form.
type Symbol struct {
	kind   SymbolKind
	name   string
	sub    int
	hasSub bool
	primes int
}

// NT returns a plain nonterminal symbol with the given name.
func NT(name string) Symbol {
	return Symbol{kind: KindNonterminal, name: name}
}

// T returns a terminal symbol with the given name.
func T(name string) Symbol {
	return Symbol{kind: KindTerminal, name: name}
}

// Epsilon is the empty-string terminal.
var Epsilon = Symbol{kind: KindEpsilon}

// Marker returns a marker terminal with the given name. The conventional end
// marker is Marker("$").
func Marker(name string) Symbol {
	return Symbol{kind: KindMarker, name: name}
}

// SubscriptedNT returns a nonterminal with the given name and subscript.
func SubscriptedNT(name string, subscript int) Symbol {
	return Symbol{kind: KindNonterminal, name: name, sub: subscript, hasSub: true}
}

// PrimedNT returns a nonterminal with the given name and number of prime
// marks. numPrimes must be positive.
func PrimedNT(name string, numPrimes int) Symbol {
	if numPrimes < 1 {
		panic("primed nonterminal must have at least one prime mark")
	}
	return Symbol{kind: KindNonterminal, name: name, primes: numPrimes}
}

// Name returns the symbol's identifier.
func (sym Symbol) Name() string {
	return sym.name
}

// Kind returns the variant of the symbol.
func (sym Symbol) Kind() SymbolKind {
	return sym.kind
}

// IsNonterminal returns whether the symbol is a nonterminal.
func (sym Symbol) IsNonterminal() bool {
	return sym.kind == KindNonterminal
}

// IsTerminal returns whether the symbol is any sort of terminal: an ordinary
// terminal, the epsilon terminal, or a marker.
func (sym Symbol) IsTerminal() bool {
	return sym.kind == KindTerminal || sym.kind == KindEpsilon || sym.kind == KindMarker
}

// Subscript returns the symbol's subscript and whether it has one.
func (sym Symbol) Subscript() (int, bool) {
	return sym.sub, sym.hasSub
}

// Primes returns the number of prime marks on the symbol, or 0 for an
// unprimed symbol.
func (sym Symbol) Primes() int {
	return sym.primes
}

// sortRank gives the symbol's position among the variants in the total
// ordering. Nonterminals order before terminals, epsilon after ordinary
// terminals, markers last.
func (sym Symbol) sortRank() int {
	switch sym.kind {
	case KindNonterminal:
		return -1
	case KindTerminal:
		return 1
	case KindEpsilon:
		return 2
	case KindMarker:
		return 3
	}
	return 0
}

// Compare gives a total ordering over symbols: first by variant rank, then by
// identifier, then by refinement. It returns a negative number if sym orders
// before o, 0 if they are equal, and a positive number otherwise. The order
// is stable across runs.
func (sym Symbol) Compare(o Symbol) int {
	if r1, r2 := sym.sortRank(), o.sortRank(); r1 != r2 {
		return r1 - r2
	}
	if c := strings.Compare(sym.name, o.name); c != 0 {
		return c
	}

	// plain < subscripted; among subscripted, by subscript value
	if sym.hasSub != o.hasSub {
		if sym.hasSub {
			return 1
		}
		return -1
	}
	if sym.sub != o.sub {
		return sym.sub - o.sub
	}
	return sym.primes - o.primes
}

// Less is a convenience form of Compare for use with sorting functions.
func (sym Symbol) Less(o Symbol) bool {
	return sym.Compare(o) < 0
}

// String gives the human-readable form of the symbol. A nonterminal with a
// one-character upper-case name is rendered bare, any other nonterminal in
// angle brackets; a one-character terminal that is not an upper-case letter is
// bare and every other terminal is double-quoted; a marker is its identifier;
// epsilon is the empty string.
// Subscripts are appended as digits and prime marks as apostrophes.
func (sym Symbol) String() string {
	switch sym.kind {
	case KindEpsilon:
		return ""
	case KindMarker:
		return sym.name
	case KindTerminal:
		if len(sym.name) == 1 && !(sym.name >= "A" && sym.name <= "Z") {
			return sym.name
		}
		return `"` + sym.name + `"`
	}

	var base string
	if len(sym.name) == 1 && sym.name >= "A" && sym.name <= "Z" {
		base = sym.name
	} else {
		base = "<" + sym.name + ">"
	}
	if sym.hasSub {
		base += fmt.Sprintf("%d", sym.sub)
	}
	base += strings.Repeat("'", sym.primes)
	return base
}

// NextSubscripted returns the first subscripted nonterminal of the given name,
// with subscript counting up from start, which is not in taken.
func NextSubscripted(name string, start int, taken util.KeySet[Symbol]) Symbol {
	for {
		cand := SubscriptedNT(name, start)
		if !taken.Has(cand) {
			return cand
		}
		start++
	}
}

// NextPrimed returns the first primed nonterminal of the given name, with
// prime count counting up from 1, which is not in taken.
func NextPrimed(name string, taken util.KeySet[Symbol]) Symbol {
	n := 1
	for {
		cand := PrimedNT(name, n)
		if !taken.Has(cand) {
			return cand
		}
		n++
	}
}

// SortSymbols returns a copy of the given symbols sorted by Compare.
func SortSymbols(syms []Symbol) []Symbol {
	return util.SortBy(syms, Symbol.Less)
}
