// Package slr contains the SLR(1) machinery: LR(0) items and closures, the
// canonical LR(0) automaton, FIRST and FOLLOW set computation, and
// construction of the multi-valued SLR parse table with its normal form for
// equivalence testing.
package slr

import (
	"fmt"
	"strings"

	"github.com/ashware/chomsky/internal/grammar"
)

// Item is an LR(0) item: a production rule with a dot marking how much of the
// right side the parser has recognized so far.
type Item struct {
	production grammar.Rule
	dotPos     int
}

// NewItem creates an item for a production with the dot at the given
// position, which must lie between 0 and the length of the right side.
func NewItem(production grammar.Rule, dotPos int) Item {
	if dotPos < 0 || dotPos > len(production.RHS) {
		panic(fmt.Sprintf("dot position %d not within bounds of %q", dotPos, production.String()))
	}
	return Item{production: production, dotPos: dotPos}
}

// Production returns the item's underlying production rule.
func (i Item) Production() grammar.Rule {
	return i.production
}

// DotPos returns the position of the dot within the right side.
func (i Item) DotPos() int {
	return i.dotPos
}

// AfterDot returns the symbol immediately after the dot, or false when the
// item is complete.
func (i Item) AfterDot() (grammar.Symbol, bool) {
	if i.dotPos < len(i.production.RHS) {
		return i.production.RHS[i.dotPos], true
	}
	return grammar.Symbol{}, false
}

// Complete returns whether the dot is at the end of the right side.
func (i Item) Complete() bool {
	return i.dotPos == len(i.production.RHS)
}

// Advanced returns the item with the dot moved one symbol to the right.
func (i Item) Advanced() Item {
	return NewItem(i.production, i.dotPos+1)
}

// Equal returns whether the item equals another Item or *Item.
func (i Item) Equal(o any) bool {
	other, ok := o.(Item)
	if !ok {
		otherPtr, ok := o.(*Item)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return i.dotPos == other.dotPos && i.production.Equal(other.production)
}

// String renders the item in the form A -> α.β, joining the right-side
// symbols without spaces when every one renders as a single character.
func (i Item) String() string {
	strs := make([]string, 0, len(i.production.RHS)+1)
	sep := ""
	for _, s := range i.production.RHS {
		str := s.String()
		if len(str) > 1 {
			sep = " "
		}
		strs = append(strs, str)
	}
	strs = append(strs[:i.dotPos], append([]string{"."}, strs[i.dotPos:]...)...)
	return fmt.Sprintf("%s -> %s", i.production.LHS, strings.Join(strs, sep))
}
