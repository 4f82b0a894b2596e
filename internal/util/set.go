package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is the interface implemented by the set types in this package.
type ISet[E any] interface {

	// Add adds the given element to the Set. If the element is already in the
	// set, no effect occurs.
	Add(element E)

	// AddAll adds all elements in s2 to the Set.
	AddAll(s2 ISet[E])

	// Remove removes the given element from the Set. If the element is already
	// not in the set, no effect occurs.
	Remove(element E)

	// Has returns whether the given set has the specified element.
	Has(element E) bool

	// Len returns the number of elements in the set.
	Len() int

	// Elements returns the elements of the set as a slice, in no particular
	// order.
	Elements() []E

	// Copy returns a copy of the Set.
	Copy() ISet[E]

	// Equal returns whether a Set equals another value. Only the elements are
	// compared, not their ordering. For sets which map values to elements,
	// this does NOT compare the data values.
	Equal(o any) bool

	// String is a string with the contents of the set, not guaranteed to be
	// in any particular order.
	String() string

	// StringOrdered is a string with the contents of the set, ordered
	// alphabetically by string form.
	StringOrdered() string

	// Union returns a new Set that is the union of s and s2.
	Union(s2 ISet[E]) ISet[E]

	// Intersection returns a new Set that contains the elements that are in
	// both s and s2.
	Intersection(s2 ISet[E]) ISet[E]

	// Difference returns a new Set that contains the elements that are in the
	// set but not in s2.
	Difference(s2 ISet[E]) ISet[E]

	// DisjointWith returns whether the set contains no elements of s2.
	DisjointWith(s2 ISet[E]) bool

	// Empty returns whether the set is empty.
	Empty() bool

	// Any returns whether any element in the set meets some condition.
	Any(predicate func(v E) bool) bool
}

// KeySet is a map[E comparable]bool with methods added to fulfill ISet[E].
type KeySet[E comparable] map[E]bool

func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// KeySetOf creates a KeySet from the elements of a slice. A nil slice gives a
// nil set.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	if sl == nil {
		return nil
	}

	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) AddAll(s2 ISet[E]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Len() int {
	return len(s)
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on.
func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}

	sl := make([]E, 0)
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

func (s KeySet[E]) Copy() ISet[E] {
	newS := NewKeySet[E]()
	for k := range s {
		newS[k] = true
	}
	return newS
}

func (s KeySet[E]) Union(o ISet[E]) ISet[E] {
	newSet := NewKeySet[E]()
	newSet.AddAll(s)
	newSet.AddAll(o)
	return newSet
}

func (s KeySet[E]) Intersection(o ISet[E]) ISet[E] {
	newSet := NewKeySet[E]()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

func (s KeySet[E]) Difference(o ISet[E]) ISet[E] {
	newSet := NewKeySet[E]()
	newSet.AddAll(s)
	for _, k := range o.Elements() {
		newSet.Remove(k)
	}
	return newSet
}

func (s KeySet[E]) DisjointWith(o ISet[E]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s KeySet[E]) Empty() bool {
	return s.Len() == 0
}

func (s KeySet[E]) Any(predicate func(v E) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Equal returns whether two sets have the same items. Anything other than an
// ISet[E] or *ISet[E] is not considered equal. This does NOT do Equal on the
// individual items, but rather a simple equality check.
func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(ISet[E])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*ISet[E])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized by their string forms.
func (s KeySet[E]) StringOrdered() string {
	convs := []string{}
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// String shows the contents of the set. Items are not guaranteed to be in any
// particular order.
func (s KeySet[E]) String() string {
	var sb strings.Builder

	totalLen := s.Len()
	itemsWritten := 0

	sb.WriteRune('{')
	for k := range s {
		sb.WriteString(fmt.Sprintf("%v", k))
		itemsWritten++
		if itemsWritten < totalLen {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// SVSet is a set that uses strings as its element names and maps them to
// values of some other type. It is chiefly used for item sets, where an item
// is keyed by its string form.
type SVSet[V any] map[string]V

func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	bs := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			bs.Set(k, m[k])
		}
	}
	return bs
}

// Add adds a name with the zero value. Has no effect if it's already there.
func (s SVSet[V]) Add(name string) {
	if _, ok := s[name]; !ok {
		var v V
		s[name] = v
	}
}

// Set assigns the value of the named element, adding it if needed.
func (s SVSet[V]) Set(name string, val V) {
	s[name] = val
}

// Get retrieves the value of an element, or the zero value for V if it is not
// in the set.
func (s SVSet[V]) Get(name string) V {
	return s[name]
}

func (s SVSet[V]) AddAll(s2 ISet[string]) {
	// if the other set maps values too, carry them over
	if valued, ok := s2.(SVSet[V]); ok {
		for _, k := range valued.Elements() {
			s.Set(k, valued.Get(k))
		}
		return
	}
	for _, k := range s2.Elements() {
		s.Add(k)
	}
}

func (s SVSet[V]) Remove(name string) {
	delete(s, name)
}

func (s SVSet[V]) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s SVSet[V]) Len() int {
	return len(s)
}

func (s SVSet[V]) Elements() []string {
	elems := []string{}
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s SVSet[V]) Copy() ISet[string] {
	return NewSVSet(s)
}

func (s SVSet[V]) Union(s2 ISet[string]) ISet[string] {
	newSet := NewSVSet(s)
	newSet.AddAll(s2)
	return newSet
}

func (s SVSet[V]) Intersection(s2 ISet[string]) ISet[string] {
	newSet := NewSVSet[V]()
	for k := range s {
		if s2.Has(k) {
			newSet.Set(k, s.Get(k))
		}
	}
	return newSet
}

func (s SVSet[V]) Difference(o ISet[string]) ISet[string] {
	newSet := NewSVSet(s)
	for _, k := range o.Elements() {
		newSet.Remove(k)
	}
	return newSet
}

func (s SVSet[V]) DisjointWith(o ISet[string]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s SVSet[V]) Empty() bool {
	return s.Len() == 0
}

func (s SVSet[V]) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Equal returns whether two sets have the same element names. The mapped
// values are not compared.
func (s SVSet[V]) Equal(o any) bool {
	other, ok := o.(ISet[string])
	if !ok {
		otherPtr, ok := o.(*ISet[string])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

func (s SVSet[V]) StringOrdered() string {
	convs := []string{}
	for k := range s {
		convs = append(convs, k)
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

func (s SVSet[V]) String() string {
	var sb strings.Builder

	totalLen := s.Len()
	itemsWritten := 0

	sb.WriteRune('{')
	for k := range s {
		sb.WriteString(k)
		itemsWritten++
		if itemsWritten < totalLen {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
