package automaton

import (
	"slices"
	"strconv"
	"strings"
)

// StateSet is a set of NFA state ids. It doubles as the identity of a DFA
// state: two state sets denote the same DFA state iff they contain exactly
// the same ids, regardless of how or when they were built. Use Key for
// map lookups so that comparison is always by value, never by allocation.
//
// The zero value (nil) is a usable empty set for reads; use NewStateSet
// before adding elements.
type StateSet map[int]struct{}

// NewStateSet creates a set containing the given states.
func NewStateSet(states ...int) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Add inserts state and reports whether it was newly added.
func (s StateSet) Add(state int) bool {
	if _, ok := s[state]; ok {
		return false
	}
	s[state] = struct{}{}
	return true
}

// AddAll inserts every state of other.
func (s StateSet) AddAll(other StateSet) {
	for st := range other {
		s[st] = struct{}{}
	}
}

// Contains reports whether state is a member.
func (s StateSet) Contains(state int) bool {
	_, ok := s[state]
	return ok
}

// Intersects reports whether s and other share at least one state.
// This is the DFA acceptance rule: a subset state accepts iff it
// intersects the NFA accept set.
func (s StateSet) Intersects(other StateSet) bool {
	// Iterate the smaller side.
	a, b := s, other
	if len(b) < len(a) {
		a, b = b, a
	}
	for st := range a {
		if _, ok := b[st]; ok {
			return true
		}
	}
	return false
}

// Equal reports whether s and other contain exactly the same states.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for st := range s {
		if _, ok := other[st]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s StateSet) Clone() StateSet {
	out := make(StateSet, len(s))
	for st := range s {
		out[st] = struct{}{}
	}
	return out
}

// Len returns the number of states in the set.
func (s StateSet) Len() int { return len(s) }

// Sorted returns the states in ascending order.
func (s StateSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}

// Key returns the canonical form of the set: its states sorted and
// comma-joined (the empty set yields ""). Both the discovery registry and
// the transition table key on this form, which is what makes DFA-state
// identity value-based.
func (s StateSet) Key() string {
	if len(s) == 0 {
		return ""
	}
	ids := s.Sorted()
	var b strings.Builder
	for i, st := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(st))
	}
	return b.String()
}

// String renders the set as "{0,1,2}". The empty set renders as "{}".
func (s StateSet) String() string {
	return "{" + s.Key() + "}"
}
