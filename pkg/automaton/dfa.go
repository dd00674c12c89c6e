package automaton

import "errors"

var (
	// ErrUnknownState is returned by [DFA.Step] when the queried state was
	// never discovered during construction. After construction the table is
	// total over (reachable state × alphabet), so an unknown state is a
	// caller error, distinct from any "no transition" notion.
	ErrUnknownState = errors.New("unknown DFA state")

	// ErrUnknownSymbol is returned by [DFA.Step] when the symbol is not part
	// of the alphabet the DFA was constructed over.
	ErrUnknownSymbol = errors.New("symbol not in alphabet")
)

// Transition is one record of the deterministic transition table.
type Transition struct {
	From   StateSet // source DFA state
	Symbol rune
	To     StateSet // destination DFA state
}

// DFA is a deterministic finite automaton produced by [Determinize]. Each
// DFA state is a set of NFA states, and the transition table maps every
// discovered state and alphabet symbol to exactly one destination.
//
// A DFA is immutable once Determinize returns and safe for concurrent reads.
type DFA struct {
	start       StateSet
	alphabet    []rune
	states      []StateSet          // discovery order
	transitions map[string]map[rune]StateSet
	accepting   map[string]StateSet
}

func newDFA(start StateSet, alphabet []rune) *DFA {
	return &DFA{
		start:       start,
		alphabet:    alphabet,
		transitions: make(map[string]map[rune]StateSet),
		accepting:   make(map[string]StateSet),
	}
}

// addState appends a newly discovered state. Deduplication happens in the
// construction registry; addState trusts its caller.
func (d *DFA) addState(s StateSet) {
	d.states = append(d.states, s)
}

// markAccepting records s as an accept state.
func (d *DFA) markAccepting(s StateSet) {
	d.accepting[s.Key()] = s
}

// addTransition records (from, symbol) → to, replacing nothing: the
// construction loop visits each (state, symbol) pair exactly once.
func (d *DFA) addTransition(from StateSet, symbol rune, to StateSet) {
	bySymbol, ok := d.transitions[from.Key()]
	if !ok {
		bySymbol = make(map[rune]StateSet, len(d.alphabet))
		d.transitions[from.Key()] = bySymbol
	}
	bySymbol[symbol] = to
}

// Start returns the start state: the epsilon-closure of the NFA start
// states. The returned set must not be modified.
func (d *DFA) Start() StateSet { return d.start }

// Alphabet returns a copy of the alphabet the DFA was constructed over.
func (d *DFA) Alphabet() []rune {
	out := make([]rune, len(d.alphabet))
	copy(out, d.alphabet)
	return out
}

// Len returns the number of discovered DFA states.
func (d *DFA) Len() int { return len(d.states) }

// States returns the discovered DFA states in discovery order.
// The returned sets must not be modified.
func (d *DFA) States() []StateSet {
	out := make([]StateSet, len(d.states))
	copy(out, d.states)
	return out
}

// Accepting returns the accept states in discovery order.
func (d *DFA) Accepting() []StateSet {
	out := make([]StateSet, 0, len(d.accepting))
	for _, s := range d.states {
		if _, ok := d.accepting[s.Key()]; ok {
			out = append(out, s)
		}
	}
	return out
}

// IsAccepting reports whether state is an accept state.
func (d *DFA) IsAccepting(state StateSet) bool {
	_, ok := d.accepting[state.Key()]
	return ok
}

// Contains reports whether state was discovered during construction.
func (d *DFA) Contains(state StateSet) bool {
	_, ok := d.transitions[state.Key()]
	return ok
}

// Step resolves the transition (state, symbol). For every discovered state
// and alphabet symbol the lookup succeeds; it returns [ErrUnknownState] for
// a state that was never discovered and [ErrUnknownSymbol] for a symbol
// outside the alphabet.
func (d *DFA) Step(state StateSet, symbol rune) (StateSet, error) {
	bySymbol, ok := d.transitions[state.Key()]
	if !ok {
		return nil, ErrUnknownState
	}
	next, ok := bySymbol[symbol]
	if !ok {
		return nil, ErrUnknownSymbol
	}
	return next, nil
}

// Transitions enumerates the transition table as records, sources in
// discovery order and symbols in alphabet order, so the output is stable
// across runs.
func (d *DFA) Transitions() []Transition {
	out := make([]Transition, 0, len(d.states)*len(d.alphabet))
	for _, from := range d.states {
		bySymbol := d.transitions[from.Key()]
		for _, symbol := range d.alphabet {
			if to, ok := bySymbol[symbol]; ok {
				out = append(out, Transition{From: from, Symbol: symbol, To: to})
			}
		}
	}
	return out
}
