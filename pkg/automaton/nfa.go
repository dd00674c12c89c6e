package automaton

// Epsilon is the reserved symbol for transitions consumable without reading
// input. It must never appear in a declared alphabet; [Determinize] rejects
// alphabets that contain it.
const Epsilon rune = 'ε'

// NFA is a nondeterministic finite automaton: a transition relation mapping
// (state, symbol) to a set of destination states, plus start and accept
// state sets. Multiple start states are permitted (an implicit union), and
// transitions on [Epsilon] consume no input.
//
// States are plain ints and need no prior declaration; a state exists by
// appearing as a transition endpoint or in the start/accept sets.
//
// Use NewNFA to create an instance. NFA is not safe for concurrent
// mutation; once handed to [Determinize] it is treated as immutable.
type NFA struct {
	transitions map[int]map[rune]StateSet
	start       StateSet
	accept      StateSet
}

// NewNFA creates an empty NFA.
func NewNFA() *NFA {
	return &NFA{
		transitions: make(map[int]map[rune]StateSet),
		start:       NewStateSet(),
		accept:      NewStateSet(),
	}
}

// AddTransition records to as a destination of (from, symbol), accumulating
// into any existing destination set. Any symbol is allowed, including
// [Epsilon]. AddTransition always succeeds.
func (n *NFA) AddTransition(from int, symbol rune, to int) {
	bySymbol, ok := n.transitions[from]
	if !ok {
		bySymbol = make(map[rune]StateSet)
		n.transitions[from] = bySymbol
	}
	dests, ok := bySymbol[symbol]
	if !ok {
		dests = NewStateSet()
		bySymbol[symbol] = dests
	}
	dests.Add(to)
}

// Transitions returns the destination set of (state, symbol), or an empty
// set when no such transition was recorded. It never fails, even for states
// the NFA has never seen; move computations over partially connected states
// need no special-casing. The returned set must not be modified.
func (n *NFA) Transitions(state int, symbol rune) StateSet {
	return n.transitions[state][symbol]
}

// AddStart marks the given states as start states.
func (n *NFA) AddStart(states ...int) {
	for _, st := range states {
		n.start.Add(st)
	}
}

// AddAccept marks the given states as accept states.
func (n *NFA) AddAccept(states ...int) {
	for _, st := range states {
		n.accept.Add(st)
	}
}

// Start returns the start state set. The returned set must not be modified.
func (n *NFA) Start() StateSet { return n.start }

// Accept returns the accept state set. The returned set must not be modified.
func (n *NFA) Accept() StateSet { return n.accept }
