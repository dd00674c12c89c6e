// Package automaton implements finite automata and the subset construction
// that converts a nondeterministic automaton (NFA) into an equivalent
// deterministic one (DFA).
//
// # Architecture
//
// The package is a pure in-memory transformation with no I/O:
//
//   - [NFA]: nondeterministic transition relation with epsilon transitions
//     and multiple start states
//   - [NFA.EpsilonClosure]: states reachable via zero or more epsilon edges
//   - [Determinize]: worklist-driven subset construction
//   - [DFA]: the resulting deterministic transition table, immutable once
//     construction finishes
//
// Serialization lives in pkg/machine; rendering in pkg/render. Both are
// consumers of the finished [DFA] and never reach into construction.
//
// # Subset Construction
//
// Determinize explores only the DFA states actually reachable from the
// epsilon-closure of the NFA start states, never the full power set. DFA
// states are sets of NFA states compared by value: two discoveries of the
// same underlying set are the same DFA state. The empty set is a legitimate
// state (the dead sink) and self-loops on every symbol.
//
// # Usage
//
//	n := automaton.NewNFA()
//	n.AddStart(0)
//	n.AddAccept(2)
//	n.AddTransition(0, 'a', 0)
//	n.AddTransition(0, 'b', 0)
//	n.AddTransition(0, 'b', 1)
//	n.AddTransition(1, 'a', 2)
//
//	d, err := automaton.Determinize(n, []rune{'a', 'b'})
//	if err != nil {
//	    return err
//	}
//	next, err := d.Step(d.Start(), 'b') // {0,1}
//
// # Concurrency
//
// A construction run owns its worklist and registry; no locking is needed.
// A finished DFA is safe for concurrent reads. NFA and DFA values are not
// safe for concurrent mutation.
package automaton
