package automaton

// EpsilonClosure returns the smallest superset of states closed under
// epsilon transitions: every state reachable from a member of states by
// following zero or more [Epsilon] edges.
//
// The computation is iterative with an explicit stack, so arbitrarily long
// or cyclic epsilon chains cannot overflow the call stack. Each state enters
// the worklist at most once, which bounds the loop by the number of NFA
// states. The result is monotone (states ⊆ closure) and idempotent
// (closing a closed set is a no-op); worklist order does not affect it.
func (n *NFA) EpsilonClosure(states StateSet) StateSet {
	closure := states.Clone()

	stack := make([]int, 0, len(states))
	for st := range states {
		stack = append(stack, st)
	}

	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for next := range n.Transitions(state, Epsilon) {
			if closure.Add(next) {
				stack = append(stack, next)
			}
		}
	}

	return closure
}
