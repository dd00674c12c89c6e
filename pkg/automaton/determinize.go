package automaton

import (
	"errors"
	"slices"
)

// ErrEpsilonInAlphabet is returned by [Determinize] when the declared
// alphabet contains [Epsilon]. Epsilon is never a steppable symbol; the
// alphabet must list only real input symbols.
var ErrEpsilonInAlphabet = errors.New("alphabet must not contain epsilon")

// Determinize converts n into an equivalent DFA over the given alphabet
// using subset construction.
//
// Starting from the epsilon-closure of the NFA start states, the worklist
// loop pops an unexplored DFA state, computes for each alphabet symbol the
// union of NFA destinations followed by its epsilon-closure, registers the
// result if its state set was not seen before, and records the transition.
// Only state sets reachable from the start are ever materialized, never the
// full power set, though the reachable fragment is explored eagerly and
// completely in this one pass.
//
// The resulting table is total: every discovered state has exactly one
// destination per alphabet symbol. An empty successor set becomes the dead
// state, whose transitions all lead back to itself. Duplicate alphabet
// symbols are ignored; worklist and alphabet ordering affect only discovery
// order, never the resulting table or accept set.
//
// The NFA may mention symbols outside the alphabet; such transitions are
// simply never explored. The only rejected input is an alphabet containing
// [Epsilon], reported as [ErrEpsilonInAlphabet].
func Determinize(n *NFA, alphabet []rune) (*DFA, error) {
	if slices.Contains(alphabet, Epsilon) {
		return nil, ErrEpsilonInAlphabet
	}
	symbols := dedupeSymbols(alphabet)

	start := n.EpsilonClosure(n.Start())
	d := newDFA(start, symbols)

	// Registry of every discovered state set, keyed by canonical form.
	seen := map[string]StateSet{start.Key(): start}
	queue := []StateSet{start}
	d.addState(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.Intersects(n.Accept()) {
			d.markAccepting(current)
		}

		for _, symbol := range symbols {
			move := NewStateSet()
			for state := range current {
				move.AddAll(n.Transitions(state, symbol))
			}
			next := n.EpsilonClosure(move)

			if _, ok := seen[next.Key()]; !ok {
				seen[next.Key()] = next
				queue = append(queue, next)
				d.addState(next)
			}

			d.addTransition(current, symbol, next)
		}
	}

	return d, nil
}

// dedupeSymbols drops repeated symbols while preserving first-seen order.
func dedupeSymbols(alphabet []rune) []rune {
	out := make([]rune, 0, len(alphabet))
	seen := make(map[rune]struct{}, len(alphabet))
	for _, s := range alphabet {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
