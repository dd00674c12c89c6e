package machine

import (
	"encoding/json"
	"slices"
	"unicode/utf8"

	"github.com/lbehrens/powerset/pkg/automaton"
	"github.com/lbehrens/powerset/pkg/errors"
)

// EpsilonMarker is the wire spelling of an epsilon transition. The literal
// epsilon rune "ε" is accepted as an alias when decoding.
const EpsilonMarker = "eps"

// =============================================================================
// Description - Nondeterministic Automaton Input
// =============================================================================

// Transition is one triple of a nondeterministic transition relation.
// Multiple triples with the same from/symbol model nondeterminism.
type Transition struct {
	From   int    `json:"from" bson:"from" toml:"from"`
	Symbol string `json:"symbol" bson:"symbol" toml:"symbol"`
	To     int    `json:"to" bson:"to" toml:"to"`
}

// Description is the wire form of an NFA: an ordered list of transition
// triples plus start states, accept states, and the declared alphabet.
// The alphabet lists only real input symbols; epsilon transitions use
// [EpsilonMarker] in triples and are never part of the alphabet.
type Description struct {
	Start       []int        `json:"start" bson:"start" toml:"start"`
	Accept      []int        `json:"accept" bson:"accept" toml:"accept"`
	Alphabet    []string     `json:"alphabet" bson:"alphabet" toml:"alphabet"`
	Transitions []Transition `json:"transitions" bson:"transitions" toml:"transition"`
}

// ToNFA converts the description into engine inputs: the NFA and the decoded
// alphabet. It validates every symbol (single rune or the epsilon marker)
// and rejects alphabets that contain epsilon, so malformed input is surfaced
// here rather than inside the construction loop.
func (d Description) ToNFA() (*automaton.NFA, []rune, error) {
	alphabet := make([]rune, 0, len(d.Alphabet))
	for _, s := range d.Alphabet {
		symbol, err := parseSymbol(s)
		if err != nil {
			return nil, nil, err
		}
		if symbol == automaton.Epsilon {
			return nil, nil, errors.New(errors.ErrCodeInvalidAlphabet,
				"alphabet must not contain the epsilon marker %q", s)
		}
		alphabet = append(alphabet, symbol)
	}

	n := automaton.NewNFA()
	n.AddStart(d.Start...)
	n.AddAccept(d.Accept...)
	for i, tr := range d.Transitions {
		symbol, err := parseSymbol(tr.Symbol)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"transition %d (%d → %d)", i, tr.From, tr.To)
		}
		n.AddTransition(tr.From, symbol, tr.To)
	}

	return n, alphabet, nil
}

// Canonical returns a normalized JSON encoding of the description, suitable
// as a cache-key input: start, accept, and alphabet sorted, transitions
// sorted by (from, symbol, to). Two descriptions of the same automaton with
// reordered fields hash identically.
func (d Description) Canonical() []byte {
	norm := Description{
		Start:       append([]int(nil), d.Start...),
		Accept:      append([]int(nil), d.Accept...),
		Alphabet:    append([]string(nil), d.Alphabet...),
		Transitions: append([]Transition(nil), d.Transitions...),
	}
	slices.Sort(norm.Start)
	slices.Sort(norm.Accept)
	slices.Sort(norm.Alphabet)
	slices.SortFunc(norm.Transitions, func(a, b Transition) int {
		if a.From != b.From {
			return a.From - b.From
		}
		if a.Symbol != b.Symbol {
			if a.Symbol < b.Symbol {
				return -1
			}
			return 1
		}
		return a.To - b.To
	})
	data, _ := json.Marshal(norm)
	return data
}

// parseSymbol decodes a wire symbol: the epsilon marker or a single rune.
func parseSymbol(s string) (rune, error) {
	if s == EpsilonMarker || s == string(automaton.Epsilon) {
		return automaton.Epsilon, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, errors.New(errors.ErrCodeInvalidSymbol,
			"symbol %q must be a single rune or %q", s, EpsilonMarker)
	}
	return r, nil
}

// =============================================================================
// Machine - Deterministic Automaton Output
// =============================================================================

// Edge is one record of a deterministic transition table. From and To are
// sorted sets of NFA state ids; their sorted form is the state's identity.
type Edge struct {
	From   []int  `json:"from" bson:"from"`
	Symbol string `json:"symbol" bson:"symbol"`
	To     []int  `json:"to" bson:"to"`
}

// Machine is the wire form of a finished DFA: the transition table plus the
// start state set and the accepting state sets. Record order follows DFA
// discovery order for deterministic output.
type Machine struct {
	Start       []int    `json:"start" bson:"start"`
	Accept      [][]int  `json:"accept" bson:"accept"`
	Alphabet    []string `json:"alphabet" bson:"alphabet"`
	Transitions []Edge   `json:"transitions" bson:"transitions"`
}

// FromDFA converts a finished DFA to its serialization format.
func FromDFA(d *automaton.DFA) Machine {
	m := Machine{
		Start:    d.Start().Sorted(),
		Alphabet: make([]string, 0, len(d.Alphabet())),
	}
	for _, symbol := range d.Alphabet() {
		m.Alphabet = append(m.Alphabet, string(symbol))
	}
	for _, s := range d.Accepting() {
		m.Accept = append(m.Accept, s.Sorted())
	}
	for _, tr := range d.Transitions() {
		m.Transitions = append(m.Transitions, Edge{
			From:   tr.From.Sorted(),
			Symbol: string(tr.Symbol),
			To:     tr.To.Sorted(),
		})
	}
	return m
}

// States returns the distinct state sets of the machine in first-appearance
// order over the transition records.
func (m Machine) States() [][]int {
	var out [][]int
	seen := make(map[string]bool)
	add := func(set []int) {
		key := automaton.NewStateSet(set...).Key()
		if !seen[key] {
			seen[key] = true
			out = append(out, set)
		}
	}
	add(m.Start)
	for _, e := range m.Transitions {
		add(e.From)
		add(e.To)
	}
	return out
}

// IsAccepting reports whether the given state set is an accept state.
func (m Machine) IsAccepting(set []int) bool {
	s := automaton.NewStateSet(set...)
	for _, a := range m.Accept {
		if s.Equal(automaton.NewStateSet(a...)) {
			return true
		}
	}
	return false
}
