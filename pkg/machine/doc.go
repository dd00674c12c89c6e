// Package machine provides serialization types for automata.
//
// This package defines the canonical wire format for Powerset's automata,
// used for JSON files, API requests and responses, caching, and storage.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external formats:
//
//   - [Description]: a nondeterministic automaton as transition triples
//   - [Machine]: a finished deterministic automaton as transition records
//   - pkg/automaton: the in-memory representation and the conversion engine
//
// Use [Description.ToNFA] and [FromDFA] to cross the boundary. The engine
// itself never does I/O; everything here is a consumer of its output.
//
// # Description Format
//
// Descriptions use a simple JSON triple format:
//
//	{
//	  "start": [0],
//	  "accept": [2],
//	  "alphabet": ["a", "b"],
//	  "transitions": [
//	    {"from": 0, "symbol": "a", "to": 0},
//	    {"from": 0, "symbol": "eps", "to": 1}
//	  ]
//	}
//
// Symbols are single-rune strings. The reserved marker "eps" (or the literal
// "ε") denotes an epsilon transition and must not appear in the alphabet.
// TOML descriptions with the same fields are supported via [ReadDescriptionFile]
// for .toml paths.
//
// # Machine Format
//
// Machines enumerate the deterministic transition table as records whose
// endpoints are sorted NFA-state sets:
//
//	{
//	  "start": [0],
//	  "accept": [[0, 2]],
//	  "alphabet": ["a", "b"],
//	  "transitions": [
//	    {"from": [0], "symbol": "a", "to": [0]},
//	    {"from": [0], "symbol": "b", "to": [0, 1]}
//	  ]
//	}
//
// Record order follows DFA discovery order, so output is deterministic.
//
// # Common Operations
//
//	desc, _ := machine.ReadDescriptionFile("nfa.json")   // File → Description
//	nfa, alphabet, _ := desc.ToNFA()                     // Description → engine input
//	m := machine.FromDFA(dfa)                            // DFA → Machine
//	machine.WriteMachineFile(m, "dfa.json")              // Machine → File
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package machine
