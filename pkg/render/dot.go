// Package render draws finished machines.
//
// It converts a [machine.Machine] into Graphviz DOT and optionally
// rasterizes the DOT to SVG or PNG. The package is a pure consumer of the
// machine's transition table; it never touches construction.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/lbehrens/powerset/pkg/machine"
)

// Options configures DOT rendering.
type Options struct {
	// Rankdir sets the Graphviz layout direction ("LR" or "TB").
	// Defaults to "LR", the conventional orientation for automata.
	Rankdir string
}

// ToDOT converts a machine to Graphviz DOT format. Accept states are drawn
// as double circles, the dead state (the empty set) with a dashed grey
// outline, and an edge from an invisible point marks the start state.
// The resulting DOT string can be rendered with [ToSVG] or [ToPNG].
func ToDOT(m machine.Machine, opts Options) string {
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph DFA {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  __start__ [shape=point, style=invis];\n")
	buf.WriteString("\n")

	for _, set := range m.States() {
		name := nodeName(set)
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(set))}
		if m.IsAccepting(set) {
			attrs = append(attrs, "shape=doublecircle")
		}
		if len(set) == 0 {
			attrs = append(attrs, "style=dashed", "color=grey", "fontcolor=grey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  __start__ -> %q;\n", nodeName(m.Start))
	for _, e := range m.Transitions {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", nodeName(e.From), nodeName(e.To), e.Symbol)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeName is the DOT identifier of a state set: its sorted ids joined by
// commas. The empty (dead) state gets a stable sentinel name.
func nodeName(set []int) string {
	if len(set) == 0 {
		return "__dead__"
	}
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

// nodeLabel renders a state set as "{0,1}"; the dead state as "∅".
func nodeLabel(set []int) string {
	if len(set) == 0 {
		return "∅"
	}
	return "{" + nodeName(set) + "}"
}
