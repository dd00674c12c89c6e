package machine

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes a human-readable rendering of the machine, grouped by
// source state set with each symbol's destination listed. This is a console
// convenience for external consumers; the JSON form is the contract.
//
//	start:  {0}
//	accept: {0,2}
//
//	From {0}:
//	  --a--> {0}
//	  --b--> {0,1}
func WriteText(m Machine, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "start:  %s\n", fmtSet(m.Start)); err != nil {
		return err
	}
	accepts := make([]string, 0, len(m.Accept))
	for _, a := range m.Accept {
		accepts = append(accepts, fmtSet(a))
	}
	if _, err := fmt.Fprintf(w, "accept: %s\n", strings.Join(accepts, " ")); err != nil {
		return err
	}

	var current string
	for _, e := range m.Transitions {
		from := fmtSet(e.From)
		if from != current {
			current = from
			if _, err := fmt.Fprintf(w, "\nFrom %s:\n", from); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  --%s--> %s\n", e.Symbol, fmtSet(e.To)); err != nil {
			return err
		}
	}
	return nil
}

func fmtSet(set []int) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = fmt.Sprint(s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
