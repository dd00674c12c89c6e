package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lbehrens/powerset/pkg/automaton"
	"github.com/lbehrens/powerset/pkg/machine"
	"github.com/lbehrens/powerset/pkg/pipeline"
)

// newExploreCmd creates the explore command: an interactive walk through a
// determinized machine, one input symbol per keypress.
func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Walk a determinized machine interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, args[0])
		},
	}
}

func runExplore(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	desc, err := machine.ReadDescriptionFile(path)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, logger)
	result, err := runner.Determinize(cmd.Context(), desc)
	if err != nil {
		return err
	}

	model := newExploreModel(result.Machine)
	_, err = tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// ExploreModel - Interactive machine walking
// =============================================================================

// exploreModel is the bubbletea model for stepping through a machine.
type exploreModel struct {
	m       machine.Machine
	table   map[string]map[string][]int // state key -> symbol -> destination
	current []int
	input   string // symbols consumed so far
}

func newExploreModel(m machine.Machine) exploreModel {
	table := make(map[string]map[string][]int)
	for _, e := range m.Transitions {
		key := stateKey(e.From)
		if table[key] == nil {
			table[key] = make(map[string][]int)
		}
		table[key][e.Symbol] = e.To
	}
	return exploreModel{m: m, table: table, current: m.Start}
}

func stateKey(set []int) string {
	return automaton.NewStateSet(set...).Key()
}

func (e exploreModel) Init() tea.Cmd {
	return nil
}

func (e exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return e, tea.Quit
		case "r":
			e.current = e.m.Start
			e.input = ""
			return e, nil
		default:
			symbol := msg.String()
			if next, ok := e.table[stateKey(e.current)][symbol]; ok {
				e.current = next
				e.input += symbol
			}
			return e, nil
		}
	}
	return e, nil
}

func (e exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Machine explorer") + "\n\n")

	input := e.input
	if input == "" {
		input = StyleDim.Render("(empty)")
	}
	b.WriteString("input:  " + StyleValue.Render(input) + "\n")

	state := fmtStateSet(e.current)
	if e.m.IsAccepting(e.current) {
		b.WriteString("state:  " + StyleSuccess.Render(state+" (accepting)") + "\n")
	} else {
		b.WriteString("state:  " + StyleValue.Render(state) + "\n")
	}

	b.WriteString("\n")
	for _, symbol := range e.m.Alphabet {
		if next, ok := e.table[stateKey(e.current)][symbol]; ok {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleHighlight.Render(symbol),
				StyleDim.Render(iconArrow),
				fmtStateSet(next)))
		}
	}

	b.WriteString("\n" + StyleDim.Render("type a symbol to step · r reset · q quit") + "\n")
	return b.String()
}

func fmtStateSet(set []int) string {
	if len(set) == 0 {
		return "∅"
	}
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = fmt.Sprint(s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
