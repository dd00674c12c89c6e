package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lbehrens/powerset/pkg/machine"
)

func exploreMachine() machine.Machine {
	return machine.Machine{
		Start:    []int{0},
		Accept:   [][]int{{0, 2}},
		Alphabet: []string{"a", "b"},
		Transitions: []machine.Edge{
			{From: []int{0}, Symbol: "a", To: []int{0}},
			{From: []int{0}, Symbol: "b", To: []int{0, 1}},
			{From: []int{0, 1}, Symbol: "a", To: []int{0, 2}},
			{From: []int{0, 1}, Symbol: "b", To: []int{0, 1}},
			{From: []int{0, 2}, Symbol: "a", To: []int{0}},
			{From: []int{0, 2}, Symbol: "b", To: []int{0, 1}},
		},
	}
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestExploreModelSteps(t *testing.T) {
	var model tea.Model = newExploreModel(exploreMachine())

	// "ba" leads to the accepting state {0,2}.
	model, _ = model.Update(key('b'))
	model, _ = model.Update(key('a'))

	e := model.(exploreModel)
	if e.input != "ba" {
		t.Errorf("input = %q, want ba", e.input)
	}
	if stateKey(e.current) != "0,2" {
		t.Errorf("current = %v, want {0,2}", e.current)
	}
	if !strings.Contains(e.View(), "accepting") {
		t.Error("view should flag the accepting state")
	}
}

func TestExploreModelIgnoresForeignSymbols(t *testing.T) {
	var model tea.Model = newExploreModel(exploreMachine())

	model, _ = model.Update(key('z'))
	e := model.(exploreModel)
	if e.input != "" {
		t.Errorf("foreign symbol should not step, input = %q", e.input)
	}
	if stateKey(e.current) != "0" {
		t.Errorf("current = %v, want start", e.current)
	}
}

func TestExploreModelReset(t *testing.T) {
	var model tea.Model = newExploreModel(exploreMachine())

	model, _ = model.Update(key('b'))
	model, _ = model.Update(key('r'))

	e := model.(exploreModel)
	if e.input != "" || stateKey(e.current) != "0" {
		t.Errorf("r should reset to start, input=%q current=%v", e.input, e.current)
	}
}

func TestExploreModelQuit(t *testing.T) {
	var model tea.Model = newExploreModel(exploreMachine())

	_, cmd := model.Update(key('q'))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestValidateRenderFormat(t *testing.T) {
	for _, format := range []string{"dot", "svg", "png"} {
		if err := validateRenderFormat(format); err != nil {
			t.Errorf("validateRenderFormat(%q) = %v", format, err)
		}
	}
	if err := validateRenderFormat("pdf"); err == nil {
		t.Error("unknown format should be rejected")
	}
}
