package pipeline

import (
	"context"
	"testing"

	"github.com/lbehrens/powerset/pkg/cache"
	"github.com/lbehrens/powerset/pkg/errors"
	"github.com/lbehrens/powerset/pkg/machine"
)

func sampleDescription() machine.Description {
	return machine.Description{
		Start:    []int{0},
		Accept:   []int{2},
		Alphabet: []string{"a", "b"},
		Transitions: []machine.Transition{
			{From: 0, Symbol: "a", To: 0},
			{From: 0, Symbol: "b", To: 0},
			{From: 0, Symbol: "b", To: 1},
			{From: 1, Symbol: "a", To: 2},
		},
	}
}

func TestRunnerDeterminize(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	result, err := r.Determinize(context.Background(), sampleDescription())
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	if result.Cached {
		t.Error("first run should not be cached")
	}
	if len(result.Machine.Transitions) != 6 {
		t.Errorf("got %d transitions, want 6", len(result.Machine.Transitions))
	}
	if len(result.Machine.Accept) != 1 {
		t.Errorf("got %d accept states, want 1", len(result.Machine.Accept))
	}
}

func TestRunnerCacheHit(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)

	first, err := r.Determinize(ctx, sampleDescription())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cached {
		t.Error("first run should miss the cache")
	}

	second, err := r.Determinize(ctx, sampleDescription())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if len(second.Machine.Transitions) != len(first.Machine.Transitions) {
		t.Error("cached machine differs from computed machine")
	}
}

func TestRunnerInvalidDescription(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	desc := sampleDescription()
	desc.Alphabet = append(desc.Alphabet, machine.EpsilonMarker)

	_, err := r.Determinize(context.Background(), desc)
	if !errors.Is(err, errors.ErrCodeInvalidAlphabet) {
		t.Fatalf("err = %v, want INVALID_ALPHABET", err)
	}
}
