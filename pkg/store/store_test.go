package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lbehrens/powerset/pkg/machine"
)

func sampleRecord(id string) Record {
	return Record{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Description: machine.Description{
			Start:       []int{0},
			Accept:      []int{1},
			Alphabet:    []string{"a"},
			Transitions: []machine.Transition{{From: 0, Symbol: "a", To: 1}},
		},
		Machine: machine.Machine{
			Start:    []int{0},
			Accept:   [][]int{{1}},
			Alphabet: []string{"a"},
			Transitions: []machine.Edge{
				{From: []int{0}, Symbol: "a", To: []int{1}},
				{From: []int{1}, Symbol: "a", To: []int{}},
			},
		},
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get of missing id: err = %v, want ErrNotFound", err)
	}

	r := sampleRecord("m1")
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "m1" || len(got.Machine.Transitions) != 2 {
		t.Errorf("unexpected record: %+v", got)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("List returned %d records, want 1", len(records))
	}

	if err := s.Delete(ctx, "m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}

	// Deleting a missing id is a no-op.
	if err := s.Delete(ctx, "m1"); err != nil {
		t.Errorf("Delete of missing id: %v", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r := sampleRecord("m1")
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}
	r.Description.Accept = []int{0}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	got, err := s.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Description.Accept) != 1 || got.Description.Accept[0] != 0 {
		t.Errorf("Put should replace, got accept = %v", got.Description.Accept)
	}
}
