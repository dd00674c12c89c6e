// Package pipeline provides the shared determinization pipeline for Powerset.
//
// This package implements the description → NFA → DFA → machine path used by
// both the CLI and the API server. Centralizing it keeps caching and
// validation behavior identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Determinize(ctx, desc)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Machine.Start, result.Cached)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lbehrens/powerset/pkg/automaton"
	"github.com/lbehrens/powerset/pkg/cache"
	"github.com/lbehrens/powerset/pkg/errors"
	"github.com/lbehrens/powerset/pkg/machine"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Machine machine.Machine // the determinized automaton
	Cached  bool            // whether the result came from cache
	Elapsed time.Duration   // construction time (zero when cached)
}

// Runner executes the determinization pipeline with caching.
// Construct with NewRunner; the zero value is not usable.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching, a nil
// keyer falls back to the default keyer, and a nil logger discards output.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, keyer: k, logger: logger}
}

// Determinize converts the description into a deterministic machine,
// serving from cache when an identical description was converted before.
// Cache failures degrade to recomputation, never to a pipeline error.
func (r *Runner) Determinize(ctx context.Context, desc machine.Description) (Result, error) {
	key := r.keyer.MachineKey(cache.Hash(desc.Canonical()))

	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache get failed", "key", key, "err", err)
	} else if hit {
		m, err := machine.UnmarshalMachine(data)
		if err == nil {
			r.logger.Debug("cache hit", "key", key)
			return Result{Machine: m, Cached: true}, nil
		}
		r.logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.cache.Delete(ctx, key)
	}

	nfa, alphabet, err := desc.ToNFA()
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	dfa, err := automaton.Determinize(nfa, alphabet)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidAlphabet, err, "determinize")
	}
	elapsed := time.Since(start)

	m := machine.FromDFA(dfa)
	r.logger.Debug("determinized",
		"nfa_states", countNFAStates(desc),
		"dfa_states", dfa.Len(),
		"elapsed", elapsed)

	if data, err := machine.MarshalMachine(m); err == nil {
		if err := r.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.logger.Warn("cache set failed", "key", key, "err", err)
		}
	}

	return Result{Machine: m, Elapsed: elapsed}, nil
}

// countNFAStates counts the distinct states a description mentions.
func countNFAStates(desc machine.Description) int {
	seen := make(map[int]struct{})
	for _, s := range desc.Start {
		seen[s] = struct{}{}
	}
	for _, s := range desc.Accept {
		seen[s] = struct{}{}
	}
	for _, tr := range desc.Transitions {
		seen[tr.From] = struct{}{}
		seen[tr.To] = struct{}{}
	}
	return len(seen)
}
