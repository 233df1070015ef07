// Zaparoo Trigram
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Trigram.
//
// Zaparoo Trigram is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Trigram is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Trigram.  If not, see <http://www.gnu.org/licenses/>.

package trigram

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the smallest input size the parallel backend
// fans out for. Smaller inputs run on the calling goroutine.
const DefaultParallelThreshold = 250

// ErrUnknownBackend is returned for backend names New does not recognise.
var ErrUnknownBackend = errors.New("unknown trigram backend")

// Backend names a scheduling strategy for the engine.
type Backend string

const (
	// BackendAuto picks parallel when more than one CPU is available.
	BackendAuto Backend = "auto"
	// BackendPortable runs everything on the calling goroutine.
	BackendPortable Backend = "portable"
	// BackendParallel spreads large batches across worker goroutines.
	BackendParallel Backend = "parallel"
)

// ParseBackend converts a config or flag value to a Backend. An empty value
// is BackendAuto.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendPortable:
		return BackendPortable, nil
	case BackendParallel:
		return BackendParallel, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownBackend, s)
	}
}

// Engine is the trigram similarity call contract. All implementations return
// bit-identical results for the same input and are safe for concurrent use.
type Engine interface {
	// Similarity returns the trigram similarity of a and b.
	Similarity(a, b string) float64
	// SimilarityBatch scores every pair independently, in input order.
	SimilarityBatch(pairs []Pair) []float64
	// BestMatch returns the haystack most similar to needle. The lowest index
	// wins ties. Returns ErrEmptyHaystacks when haystacks is empty.
	BestMatch(needle string, haystacks []string) (Match, error)
	// ScoreAll returns every haystack scoring at least minThreshold, sorted by
	// score descending and then index ascending.
	ScoreAll(needle string, haystacks []string, minThreshold float64) []Match
	// Backend reports which strategy the engine was built with.
	Backend() Backend
}

// Options configures New.
type Options struct {
	Backend           Backend
	ParallelThreshold int
	Workers           int
}

// New selects and builds an engine. Selection happens once here; the returned
// engine never switches strategy between calls.
//
//nolint:gocritic // options struct passed by value for immutability
func New(opts Options) (Engine, error) {
	backend, err := ParseBackend(string(opts.Backend))
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if backend == BackendAuto {
		if workers > 1 {
			backend = BackendParallel
		} else {
			backend = BackendPortable
		}
	}

	if backend == BackendPortable {
		log.Debug().Msg("selected portable trigram backend")
		return Portable{}, nil
	}

	threshold := opts.ParallelThreshold
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}

	log.Debug().
		Int("workers", workers).
		Int("threshold", threshold).
		Msg("selected parallel trigram backend")
	return NewParallel(workers, threshold), nil
}

// Portable is the reference engine. It does all work on the calling goroutine.
type Portable struct{}

func (Portable) Backend() Backend {
	return BackendPortable
}

func (Portable) Similarity(a, b string) float64 {
	return Similarity(a, b)
}

func (Portable) SimilarityBatch(pairs []Pair) []float64 {
	out := make([]float64, len(pairs))
	scorePairs(pairs, out, 0, len(pairs))
	return out
}

func (Portable) BestMatch(needle string, haystacks []string) (Match, error) {
	if len(haystacks) == 0 {
		return Match{}, ErrEmptyHaystacks
	}
	scores := make([]float64, len(haystacks))
	scoreHaystacks(FromString(needle), haystacks, scores, 0, len(haystacks))
	return pickBest(scores), nil
}

func (Portable) ScoreAll(needle string, haystacks []string, minThreshold float64) []Match {
	scores := make([]float64, len(haystacks))
	scoreHaystacks(FromString(needle), haystacks, scores, 0, len(haystacks))
	return rankScores(scores, minThreshold)
}

// Parallel splits inputs of at least threshold items into contiguous chunks
// scored on separate goroutines. Each result lands in its original index, and
// selection and sorting run afterwards on the calling goroutine, so output
// never depends on goroutine completion order.
type Parallel struct {
	workers   int
	threshold int
}

// NewParallel returns a parallel engine using at most workers goroutines for
// inputs of threshold items or more.
func NewParallel(workers, threshold int) *Parallel {
	return &Parallel{
		workers:   max(workers, 1),
		threshold: max(threshold, 1),
	}
}

func (*Parallel) Backend() Backend {
	return BackendParallel
}

// fanOut calls fn over [0, n) in contiguous chunks.
func (p *Parallel) fanOut(n int, fn func(lo, hi int)) {
	if n < p.threshold || p.workers < 2 {
		fn(0, n)
		return
	}

	chunk := (n + p.workers - 1) / p.workers
	log.Debug().Int("items", n).Int("chunk", chunk).Msg("fanning out trigram scoring")

	var g errgroup.Group
	g.SetLimit(p.workers)
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()
}

func (*Parallel) Similarity(a, b string) float64 {
	return Similarity(a, b)
}

func (p *Parallel) SimilarityBatch(pairs []Pair) []float64 {
	out := make([]float64, len(pairs))
	p.fanOut(len(pairs), func(lo, hi int) {
		scorePairs(pairs, out, lo, hi)
	})
	return out
}

func (p *Parallel) scoreAll(needle string, haystacks []string) []float64 {
	needleSet := FromString(needle)
	scores := make([]float64, len(haystacks))
	p.fanOut(len(haystacks), func(lo, hi int) {
		scoreHaystacks(needleSet, haystacks, scores, lo, hi)
	})
	return scores
}

func (p *Parallel) BestMatch(needle string, haystacks []string) (Match, error) {
	if len(haystacks) == 0 {
		return Match{}, ErrEmptyHaystacks
	}
	return pickBest(p.scoreAll(needle, haystacks)), nil
}

func (p *Parallel) ScoreAll(needle string, haystacks []string, minThreshold float64) []Match {
	return rankScores(p.scoreAll(needle, haystacks), minThreshold)
}
