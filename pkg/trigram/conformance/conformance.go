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

// Package conformance holds the shared fixture set every trigram backend is
// checked against, and helpers to compare two backends bit for bit.
//
// The fixture set is embedded and versioned. Bump Version whenever rows are
// added, removed or changed so consumers can tell which set they ran.
package conformance

import (
	_ "embed"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/gocarina/gocsv"
)

// Version identifies the revision of the embedded fixture set.
const Version = 1

// Fixture families.
const (
	FamilyASCII       = "ascii"
	FamilyLatin       = "latin"
	FamilyCyrillic    = "cyrillic"
	FamilyCJK         = "cjk"
	FamilyGreek       = "greek"
	FamilyPunctuation = "punctuation"
	FamilyWhitespace  = "whitespace"
)

//go:embed fixtures.csv
var fixturesCSV []byte

// Case is one fixture row.
type Case struct {
	Family string `csv:"family" json:"family" yaml:"family"`
	Left   string `csv:"left" json:"left" yaml:"left"`
	Right  string `csv:"right" json:"right" yaml:"right"`
}

func (c Case) String() string {
	return fmt.Sprintf("%s: %q vs %q", c.Family, c.Left, c.Right)
}

// Pair converts the case to an engine input.
func (c Case) Pair() trigram.Pair {
	return trigram.Pair{Left: c.Left, Right: c.Right}
}

var loadCases = sync.OnceValues(func() ([]Case, error) {
	var cases []Case
	if err := gocsv.UnmarshalBytes(fixturesCSV, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse conformance fixtures: %w", err)
	}
	return cases, nil
})

// Cases returns a copy of the fixture set. The embedded data is parsed once.
func Cases() ([]Case, error) {
	cases, err := loadCases()
	if err != nil {
		return nil, err
	}
	return slices.Clone(cases), nil
}

// Pairs returns the fixture set as engine inputs.
func Pairs() ([]trigram.Pair, error) {
	cases, err := Cases()
	if err != nil {
		return nil, err
	}
	pairs := make([]trigram.Pair, len(cases))
	for i, c := range cases {
		pairs[i] = c.Pair()
	}
	return pairs, nil
}

// Mismatch records an operation where two engines disagreed.
type Mismatch struct {
	Operation string `json:"operation" yaml:"operation"`
	Case      Case   `json:"case" yaml:"case"`
	Reference string `json:"reference" yaml:"reference"`
	Candidate string `json:"candidate" yaml:"candidate"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s %s: reference %s, candidate %s", m.Operation, m.Case, m.Reference, m.Candidate)
}

func sameBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func formatScore(f float64) string {
	return fmt.Sprintf("%v (%#016x)", f, math.Float64bits(f))
}

// CheckParity runs every fixture through both engines and reports each
// result that is not bit-identical. It covers pairwise and batch similarity,
// and best match and score all with each left side as the needle and every
// right side as a haystack.
func CheckParity(reference, candidate trigram.Engine) ([]Mismatch, error) {
	cases, err := Cases()
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch

	pairs := make([]trigram.Pair, len(cases))
	haystacks := make([]string, len(cases))
	for i, c := range cases {
		pairs[i] = c.Pair()
		haystacks[i] = c.Right

		ref := reference.Similarity(c.Left, c.Right)
		got := candidate.Similarity(c.Left, c.Right)
		if !sameBits(ref, got) {
			mismatches = append(mismatches, Mismatch{
				Operation: "similarity",
				Case:      c,
				Reference: formatScore(ref),
				Candidate: formatScore(got),
			})
		}
	}

	refBatch := reference.SimilarityBatch(pairs)
	gotBatch := candidate.SimilarityBatch(pairs)
	for i, c := range cases {
		if !sameBits(refBatch[i], gotBatch[i]) {
			mismatches = append(mismatches, Mismatch{
				Operation: "similarity_batch",
				Case:      c,
				Reference: formatScore(refBatch[i]),
				Candidate: formatScore(gotBatch[i]),
			})
		}
	}

	for _, c := range cases {
		refBest, refErr := reference.BestMatch(c.Left, haystacks)
		gotBest, gotErr := candidate.BestMatch(c.Left, haystacks)
		if (refErr == nil) != (gotErr == nil) || refBest.Index != gotBest.Index ||
			!sameBits(refBest.Score, gotBest.Score) {
			mismatches = append(mismatches, Mismatch{
				Operation: "best_match",
				Case:      c,
				Reference: fmt.Sprintf("%d/%s", refBest.Index, formatScore(refBest.Score)),
				Candidate: fmt.Sprintf("%d/%s", gotBest.Index, formatScore(gotBest.Score)),
			})
		}

		refAll := reference.ScoreAll(c.Left, haystacks, 0)
		gotAll := candidate.ScoreAll(c.Left, haystacks, 0)
		if !sameMatches(refAll, gotAll) {
			mismatches = append(mismatches, Mismatch{
				Operation: "score_all",
				Case:      c,
				Reference: fmt.Sprint(refAll),
				Candidate: fmt.Sprint(gotAll),
			})
		}
	}

	return mismatches, nil
}

func sameMatches(a, b []trigram.Match) bool {
	return slices.EqualFunc(a, b, func(x, y trigram.Match) bool {
		return x.Index == y.Index && sameBits(x.Score, y.Score)
	})
}

// Repeat returns n copies of the pairs laid end to end. Used to push a
// fixture set past a parallel backend's threshold.
func Repeat(pairs []trigram.Pair, n int) []trigram.Pair {
	out := make([]trigram.Pair, 0, len(pairs)*max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, pairs...)
	}
	return out
}

// IsSingleWord reports whether text normalizes to at most one word. Fixtures
// where both sides are single words are comparable with a live pg_trgm.
func IsSingleWord(text string) bool {
	return len(trigram.Normalize(text)) <= 1
}
