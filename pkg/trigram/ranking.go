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
	"cmp"
	"errors"
	"slices"
)

// ErrEmptyHaystacks is returned by BestMatch when there is nothing to match
// against. Callers should treat it as "no match found".
var ErrEmptyHaystacks = errors.New("no haystacks to match against")

// Pair is two strings to compare.
type Pair struct {
	Left  string `csv:"left" json:"left" yaml:"left"`
	Right string `csv:"right" json:"right" yaml:"right"`
}

// Match is a haystack's original index and its similarity to the needle.
type Match struct {
	Index int     `json:"index" yaml:"index"`
	Score float64 `json:"score" yaml:"score"`
}

// scorePairs writes the similarity of pairs[lo:hi] into out[lo:hi].
func scorePairs(pairs []Pair, out []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		out[i] = Similarity(pairs[i].Left, pairs[i].Right)
	}
}

// scoreHaystacks writes the similarity of each haystack in [lo, hi) against
// the needle set into out at the haystack's index.
func scoreHaystacks(needle Set, haystacks []string, out []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		out[i] = SetSimilarity(needle, FromString(haystacks[i]))
	}
}

// pickBest returns the highest score, keeping the lowest index on ties.
// scores must not be empty.
func pickBest(scores []float64) Match {
	// scores are never negative, so the first one always wins
	best := Match{Index: 0, Score: -1}
	for i, score := range scores {
		if score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}
	return best
}

// compareMatches orders by score descending, then index ascending.
func compareMatches(a, b Match) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// rankScores keeps scores at or above minThreshold and sorts them with
// compareMatches. A NaN threshold keeps nothing.
func rankScores(scores []float64, minThreshold float64) []Match {
	matches := make([]Match, 0, len(scores))
	for i, score := range scores {
		if score >= minThreshold {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}
	slices.SortFunc(matches, compareMatches)
	return matches
}
