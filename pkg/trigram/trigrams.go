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
	"slices"
)

// Trigram is three consecutive codepoints. Two trigrams are equal only when
// all three codepoints are equal, regardless of their UTF-8 width.
type Trigram [3]rune

func (t Trigram) String() string {
	return string(t[:])
}

// Set holds distinct trigrams.
type Set map[Trigram]struct{}

// Contains reports whether t is in the set.
func (s Set) Contains(t Trigram) bool {
	_, ok := s[t]
	return ok
}

// Build joins padded words with a single boundary and collects every
// three-codepoint window into a set. Sequences shorter than three codepoints
// produce an empty set.
func Build(padded []string) Set {
	size := 0
	for _, w := range padded {
		size += len(w) + 1
	}

	joined := make([]rune, 0, size)
	for i, w := range padded {
		if i > 0 {
			joined = append(joined, boundary)
		}
		for _, r := range w {
			joined = append(joined, r)
		}
	}

	if len(joined) < 3 {
		return Set{}
	}

	set := make(Set, len(joined)-2)
	for i := 0; i < len(joined)-2; i++ {
		set[Trigram{joined[i], joined[i+1], joined[i+2]}] = struct{}{}
	}
	return set
}

// FromString normalizes text and builds its trigram set.
func FromString(text string) Set {
	return Build(Normalize(text))
}

// Trigrams returns the distinct trigrams of text as sorted strings, in the
// same spirit as pg_trgm's show_trgm. Useful for inspecting why two strings
// score the way they do.
//
// Example:
//
//	Trigrams("cat") → ["  c", " ca", "at ", "cat"]
func Trigrams(text string) []string {
	set := FromString(text)
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t.String())
	}
	slices.Sort(out)
	return out
}
