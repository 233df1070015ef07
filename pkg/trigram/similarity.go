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

// SetSimilarity returns |a ∩ b| / |a ∪ b|. Two empty sets score 0.0, not 1.0.
//
// The ratio is a single float64 division of two exact integer counts, so
// every caller computing it from the same sets gets the same bits.
func SetSimilarity(a, b Set) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	shared := 0
	for t := range a {
		if _, ok := b[t]; ok {
			shared++
		}
	}

	union := len(a) + len(b) - shared
	if union == 0 {
		return 0.0
	}
	return float64(shared) / float64(union)
}

// Similarity normalizes both strings, builds their trigram sets and returns
// their Jaccard similarity in [0.0, 1.0].
//
// Example:
//
//	Similarity("hello", "help") // 0.375 (3 shared / 8 total)
func Similarity(a, b string) float64 {
	return SetSimilarity(FromString(a), FromString(b))
}
