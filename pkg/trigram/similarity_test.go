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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical", a: "hello", b: "hello", expected: 1.0},
		{name: "one letter changed", a: "hello", b: "hallo", expected: 3.0 / 9.0},
		{name: "shared prefix", a: "hello", b: "help", expected: 3.0 / 8.0},
		{name: "nothing shared", a: "hello", b: "world", expected: 0.0},
		{name: "case insensitive", a: "WORLD", b: "world", expected: 1.0},
		{name: "multi word", a: "hello world", b: "hullo world", expected: 11.0 / 17.0},
		{name: "prefix of longer word", a: "test", b: "testing", expected: 4.0 / 9.0},
		{name: "underscore splits words", a: "foo_bar", b: "foobar", expected: 5.0 / 12.0},
		{name: "accent differs", a: "café", b: "cafe", expected: 3.0 / 7.0},
		{name: "sharp s is not expanded", a: "straße", b: "strasse", expected: 4.0 / 11.0},
		{name: "dotted capital i", a: "İstanbul", b: "istanbul", expected: 1.0},
		{name: "cjk split by space", a: "東京", b: "東 京", expected: 1.0 / 8.0},
		{name: "different scripts", a: "привет", b: "privet", expected: 0.0},
		{name: "currency formatting", a: "$1,000.00", b: "$1000.00", expected: 7.0 / 11.0},
		{name: "initialism with dots", a: "LLC", b: "L.L.C.", expected: 1.0 / 9.0},
		{name: "dash vs space", a: "hello—world", b: "hello world", expected: 1.0},
		{name: "single letter", a: "a", b: "a", expected: 1.0},
		{name: "both empty", a: "", b: "", expected: 0.0},
		{name: "one empty", a: "abc", b: "", expected: 0.0},
		{name: "both only punctuation", a: "!!!", b: "???", expected: 0.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Similarity(tt.a, tt.b))
			assert.Equal(t, tt.expected, Similarity(tt.b, tt.a), "similarity must be symmetric")
		})
	}
}

func TestSetSimilarity(t *testing.T) {
	t.Parallel()

	a := setOf("abc", "bcd", "cde")
	b := setOf("bcd", "cde", "def", "efg")

	assert.Equal(t, 2.0/5.0, SetSimilarity(a, b))
	assert.Equal(t, 2.0/5.0, SetSimilarity(b, a))
	assert.Equal(t, 1.0, SetSimilarity(a, a))
	assert.Equal(t, 0.0, SetSimilarity(Set{}, Set{}))
	assert.Equal(t, 0.0, SetSimilarity(nil, nil))
	assert.Equal(t, 0.0, SetSimilarity(a, nil))
}
