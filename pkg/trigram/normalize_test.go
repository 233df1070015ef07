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

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "only punctuation and whitespace",
			input:    " .,;!? \t\n-- ",
			expected: nil,
		},
		{
			name:     "single word lowercased",
			input:    "Hello",
			expected: []string{"  hello "},
		},
		{
			name:     "boundary split keeps letters and digits together",
			input:    "Apt #4B",
			expected: []string{"  apt ", "  4b "},
		},
		{
			name:     "runs of boundaries collapse",
			input:    "space   tabs\t\tand--dashes",
			expected: []string{"  space ", "  tabs ", "  and ", "  dashes "},
		},
		{
			name:     "underscore is a boundary",
			input:    "foo_bar",
			expected: []string{"  foo ", "  bar "},
		},
		{
			name:     "accented latin stays one word",
			input:    "Café",
			expected: []string{"  café "},
		},
		{
			name:     "combining mark joins its letter",
			input:    "cafe\u0301",
			expected: []string{"  cafe\u0301 "},
		},
		{
			name:     "dotted capital i folds to plain i",
			input:    "İstanbul",
			expected: []string{"  istanbul "},
		},
		{
			name:     "decomposed dotted i folds to plain i",
			input:    "I\u0307stanbul",
			expected: []string{"  istanbul "},
		},
		{
			name:     "lone combining dot above is not a word",
			input:    "\u0307",
			expected: nil,
		},
		{
			name:     "cyrillic",
			input:    "Привет, мир",
			expected: []string{"  привет ", "  мир "},
		},
		{
			name:     "cjk with space",
			input:    "東 京",
			expected: []string{"  東 ", "  京 "},
		},
		{
			name:     "greek",
			input:    "\u0391\u0398\u0389\u039d\u0391",
			expected: []string{"  \u03b1\u03b8\u03ae\u03bd\u03b1 "},
		},
		{
			name:     "mixed scripts are not split",
			input:    "abcабв",
			expected: []string{"  abcабв "},
		},
		{
			name:     "non-ascii numbers are word runes",
			input:    "٣٤ ½",
			expected: []string{"  ٣٤ ", "  ½ "},
		},
		{
			name:     "invalid utf-8 is a boundary",
			input:    "ab\xffcd",
			expected: []string{"  ab ", "  cd "},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
