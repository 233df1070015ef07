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
	"strings"
	"unicode"
)

const (
	// boundary pads each word and separates consecutive words.
	boundary = ' '
	// combiningDotAbove is removed after lowering so "İ" matches "i".
	combiningDotAbove = '\u0307'
)

// isWordRune reports whether r belongs inside a word. Combining marks stay
// attached to the letter they follow.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}

// Normalize lowercases text and splits it into padded words.
//
// Every maximal run of word runes becomes one word; everything else is a
// boundary and is discarded. Each word is returned as "  word " so that word
// starts and ends produce their own trigrams.
//
// Example:
//
//	Normalize("Apt #4B") → ["  apt ", "  4b "]
func Normalize(text string) []string {
	var words []string
	var word strings.Builder

	closeWord := func() {
		if word.Len() == 0 {
			return
		}
		words = append(words, "  "+word.String()+" ")
		word.Reset()
	}

	for _, r := range text {
		if !isWordRune(r) {
			closeWord()
			continue
		}
		lower := unicode.ToLower(r)
		if lower == combiningDotAbove {
			continue
		}
		word.WriteRune(lower)
	}
	closeWord()

	return words
}
