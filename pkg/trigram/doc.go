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

// Package trigram computes pg_trgm compatible trigram similarity between
// strings.
//
// Text is lowercased and split into words of letters, combining marks and
// numbers. Each word is padded with two leading spaces and one trailing
// space, the padded words are joined with a single space, and every window of
// three codepoints becomes a trigram. Similarity is the size of the
// intersection of two trigram sets divided by the size of their union.
//
// Example:
//
//	trigram.Similarity("hello", "hallo") // 0.3333333333333333
//
// Ranking operations (batch, best match, score all) are available on the
// Engine interface. Every backend returned by New produces bit-identical
// scores; backends differ only in how work is scheduled.
package trigram
