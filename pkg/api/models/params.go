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

package models

import "github.com/ZaparooProject/go-trigram/pkg/trigram"

// Params types that implement Positional can also be sent as a JSON array,
// with values matched to fields in the returned order.

type SimilarityParams struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func (SimilarityParams) Positional() []string {
	return []string{"left", "right"}
}

type SimilarityBatchParams struct {
	Pairs []trigram.Pair `json:"pairs" validate:"required,maxitems"`
}

func (SimilarityBatchParams) Positional() []string {
	return []string{"pairs"}
}

type BestMatchParams struct {
	Needle    string   `json:"needle"`
	Haystacks []string `json:"haystacks" validate:"maxitems"`
}

func (BestMatchParams) Positional() []string {
	return []string{"needle", "haystacks"}
}

type ScoreAllParams struct {
	Threshold *float64 `json:"threshold" validate:"required"`
	Needle    string   `json:"needle"`
	Haystacks []string `json:"haystacks" validate:"maxitems"`
}

func (ScoreAllParams) Positional() []string {
	return []string{"needle", "haystacks", "threshold"}
}

type ShowParams struct {
	Text string `json:"text"`
}

func (ShowParams) Positional() []string {
	return []string{"text"}
}

type UpdateSettingsParams struct {
	DebugLogging *bool `json:"debugLogging"`
}
