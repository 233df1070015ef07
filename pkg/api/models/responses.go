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

type SimilarityResponse struct {
	Score float64 `json:"score"`
}

type SimilarityBatchResponse struct {
	Scores []float64 `json:"scores"`
}

type BestMatchResponse struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

type ScoreAllResponse struct {
	Matches []trigram.Match `json:"matches"`
}

type ShowResponse struct {
	Trigrams []string `json:"trigrams"`
}

type VersionResponse struct {
	Version        string `json:"version"`
	Platform       string `json:"platform"`
	Backend        string `json:"backend"`
	FixtureVersion int    `json:"fixtureVersion"`
}

type SettingsResponse struct {
	ConfiguredBackend string `json:"configuredBackend"`
	ActiveBackend     string `json:"activeBackend"`
	ParallelThreshold int    `json:"parallelThreshold"`
	Workers           int    `json:"workers"`
	MaxItems          int    `json:"maxItems"`
	DebugLogging      bool   `json:"debugLogging"`
}
