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

package config

import (
	"testing"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

// TestPropertyEngineOptionsRoundTrip verifies saved engine settings load back
// unchanged.
func TestPropertyEngineOptionsRoundTrip(t *testing.T) {
	t.Setenv(CfgEnv, "")

	rapid.Check(t, func(t *rapid.T) {
		backend := rapid.SampledFrom([]trigram.Backend{
			trigram.BackendAuto,
			trigram.BackendPortable,
			trigram.BackendParallel,
		}).Draw(t, "backend")
		threshold := rapid.IntRange(1, 10_000).Draw(t, "threshold")
		workers := rapid.IntRange(1, 64).Draw(t, "workers")

		fs := afero.NewMemMapFs()
		defaults := BaseDefaults
		defaults.Engine = Engine{
			Backend:           string(backend),
			ParallelThreshold: &threshold,
			Workers:           &workers,
		}

		cfg, err := NewConfig(fs, "/cfg", defaults)
		if err != nil {
			t.Fatalf("new config: %v", err)
		}
		reloaded, err := NewConfig(fs, "/cfg", BaseDefaults)
		if err != nil {
			t.Fatalf("reload config: %v", err)
		}

		want := cfg.EngineOptions()
		got := reloaded.EngineOptions()
		if want != got {
			t.Fatalf("engine options changed across save: want %+v, got %+v", want, got)
		}
		if got.Backend != backend || got.ParallelThreshold != threshold || got.Workers != workers {
			t.Fatalf("unexpected engine options: %+v", got)
		}
	})
}
