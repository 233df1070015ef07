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
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/rs/zerolog/log"
)

type Engine struct {
	ParallelThreshold *int   `toml:"parallel_threshold,omitempty"`
	Workers           *int   `toml:"workers,omitempty"`
	Backend           string `toml:"backend"`
}

func (c *Instance) EngineBackend() trigram.Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()

	backend, err := trigram.ParseBackend(c.vals.Engine.Backend)
	if err != nil {
		log.Warn().Err(err).Msg("invalid engine backend in config, using auto")
		return trigram.BackendAuto
	}
	return backend
}

func (c *Instance) SetEngineBackend(backend trigram.Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Engine.Backend = string(backend)
}

// ParallelThreshold returns the configured threshold, or 0 to let the
// engine use its own default.
func (c *Instance) ParallelThreshold() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Engine.ParallelThreshold == nil {
		return 0
	}
	return *c.vals.Engine.ParallelThreshold
}

func (c *Instance) Workers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Engine.Workers == nil {
		return 0
	}
	return *c.vals.Engine.Workers
}

func (c *Instance) EngineOptions() trigram.Options {
	return trigram.Options{
		Backend:           c.EngineBackend(),
		ParallelThreshold: c.ParallelThreshold(),
		Workers:           c.Workers(),
	}
}
