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

package methods

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/models/requests"
	"github.com/rs/zerolog/log"
)

var ErrNoConfig = errors.New("server has no config loaded")

// NoContent is returned by methods that succeed without a result.
type NoContent struct{}

//nolint:gocritic // single-use parameter in API handler
func HandleSettings(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings request")
	if env.Config == nil {
		return nil, ErrNoConfig
	}

	return models.SettingsResponse{
		DebugLogging:      env.Config.DebugLogging(),
		ConfiguredBackend: string(env.Config.EngineBackend()),
		ActiveBackend:     string(env.Engine.Backend()),
		ParallelThreshold: env.Config.ParallelThreshold(),
		Workers:           env.Config.Workers(),
		MaxItems:          env.Config.MaxItems(),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleSettingsReload(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings reload request")
	if env.Config == nil {
		return nil, ErrNoConfig
	}

	if err := env.Config.Load(); err != nil {
		log.Error().Err(err).Msg("error loading settings")
		return nil, errors.New("error loading settings")
	}
	env.Config.SetDebugLogging(env.Config.DebugLogging())

	return NoContent{}, nil
}

// HandleSettingsUpdate changes settings that apply without a restart. The
// engine backend is fixed when the server starts.
//
//nolint:gocritic // single-use parameter in API handler
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings update request")
	if env.Config == nil {
		return nil, ErrNoConfig
	}

	var params models.UpdateSettingsParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}

	if params.DebugLogging != nil {
		log.Info().Bool("debugLogging", *params.DebugLogging).Msg("update")
		env.Config.SetDebugLogging(*params.DebugLogging)
	}

	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return NoContent{}, nil
}
