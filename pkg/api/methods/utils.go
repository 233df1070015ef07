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
	"runtime"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/models/requests"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/ZaparooProject/go-trigram/pkg/trigram/conformance"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleVersion(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received version request")
	return models.VersionResponse{
		Version:        config.AppVersion,
		Platform:       runtime.GOOS + "/" + runtime.GOARCH,
		Backend:        string(env.Engine.Backend()),
		FixtureVersion: conformance.Version,
	}, nil
}

// HandleShow lists the trigrams extracted from a string, for debugging
// unexpected scores.
//
//nolint:gocritic // single-use parameter in API handler
func HandleShow(env requests.RequestEnv) (any, error) {
	var params models.ShowParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}
	return models.ShowResponse{Trigrams: trigram.Trigrams(params.Text)}, nil
}
