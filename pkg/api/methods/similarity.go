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
	"context"
	"fmt"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/models/requests"
	"github.com/ZaparooProject/go-trigram/pkg/api/validation"
	"github.com/rs/zerolog/log"
)

func decodeParams[T any](env *requests.RequestEnv, dest *T) error {
	ctx := env.Context
	if ctx == nil {
		ctx = context.Background()
	}
	var vctx *validation.Context
	if env.Config != nil {
		vctx = validation.NewContext(env.Config.MaxItems())
	}
	return validation.ValidateAndUnmarshalCtx(ctx, env.Params, dest, vctx)
}

//nolint:gocritic // single-use parameter in API handler
func HandleSimilarity(env requests.RequestEnv) (any, error) {
	var params models.SimilarityParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}
	return models.SimilarityResponse{
		Score: env.Engine.Similarity(params.Left, params.Right),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleSimilarityBatch(env requests.RequestEnv) (any, error) {
	var params models.SimilarityBatchParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}
	log.Debug().Int("pairs", len(params.Pairs)).Msg("scoring batch")
	return models.SimilarityBatchResponse{
		Scores: env.Engine.SimilarityBatch(params.Pairs),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleBestMatch(env requests.RequestEnv) (any, error) {
	var params models.BestMatchParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}
	match, err := env.Engine.BestMatch(params.Needle, params.Haystacks)
	if err != nil {
		return nil, fmt.Errorf("best match: %w", err)
	}
	return models.BestMatchResponse{Index: match.Index, Score: match.Score}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleScoreAll(env requests.RequestEnv) (any, error) {
	var params models.ScoreAllParams
	if err := decodeParams(&env, &params); err != nil {
		return nil, err
	}
	log.Debug().
		Int("haystacks", len(params.Haystacks)).
		Float64("threshold", *params.Threshold).
		Msg("scoring haystacks")
	return models.ScoreAllResponse{
		Matches: env.Engine.ScoreAll(params.Needle, params.Haystacks, *params.Threshold),
	}, nil
}
