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

package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/helpers"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// DefaultScoreThreshold matches pg_trgm's default similarity_threshold.
const DefaultScoreThreshold = 0.3

func newSimilarityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity LEFT RIGHT",
		Short: "Score two strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			score := app.engine.Similarity(args[0], args[1])
			return app.render(models.SimilarityResponse{Score: score}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, formatScore(score))
				return err
			})
		},
	}
}

func newBatchCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Score every pair in a CSV file with left and right columns",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			pairs, err := helpers.ReadPairsFile(app.Fs, file, app.Stdin)
			if err != nil {
				return err
			}
			if err := app.checkItems(len(pairs)); err != nil {
				return err
			}

			log.Debug().Int("pairs", len(pairs)).Msg("scoring batch")
			scores := app.engine.SimilarityBatch(pairs)
			return app.render(models.SimilarityBatchResponse{Scores: scores}, func(w io.Writer) error {
				for _, s := range scores {
					if _, err := fmt.Fprintln(w, formatScore(s)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", helpers.StdinPath, `pairs CSV file, "-" for stdin`)
	return cmd
}

func newBestCmd(app *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "best NEEDLE",
		Short: "Find the haystack line most similar to NEEDLE",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			haystacks, err := app.readHaystacks(file)
			if err != nil {
				return err
			}

			match, err := app.engine.BestMatch(args[0], haystacks)
			if err != nil {
				return fmt.Errorf("best match: %w", err)
			}

			resp := models.BestMatchResponse{Index: match.Index, Score: match.Score}
			return app.render(resp, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%d\t%s\t%s\n",
					match.Index, formatScore(match.Score), haystacks[match.Index])
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", helpers.StdinPath, `haystack file, one per line, "-" for stdin`)
	return cmd
}

func newScoreCmd(app *App) *cobra.Command {
	var (
		file      string
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "score NEEDLE",
		Short: "List haystack lines scoring at least the threshold, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if math.IsNaN(threshold) {
				return fmt.Errorf("invalid --threshold: %v", threshold)
			}

			haystacks, err := app.readHaystacks(file)
			if err != nil {
				return err
			}

			matches := app.engine.ScoreAll(args[0], haystacks, threshold)
			log.Debug().
				Int("haystacks", len(haystacks)).
				Int("matches", len(matches)).
				Msg("scored haystacks")

			return app.render(models.ScoreAllResponse{Matches: matches}, func(w io.Writer) error {
				for _, m := range matches {
					if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n",
						m.Index, formatScore(m.Score), haystacks[m.Index]); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", helpers.StdinPath, `haystack file, one per line, "-" for stdin`)
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", DefaultScoreThreshold, "minimum score to keep")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEXT",
		Short: "List the trigrams extracted from TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			trigrams := trigram.Trigrams(args[0])
			return app.render(models.ShowResponse{Trigrams: trigrams}, func(w io.Writer) error {
				for _, t := range trigrams {
					if _, err := fmt.Fprintf(w, "%q\n", t); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *App) readHaystacks(file string) ([]string, error) {
	haystacks, err := helpers.ReadLinesFile(a.Fs, file, a.Stdin)
	if err != nil {
		return nil, err
	}
	if err := a.checkItems(len(haystacks)); err != nil {
		return nil, err
	}
	return haystacks, nil
}

// checkItems applies the same input cap as the API.
func (a *App) checkItems(n int) error {
	if limit := a.cfg.MaxItems(); n > limit {
		return fmt.Errorf("%w: %d items, limit is %d", ErrTooManyItems, n, limit)
	}
	return nil
}
