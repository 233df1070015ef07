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
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/ZaparooProject/go-trigram/pkg/trigram/conformance"
	"github.com/spf13/cobra"
)

var ErrParityMismatch = errors.New("engines disagree on conformance fixtures")

type conformanceReport struct {
	Backend        string                 `json:"backend" yaml:"backend"`
	Mismatches     []conformance.Mismatch `json:"mismatches" yaml:"mismatches"`
	FixtureVersion int                    `json:"fixtureVersion" yaml:"fixtureVersion"`
	Cases          int                    `json:"cases" yaml:"cases"`
}

func newConformanceCmd(app *App) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "conformance",
		Short: "Check the active backend against the portable reference",
		Long: `Conformance runs the embedded fixture set through the portable
reference engine, the configured engine and a parallel engine forced to fan
out, and fails if any score differs in a single bit.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cases, err := conformance.Cases()
			if err != nil {
				return err //nolint:wrapcheck // already wrapped
			}

			if list {
				return app.render(cases, func(w io.Writer) error {
					for _, c := range cases {
						if _, err := fmt.Fprintf(w, "%s\t%q\t%q\n", c.Family, c.Left, c.Right); err != nil {
							return err
						}
					}
					return nil
				})
			}

			report := conformanceReport{
				Backend:        string(app.engine.Backend()),
				FixtureVersion: conformance.Version,
				Cases:          len(cases),
				Mismatches:     []conformance.Mismatch{},
			}
			candidates := []trigram.Engine{
				app.engine,
				trigram.NewParallel(runtime.NumCPU(), 1),
			}
			for _, candidate := range candidates {
				mismatches, err := conformance.CheckParity(trigram.Portable{}, candidate)
				if err != nil {
					return err //nolint:wrapcheck // already wrapped
				}
				report.Mismatches = append(report.Mismatches, mismatches...)
			}

			err = app.render(report, func(w io.Writer) error {
				for _, m := range report.Mismatches {
					if _, err := fmt.Fprintln(w, m.String()); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(w, "%d cases, %d mismatches (backend %s, fixtures v%d)\n",
					report.Cases, len(report.Mismatches), report.Backend, report.FixtureVersion)
				return err
			})
			if err != nil {
				return err
			}
			if len(report.Mismatches) > 0 {
				return fmt.Errorf("%w: %d mismatches", ErrParityMismatch, len(report.Mismatches))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the fixture cases instead of checking them")
	return cmd
}
