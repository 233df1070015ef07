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
	"time"

	"github.com/ZaparooProject/go-trigram/pkg/api/client"
	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCallCmd(app *App) *cobra.Command {
	var (
		address string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "call METHOD [PARAMS]",
		Short: "Call a method on a running server",
		Long: `Call sends one JSON-RPC request to a running server and prints the
result. PARAMS must be a JSON object or array, for example:

  zaparoo-trigram call similarity '{"left":"hello","right":"help"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := ""
			if len(args) > 1 {
				params = args[1]
			}
			if address == "" {
				address = app.cfg.APIAddress()
			}

			result, err := client.Call(cmd.Context(), address, timeout, args[0], params)
			if err != nil {
				log.Error().Err(err).Str("method", args[0]).Msg("error calling API")
				return fmt.Errorf("error calling %s: %w", args[0], err)
			}
			return app.renderRaw(result)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "server address (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", config.APIRequestTimeout, "time to wait for a response")
	return cmd
}

func newReloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask a running server to reload its config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := client.LocalClient(cmd.Context(), app.cfg, models.MethodSettingsReload, "")
			if err != nil {
				log.Error().Err(err).Msg("error reloading settings")
				return fmt.Errorf("error reloading: %w", err)
			}
			_, err = fmt.Fprintln(app.Stdout, "settings reloaded")
			return err
		},
	}
}
