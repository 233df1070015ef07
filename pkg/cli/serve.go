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
	"context"
	"fmt"
	"time"

	"github.com/ZaparooProject/go-trigram/internal/telemetry"
	"github.com/ZaparooProject/go-trigram/pkg/api"
	"github.com/ZaparooProject/go-trigram/pkg/api/client"
	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/ZaparooProject/go-trigram/pkg/discovery"
	"github.com/ZaparooProject/go-trigram/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const runningCheckTimeout = time.Second

func newServeCmd(app *App) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve the JSON-RPC API over HTTP and WebSocket",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConsoleLog: "true"},
		RunE: func(cmd *cobra.Command, _ []string) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Msgf("panic recovered: %v", r)
					returnErr = fmt.Errorf("panic: %v", r)
				}
			}()

			if cmd.Flags().Changed("port") {
				app.cfg.SetAPIPort(port)
			}
			return app.serve(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultAPIPort, "port to listen on")
	return cmd
}

func (a *App) serve(parent context.Context) error {
	if isServerRunning(parent, a.cfg) {
		log.Info().
			Str("address", a.cfg.APIAddress()).
			Msg("server already running, exiting")
		return nil
	}

	ctx, stop := a.SignalContext(parent)
	defer stop()

	err := telemetry.Init(telemetry.Options{
		DSN:        a.cfg.SentryDSN(),
		AppVersion: config.AppVersion,
		Backend:    string(a.engine.Backend()),
		Enabled:    a.cfg.ErrorReporting(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}
	defer telemetry.Close()

	disc := discovery.New(a.cfg, string(a.engine.Backend()), clockwork.NewRealClock())
	if err := disc.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to start mDNS discovery")
	}
	defer disc.Stop()

	log.Info().
		Str("version", config.AppVersion).
		Str("backend", string(a.engine.Backend())).
		Msg("starting trigram server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.cfg.Watch(gctx, func(cfg *config.Instance) {
			helpers.SetDebugLogging(a.flags.debug || cfg.DebugLogging())
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watcher stopped")
		}
		return nil
	})
	g.Go(func() error {
		return api.Start(gctx, a.cfg, a.engine)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err //nolint:wrapcheck // already wrapped by api.Start
	}
	log.Info().Msg("server stopped")
	return nil
}

// isServerRunning reports whether something already answers API calls on
// the configured address.
func isServerRunning(ctx context.Context, cfg *config.Instance) bool {
	_, err := client.Call(ctx, cfg.APIAddress(), runningCheckTimeout, models.MethodVersion, "")
	return err == nil
}
