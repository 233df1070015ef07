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

// Package cli builds the trigram command tree. Each command loads the user
// config, sets up logging and builds one engine before it runs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/ZaparooProject/go-trigram/pkg/helpers"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// annotationConsoleLog marks commands that also log to stderr.
const annotationConsoleLog = "console-log"

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrTooManyItems  = errors.New("too many input items")
)

// App holds the streams and hooks the commands run against. The zero value
// is not usable; start from NewApp.
type App struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// InitLogging sets up the global logger.
	InitLogging func(debug bool, writers ...io.Writer) error
	// SignalContext returns a context that is cancelled on shutdown.
	SignalContext func(ctx context.Context) (context.Context, context.CancelFunc)

	cfg    *config.Instance
	engine trigram.Engine
	flags  rootFlags
}

type rootFlags struct {
	config  string
	format  string
	backend string
	debug   bool
}

// NewApp returns an App wired to the OS filesystem and process streams.
func NewApp() *App {
	return &App{
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		InitLogging: func(debug bool, writers ...io.Writer) error {
			return helpers.InitLogging(helpers.LogDir(), debug, writers...)
		},
		SignalContext: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		},
	}
}

// NewRootCmd builds the full command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   helpers.AppName,
		Short: "PostgreSQL compatible trigram similarity",
		Long: `zaparoo-trigram scores strings with the same trigram similarity
as PostgreSQL's pg_trgm extension.

Scores can be computed directly from the command line, or served to other
programs over a JSON-RPC API with "serve".`,
		Version:           config.AppVersion,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}
	rootCmd.SetIn(app.Stdin)
	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.config, "config", "", "path to config file (default is the user config dir)")
	flags.StringVarP(&app.flags.format, "output", "o", formatText, "output format: text, json or yaml")
	flags.StringVar(&app.flags.backend, "backend", "", "override the configured engine backend")
	flags.BoolVar(&app.flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newSimilarityCmd(app),
		newBatchCmd(app),
		newBestCmd(app),
		newScoreCmd(app),
		newShowCmd(app),
		newConformanceCmd(app),
		newServeCmd(app),
		newCallCmd(app),
		newReloadCmd(app),
		newVersionCmd(app),
	)

	return rootCmd
}

// Execute runs the command tree with args and returns the first error.
func Execute(ctx context.Context, app *App, args []string) error {
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", rootCmd.Name(), err)
	}
	return nil
}

// setup loads the config, starts logging and picks the engine backend.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	switch a.flags.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, a.flags.format)
	}

	var (
		cfg *config.Instance
		err error
	)
	if a.flags.config != "" {
		cfg, err = config.NewConfigFile(a.Fs, a.flags.config, config.BaseDefaults)
	} else {
		cfg, err = config.NewConfig(a.Fs, helpers.ConfigDir(), config.BaseDefaults)
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	var writers []io.Writer
	if cmd.Annotations[annotationConsoleLog] == "true" {
		writers = append(writers, zerolog.ConsoleWriter{Out: a.Stderr})
	}
	if err := a.InitLogging(a.debugEnabled(), writers...); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	opts := cfg.EngineOptions()
	if a.flags.backend != "" {
		backend, err := trigram.ParseBackend(a.flags.backend)
		if err != nil {
			return fmt.Errorf("invalid --backend: %w", err)
		}
		opts.Backend = backend
	}

	engine, err := trigram.New(opts)
	if err != nil {
		return fmt.Errorf("error building engine: %w", err)
	}
	a.engine = engine

	return nil
}

func (a *App) debugEnabled() bool {
	return a.flags.debug || a.cfg.DebugLogging()
}
