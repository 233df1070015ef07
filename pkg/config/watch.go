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
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads the config whenever the file on disk is written or
// replaced, then calls onChange. It blocks until ctx is done. The parent
// directory is watched so editors that save by rename are picked up.
// Only works when the Instance is backed by the OS filesystem.
func (c *Instance) Watch(ctx context.Context, onChange func(*Instance)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Error().Msgf("error closing config watcher: %s", closeErr)
		}
	}()

	cfgPath := filepath.Clean(c.cfgPath)
	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}
	log.Debug().Msgf("watching config file: %s", cfgPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != cfgPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := c.Load(); err != nil {
				log.Warn().Err(err).Msg("failed to reload config, keeping previous values")
				continue
			}
			log.Info().Msg("config reloaded")
			if onChange != nil {
				onChange(c)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Msgf("error in config watcher: %s", watchErr)
		}
	}
}
