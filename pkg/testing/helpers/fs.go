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

package helpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/spf13/afero"
)

// FSHelper wraps an afero filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

func NewMemoryFS() *FSHelper {
	return &FSHelper{Fs: afero.NewMemMapFs()}
}

// WriteFile writes content to path, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// WriteLines writes one entry per line, as read by helpers.ReadLines.
func (h *FSHelper) WriteLines(path string, lines []string) error {
	return h.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"))
}

// NewTestConfig loads a config from configDir on fs, ignoring TRIGRAM_CFG.
// Extra TOML is appended after the schema version.
func NewTestConfig(fs *FSHelper, configDir, extraTOML string) (*config.Instance, error) {
	cfgPath := filepath.Join(configDir, config.CfgFile)
	if extraTOML != "" {
		contents := fmt.Sprintf("config_schema = %d\n%s\n", config.SchemaVersion, extraTOML)
		if err := fs.WriteFile(cfgPath, []byte(contents)); err != nil {
			return nil, err
		}
	}
	cfg, err := config.NewConfigFile(fs.Fs, cfgPath, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to create test config: %w", err)
	}
	return cfg, nil
}
