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
	"testing"

	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestConfig(t *testing.T) {
	t.Parallel()

	fs := NewMemoryFS()
	cfg, err := NewTestConfig(fs, "/cfg", "[api]\nport = 0\nmax_items = 10")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxItems())
	assert.Equal(t, config.DefaultAPIPort, cfg.APIPort())

	defaults, err := NewTestConfig(NewMemoryFS(), "/other", "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxItems, defaults.MaxItems())
}

func TestWriteLines(t *testing.T) {
	t.Parallel()

	fs := NewMemoryFS()
	require.NoError(t, fs.WriteLines("/data/list.txt", []string{"hello", "help"}))

	data, err := afero.ReadFile(fs.Fs, "/data/list.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\nhelp\n", string(data))
}
