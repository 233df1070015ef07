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
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigAndLogDirs(t *testing.T) {
	t.Parallel()

	cfgDir := ConfigDir()
	logDir := LogDir()

	assert.NotEmpty(t, cfgDir)
	assert.NotEmpty(t, logDir)
	assert.Equal(t, LogsDir, filepath.Base(logDir))

	if userDir, ok := HasUserDir(); ok {
		assert.Equal(t, userDir, cfgDir)
		assert.True(t, strings.HasPrefix(logDir, userDir))
		return
	}
	assert.Equal(t, AppName, filepath.Base(cfgDir))
}

func TestHasUserDirIsCached(t *testing.T) {
	t.Parallel()

	first, firstOK := HasUserDir()
	second, secondOK := HasUserDir()
	assert.Equal(t, first, second)
	assert.Equal(t, firstOK, secondOK)
}
