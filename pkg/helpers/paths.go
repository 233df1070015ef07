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
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

const (
	AppName = "zaparoo-trigram"
	// AppEnv overrides the executable path used to find a portable user dir.
	AppEnv  = "TRIGRAM_APP"
	UserDir = "user"
	LogsDir = "logs"
)

var (
	userDirOnce        sync.Once
	userDirCache       string
	userDirCacheExists bool
)

// HasUserDir checks if a "user" directory exists next to the executable
// and returns true and the absolute path to it. When it exists it replaces
// the XDG directories, for a portable install. The result is cached after
// the first call.
func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		exePath := os.Getenv(AppEnv)
		if exePath == "" {
			var err error
			exePath, err = os.Executable()
			if err != nil {
				return
			}
		}

		userDir := filepath.Join(filepath.Dir(exePath), UserDir)
		info, err := os.Stat(userDir)
		if err != nil || !info.IsDir() {
			return
		}

		userDirCache = userDir
		userDirCacheExists = true
	})

	return userDirCache, userDirCacheExists
}

// ConfigDir is where config.toml lives.
func ConfigDir() string {
	if v, ok := HasUserDir(); ok {
		return v
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// LogDir is where rotated log files are written.
func LogDir() string {
	if v, ok := HasUserDir(); ok {
		return filepath.Join(v, LogsDir)
	}
	return filepath.Join(xdg.StateHome, AppName, LogsDir)
}
