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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no username", input: "/usr/local/bin/trigram", expected: "/usr/local/bin/trigram"},
		{
			name:     "linux home",
			input:    "/home/alice/.config/zaparoo-trigram/config.toml",
			expected: "/home/<user>/.config/zaparoo-trigram/config.toml",
		},
		{
			name:     "macos users lowercase",
			input:    "/users/bob/Library/zaparoo-trigram",
			expected: "/Users/<user>/Library/zaparoo-trigram",
		},
		{
			name:     "windows other drive",
			input:    "D:\\Users\\admin\\trigram\\logs",
			expected: "C:\\Users\\<user>\\trigram\\logs",
		},
		{
			name:     "message with two paths",
			input:    "reading /home/alice/a.csv and /home/bob/b.csv",
			expected: "reading /home/<user>/a.csv and /home/<user>/b.csv",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "my-laptop",
		Message:    "failed to open /home/alice/pairs.csv",
		Request:    &sentry.Request{URL: "http://127.0.0.1:7598/api"},
		User:       sentry.User{ID: "someone"},
		Extra:      map[string]any{"path": "/Users/bob/x", "count": 3},
		Exception: []sentry.Exception{{
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/alice/src/trigram/engine.go",
				Filename: "engine.go",
			}}},
		}, {}},
	}

	got := sanitizeEvent(event)
	assert.Empty(t, got.ServerName)
	assert.Nil(t, got.Request)
	assert.Empty(t, got.User.ID)
	assert.Equal(t, "failed to open /home/<user>/pairs.csv", got.Message)
	assert.Equal(t, "/Users/<user>/x", got.Extra["path"])
	assert.Equal(t, 3, got.Extra["count"])
	assert.Equal(t, "/home/<user>/src/trigram/engine.go", got.Exception[0].Stacktrace.Frames[0].AbsPath)
}

func TestInitDisabled(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, Enabled())
	Close()
}

func TestInitRequiresDSN(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Init(Options{Enabled: true}), ErrMissingDSN)
	assert.False(t, Enabled())
}
