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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	testhelpers "github.com/ZaparooProject/go-trigram/pkg/testing/helpers"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigPath = "/cfg/config.toml"

type testApp struct {
	*App
	fs     *testhelpers.FSHelper
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()

	fs := testhelpers.NewMemoryFS()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	app := &App{
		Fs:     fs.Fs,
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
		InitLogging: func(bool, ...io.Writer) error {
			return nil
		},
		SignalContext: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		},
	}
	return &testApp{App: app, fs: fs, stdout: stdout, stderr: stderr}
}

// withConfig writes a config file the app will load.
func (ta *testApp) withConfig(t *testing.T, extraTOML string) *testApp {
	t.Helper()
	_, err := testhelpers.NewTestConfig(ta.fs, "/cfg", extraTOML)
	require.NoError(t, err)
	return ta
}

func (ta *testApp) run(args ...string) error {
	return Execute(context.Background(), ta.App, append([]string{"--config", testConfigPath}, args...))
}

func TestSetup_WritesDefaultConfig(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	require.NoError(t, ta.run("similarity", "a", "b"))

	exists, err := afero.Exists(ta.fs.Fs, testConfigPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSetup_UnknownFormat(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	err := ta.run("-o", "xml", "similarity", "a", "b")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Empty(t, ta.stdout.String())
}

func TestSetup_BackendOverride(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	require.NoError(t, ta.run("--backend", "portable", "-o", "json", "version"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &resp))
	assert.Equal(t, "portable", resp["backend"])
}

func TestSetup_InvalidBackend(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	err := ta.run("--backend", "gpu", "version")
	require.ErrorIs(t, err, trigram.ErrUnknownBackend)
}

func TestSetup_ConfiguredBackend(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "").withConfig(t, "[engine]\nbackend = \"parallel\"\nworkers = 2")
	require.NoError(t, ta.run("-o", "json", "version"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &resp))
	assert.Equal(t, "parallel", resp["backend"])
}

func TestSetup_ConsoleLogOnlyForServe(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	var writerCount int
	ta.InitLogging = func(_ bool, writers ...io.Writer) error {
		writerCount = len(writers)
		return nil
	}

	require.NoError(t, ta.run("similarity", "a", "b"))
	assert.Zero(t, writerCount)
}

func TestSetup_DebugFlag(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	var debug bool
	ta.InitLogging = func(d bool, _ ...io.Writer) error {
		debug = d
		return nil
	}

	require.NoError(t, ta.run("--debug", "show", "a"))
	assert.True(t, debug)
}

func TestSetup_DebugFromConfig(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "").withConfig(t, "debug_logging = true")
	var debug bool
	ta.InitLogging = func(d bool, _ ...io.Writer) error {
		debug = d
		return nil
	}

	require.NoError(t, ta.run("show", "a"))
	assert.True(t, debug)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	require.NoError(t, ta.run("--backend", "portable", "version"))
	assert.Contains(t, ta.stdout.String(), "zaparoo-trigram vDEVELOPMENT")
	assert.Contains(t, ta.stdout.String(), "portable backend")
}

func TestVersion_YAML(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t, "")
	require.NoError(t, ta.run("--backend", "portable", "-o", "yaml", "version"))
	assert.Contains(t, ta.stdout.String(), "version: DEVELOPMENT\n")
	assert.Contains(t, ta.stdout.String(), "backend: portable\n")
}
