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
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, fs afero.Fs, contents string) *Instance {
	t.Helper()
	t.Setenv(CfgEnv, "")

	if contents != "" {
		require.NoError(t, fs.MkdirAll("/cfg", 0o750))
		require.NoError(t, afero.WriteFile(fs, "/cfg/"+CfgFile, []byte(contents), 0o600))
	}

	cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func TestNewConfigWritesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, "")

	assert.Equal(t, filepath.Join("/cfg", CfgFile), cfg.Path())

	data, err := afero.ReadFile(fs, cfg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
	assert.Contains(t, string(data), "backend = 'auto'")

	assert.False(t, cfg.DebugLogging())
	assert.Equal(t, trigram.BackendAuto, cfg.EngineBackend())
	assert.Equal(t, 0, cfg.ParallelThreshold())
	assert.Equal(t, 0, cfg.Workers())
	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
	assert.Equal(t, "127.0.0.1:7598", cfg.APIAddress())
	assert.Equal(t, DefaultMaxItems, cfg.MaxItems())
	perMinute, burst := cfg.RateLimit()
	assert.Equal(t, DefaultRateLimitPerMinute, perMinute)
	assert.Equal(t, DefaultRateLimitBurst, burst)
	assert.False(t, cfg.ErrorReporting())
	assert.Empty(t, cfg.AllowedOrigins())
	assert.Empty(t, cfg.AllowedIPs())
	assert.Equal(t, DefaultListen, cfg.APIListen())
	assert.False(t, cfg.DiscoveryEnabled())
	assert.Empty(t, cfg.DiscoveryInstanceName())
}

func TestLoadValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, `
config_schema = 1
debug_logging = true

[engine]
backend = "parallel"
parallel_threshold = 64
workers = 3

[api]
listen = "0.0.0.0"
port = 9000
allowed_origins = ["http://localhost:3000"]
max_items = 500
rate_limit_per_minute = 60
rate_limit_burst = 5

[telemetry]
error_reporting = true
sentry_dsn = "https://key@example.invalid/1"
`)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, trigram.Options{
		Backend:           trigram.BackendParallel,
		ParallelThreshold: 64,
		Workers:           3,
	}, cfg.EngineOptions())
	assert.Equal(t, "0.0.0.0:9000", cfg.APIAddress())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	assert.Equal(t, 500, cfg.MaxItems())
	perMinute, burst := cfg.RateLimit()
	assert.Equal(t, 60, perMinute)
	assert.Equal(t, 5, burst)
	assert.True(t, cfg.ErrorReporting())
	assert.Equal(t, "https://key@example.invalid/1", cfg.SentryDSN())
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, "config_schema = 1\n[api]\nport = 8000\n")

	assert.Equal(t, "127.0.0.1:8000", cfg.APIAddress())
	assert.Equal(t, trigram.BackendAuto, cfg.EngineBackend())
}

func TestInvalidBackendFallsBackToAuto(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, "config_schema = 1\n[engine]\nbackend = \"gpu\"\n")

	assert.Equal(t, trigram.BackendAuto, cfg.EngineBackend())
}

func TestNonPositiveLimitsUseDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, "config_schema = 1\n[api]\nmax_items = 0\nrate_limit_burst = -1\n")

	assert.Equal(t, DefaultMaxItems, cfg.MaxItems())
	_, burst := cfg.RateLimit()
	assert.Equal(t, DefaultRateLimitBurst, burst)
}

func TestSchemaMismatch(t *testing.T) {
	t.Setenv(CfgEnv, "")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/"+CfgFile, []byte("config_schema = 99\n"), 0o600))

	_, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestMalformedConfig(t *testing.T) {
	t.Setenv(CfgEnv, "")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/"+CfgFile, []byte("config_schema = [\n"), 0o600))

	_, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.Error(t, err)
}

func TestCfgEnvOverridesPath(t *testing.T) {
	t.Setenv(CfgEnv, "/elsewhere/custom.toml")
	fs := afero.NewMemMapFs()

	cfg, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/custom.toml", cfg.Path())

	exists, err := afero.Exists(fs, "/elsewhere/custom.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, "")

	cfg.SetEngineBackend(trigram.BackendPortable)
	cfg.SetAPIPort(8123)
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(fs, "/cfg", BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, trigram.BackendPortable, reloaded.EngineBackend())
	assert.Equal(t, 8123, reloaded.APIPort())
}

func TestNewConfigFileIgnoresEnv(t *testing.T) {
	t.Setenv(CfgEnv, "/elsewhere/custom.toml")
	fs := afero.NewMemMapFs()

	cfg, err := NewConfigFile(fs, "/direct/"+CfgFile, BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, "/direct/"+CfgFile, cfg.Path())
}

func TestAPIAccessAndDiscovery(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := newTestConfig(t, fs, `
config_schema = 1

[api]
listen = "0.0.0.0"
allowed_ips = ["10.0.0.0/8", "192.168.1.5"]

[api.discovery]
enabled = true
instance_name = "scoring-box"
`)

	assert.Equal(t, "0.0.0.0", cfg.APIListen())
	assert.Equal(t, "0.0.0.0:7598", cfg.APIAddress())
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.5"}, cfg.AllowedIPs())
	assert.True(t, cfg.DiscoveryEnabled())
	assert.Equal(t, "scoring-box", cfg.DiscoveryInstanceName())

	// callers get a copy
	ips := cfg.AllowedIPs()
	ips[0] = "changed"
	assert.Equal(t, "10.0.0.0/8", cfg.AllowedIPs()[0])
}
