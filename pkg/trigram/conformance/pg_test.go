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

package conformance

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ZaparooProject/go-trigram/pkg/trigram"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgresDSNEnv names the connection string for the live pg_trgm check.
const PostgresDSNEnv = "TRIGRAM_PG_DSN"

// TestPostgresParity compares single word fixtures against similarity() from
// a live pg_trgm. pg_trgm returns a float4, so scores are compared after
// rounding ours to float32.
func TestPostgresParity(t *testing.T) {
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("set %s to run against a live pg_trgm", PostgresDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer func() {
		_ = conn.Close(context.Background())
	}()

	_, err = conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS pg_trgm")
	require.NoError(t, err)

	cases, err := Cases()
	require.NoError(t, err)

	checked := 0
	for _, c := range cases {
		if !IsSingleWord(c.Left) || !IsSingleWord(c.Right) {
			continue
		}

		var want float32
		err := conn.QueryRow(ctx, "SELECT similarity($1, $2)", c.Left, c.Right).Scan(&want)
		require.NoError(t, err, c.String())

		got := float32(trigram.Similarity(c.Left, c.Right))
		assert.InDelta(t, want, got, 1e-6, c.String())
		checked++
	}
	assert.Positive(t, checked)

	// empty against empty is not a perfect match
	var empty float32
	require.NoError(t, conn.QueryRow(ctx, "SELECT similarity('', '')").Scan(&empty))
	assert.Zero(t, empty)
	assert.Zero(t, trigram.Similarity("", ""))
}
