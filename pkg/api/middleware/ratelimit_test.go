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

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPerMinute = 60
	testBurst     = 5
)

func TestIPRateLimiter_Burst(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clock)

	for i := 0; i < testBurst; i++ {
		assert.True(t, limiter.Allow("192.168.1.100"), "request %d within burst", i+1)
	}
	assert.False(t, limiter.Allow("192.168.1.100"), "request beyond burst")
}

func TestIPRateLimiter_RefillsWithClock(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clock)

	for i := 0; i < testBurst; i++ {
		limiter.Allow("10.0.0.1")
	}
	require.False(t, limiter.Allow("10.0.0.1"))

	// 60 per minute refills one token per second
	clock.Advance(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestIPRateLimiter_DifferentIPs(t *testing.T) {
	t.Parallel()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clockwork.NewFakeClock())

	rl1 := limiter.GetLimiter("192.168.1.100")
	rl2 := limiter.GetLimiter("192.168.1.101")
	assert.NotSame(t, rl1, rl2)
	assert.Same(t, rl1, limiter.GetLimiter("192.168.1.100"))

	for i := 0; i < testBurst; i++ {
		limiter.Allow("192.168.1.100")
	}
	assert.False(t, limiter.Allow("192.168.1.100"))
	assert.True(t, limiter.Allow("192.168.1.101"))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clock)

	limiter.GetLimiter("10.0.0.1")
	clock.Advance(limiterMaxAge / 2)
	limiter.GetLimiter("10.0.0.2")
	clock.Advance(limiterMaxAge/2 + time.Second)

	limiter.Cleanup()
	assert.Equal(t, 1, limiter.Len())
}

func TestIPRateLimiter_StartCleanup(t *testing.T) {
	t.Parallel()
	clock := clockwork.NewFakeClock()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clock)
	limiter.GetLimiter("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter.StartCleanup(ctx)

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(limiterMaxAge + limiterCleanupInterval)
	require.Eventually(t, func() bool {
		return limiter.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestHTTPRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	limiter := NewIPRateLimiter(testPerMinute, testBurst, clockwork.NewFakeClock())

	calls := 0
	handler := HTTPRateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < testBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api", http.NoBody)
		req.RemoteAddr = "192.168.1.100:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if i < testBurst {
			assert.Equal(t, http.StatusOK, rr.Code, "request %d", i+1)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		}
	}
	assert.Equal(t, testBurst, calls)
}

func TestRemoteKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "127.0.0.1", remoteKey("127.0.0.1:5000"))
	assert.Equal(t, "::1", remoteKey("[::1]:5000"))
	assert.Equal(t, "10.0.0.1", remoteKey("10.0.0.1"))
	assert.Equal(t, "not-an-ip", remoteKey("not-an-ip"))
}
