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
	"net"
	"strconv"
)

const (
	DefaultListen             = "127.0.0.1"
	DefaultAPIPort            = 7598
	DefaultMaxItems           = 100_000
	DefaultRateLimitPerMinute = 600
	DefaultRateLimitBurst     = 50
)

type API struct {
	Port               *int      `toml:"port,omitempty"`
	MaxItems           *int      `toml:"max_items,omitempty"`
	RateLimitPerMinute *int      `toml:"rate_limit_per_minute,omitempty"`
	RateLimitBurst     *int      `toml:"rate_limit_burst,omitempty"`
	Listen             string    `toml:"listen"`
	AllowedOrigins     []string  `toml:"allowed_origins,omitempty"`
	AllowedIPs         []string  `toml:"allowed_ips,omitempty"`
	Discovery          Discovery `toml:"discovery,omitempty"`
}

type Discovery struct {
	Enabled      *bool  `toml:"enabled,omitempty"`
	InstanceName string `toml:"instance_name,omitempty"`
}

func intOr(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intOr(c.vals.API.Port, DefaultAPIPort)
}

func (c *Instance) SetAPIPort(port int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.API.Port = &port
}

func (c *Instance) APIListen() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.API.Listen == "" {
		return DefaultListen
	}
	return c.vals.API.Listen
}

// APIAddress is the host:port the API server binds to.
func (c *Instance) APIAddress() string {
	return net.JoinHostPort(c.APIListen(), strconv.Itoa(c.APIPort()))
}

func (c *Instance) AllowedOrigins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.API.AllowedOrigins...)
}

// AllowedIPs lists the addresses and CIDRs allowed to reach the API. Empty
// means no filtering.
func (c *Instance) AllowedIPs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.API.AllowedIPs...)
}

// MaxItems caps the number of pairs or haystacks accepted in one request.
func (c *Instance) MaxItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intOr(c.vals.API.MaxItems, DefaultMaxItems)
}

func (c *Instance) RateLimit() (perMinute, burst int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return intOr(c.vals.API.RateLimitPerMinute, DefaultRateLimitPerMinute),
		intOr(c.vals.API.RateLimitBurst, DefaultRateLimitBurst)
}

// DiscoveryEnabled reports whether the API is advertised over mDNS. Off
// unless set, since the default listen address is loopback only.
func (c *Instance) DiscoveryEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.API.Discovery.Enabled == nil {
		return false
	}
	return *c.vals.API.Discovery.Enabled
}

func (c *Instance) DiscoveryInstanceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Discovery.InstanceName
}
