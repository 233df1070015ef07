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

// Package discovery advertises the API server on the local network with
// mDNS, so clients can find it without an address.
package discovery

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/ZaparooProject/go-trigram/pkg/helpers"
	"github.com/ZaparooProject/go-trigram/pkg/helpers/syncutil"
	"github.com/grandcat/zeroconf"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ServiceType is the DNS-SD service type of the API server.
const ServiceType = "_zaparoo-trigram._tcp"

const (
	domain = "local."
	// retryInterval is how often registration is retried while the network
	// is unavailable.
	retryInterval    = 30 * time.Second
	maxRetryDuration = 5 * time.Minute
)

// virtualInterfacePrefixes name container and VPN interfaces that should not
// carry mDNS announcements.
var virtualInterfacePrefixes = []string{
	"docker", "br-", "veth", "virbr", "lxc", "lxd",
	"cni", "flannel", "cali", "tunl", "wg",
}

// server is the part of *zeroconf.Server the service uses.
type server interface {
	Shutdown()
}

// registerFunc publishes a service record, like zeroconf.Register.
type registerFunc func(
	instance, service, domain string,
	port int,
	text []string,
	ifaces []net.Interface,
) (server, error)

func zeroconfRegister(
	instance, service, domain string,
	port int,
	text []string,
	ifaces []net.Interface,
) (server, error) {
	srv, err := zeroconf.Register(instance, service, domain, port, text, ifaces)
	if err != nil {
		return nil, fmt.Errorf("zeroconf register: %w", err)
	}
	return srv, nil
}

// Service manages mDNS advertising of the API server.
type Service struct {
	server       server
	cfg          *config.Instance
	clock        clockwork.Clock
	register     registerFunc
	interfaces   func() ([]net.Interface, error)
	cancel       context.CancelFunc
	done         chan struct{}
	backend      string
	instanceName string
	stopped      bool
	mu           syncutil.Mutex
}

// New returns a discovery service for the server configured in cfg.
func New(cfg *config.Instance, backend string, clock clockwork.Clock) *Service {
	return &Service{
		cfg:        cfg,
		backend:    backend,
		clock:      clock,
		register:   zeroconfRegister,
		interfaces: preferredInterfaces,
	}
}

// Start begins advertising. When the first attempt fails, for example
// because the network is not up yet, registration is retried in the
// background until it succeeds, ctx is done or the retry window ends.
func (s *Service) Start(ctx context.Context) error {
	if !s.cfg.DiscoveryEnabled() {
		log.Debug().Msg("mDNS discovery disabled by configuration")
		return nil
	}

	if ip := net.ParseIP(s.cfg.APIListen()); ip != nil && ip.IsLoopback() {
		log.Warn().
			Str("listen", s.cfg.APIListen()).
			Msg("advertising an API that only listens on loopback")
	}

	s.instanceName = s.resolveInstanceName()

	if s.tryRegister() {
		return nil
	}

	log.Info().
		Dur("retryInterval", retryInterval).
		Dur("maxDuration", maxRetryDuration).
		Msg("mDNS registration failed, retrying in background")

	retryCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.retryLoop(retryCtx)
	}()

	return nil
}

func (s *Service) tryRegister() bool {
	port := s.cfg.APIPort()
	txt := []string{
		"version=" + config.AppVersion,
		"backend=" + s.backend,
		"path=" + config.APIPath,
	}

	ifaces, err := s.interfaces()
	if err != nil {
		log.Debug().Err(err).Msg("failed to get network interfaces")
		return false
	}
	if len(ifaces) == 0 {
		log.Debug().Msg("no suitable network interfaces found for mDNS")
		return false
	}

	names := make([]string, len(ifaces))
	for i, iface := range ifaces {
		names[i] = iface.Name
	}

	srv, err := s.register(s.instanceName, ServiceType, domain, port, txt, ifaces)
	if err != nil {
		log.Debug().Err(err).Msg("mDNS registration attempt failed")
		return false
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		srv.Shutdown()
		return false
	}
	s.server = srv
	s.mu.Unlock()

	log.Info().
		Str("instance", s.instanceName).
		Int("port", port).
		Str("type", ServiceType).
		Strs("interfaces", names).
		Msg("mDNS service advertising started")
	return true
}

func (s *Service) retryLoop(ctx context.Context) {
	ticker := s.clock.NewTicker(retryInterval)
	defer ticker.Stop()
	deadline := s.clock.After(maxRetryDuration)

	for {
		select {
		case <-ticker.Chan():
			if s.tryRegister() {
				log.Info().Msg("mDNS registration succeeded after retry")
				return
			}
		case <-deadline:
			log.Warn().Msg("mDNS registration retry timed out, discovery will not be available")
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends advertising and waits for any retry loop to exit. Safe to call
// more than once, and before Start.
func (s *Service) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	if srv != nil {
		log.Debug().Msg("stopping mDNS service advertising")
		srv.Shutdown()
	}
}

// Advertising reports whether a registration is currently published.
func (s *Service) Advertising() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server != nil
}

// InstanceName returns the advertised instance name, or "" before Start.
func (s *Service) InstanceName() string {
	return s.instanceName
}

// resolveInstanceName prefers the configured name, then the hostname.
func (s *Service) resolveInstanceName() string {
	if name := s.cfg.DiscoveryInstanceName(); name != "" {
		return name
	}
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		log.Warn().Err(err).Msg("failed to get hostname, using fallback")
		return helpers.AppName
	}
	return hostname
}

func preferredInterfaces() ([]net.Interface, error) {
	all, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list network interfaces: %w", err)
	}
	return filterInterfaces(all), nil
}

// filterInterfaces keeps interfaces that are up, multicast capable, not
// loopback and not virtual.
func filterInterfaces(ifaces []net.Interface) []net.Interface {
	var preferred []net.Interface
	for _, iface := range ifaces {
		switch {
		case iface.Flags&net.FlagUp == 0,
			iface.Flags&net.FlagLoopback != 0,
			iface.Flags&net.FlagMulticast == 0,
			isVirtualInterface(iface.Name):
			continue
		}
		preferred = append(preferred, iface)
	}
	return preferred
}

func isVirtualInterface(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range virtualInterfacePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
