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

package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ZaparooProject/go-trigram/pkg/config"
)

// APIClient abstracts API communication for testability.
type APIClient interface {
	Call(ctx context.Context, method, params string) (json.RawMessage, error)
}

// LocalAPIClient calls the API server described by a config.
type LocalAPIClient struct {
	cfg *config.Instance
}

func NewLocalAPIClient(cfg *config.Instance) *LocalAPIClient {
	return &LocalAPIClient{cfg: cfg}
}

func (c *LocalAPIClient) Call(ctx context.Context, method, params string) (json.RawMessage, error) {
	resp, err := LocalClient(ctx, c.cfg, method, params)
	if err != nil {
		return nil, fmt.Errorf("api call failed: %w", err)
	}
	return resp, nil
}
