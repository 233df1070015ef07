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
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestTimeout   = errors.New("request timed out")
	ErrInvalidParams    = errors.New("invalid params")
	ErrRequestCancelled = errors.New("request cancelled")
)

// RPCError is an error object returned by the server.
type RPCError struct {
	Data    any
	Message string
	Code    int
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Call sends a single method with params to the API at address (host:port)
// over WebSocket and waits for the matching response. Params must be empty
// or valid JSON. The raw JSON result is returned.
func Call(
	ctx context.Context,
	address string,
	timeout time.Duration,
	method string,
	params string,
) (json.RawMessage, error) {
	wsURL := url.URL{
		Scheme: "ws",
		Host:   address,
		Path:   config.APIPath,
	}

	id := models.NewStringID(uuid.NewString())
	req := models.RequestObject{
		JSONRPC: models.JSONRPCVersion,
		ID:      id,
		Method:  method,
	}

	if params != "" {
		if !json.Valid([]byte(params)) {
			return nil, ErrInvalidParams
		}
		req.Params = json.RawMessage(params)
	}

	c, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to api: %w", err)
	}
	defer func(c *websocket.Conn) {
		if err := c.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing websocket")
		}
	}(c)

	done := make(chan struct{})
	var result *models.ResponseObject
	var rawResult json.RawMessage

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Msg("error reading message")
				return
			}

			var m struct {
				models.ResponseObject
				Result json.RawMessage `json:"result"`
			}
			if err := json.Unmarshal(message, &m); err != nil {
				continue
			}
			if m.JSONRPC != models.JSONRPCVersion {
				log.Error().Msg("invalid jsonrpc version")
				continue
			}
			if !id.Equal(m.ID) && !m.ID.IsNull() {
				continue
			}

			result = &m.ResponseObject
			rawResult = m.Result
			return
		}
	}()

	if err := c.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		_ = c.Close()
		<-done
		return nil, ErrRequestTimeout
	case <-ctx.Done():
		_ = c.Close()
		<-done
		return nil, ErrRequestCancelled
	}

	if result == nil {
		return nil, ErrRequestTimeout
	}
	if result.Error != nil {
		return nil, &RPCError{
			Code:    result.Error.Code,
			Message: result.Error.Message,
			Data:    result.Error.Data,
		}
	}
	return rawResult, nil
}

// LocalClient calls the API server configured in cfg.
func LocalClient(
	ctx context.Context,
	cfg *config.Instance,
	method string,
	params string,
) (json.RawMessage, error) {
	return Call(ctx, cfg.APIAddress(), config.APIRequestTimeout, method, params)
}
