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

// Package helpers provides test utilities shared across packages: an
// in-memory filesystem with config setup, and JSON-RPC clients for the API
// over HTTP and WebSocket.
//
// Example usage:
//
//	fs := helpers.NewMemoryFS()
//	cfg, err := helpers.NewTestConfig(fs, "/cfg", "")
//	require.NoError(t, err)
//
//	conn := helpers.DialWebSocket(t, server.URL)
//	resp, err := helpers.SendJSONRPCRequest(conn, "similarity", []string{"a", "b"})
//	require.NoError(t, err)
//	helpers.AssertJSONRPCSuccess(t, resp)
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/config"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type JSONRPCRequest struct {
	Params  any          `json:"params,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	Method  string       `json:"method"`
	ID      models.RPCID `json:"id"`
}

type JSONRPCResponse struct {
	Result json.RawMessage     `json:"result,omitempty"`
	Error  *models.ErrorObject `json:"error,omitempty"`
	ID     models.RPCID        `json:"id"`
}

// DecodeResult unmarshals the response result into dest.
func (r *JSONRPCResponse) DecodeResult(dest any) error {
	if err := json.Unmarshal(r.Result, dest); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

func NewRequest(method string, params any) JSONRPCRequest {
	return JSONRPCRequest{
		JSONRPC: models.JSONRPCVersion,
		ID:      models.NewStringID(uuid.NewString()),
		Method:  method,
		Params:  params,
	}
}

// DialWebSocket connects to the API of a test server. The connection is
// closed when the test ends.
func DialWebSocket(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()

	u, err := url.Parse(serverURL)
	require.NoError(t, err)
	u.Scheme = "ws"
	u.Path = config.APIPath

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// SendJSONRPCRequest sends one request and reads one response.
func SendJSONRPCRequest(conn *websocket.Conn, method string, params any) (*JSONRPCResponse, error) {
	data, err := json.Marshal(NewRequest(method, params))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	_, respData, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp JSONRPCResponse
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}

// PostJSONRPC sends a request over HTTP POST and decodes the response.
func PostJSONRPC(client *http.Client, serverURL, method string, params any) (*JSONRPCResponse, error) {
	data, err := json.Marshal(NewRequest(method, params))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		context.Background(),
		http.MethodPost,
		serverURL+config.APIPath,
		bytes.NewReader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send POST request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	var resp JSONRPCResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

func AssertJSONRPCSuccess(t *testing.T, response *JSONRPCResponse) {
	t.Helper()
	require.NotNil(t, response, "response should not be nil")
	require.Nil(t, response.Error, "response should not contain an error")
	require.NotEmpty(t, response.Result, "response should contain a result")
}

func AssertJSONRPCError(t *testing.T, response *JSONRPCResponse, expectedCode int) {
	t.Helper()
	require.NotNil(t, response, "response should not be nil")
	require.NotNil(t, response.Error, "response should contain an error")
	require.Equal(t, expectedCode, response.Error.Code, "error code should match")
}
