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

package models

import "encoding/json"

const JSONRPCVersion = "2.0"

const (
	MethodSimilarity      = "similarity"
	MethodSimilarityBatch = "similarity.batch"
	MethodBestMatch       = "similarity.best"
	MethodScoreAll        = "similarity.score"
	MethodShow            = "trigram.show"
	MethodSettings        = "settings"
	MethodSettingsUpdate  = "settings.update"
	MethodSettingsReload  = "settings.reload"
	MethodVersion         = "version"
)

// RequestObject.ID is left empty when the id key is missing, which marks a
// notification. An explicit null is kept as a null id.
type RequestObject struct {
	ID      RPCID           `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}

// ResponseErrorObject is sent for failed requests so the result key is left
// out, while a successful nil result is still written as "result": null.
type ResponseErrorObject struct {
	Error   *ErrorObject `json:"error"`
	JSONRPC string       `json:"jsonrpc"`
	ID      RPCID        `json:"id"`
}
