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

package api

import (
	"errors"

	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/validation"
	"github.com/ZaparooProject/go-trigram/pkg/trigram"
)

var (
	JSONRPCErrorParseError = models.ErrorObject{
		Code:    -32700,
		Message: "Parse error",
	}
	JSONRPCErrorInvalidRequest = models.ErrorObject{
		Code:    -32600,
		Message: "Invalid Request",
	}
	JSONRPCErrorMethodNotFound = models.ErrorObject{
		Code:    -32601,
		Message: "Method not found",
	}
	JSONRPCErrorInvalidParams = models.ErrorObject{
		Code:    -32602,
		Message: "Invalid params",
	}
	JSONRPCErrorInternalError = models.ErrorObject{
		Code:    -32603,
		Message: "Internal error",
	}
	JSONRPCErrorEmptyHaystacks = models.ErrorObject{
		Code:    -32001,
		Message: "No haystacks to match",
	}
)

// errorObject maps a method error to the JSON-RPC error sent to the client.
func errorObject(err error) models.ErrorObject {
	var ve *validation.Error
	switch {
	case errors.Is(err, trigram.ErrEmptyHaystacks):
		return JSONRPCErrorEmptyHaystacks
	case errors.As(err, &ve):
		fields := make([]string, len(ve.Fields))
		for i, fe := range ve.Fields {
			fields[i] = fe.Message
		}
		return models.ErrorObject{
			Code:    JSONRPCErrorInvalidParams.Code,
			Message: JSONRPCErrorInvalidParams.Message + ": " + ve.Error(),
			Data:    fields,
		}
	case errors.Is(err, validation.ErrMissingParams), errors.Is(err, validation.ErrInvalidParams):
		return models.ErrorObject{
			Code:    JSONRPCErrorInvalidParams.Code,
			Message: JSONRPCErrorInvalidParams.Message + ": " + err.Error(),
		}
	default:
		return JSONRPCErrorInternalError
	}
}
