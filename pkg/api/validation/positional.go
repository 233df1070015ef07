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

package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Positional is implemented by params that accept a JSON array, naming the
// json field each array element fills.
type Positional interface {
	Positional() []string
}

func isArray(params json.RawMessage) bool {
	trimmed := bytes.TrimSpace(params)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func decodePositional[T any](params json.RawMessage, dest *T) error {
	pos, ok := any(dest).(Positional)
	if !ok {
		return ErrInvalidParams
	}
	names := pos.Positional()

	var values []any
	if err := json.Unmarshal(params, &values); err != nil {
		return ErrInvalidParams
	}
	if len(values) > len(names) {
		return fmt.Errorf("%w: expected at most %d positional params, got %d",
			ErrInvalidParams, len(names), len(values))
	}

	named := make(map[string]any, len(values))
	for i, v := range values {
		named[names[i]] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      dest,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := decoder.Decode(named); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}
