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
	"fmt"
	"strings"

	"github.com/ZaparooProject/go-trigram/pkg/api/methods"
	"github.com/ZaparooProject/go-trigram/pkg/api/models"
	"github.com/ZaparooProject/go-trigram/pkg/api/models/requests"
	"github.com/ZaparooProject/go-trigram/pkg/helpers/syncutil"
)

var (
	ErrEmptyMethodName = errors.New("method name is empty")
	ErrMethodExists    = errors.New("method already registered")
)

type Method func(requests.RequestEnv) (any, error)

// MethodMap holds the JSON-RPC methods a server answers. Names are matched
// case-insensitively.
type MethodMap struct {
	methods map[string]Method
	mu      syncutil.RWMutex
}

// NewMethodMap returns a map with every built-in method registered.
func NewMethodMap() *MethodMap {
	m := &MethodMap{methods: make(map[string]Method)}
	defaults := map[string]Method{
		// similarity
		models.MethodSimilarity:      methods.HandleSimilarity,
		models.MethodSimilarityBatch: methods.HandleSimilarityBatch,
		models.MethodBestMatch:       methods.HandleBestMatch,
		models.MethodScoreAll:        methods.HandleScoreAll,
		// settings
		models.MethodSettings:       methods.HandleSettings,
		models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
		models.MethodSettingsReload: methods.HandleSettingsReload,
		// utils
		models.MethodShow:    methods.HandleShow,
		models.MethodVersion: methods.HandleVersion,
	}
	for name, fn := range defaults {
		m.methods[name] = fn
	}
	return m
}

func (m *MethodMap) AddMethod(name string, fn Method) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ErrEmptyMethodName
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.methods[name]; ok {
		return fmt.Errorf("%w: %s", ErrMethodExists, name)
	}
	m.methods[name] = fn
	return nil
}

func (m *MethodMap) GetMethod(name string) (Method, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn, ok := m.methods[strings.ToLower(name)]
	return fn, ok
}
