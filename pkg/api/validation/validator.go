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

// Package validation checks API request parameters with go-playground
// validator, plus the custom rules the similarity methods need.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingParams = errors.New("missing params")
	ErrInvalidParams = errors.New("invalid params")
)

type contextKey struct{}

var validateCtxKey = contextKey{}

type Validator struct {
	validate *validator.Validate
}

// Context carries per-server limits into validation rules.
type Context struct {
	MaxItems int
}

func NewContext(maxItems int) *Context {
	return &Context{MaxItems: maxItems}
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidationCtx("maxitems", validateMaxItems)
	return &Validator{validate: v}
}

var DefaultValidator = NewValidator()

func (v *Validator) Validate(params any) error {
	return v.ValidateCtx(context.Background(), params, nil)
}

func (v *Validator) ValidateCtx(ctx context.Context, params any, vctx *Context) error {
	ctxVal := context.WithValue(ctx, validateCtxKey, vctx)
	if err := v.validate.StructCtx(ctxVal, params); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateAndUnmarshal decodes params into dest and validates the result.
// Params may be a JSON object or, for types implementing Positional, a JSON
// array.
func ValidateAndUnmarshal[T any](params json.RawMessage, dest *T) error {
	return ValidateAndUnmarshalCtx(context.Background(), params, dest, nil)
}

func ValidateAndUnmarshalCtx[T any](
	ctx context.Context,
	params json.RawMessage,
	dest *T,
	vctx *Context,
) error {
	if len(params) == 0 {
		return ErrMissingParams
	}
	if isArray(params) {
		if err := decodePositional(params, dest); err != nil {
			return err
		}
	} else if err := json.Unmarshal(params, dest); err != nil {
		return ErrInvalidParams
	}
	return DefaultValidator.ValidateCtx(ctx, dest, vctx)
}

// validateMaxItems caps slice lengths at Context.MaxItems. Without a
// context there is no cap.
func validateMaxItems(ctx context.Context, fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	vctx, ok := ctx.Value(validateCtxKey).(*Context)
	if !ok || vctx == nil || vctx.MaxItems <= 0 {
		return true
	}
	return field.Len() <= vctx.MaxItems
}
