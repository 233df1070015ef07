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
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error lists every failed rule of one params struct.
type Error struct {
	Fields []FieldError
}

// FieldError is one failed rule. Field is the JSON param name. Count is the
// number of items for list params and 0 otherwise.
type FieldError struct {
	Field   string
	Tag     string
	Message string
	Count   int
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// NewError converts validator errors. Param values are not kept since
// haystack lists can be large.
func NewError(errs validator.ValidationErrors) *Error {
	ve := &Error{
		Fields: make([]FieldError, len(errs)),
	}
	for i, fe := range errs {
		count := 0
		if v := reflect.ValueOf(fe.Value()); v.Kind() == reflect.Slice {
			count = v.Len()
		}
		ve.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Count:   count,
			Message: formatValidationError(fe, count),
		}
	}
	return ve
}

func formatValidationError(fe validator.FieldError, count int) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "maxitems":
		return fmt.Sprintf("%s has too many items (%d)", field, count)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// jsonFieldName reports fields by the name clients send.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(fld.Name)
	default:
		return name
	}
}
