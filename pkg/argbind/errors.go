// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"errors"
	"fmt"
)

// Kind classifies a binding failure.
type Kind int

const (
	KindNone Kind = iota
	KindDuplicateIdentifier
	KindUnknownArgument
	KindInvalidArgumentValue
	KindRequiredArgumentMissing
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateIdentifier:
		return "DuplicateIdentifier"
	case KindUnknownArgument:
		return "UnknownArgument"
	case KindInvalidArgumentValue:
		return "InvalidArgumentValue"
	case KindRequiredArgumentMissing:
		return "RequiredArgumentMissing"
	default:
		return "None"
	}
}

// KindOf returns the Kind of err, or KindNone if err is not a binding failure.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindNone
}

// DuplicateIdentifierError is returned when two bound fields share an
// identifier or alias. Identifier is the string that appeared twice.
type DuplicateIdentifierError struct {
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate argument identifier: %s", e.Identifier)
}

func (e *DuplicateIdentifierError) Kind() Kind { return KindDuplicateIdentifier }

// UnknownArgumentError is returned when a token in identifier position does
// not match any identifier or alias.
type UnknownArgumentError struct {
	Name string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument: %s", e.Name)
}

func (e *UnknownArgumentError) Kind() Kind { return KindUnknownArgument }

// InvalidValueError is returned when an argument value is missing, fails
// its pattern, or cannot be converted to the field type.
//
// Value is nil when no value followed the identifier. A pointer to the empty
// string means an explicit "" was supplied.
type InvalidValueError struct {
	Name  string  // the identifier or alias as it appeared in the input
	Value *string // the raw value, nil if absent
	Err   error   // underlying cause, may be nil
}

func (e *InvalidValueError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("missing value for argument %s", e.Name)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid value %q for argument %s: %v", *e.Value, e.Name, e.Err)
	}
	return fmt.Sprintf("invalid value %q for argument %s", *e.Value, e.Name)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

func (e *InvalidValueError) Kind() Kind { return KindInvalidArgumentValue }

// HasValue reports whether a value was supplied at all.
func (e *InvalidValueError) HasValue() bool { return e.Value != nil }

// RequiredArgumentError is returned when a required argument is absent.
// Name is always the canonical identifier, never the alias.
type RequiredArgumentError struct {
	Name string
}

func (e *RequiredArgumentError) Error() string {
	return fmt.Sprintf("required argument missing: %s", e.Name)
}

func (e *RequiredArgumentError) Kind() Kind { return KindRequiredArgumentMissing }

// SchemaError reports a mistake in the binding metadata itself, such as an
// invalid pattern or an unsupported field type. It is raised while building
// a schema and is not a user input failure.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("argbind: %v", e.Err)
	}
	return fmt.Sprintf("argbind: field %s: %v", e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

var (
	errMissingValue  = errors.New("missing value")
	errEmptyRequired = errors.New("value is required")
)

// ErrPatternMismatch is wrapped by InvalidValueError when a value does not
// match the argument's validation pattern.
var ErrPatternMismatch = errors.New("value does not match pattern")

func invalidValue(name string, raw *string, err error) *InvalidValueError {
	return &InvalidValueError{Name: name, Value: raw, Err: err}
}
