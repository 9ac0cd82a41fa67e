// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strconv"
)

// Struct tags read by the schema builder.
const (
	tagArg      = "arg"
	tagAlias    = "alias"
	tagRequired = "required"
	tagPattern  = "pattern"
	tagDefault  = "default"
	tagHelp     = "help"
	tagValidate = "validate"
)

// Descriptor describes one bindable argument.
type Descriptor struct {
	// Identifier is the canonical name, e.g. "-name". It must be non-empty.
	Identifier string
	// Alias is an optional secondary name sharing the identifier namespace.
	Alias string
	// Required arguments must be present in the input.
	Required bool
	// Pattern is an optional regular expression the raw value must match.
	Pattern string
	// Default is the raw value used when the argument is absent. Empty means
	// no default.
	Default string
	// Help is shown by Usage.
	Help string
	// Validate holds go-playground/validator rules checked against the
	// converted value, e.g. "min=1,max=10".
	Validate string
	// Type is the Go type the raw value converts to. Registered descriptors
	// with a nil Type and nil Parse are strings.
	Type reflect.Type
	// Parse optionally replaces the built-in conversion.
	Parse func(string) (any, error)

	field   []int // struct field index path; nil for registered schemas
	name    string
	pattern *regexp.Regexp
}

// IsBoolFlag reports whether the argument is a presence-only boolean flag.
// Boolean flags never consume the following token.
func (d *Descriptor) IsBoolFlag() bool {
	if d.Parse != nil || d.Type == nil {
		return false
	}
	return baseType(d.Type).Kind() == reflect.Bool
}

// FieldName returns the Go struct field bound to d, or "" for registered
// descriptors.
func (d *Descriptor) FieldName() string { return d.name }

// Schema is the validated set of descriptors for one target shape. A Schema
// is immutable once built and safe for concurrent use.
type Schema struct {
	typ   reflect.Type // nil for registered schemas
	descs []Descriptor
	index map[string]int // identifier or alias -> position in descs
}

// NewSchema builds a schema from an explicit descriptor table. Values parsed
// with such a schema are returned by ParseMap keyed by canonical identifier.
func NewSchema(descs ...Descriptor) (*Schema, error) {
	b := newSchemaBuilder()
	for _, d := range descs {
		d.field = nil
		if d.Type == nil && d.Parse == nil {
			d.Type = reflect.TypeOf("")
		}
		if err := b.add(d); err != nil {
			return nil, err
		}
	}
	return b.schema(nil), nil
}

// Descriptors returns a copy of the schema's descriptors in declaration order.
func (s *Schema) Descriptors() []Descriptor {
	return slices.Clone(s.descs)
}

// Lookup returns the descriptor owning token, matching identifiers and
// aliases exactly.
func (s *Schema) Lookup(token string) (Descriptor, bool) {
	i, ok := s.index[token]
	if !ok {
		return Descriptor{}, false
	}
	return s.descs[i], true
}

// Type returns the struct type the schema was built from, or nil for
// registered schemas.
func (s *Schema) Type() reflect.Type { return s.typ }

func (s *Schema) isIdentifier(token string) bool {
	_, ok := s.index[token]
	return ok
}

type schemaBuilder struct {
	descs []Descriptor
	index map[string]int
}

func newSchemaBuilder() *schemaBuilder {
	return &schemaBuilder{index: make(map[string]int)}
}

func (b *schemaBuilder) schema(t reflect.Type) *Schema {
	return &Schema{typ: t, descs: b.descs, index: b.index}
}

// add validates d and claims its identifier and alias. The first occurrence
// of a name keeps it; any later one fails.
func (b *schemaBuilder) add(d Descriptor) error {
	field := d.name
	if field == "" {
		field = d.Identifier
	}
	if d.Identifier == "" {
		return &SchemaError{Field: field, Err: errors.New("identifier must not be empty")}
	}
	if d.Pattern != "" {
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return &SchemaError{Field: field, Err: fmt.Errorf("invalid pattern: %w", err)}
		}
		d.pattern = re
	}
	if d.Parse == nil {
		if err := checkType(d.Type); err != nil {
			return &SchemaError{Field: field, Err: err}
		}
	}

	pos := len(b.descs)
	for _, id := range []string{d.Identifier, d.Alias} {
		if id == "" {
			continue
		}
		if _, ok := b.index[id]; ok {
			return &DuplicateIdentifierError{Identifier: id}
		}
		b.index[id] = pos
	}
	b.descs = append(b.descs, d)
	return nil
}

func buildSchema(t reflect.Type) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &SchemaError{Err: fmt.Errorf("target must be a struct, got %v", t)}
	}
	b := newSchemaBuilder()
	if err := b.walk(t, nil); err != nil {
		return nil, err
	}
	return b.schema(t), nil
}

// walk collects tagged fields of t in declaration order. Untagged anonymous
// struct fields are flattened into the parent namespace.
func (b *schemaBuilder) walk(t reflect.Type, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		path := append(slices.Clone(index), i)

		id, tagged := field.Tag.Lookup(tagArg)
		if !tagged && field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := b.walk(field.Type, path); err != nil {
				return err
			}
			continue
		}
		if !tagged {
			continue
		}
		if id == "" {
			return &SchemaError{Field: field.Name, Err: errors.New("identifier must not be empty")}
		}
		if !field.IsExported() {
			return &SchemaError{Field: field.Name, Err: errors.New("bound field must be exported")}
		}

		d := Descriptor{
			Identifier: id,
			Alias:      field.Tag.Get(tagAlias),
			Pattern:    field.Tag.Get(tagPattern),
			Default:    field.Tag.Get(tagDefault),
			Help:       field.Tag.Get(tagHelp),
			Validate:   field.Tag.Get(tagValidate),
			Type:       field.Type,
			field:      path,
			name:       field.Name,
		}
		if s, ok := field.Tag.Lookup(tagRequired); ok {
			req, err := strconv.ParseBool(s)
			if err != nil {
				return &SchemaError{Field: field.Name, Err: fmt.Errorf("invalid required tag %q", s)}
			}
			d.Required = req
		}
		if err := b.add(d); err != nil {
			return err
		}
	}
	return nil
}
