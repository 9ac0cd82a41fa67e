// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"fmt"
	"os"
	"reflect"
)

// Options tune a single parse call. The zero value is ready to use.
type Options struct {
	// Logf, if non-nil, receives a trace of each pipeline stage.
	// log.Printf is a suitable value.
	Logf func(format string, args ...any)
	// TimeLayouts replaces DefaultTimeLayouts for date-time values.
	TimeLayouts []string
}

func (o Options) logf(format string, args ...any) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Parse binds args into a new T. T must be a struct type whose bound fields
// carry an `arg` tag. On failure no instance is returned.
func Parse[T any](args []string) (*T, error) {
	return ParseWithOptions[T](args, Options{})
}

// ParseArgs is Parse with the process arguments, excluding the program name.
func ParseArgs[T any]() (*T, error) {
	return Parse[T](os.Args[1:])
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions[T any](args []string, opts Options) (*T, error) {
	s, err := structSchema(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	values, err := s.run(args, opts)
	if err != nil {
		return nil, err
	}
	out := new(T)
	s.bindStruct(reflect.ValueOf(out).Elem(), values)
	return out, nil
}

// Bind binds args into the struct pointed to by dst. dst is modified only
// if binding succeeds. Bound arguments that are absent from args and have no
// default keep their current value, as do fields without an `arg` tag.
func Bind(dst any, args []string) error {
	return BindWithOptions(dst, args, Options{})
}

// BindWithOptions is Bind with explicit options.
func BindWithOptions(dst any, args []string, opts Options) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &SchemaError{Err: fmt.Errorf("Bind needs a non-nil struct pointer, got %T", dst)}
	}
	s, err := structSchema(rv.Type().Elem())
	if err != nil {
		return err
	}
	values, err := s.run(args, opts)
	if err != nil {
		return err
	}
	s.bindStruct(rv.Elem(), values)
	return nil
}

// ParseMap binds args against s and returns the values keyed by canonical
// identifier. Every descriptor has an entry; absent arguments without a
// default hold their type's zero value.
func (s *Schema) ParseMap(args []string, opts Options) (map[string]any, error) {
	values, err := s.run(args, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(s.descs))
	for i := range s.descs {
		d := &s.descs[i]
		switch {
		case values[i].IsValid():
			out[d.Identifier] = values[i].Interface()
		case d.Type != nil:
			out[d.Identifier] = reflect.Zero(d.Type).Interface()
		default:
			out[d.Identifier] = nil
		}
	}
	return out, nil
}

// run executes tokenizing, value resolution and completion. The returned
// slice is indexed like s.descs; an invalid Value marks an argument that
// stays unset.
func (s *Schema) run(args []string, opts Options) ([]reflect.Value, error) {
	occs, unknown := s.tokenize(args)
	opts.logf("argbind: %d token(s), %d argument(s), %d unknown", len(args), len(occs), len(unknown))

	values := make([]reflect.Value, len(s.descs))
	for _, occ := range occs {
		d := &s.descs[occ.desc]
		if occ.flag {
			opts.logf("argbind: %s set", d.Identifier)
			values[occ.desc] = d.flagValue()
			continue
		}
		v, err := d.resolve(occ.name, occ.raw, opts.TimeLayouts)
		if err != nil {
			opts.logf("argbind: %s rejected: %v", occ.name, err)
			return nil, err
		}
		opts.logf("argbind: %s = %q", d.Identifier, *occ.raw)
		values[occ.desc] = v
	}

	if len(unknown) > 0 {
		return nil, &UnknownArgumentError{Name: unknown[0]}
	}

	if err := s.complete(values, opts); err != nil {
		return nil, err
	}
	return values, nil
}

// complete enforces required arguments and applies defaults to the
// arguments the input did not set.
func (s *Schema) complete(values []reflect.Value, opts Options) error {
	for i := range s.descs {
		if values[i].IsValid() {
			continue
		}
		d := &s.descs[i]
		switch {
		case d.Required:
			return &RequiredArgumentError{Name: d.Identifier}
		case d.Default != "":
			def := d.Default
			v, err := d.resolve(d.Identifier, &def, opts.TimeLayouts)
			if err != nil {
				return err
			}
			opts.logf("argbind: %s defaulted to %q", d.Identifier, def)
			values[i] = v
		}
	}
	return nil
}

// bindStruct writes resolved values into dst, a struct of type s.typ.
func (s *Schema) bindStruct(dst reflect.Value, values []reflect.Value) {
	for i := range s.descs {
		if !values[i].IsValid() {
			continue
		}
		dst.FieldByIndex(s.descs[i].field).Set(values[i])
	}
}
