// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	schema *Schema
	err    error
}

var (
	schemaCache sync.Map // reflect.Type -> cacheEntry
	schemaGroup singleflight.Group
)

// SchemaOf returns the schema for struct type t, building it on first use.
// Pointer types are dereferenced. Results, including failures, are cached
// and never modified afterwards.
func SchemaOf(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return nil, &SchemaError{Err: fmt.Errorf("nil target type")}
	}
	return structSchema(t)
}

// structSchema is the cached lookup behind SchemaOf. t is used as is, so a
// pointer type fails to build like any other non-struct.
func structSchema(t reflect.Type) (*Schema, error) {
	if e, ok := schemaCache.Load(t); ok {
		entry := e.(cacheEntry)
		return entry.schema, entry.err
	}
	// Type names are not unique (function-local types), the rtype address is.
	key := fmt.Sprintf("%p", t)
	e, _, _ := schemaGroup.Do(key, func() (any, error) {
		s, err := buildSchema(t)
		entry := cacheEntry{schema: s, err: err}
		actual, _ := schemaCache.LoadOrStore(t, entry)
		return actual, nil
	})
	entry := e.(cacheEntry)
	return entry.schema, entry.err
}

// SchemaFor is SchemaOf for the type parameter T.
func SchemaFor[T any]() (*Schema, error) {
	return SchemaOf(reflect.TypeFor[T]())
}
