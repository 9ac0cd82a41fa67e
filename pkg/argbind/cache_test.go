// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestSchemaOfCachesConcurrently(t *testing.T) {
	type cached struct {
		Name string `arg:"-name"`
		Age  int    `arg:"-age"`
	}

	const workers = 16
	schemas := make([]*Schema, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := SchemaFor[cached]()
			if err != nil {
				t.Errorf("SchemaFor() error = %v", err)
				return
			}
			schemas[i] = s
		}()
	}
	wg.Wait()

	for i, s := range schemas {
		if s != schemas[0] {
			t.Fatalf("schema %d = %p, want shared %p", i, s, schemas[0])
		}
	}
}

func TestSchemaOfDereferencesPointers(t *testing.T) {
	a, err := SchemaOf(reflect.TypeOf(&person{}))
	if err != nil {
		t.Fatalf("SchemaOf(*person) error = %v", err)
	}
	b, err := SchemaFor[person]()
	if err != nil {
		t.Fatalf("SchemaFor[person]() error = %v", err)
	}
	if a != b {
		t.Error("pointer and value types produced different schemas")
	}
}

func TestSchemaOfCachesFailures(t *testing.T) {
	for range 2 {
		_, err := SchemaFor[duplicateAlias]()
		var dup *DuplicateIdentifierError
		if !errors.As(err, &dup) || dup.Identifier != "-p" {
			t.Fatalf("SchemaFor() error = %v, want duplicate -p", err)
		}
	}
}

// Function-local types with the same name must not share a schema.
func TestSchemaOfDistinctLocalTypes(t *testing.T) {
	first := func() *Schema {
		type opts struct {
			A string `arg:"-a"`
		}
		s, err := SchemaFor[opts]()
		if err != nil {
			t.Fatalf("SchemaFor() error = %v", err)
		}
		return s
	}()
	second := func() *Schema {
		type opts struct {
			B string `arg:"-b"`
		}
		s, err := SchemaFor[opts]()
		if err != nil {
			t.Fatalf("SchemaFor() error = %v", err)
		}
		return s
	}()
	if _, ok := first.Lookup("-a"); !ok {
		t.Error("first schema lost -a")
	}
	if _, ok := second.Lookup("-b"); !ok {
		t.Error("second schema lost -b")
	}
}
