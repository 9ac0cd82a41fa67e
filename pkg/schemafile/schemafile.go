// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads argbind descriptor tables from TOML or YAML files.
package schemafile

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/argbind/pkg/argbind"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	Unknown Format = iota
	TOML
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

const fileVersion = 1

// File is the on-disk form of a schema.
type File struct {
	Version     int        `toml:"version,omitempty" yaml:"version,omitempty"`
	Name        string     `toml:"name,omitempty" yaml:"name,omitempty"`
	Description string     `toml:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []Argument `toml:"argument" yaml:"argument"`
}

// Argument is one descriptor entry.
type Argument struct {
	Identifier string `toml:"identifier" yaml:"identifier"`
	Alias      string `toml:"alias,omitempty" yaml:"alias,omitempty"`
	Required   bool   `toml:"required,omitempty" yaml:"required,omitempty"`
	Type       string `toml:"type,omitempty" yaml:"type,omitempty"`
	Pattern    string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Default    string `toml:"default,omitempty" yaml:"default,omitempty"`
	Help       string `toml:"help,omitempty" yaml:"help,omitempty"`
	Validate   string `toml:"validate,omitempty" yaml:"validate,omitempty"`
}

type valueType struct {
	typ   reflect.Type
	parse func(string) (any, error)
}

var valueTypes = map[string]valueType{
	"string":   {typ: reflect.TypeOf("")},
	"bool":     {typ: reflect.TypeOf(false)},
	"int":      {typ: reflect.TypeOf(int64(0))},
	"uint":     {typ: reflect.TypeOf(uint64(0))},
	"float":    {typ: reflect.TypeOf(float64(0))},
	"duration": {typ: reflect.TypeOf(time.Duration(0))},
	"time":     {typ: reflect.TypeOf(time.Time{})},
	"url":      {typ: reflect.TypeOf((*url.URL)(nil))},
	"uuid":     {typ: reflect.TypeOf(uuid.UUID{})},
	"semver":   {typ: reflect.TypeOf((*semver.Version)(nil)), parse: parseSemver},
}

func parseSemver(s string) (any, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// TypeNames returns the accepted values of Argument.Type, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(valueTypes))
	for name := range valueTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DetectFormat picks the file format from the path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yml", ".yaml":
		return YAML, nil
	}
	return Unknown, fmt.Errorf("unable to detect schema format of %s", path)
}

// Load reads and decodes the schema file at path.
func Load(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	f, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a schema document. Unknown keys are rejected.
func Decode(format Format, data []byte) (*File, error) {
	var f File
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %v", format)
	}
	if f.Version == 0 {
		f.Version = fileVersion
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported schema version %d", f.Version)
	}
	return &f, nil
}

// Descriptors converts the file's arguments into argbind descriptors.
func (f *File) Descriptors() ([]argbind.Descriptor, error) {
	descs := make([]argbind.Descriptor, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		typeName := a.Type
		if typeName == "" {
			typeName = "string"
		}
		vt, ok := valueTypes[typeName]
		if !ok {
			return nil, &argbind.SchemaError{
				Field: a.Identifier,
				Err:   fmt.Errorf("unknown type %q (want one of %s)", a.Type, strings.Join(TypeNames(), ", ")),
			}
		}
		descs = append(descs, argbind.Descriptor{
			Identifier: a.Identifier,
			Alias:      a.Alias,
			Required:   a.Required,
			Pattern:    a.Pattern,
			Default:    a.Default,
			Help:       a.Help,
			Validate:   a.Validate,
			Type:       vt.typ,
			Parse:      vt.parse,
		})
	}
	return descs, nil
}

// Schema builds the argbind schema described by f.
func (f *File) Schema() (*argbind.Schema, error) {
	descs, err := f.Descriptors()
	if err != nil {
		return nil, err
	}
	return argbind.NewSchema(descs...)
}
