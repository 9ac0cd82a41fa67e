// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/argbind/pkg/argbind"
)

const deployTOML = `
name = "deploy"
description = "Deploy a service"

[[argument]]
identifier = "-service"
alias = "-s"
required = true
pattern = '^[a-z][a-z0-9-]*$'
help = "Service name"

[[argument]]
identifier = "-version"
type = "semver"

[[argument]]
identifier = "-id"
type = "uuid"

[[argument]]
identifier = "-timeout"
type = "duration"
default = "30s"

[[argument]]
identifier = "-replicas"
type = "int"
validate = "min=1,max=9"
default = "1"

[[argument]]
identifier = "-force"
alias = "-f"
type = "bool"
`

const deployYAML = `
name: deploy
argument:
  - identifier: -service
    alias: -s
    required: true
  - identifier: -force
    type: bool
`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want Format
	}{
		{"schema.toml", TOML},
		{"schema.TOML", TOML},
		{"schema.yaml", YAML},
		{"dir/schema.yml", YAML},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.path)
		if err != nil {
			t.Fatalf("DetectFormat(%q) error: %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
	if _, err := DetectFormat("schema.json"); err == nil {
		t.Error("DetectFormat(schema.json) succeeded, want error")
	}
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "deploy.toml", deployTOML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if f.Name != "deploy" || f.Version != 1 || len(f.Arguments) != 6 {
		t.Fatalf("Load = %+v", f)
	}
	s, err := f.Schema()
	if err != nil {
		t.Fatalf("Schema error: %v", err)
	}

	id := "0f8fad5b-d9cb-469f-a165-70867728950e"
	got, err := s.ParseMap([]string{"-s", "api", "-version", "1.2.3", "-id", id, "-f"}, argbind.Options{})
	if err != nil {
		t.Fatalf("ParseMap error: %v", err)
	}
	if got["-service"] != "api" {
		t.Errorf("-service = %v, want api", got["-service"])
	}
	if v, ok := got["-version"].(*semver.Version); !ok || v.String() != "1.2.3" {
		t.Errorf("-version = %#v, want 1.2.3", got["-version"])
	}
	if u, ok := got["-id"].(uuid.UUID); !ok || u.String() != id {
		t.Errorf("-id = %#v, want %s", got["-id"], id)
	}
	if got["-timeout"] != 30*time.Second {
		t.Errorf("-timeout = %v, want 30s", got["-timeout"])
	}
	if got["-replicas"] != int64(1) {
		t.Errorf("-replicas = %#v, want 1", got["-replicas"])
	}
	if got["-force"] != true {
		t.Errorf("-force = %v, want true", got["-force"])
	}

	_, err = s.ParseMap([]string{"-s", "Api"}, argbind.Options{})
	if !errors.Is(err, argbind.ErrPatternMismatch) {
		t.Errorf("ParseMap error = %v, want pattern mismatch", err)
	}
	_, err = s.ParseMap([]string{"-s", "api", "-replicas", "12"}, argbind.Options{})
	if argbind.KindOf(err) != argbind.KindInvalidArgumentValue {
		t.Errorf("ParseMap error = %v, want invalid value", err)
	}
	_, err = s.ParseMap([]string{"-s", "api", "-version", "one"}, argbind.Options{})
	if argbind.KindOf(err) != argbind.KindInvalidArgumentValue {
		t.Errorf("ParseMap error = %v, want invalid value", err)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	f, err := Load(writeFile(t, "deploy.yaml", deployYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	s, err := f.Schema()
	if err != nil {
		t.Fatalf("Schema error: %v", err)
	}
	_, err = s.ParseMap([]string{"-force"}, argbind.Options{})
	var rae *argbind.RequiredArgumentError
	if !errors.As(err, &rae) || rae.Name != "-service" {
		t.Errorf("ParseMap error = %v, want required -service", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml unknown key", TOML, "[[argument]]\nidentifier = \"-a\"\nrequird = true\n"},
		{"yaml unknown key", YAML, "argument:\n  - identifier: -a\n    requird: true\n"},
		{"bad version", TOML, "version = 7\n"},
		{"bad toml", TOML, "[[argument]\n"},
		{"unknown format", Unknown, ""},
	}
	for _, tc := range cases {
		if _, err := Decode(tc.format, []byte(tc.data)); err == nil {
			t.Errorf("%s: Decode succeeded, want error", tc.name)
		}
	}
}

func TestSchemaErrors(t *testing.T) {
	t.Parallel()

	f := &File{Arguments: []Argument{{Identifier: "-a", Type: "complex"}}}
	_, err := f.Schema()
	var se *argbind.SchemaError
	if !errors.As(err, &se) || se.Field != "-a" {
		t.Errorf("Schema error = %v, want SchemaError for -a", err)
	}

	f = &File{Arguments: []Argument{
		{Identifier: "-prop", Alias: "-p"},
		{Identifier: "-property2", Alias: "-prop"},
	}}
	_, err = f.Schema()
	var dup *argbind.DuplicateIdentifierError
	if !errors.As(err, &dup) || dup.Identifier != "-prop" {
		t.Errorf("Schema error = %v, want duplicate -prop", err)
	}
}
