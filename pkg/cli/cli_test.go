// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseGlobalLeavesSubcommand(t *testing.T) {
	flags, rest, err := ParseGlobal([]string{"-v", "check", "--format=json", "deploy.toml"})
	if err != nil {
		t.Fatalf("ParseGlobal failed: %v", err)
	}
	if !flags.Verbose {
		t.Errorf("Verbose = false, want true")
	}
	if got := strings.Join(rest, " "); got != "check --format=json deploy.toml" {
		t.Errorf("rest = %q, want %q", got, "check --format=json deploy.toml")
	}
}

func TestParseCheck(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFormat string
		wantArgs   []string
		wantErr    string
	}{
		{name: "default", args: []string{"check", "deploy.toml"}, wantFormat: FormatAuto, wantArgs: []string{"deploy.toml"}},
		{name: "json", args: []string{"check", "--format", "json", "deploy.toml"}, wantFormat: FormatJSON, wantArgs: []string{"deploy.toml"}},
		{name: "no schema", args: []string{"check"}, wantFormat: FormatAuto, wantArgs: []string{}},
		{name: "bad format", args: []string{"check", "--format=xml"}, wantErr: "unknown format"},
		{name: "two schemas", args: []string{"check", "a.toml", "b.toml"}, wantErr: "at most 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, args, err := ParseCheck(tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseCheck error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCheck failed: %v", err)
			}
			if flags.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", flags.Format, tt.wantFormat)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	flags, _, err := ParseVersion([]string{"version", "--json"})
	if err != nil {
		t.Fatalf("ParseVersion failed: %v", err)
	}
	if !flags.JSON {
		t.Errorf("JSON = false, want true")
	}
}

func TestSplitArgsAtDoubleDash(t *testing.T) {
	tests := []struct {
		args       []string
		wantBefore []string
		wantAfter  []string
	}{
		{[]string{"check", "x.toml"}, []string{"check", "x.toml"}, nil},
		{[]string{"check", "x.toml", "--", "-a", "1"}, []string{"check", "x.toml"}, []string{"-a", "1"}},
		{[]string{"check", "--", "-h", "--", "x"}, []string{"check"}, []string{"-h", "--", "x"}},
		{[]string{"check", "--"}, []string{"check"}, nil},
	}
	for _, tt := range tests {
		before, after := SplitArgsAtDoubleDash(tt.args)
		if !reflect.DeepEqual(before, tt.wantBefore) || !reflect.DeepEqual(after, tt.wantAfter) {
			t.Errorf("SplitArgsAtDoubleDash(%q) = %q, %q; want %q, %q", tt.args, before, after, tt.wantBefore, tt.wantAfter)
		}
	}
}

func TestHelpConfigCoversCommands(t *testing.T) {
	cfg := HelpConfig()
	for _, name := range CommandNames() {
		if _, ok := cfg.SubCommands[name]; !ok {
			t.Errorf("help config missing %q", name)
		}
	}
}
