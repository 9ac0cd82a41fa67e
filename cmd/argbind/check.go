// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/yeetrun/argbind/pkg/argbind"
	"github.com/yeetrun/argbind/pkg/cli"
	"github.com/yeetrun/argbind/pkg/schemafile"
)

func (a *app) handleCheck(_ context.Context, args []string) error {
	flags, positional, err := cli.ParseCheck(args)
	if err != nil {
		return err
	}
	file, schema, err := loadSchema(positional)
	if err != nil {
		return err
	}
	if a.logf != nil {
		a.logf("binding %d token(s) against %q", len(a.tokens), file.Name)
	}

	values, err := schema.ParseMap(a.tokens, argbind.Options{Logf: a.logf})
	if err != nil {
		return err
	}

	format := flags.Format
	if format == cli.FormatAuto {
		format = cli.FormatJSON
		if a.isTerminal != nil && a.isTerminal() {
			format = cli.FormatPlain
		}
	}
	if format == cli.FormatPlain {
		return writePlain(a, schema, values)
	}
	return writeJSON(a, values)
}

func (a *app) handleUsage(_ context.Context, args []string) error {
	positional, err := cli.ParseUsage(args)
	if err != nil {
		return err
	}
	file, schema, err := loadSchema(positional)
	if err != nil {
		return err
	}
	if file.Description != "" {
		fmt.Fprintf(a.stdout, "%s - %s\n\n", file.Name, file.Description)
	}
	fmt.Fprint(a.stdout, schema.Usage(file.Name))
	return nil
}

// loadSchema loads the schema named by the single positional argument, or
// by $ARGBIND_SCHEMA when none is given.
func loadSchema(positional []string) (*schemafile.File, *argbind.Schema, error) {
	var path string
	if len(positional) > 0 {
		path = positional[0]
	} else if path = os.Getenv(schemaEnv); path == "" {
		return nil, nil, fmt.Errorf("missing schema file (pass a path or set %s)", schemaEnv)
	}

	file, err := schemafile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if file.Name == "" {
		base := filepath.Base(path)
		file.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	schema, err := file.Schema()
	if err != nil {
		return nil, nil, err
	}
	return file, schema, nil
}

func writePlain(a *app, schema *argbind.Schema, values map[string]any) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ARGUMENT\tVALUE")
	for _, d := range schema.Descriptors() {
		fmt.Fprintf(tw, "%s\t%v\n", d.Identifier, displayValue(values[d.Identifier]))
	}
	return tw.Flush()
}

func writeJSON(a *app, values map[string]any) error {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = displayValue(v)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	fmt.Fprintln(a.stdout, string(b))
	return nil
}

// displayValue renders values whose default encoding is unhelpful.
func displayValue(v any) any {
	switch v := v.(type) {
	case time.Duration:
		return v.String()
	case *url.URL:
		if v == nil {
			return nil
		}
		return v.String()
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	}
	return v
}
