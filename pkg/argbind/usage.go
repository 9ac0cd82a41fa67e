// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"fmt"
	"reflect"
	"strings"
)

// Usage renders help text for the schema's arguments in declaration order.
func (s *Schema) Usage(name string) string {
	var b strings.Builder

	b.WriteString("USAGE:\n")
	if len(s.descs) == 0 {
		b.WriteString(fmt.Sprintf("    %s\n", name))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("    %s [ARGUMENTS]\n\n", name))

	b.WriteString("ARGUMENTS:\n")
	for i := range s.descs {
		d := &s.descs[i]
		names := d.Identifier
		if d.Alias != "" {
			names += ", " + d.Alias
		}
		if !d.IsBoolFlag() {
			names += " <" + typeLabel(d) + ">"
		}
		line := fmt.Sprintf("    %s", names)
		if d.Help != "" {
			line = fmt.Sprintf("%-32s %s", line, d.Help)
		}
		b.WriteString(line)
		if d.Required {
			b.WriteString(" (required)")
		}
		if d.Default != "" {
			b.WriteString(fmt.Sprintf(" (default: %s)", d.Default))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func typeLabel(d *Descriptor) string {
	if d.Type == nil {
		return "value"
	}
	t := baseType(d.Type)
	switch t {
	case timeType:
		return "datetime"
	case durationType:
		return "duration"
	case urlType:
		return "url"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	}
	if t.Name() == "" {
		return "value"
	}
	return strings.ToLower(t.Name())
}
