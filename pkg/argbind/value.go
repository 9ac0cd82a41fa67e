// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argbind

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTimeLayouts are tried in order when converting date-time values.
var DefaultTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	urlType             = reflect.TypeOf(url.URL{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	validate = validator.New()
)

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// checkType reports whether values of t can be produced from a string.
func checkType(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("missing type")
	}
	bt := baseType(t)
	switch {
	case bt == timeType, bt == durationType, bt == urlType:
		return nil
	case reflect.PointerTo(bt).Implements(textUnmarshalerType):
		return nil
	}
	switch bt.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	}
	return fmt.Errorf("unsupported type %s", t)
}

// resolve validates and converts raw for d. name is the identifier as it
// appeared in the input and is what failures carry.
func (d *Descriptor) resolve(name string, raw *string, layouts []string) (reflect.Value, error) {
	if raw == nil {
		return reflect.Value{}, invalidValue(name, nil, errMissingValue)
	}
	if d.pattern != nil && !d.pattern.MatchString(*raw) {
		return reflect.Value{}, invalidValue(name, raw, fmt.Errorf("%w %s", ErrPatternMismatch, d.Pattern))
	}
	v, err := d.convert(*raw, layouts)
	if err != nil {
		return reflect.Value{}, invalidValue(name, raw, err)
	}
	if *raw == "" && d.Required {
		return reflect.Value{}, invalidValue(name, raw, errEmptyRequired)
	}
	if d.Validate != "" {
		if err := validate.Var(v.Interface(), d.Validate); err != nil {
			return reflect.Value{}, invalidValue(name, raw, err)
		}
	}
	return v, nil
}

// flagValue is the value a boolean flag takes when present.
func (d *Descriptor) flagValue() reflect.Value {
	v := reflect.New(d.Type).Elem()
	target := v
	for target.Kind() == reflect.Pointer {
		target.Set(reflect.New(target.Type().Elem()))
		target = target.Elem()
	}
	target.SetBool(true)
	return v
}

func (d *Descriptor) convert(raw string, layouts []string) (reflect.Value, error) {
	if d.Parse != nil {
		out, err := d.Parse(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		v := reflect.ValueOf(out)
		if !v.IsValid() {
			return reflect.Value{}, fmt.Errorf("parser returned no value")
		}
		if d.Type == nil {
			return v, nil
		}
		if !v.Type().ConvertibleTo(d.Type) {
			return reflect.Value{}, fmt.Errorf("parser returned %s, want %s", v.Type(), d.Type)
		}
		return v.Convert(d.Type), nil
	}
	v := reflect.New(d.Type).Elem()
	if err := setValue(v, raw, layouts); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}

// setValue sets v from a raw string. v must be addressable.
func setValue(v reflect.Value, raw string, layouts []string) error {
	t := v.Type()
	switch {
	case t.Kind() == reflect.Pointer:
		elem := reflect.New(t.Elem())
		if err := setValue(elem.Elem(), raw, layouts); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case t == timeType:
		tm, err := parseTime(raw, layouts)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(tm))
		return nil
	case t == durationType:
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		v.SetInt(int64(dur))
		return nil
	case t == urlType:
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		v.Set(reflect.ValueOf(*u))
		return nil
	case v.Addr().Type().Implements(textUnmarshalerType):
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", raw)
		}
		v.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer value %q", raw)
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer value %q", raw)
		}
		v.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", raw)
		}
		v.SetFloat(f)
		return nil

	default:
		return fmt.Errorf("unsupported type %s", t)
	}
}

func parseTime(raw string, layouts []string) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts
	}
	for _, layout := range layouts {
		if tm, err := time.Parse(layout, raw); err == nil {
			return tm, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time value %q", raw)
}
