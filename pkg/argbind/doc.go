// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argbind binds command-line tokens into typed, validated structs.
//
// Bound fields are declared with struct tags:
//
//	type Options struct {
//	    Name   string    `arg:"-name" alias:"-n" required:"true" help:"Your name"`
//	    Age    int       `arg:"-age" alias:"-a"`
//	    Day    int       `arg:"-dayOfBirth" alias:"-d" pattern:"^((3[01])|([1-2][0-9])|([1-9]))$"`
//	    Silent bool      `arg:"-silent" alias:"-s"`
//	    From   string    `arg:"-emailFrom" default:"contact@mydomain.com"`
//	    When   time.Time `arg:"-date"`
//	    Notes  string    // not bound
//	}
//
//	opts, err := argbind.ParseArgs[Options]()
//
// Identifiers and aliases share a single namespace; a repeated name is a
// DuplicateIdentifierError, detected before any token is read. Identifiers
// are matched exactly and case-sensitively.
//
// # Token pairing
//
// Every identifier except a boolean flag takes the following token as its
// value. Boolean flags are presence-only and never consume a token. A value
// is missing when the identifier is last or is followed by another
// identifier.
//
// # Resolution
//
// A raw value is checked against the `pattern` tag, converted to the field
// type and then checked against the optional `validate` tag
// (github.com/go-playground/validator rules). Supported field types are
// string, bool, signed and unsigned integers, floats, time.Duration,
// time.Time, url.URL, any encoding.TextUnmarshaler, and pointers to these.
// Pointer fields stay nil when their argument is absent.
//
// After all tokens are consumed, absent required arguments fail with
// RequiredArgumentError and absent optional arguments take their `default`
// tag, which goes through the same checks as user input.
//
// # Failures
//
// The first failure aborts the parse and no instance is returned. Failures
// are reported in this order: value failures in token order, then unknown
// arguments, then required and default failures in declaration order. Use
// errors.As or KindOf to inspect them.
//
// # Schemas without structs
//
// NewSchema accepts a descriptor table directly, for shapes known only at
// run time; Schema.ParseMap returns the values keyed by identifier.
package argbind
