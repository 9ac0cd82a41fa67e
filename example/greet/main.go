// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/yeetrun/argbind/pkg/argbind"
)

type greetArgs struct {
	Name     string        `arg:"-name" alias:"-n" required:"true" help:"Who to greet"`
	Greeting string        `arg:"-greeting" default:"Hello" help:"Greeting word"`
	Times    int           `arg:"-times" default:"1" validate:"min=1,max=10" help:"How many times to greet"`
	Interval time.Duration `arg:"-interval" default:"0s" help:"Pause between greetings"`
	Shout    bool          `arg:"-shout" help:"Greet in capitals"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	args, err := argbind.Parse[greetArgs](argv)
	if err != nil {
		fmt.Fprintf(stderr, "greet: %v\n", err)
		// Schema failures get no usage text.
		if argbind.KindOf(err) != argbind.KindNone {
			if schema, err := argbind.SchemaFor[greetArgs](); err == nil {
				fmt.Fprint(stderr, "\n"+schema.Usage("greet"))
			}
		}
		return 2
	}

	msg := fmt.Sprintf("%s, %s!", args.Greeting, args.Name)
	if args.Shout {
		msg = strings.ToUpper(msg)
	}
	for i := range args.Times {
		if i > 0 {
			time.Sleep(args.Interval)
		}
		fmt.Fprintln(stdout, msg)
	}
	return 0
}
