// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argbind checks argument vectors against a schema file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argbind/pkg/argbind"
	"github.com/yeetrun/argbind/pkg/cli"
	"golang.org/x/term"
)

var version = "dev"

const schemaEnv = "ARGBIND_SCHEMA"

type app struct {
	stdout io.Writer
	// tokens are the arguments after "--", bound against the schema.
	tokens     []string
	logf       func(format string, args ...any)
	isTerminal func() bool
}

func main() {
	// Tokens after "--" never reach yargs, which would otherwise treat a
	// bound "-h" as a help request.
	cmdArgs, tokens := cli.SplitArgsAtDoubleDash(os.Args[1:])
	globalFlags, remaining, err := cli.ParseGlobal(cmdArgs)
	if err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(2)
	}

	a := &app{
		stdout: os.Stdout,
		tokens: tokens,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
	if globalFlags.Verbose {
		a.logf = log.Printf
	}

	if err := yargs.RunSubcommands(context.Background(), remaining, cli.HelpConfig(), cli.GlobalFlagsExample(), a.handlers()); err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func (a *app) handlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		"check":   a.handleCheck,
		"usage":   a.handleUsage,
		"version": a.handleVersion,
	}
}

func exitCode(err error) int {
	if argbind.KindOf(err) != argbind.KindNone {
		return 1
	}
	return 2
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if kind := argbind.KindOf(err); kind != argbind.KindNone {
		fmt.Fprint(w, color.RedString("%s: ", kind))
	} else {
		var se *argbind.SchemaError
		if errors.As(err, &se) {
			fmt.Fprint(w, color.YellowString("schema: "))
		} else {
			fmt.Fprint(w, color.RedString("error: "))
		}
	}
	fmt.Fprintln(w, err)
}

func (a *app) handleVersion(_ context.Context, args []string) error {
	flags, _, err := cli.ParseVersion(args)
	if err != nil {
		return err
	}
	if flags.JSON {
		b, err := json.Marshal(map[string]string{"version": version})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(b))
		return nil
	}
	fmt.Fprintln(a.stdout, version)
	return nil
}
