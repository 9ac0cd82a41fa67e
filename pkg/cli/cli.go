// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shayne/yargs"
)

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

// Output formats accepted by the check command.
const (
	FormatAuto  = "auto"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

type CheckFlags struct {
	Format string
}

type VersionFlags struct {
	JSON bool
}

type GlobalFlags struct {
	Verbose bool
}

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Trace binding stages to stderr"`
}

type checkFlagsParsed struct {
	Format string `flag:"format" default:"auto" help:"Output format (auto|plain|json)"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json" help:"Print version as JSON"`
}

var commandInfos = map[string]CommandInfo{
	"check": {
		Name:        "check",
		Description: "Bind the tokens after -- against a schema and print the values",
		Usage:       "[--format=auto|plain|json] [SCHEMA] -- TOKENS...",
		Examples: []string{
			"argbind check ./deploy.toml -- -service api -f",
			"argbind check --format=json ./deploy.yaml -- -s api",
		},
	},
	"usage": {
		Name:        "usage",
		Description: "Print the usage text described by a schema",
		Usage:       "[SCHEMA]",
		Examples:    []string{"ARGBIND_SCHEMA=./deploy.toml argbind usage"},
	},
	"version": {
		Name:        "version",
		Description: "Print the argbind version",
		Usage:       "[--json]",
	},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = toSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argbind",
			Description: "Bind argument vectors against a declarative schema file.",
			Examples: []string{
				"argbind check ./deploy.toml -- -service api",
				"argbind usage ./deploy.toml",
			},
		},
		SubCommands: subcommands,
	}
}

// GlobalFlagsExample is passed to yargs so global flags show up in help.
func GlobalFlagsExample() any {
	return globalFlagsParsed{}
}

func toSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseGlobal pulls the global flags out of args and returns the rest,
// leaving unknown flags for the subcommand.
func ParseGlobal(args []string) (GlobalFlags, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return GlobalFlags{}, nil, err
	}
	return GlobalFlags{Verbose: result.Flags.Verbose}, result.RemainingArgs, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parsed, err := parseFlags[checkFlagsParsed](stripCommand("check", args))
	if err != nil {
		return CheckFlags{}, nil, err
	}
	switch parsed.Flags.Format {
	case FormatAuto, FormatPlain, FormatJSON:
	default:
		return CheckFlags{}, nil, fmt.Errorf("unknown format %q (want %s, %s or %s)", parsed.Flags.Format, FormatAuto, FormatPlain, FormatJSON)
	}
	if err := RequireArgsAtMost("check", parsed.Args, 1); err != nil {
		return CheckFlags{}, nil, err
	}
	return CheckFlags{Format: parsed.Flags.Format}, parsed.Args, nil
}

func ParseUsage(args []string) ([]string, error) {
	parsed, err := parseFlags[struct{}](stripCommand("usage", args))
	if err != nil {
		return nil, err
	}
	if err := RequireArgsAtMost("usage", parsed.Args, 1); err != nil {
		return nil, err
	}
	return parsed.Args, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parsed, err := parseFlags[versionFlagsParsed](stripCommand("version", args))
	if err != nil {
		return VersionFlags{}, nil, err
	}
	return VersionFlags{JSON: parsed.Flags.JSON}, parsed.Args, nil
}

type parsedFlags[T any] struct {
	Flags T
	Args  []string
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut}, nil
}

// stripCommand drops the subcommand name that yargs hands to handlers.
func stripCommand(name string, args []string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

// SplitArgsAtDoubleDash splits args at the first "--". The separator itself
// is dropped.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func RequireArgsAtMost(subcmd string, args []string, count int) error {
	if len(args) > count {
		return fmt.Errorf("'%s' takes at most %d argument(s), got %d: %s", subcmd, count, len(args), strings.Join(args, " "))
	}
	return nil
}
