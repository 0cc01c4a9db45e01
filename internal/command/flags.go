// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/server"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by the query commands. ns is
// the command name and src the config file.
func NewGlobalFlags(ns string, src string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(src)),
				yaml.YAML("color", altsrc.StringSourcer(src)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "show times in the local time zone",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"local", altsrc.StringSourcer(src)),
				yaml.YAML("local", altsrc.StringSourcer(src)),
			),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(src)),
				yaml.YAML("output", altsrc.StringSourcer(src)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "relative",
			Aliases: []string{"r"},
			Usage:   "show times relative to now",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"relative", altsrc.StringSourcer(src)),
			),
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(src)),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(src)),
				yaml.YAML("titles", altsrc.StringSourcer(src)),
			),
			Value: false,
		},
	}

	return
}

// NewConnectionFlags returns the flags every command talking to a server
// needs.
func NewConnectionFlags(ns string, src string) []cli.Flag {
	return []cli.Flag{
		NewHostFlag(ns, src),
		NewRetriesFlag(ns, src),
	}
}

// NewHostFlag constructs the "host" flag: scheme, authority and context path
// of the admin server. params[0] is the namespace and params[1] the config
// file; without them only the environment is consulted.
func NewHostFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "host",
		Aliases: []string{"H"},
		Usage:   "base URL of the admin server, including the context path",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ACLCTL_HOST"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, HostValidator)
		},
	}

	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewRetriesFlag constructs the "retries" flag. Zero means one network call
// per request.
func NewRetriesFlag(ns string, src string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "retries",
		Usage: "how many times a failed request is retried",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ACLCTL_RETRIES"),
			yaml.YAML(ns+"."+"retries", altsrc.StringSourcer(src)),
			yaml.YAML("retries", altsrc.StringSourcer(src)),
		),
		Value: 0,
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
}

// NewAddrFlag constructs the listen address flag for serve.
func NewAddrFlag(ns string, src string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "addr",
		Aliases: []string{"a"},
		Usage:   "address to listen on",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ACLCTL_ADDR"),
		),
		Value: server.DefaultAddr,
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, src, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
