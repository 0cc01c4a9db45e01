// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/meta"
	"github.com/staranto/aclctl/internal/route"
	"github.com/staranto/aclctl/internal/transport"
	"github.com/staranto/aclctl/internal/view"
)

// ListCommandAction is the action handler for the "list" subcommand. It
// lists every cache on the server, one row per cache, ordered by id.
func ListCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	if cmd.Bool("interactive") && !cmd.Bool("schema") {
		if isTerminal(m.Out()) {
			adapter, err := NewAdapter(cmd)
			if err != nil {
				return err
			}
			return runConsole(ctx, adapter, route.CacheHomePath, cellFormat(cmd))
		}
		log.Debug("stdout is not a terminal, ignoring --interactive")
	}

	runner := &QueryActionRunner[[]cache.Entry]{
		CommandName: "list",
		SchemaType:  reflect.TypeOf(cache.Entry{}),
		Suffix:      transport.ListSuffix,
		FetchFn: func(ctx context.Context, svc *cache.Service) ([]cache.Entry, error) {
			list, err := svc.List(ctx)
			if err != nil {
				return nil, err
			}
			return view.Materialize(list), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// ListCommandBuilder constructs the cli.Command for "list".
func ListCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "list",
		Usage:     "list the caches on the server",
		UsageText: "aclctl list [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "browse the list in the console when stdout is a terminal",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("list.interactive", altsrc.StringSourcer(meta.Config.Source)),
				),
			},
		},
		Action: ListCommandAction,
	}).Build()
}
