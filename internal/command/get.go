// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/meta"
)

var ErrMissingID = errors.New("a cache id is required")

// GetCommandAction is the action handler for the "get" subcommand. The id is
// passed to the server untouched.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" && !cmd.Bool("schema") {
		return ErrMissingID
	}

	runner := &QueryActionRunner[cache.Entry]{
		CommandName: "get",
		SchemaType:  reflect.TypeOf(cache.Entry{}),
		Suffix:      id,
		FetchFn: func(ctx context.Context, svc *cache.Service) (cache.Entry, error) {
			e, err := svc.Get(ctx, id)
			if err != nil {
				return cache.Entry{}, err
			}
			e.ID = id
			return e, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "get",
		Usage:     "show a single cache",
		UsageText: "aclctl get <id> [options]",
		Meta:      meta,
		Action:    GetCommandAction,
	}).Build()
}
