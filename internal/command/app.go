// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/config"
	"github.com/staranto/aclctl/internal/meta"
)

// AppOption adjusts the Meta handed to every command.
type AppOption func(*meta.Meta)

// WithOutput redirects command output, mostly for tests.
func WithOutput(stdout, stderr io.Writer) AppOption {
	return func(m *meta.Meta) {
		m.Stdout = stdout
		m.Stderr = stderr
	}
}

func InitApp(ctx context.Context, args []string, opts ...AppOption) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the aclctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.WithError(err).Debug("running without a config file")
	}

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}
	for _, opt := range opts {
		opt(&meta)
	}

	app := &cli.Command{
		Name:      "aclctl",
		Usage:     "ACL Admin cache control",
		Writer:    meta.Out(),
		ErrWriter: meta.Err(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "aclctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		ListCommandBuilder(app, meta),
		GetCommandBuilder(app, meta),
		UICommandBuilder(app, meta),
		ServeCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
