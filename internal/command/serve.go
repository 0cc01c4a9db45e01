// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/meta"
	"github.com/staranto/aclctl/internal/server"
)

// ServeCommandAction runs the demo admin server with the seeded caches until
// interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	reg := server.NewRegistry(time.Now)
	if err := server.Seed(reg); err != nil {
		return err
	}

	srv := &server.Server{
		Registry:        reg,
		ContextPath:     cmd.String("context"),
		RefreshInterval: cmd.Duration("refresh"),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debugf("serve addr=%s context=%s", cmd.String("addr"), srv.ContextPath)
	return srv.ListenAndServe(ctx, cmd.String("addr"))
}

// ServeCommandBuilder constructs the cli.Command for "serve".
func ServeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return &cli.Command{
		Name:      "serve",
		Usage:     "run a demo admin server",
		UsageText: "aclctl serve [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewAddrFlag("serve", src),
			&cli.StringFlag{
				Name:  "context",
				Usage: "context path the endpoints are mounted under",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("serve.context", altsrc.StringSourcer(src)),
				),
			},
			&cli.DurationFlag{
				Name:  "refresh",
				Usage: "how often caches due for a refresh are reloaded",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("serve.refresh", altsrc.StringSourcer(src)),
				),
				Value: server.DefaultRefreshInterval,
			},
		},
		Action: ServeCommandAction,
	}
}
