// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/console"
	"github.com/staranto/aclctl/internal/datatable"
	"github.com/staranto/aclctl/internal/meta"
	"github.com/staranto/aclctl/internal/route"
	"github.com/staranto/aclctl/internal/transport"
	"github.com/staranto/aclctl/internal/view"
)

var ErrNotTerminal = errors.New("the console needs a terminal")

// UICommandAction opens the console on the route given as the first
// argument, or --route.
func UICommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if !isTerminal(m.Out()) {
		return ErrNotTerminal
	}

	start := cmd.Args().First()
	if start == "" {
		start = cmd.String("route")
	}

	adapter, err := NewAdapter(cmd)
	if err != nil {
		return err
	}

	return runConsole(ctx, adapter, start, cellFormat(cmd))
}

// UICommandBuilder constructs the cli.Command for "ui".
func UICommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	flags := append(NewConnectionFlags("ui", src),
		&cli.BoolFlag{
			Name:  "local",
			Usage: "show times in the local time zone",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("ui.local", altsrc.StringSourcer(src)),
				yaml.YAML("local", altsrc.StringSourcer(src)),
			),
		},
		&cli.BoolFlag{
			Name:    "relative",
			Aliases: []string{"r"},
			Usage:   "show times relative to now",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("ui.relative", altsrc.StringSourcer(src)),
			),
		},
		NameSpacedValueChainFlagFromConfigFile("ui", src, &cli.StringFlag{
			Name:    "route",
			Usage:   "route to open when none is given as an argument",
			Sources: cli.NewValueSourceChain(),
			Value:   route.DefaultPath,
		}),
	)

	return &cli.Command{
		Name:      "ui",
		Usage:     "browse the caches in an interactive console",
		UsageText: "aclctl ui [route] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: UICommandAction,
	}
}

func runConsole(ctx context.Context, adapter *transport.Adapter, start string, format view.CellFormat) error {
	page := datatable.NewPage()
	m := console.New(ctx, console.Options{
		Router:    route.New(),
		Cache:     view.NewCacheController(cache.NewService(adapter), page, format),
		Dashboard: view.NewDashboardController(view.DashboardService{}),
		Start:     start,
	})
	return console.Run(ctx, m, tea.WithAltScreen())
}

func cellFormat(cmd *cli.Command) view.CellFormat {
	f := view.CellFormat{Relative: cmd.Bool("relative")}
	if cmd.Bool("local") {
		f.Location = time.Local
	}
	return f
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
