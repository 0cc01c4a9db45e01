// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/config"
	"github.com/staranto/aclctl/internal/meta"
	"github.com/staranto/aclctl/internal/normalize"
	"github.com/staranto/aclctl/internal/output"
	"github.com/staranto/aclctl/internal/transport"
	"github.com/staranto/aclctl/internal/ui"
)

// DumpSchemaIfRequested prints the schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type, w io.Writer) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(w, t)
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewAdapter builds the transport for the --host and --retries flags.
func NewAdapter(cmd *cli.Command) (*transport.Adapter, error) {
	host := cmd.String("host")
	a, err := transport.New(host, transport.WithRetries(cmd.Int("retries")))
	if errors.Is(err, transport.ErrNoHost) {
		return nil, fmt.Errorf("%w: use --host, ACLCTL_HOST or host in %s", err, config.FileName)
	}
	return a, err
}

// CacheOutputColumns are the fields the query commands emit, filter and sort
// on.
func CacheOutputColumns() output.Columns {
	return output.Columns{
		{Key: "id", OutputKey: "id", Include: true},
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "size", OutputKey: "size", Kind: output.KindNumber, Include: true},
		{Key: "initializedTime", OutputKey: "initializedTime", Kind: output.KindTime, Include: true},
		{Key: "lastRefreshedTime", OutputKey: "lastRefreshedTime", Kind: output.KindTime, Include: true},
	}
}

// ReportError writes err for the user. Service failures go through the
// serverError format; anything else is printed as is.
func ReportError(w io.Writer, err error) {
	var f *normalize.Failure
	if errors.As(err, &f) {
		ui.ServerError(w, ui.Message(err))
		return
	}
	fmt.Fprintln(w, err)
}

// QueryCommandBuilder is a helper that constructs a cli.Command for the
// query subcommands (list, get) using a consistent pattern. The builder wires
// metadata, adds the schema flag, the connection and output flags, and sets
// up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	src := qcb.Meta.Config.Source
	flags := append(qcb.Flags, newSchemaFlag())
	flags = append(flags, NewConnectionFlags(qcb.Name, src)...)
	flags = append(flags, NewGlobalFlags(qcb.Name, src)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action: GetMeta, the
// schema short-circuit, the raw passthrough and output emission, with data
// fetching provided by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName string
	SchemaType  reflect.Type
	// Suffix is the resource fetched for --output raw.
	Suffix  string
	FetchFn func(context.Context, *cache.Service) (T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %s", qar.CommandName)

	if DumpSchemaIfRequested(cmd, qar.SchemaType, m.Out()) {
		return nil
	}

	adapter, err := NewAdapter(cmd)
	if err != nil {
		return err
	}

	opts := output.OptionsFromCommand(cmd)

	// raw hands the server's body through untouched.
	if opts.Output == "raw" {
		body, err := normalize.Normalize(adapter.Get(ctx, qar.Suffix)).Unwrap()
		if err != nil {
			return err
		}
		return output.SliceDiceSpit(body, nil, opts, m.Out())
	}

	results, err := qar.FetchFn(ctx, cache.NewService(adapter))
	if err != nil {
		return err
	}

	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return output.SliceDiceSpit(raw, CacheOutputColumns(), opts, m.Out())
}
