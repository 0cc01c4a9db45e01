// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	"github.com/staranto/aclctl/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Stdout  io.Writer
	Stderr  io.Writer
}

// Out returns where results go; stdout unless overridden.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// Err returns where diagnostics go; stderr unless overridden.
func (m Meta) Err() io.Writer {
	if m.Stderr == nil {
		return os.Stderr
	}
	return m.Stderr
}
