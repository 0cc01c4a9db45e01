// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package ui holds small user-facing helpers shared by the CLI and the
// console.
package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/staranto/aclctl/internal/normalize"
)

// ServerError writes the error banner for msg.
func ServerError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Error:%s\n", msg)
}

// Message returns what a user should see for err. Service failures show
// their display message; anything else shows err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var f *normalize.Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
