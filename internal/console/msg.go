// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ActivatedMsg reports that a cache list activation has settled.
type ActivatedMsg struct {
	Err error
}

// Activator is what the console needs from the cache controller.
type Activator interface {
	Activate(ctx context.Context) error
}

// activate runs one activation off the UI goroutine.
func activate(ctx context.Context, a Activator) tea.Cmd {
	return func() tea.Msg {
		return ActivatedMsg{Err: a.Activate(ctx)}
	}
}
