// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package console is the interactive cache console: a Bubble Tea program
// that follows the route table, showing the dashboard or the paged cache
// list.
package console
