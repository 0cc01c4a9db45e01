// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package datatable is a small stateful table widget: fixed columns, rows
// keyed by an id, fixed-size pages and a click action. It holds state only;
// output and console render it.
package datatable
