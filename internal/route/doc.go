// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package route resolves console paths such as /cache/home to the view that
// handles them. Unknown paths fall back to the dashboard.
package route
