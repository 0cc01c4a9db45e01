// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package view holds the console's controllers: the dashboard and the cache
// listing, which fetches the cache list on activation and pushes it into the
// cacheListDT table.
package view
