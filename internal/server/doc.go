// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package server is a small stand-in for the admin application: a registry
// of named in-memory caches exposed under <context>/aclAdmin/cache/. It backs
// `aclctl serve` and the end-to-end tests.
package server
