// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build version, set at link time with
// -ldflags "-X github.com/staranto/aclctl/internal/version.Version=...".
package version

var Version = "dev"
