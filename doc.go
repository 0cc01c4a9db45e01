// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// aclctl is a command line client and console for the ACL Admin cache
// endpoints. It wires the CLI, delegates to internal packages, and serves as
// the entry point.
package main
