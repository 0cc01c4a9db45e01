// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package transport issues the GET requests behind the cache admin console.
// It knows the endpoint layout and nothing about payloads; turning a response
// into a value or a failure is the normalize package's job.
package transport
