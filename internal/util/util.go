// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package util holds small helpers shared across packages.
package util

// EvaluateAnd reports whether every value is true. It stops at the first
// false value. With no values it returns true.
func EvaluateAnd(values ...bool) bool {
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}
