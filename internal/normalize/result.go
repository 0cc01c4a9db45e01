// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

// Result is either a value (Ok) or a Failure (Err).
type Result[T any] struct {
	value   T
	failure *Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failure of the given kind.
func Err[T any](kind Kind, message string, cause error) Result[T] {
	return Result[T]{failure: &Failure{Kind: kind, Message: message, Cause: cause}}
}

// Fail carries an existing failure into a Result of another type.
func Fail[T any](f *Failure) Result[T] {
	return Result[T]{failure: f}
}

func (r Result[T]) IsOk() bool { return r.failure == nil }

// Value returns the wrapped value, or T's zero value for an Err.
func (r Result[T]) Value() T { return r.value }

// Failure returns nil for an Ok.
func (r Result[T]) Failure() *Failure { return r.failure }

// Unwrap converts the result into Go's (value, error) pair. The error, when
// present, is always a *Failure.
func (r Result[T]) Unwrap() (T, error) {
	if r.failure != nil {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}

// Then maps an Ok value through fn. An Err passes through untouched.
func Then[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.failure != nil {
		return Fail[U](r.failure)
	}
	return fn(r.value)
}
