// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

import "fmt"

// Kind classifies a failed request.
type Kind int

const (
	// TransportFailure means no usable payload: the request never completed,
	// or the body carried no structured message.
	TransportFailure Kind = iota
	// ApplicationFailure means the server answered with a {"message": ...}
	// body.
	ApplicationFailure
)

func (k Kind) String() string {
	switch k {
	case TransportFailure:
		return "transport"
	case ApplicationFailure:
		return "application"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Failure is the error returned by every cache service call. Message is what
// gets shown to the user; Cause keeps whatever lower-level error produced it.
type Failure struct {
	Kind    Kind
	Message string
	Cause   error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Cause }
