// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package normalize turns raw transport responses into a payload or a
// Failure with a displayable message.
package normalize

import (
	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/aclctl/internal/transport"
	"github.com/staranto/aclctl/internal/util"
)

// UnknownError is the message used when a failed response has no usable
// message of its own.
const UnknownError = "An unknown error occurred."

// Normalize dispatches a transport outcome to OnSuccess or OnFailure.
func Normalize(resp *transport.Response, err error) Result[[]byte] {
	if err == nil && resp.OK() {
		return OnSuccess(resp)
	}
	return OnFailure(resp, err)
}

// OnSuccess returns the body verbatim. There is no schema validation here.
func OnSuccess(resp *transport.Response) Result[[]byte] {
	return Ok(resp.Body)
}

// OnFailure always produces an Err. A JSON object body with a truthy
// "message" becomes an ApplicationFailure carrying that message; anything
// else is a TransportFailure with UnknownError. It never panics, whatever the
// response looks like.
func OnFailure(resp *transport.Response, err error) Result[[]byte] {
	var body []byte
	if resp != nil {
		body = resp.Body
	}

	if message, ok := Message(body); ok {
		log.WithError(err).Debugf("application failure: %s", message)
		return Err[[]byte](ApplicationFailure, message, err)
	}

	log.WithError(err).Debug("transport failure")
	return Err[[]byte](TransportFailure, UnknownError, err)
}

// Message extracts the "message" field from a JSON object body. It reports
// false when the body is not an object or the field is missing or falsy
// (null, false, 0 or "").
func Message(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}

	doc := gjson.ParseBytes(body)
	msg := doc.Get("message")
	if !util.EvaluateAnd(doc.IsObject(), msg.Exists(), truthy(msg)) {
		return "", false
	}

	if msg.Type == gjson.JSON {
		return msg.Raw, true
	}
	return msg.String(), true
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}
