// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/aclctl/internal/normalize"
	"github.com/staranto/aclctl/internal/transport"
)

// Getter is the transport the service needs. *transport.Adapter satisfies it.
type Getter interface {
	Get(ctx context.Context, suffix string) (*transport.Response, error)
}

// Service lists caches and fetches single entries. Errors returned by its
// methods are always *normalize.Failure.
type Service struct {
	transport Getter
}

func NewService(t Getter) *Service {
	return &Service{transport: t}
}

// List fetches every cache summary, keyed by cache id.
func (s *Service) List(ctx context.Context) (List, error) {
	log.Debug("listing caches")
	raw := normalize.Normalize(s.transport.Get(ctx, transport.ListSuffix))
	return normalize.Then(raw, decode[List]).Unwrap()
}

// Get fetches a single cache by id. The id goes into the request path as-is;
// it is neither validated nor escaped.
func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	log.Debugf("getting cache %q", id)
	raw := normalize.Normalize(s.transport.Get(ctx, id))
	return normalize.Then(raw, decode[Entry]).Unwrap()
}

// decode turns a successful payload into T. A payload that does not decode
// is no usable payload at all, so it is reported as a transport failure.
func decode[T any](payload []byte) normalize.Result[T] {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		log.WithError(err).Error("undecodable payload")
		return normalize.Err[T](
			normalize.TransportFailure,
			normalize.UnknownError,
			fmt.Errorf("failed to decode payload: %w", err),
		)
	}
	return normalize.Ok(v)
}
