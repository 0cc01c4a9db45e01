// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/apex/log"
)

// DefaultAddr is where `aclctl serve` listens unless told otherwise.
const DefaultAddr = "127.0.0.1:8080"

// DefaultRefreshInterval is how often due caches are refreshed.
const DefaultRefreshInterval = 5 * time.Minute

// Server runs the admin handler and the scheduled refresh.
type Server struct {
	Registry        *Registry
	ContextPath     string
	RefreshInterval time.Duration
}

// Serve accepts connections on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           NewHandler(s.Registry, s.ContextPath),
		ReadHeaderTimeout: 10 * time.Second,
	}

	interval := s.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	// The refresh loop ends with Serve, however Serve returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.refreshLoop(ctx, interval)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	log.Infof("serving %s/aclAdmin/cache/ on %s", s.ContextPath, ln.Addr())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) refreshLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ids := s.Registry.RefreshDue(); len(ids) > 0 {
				log.Debugf("refreshed %v", ids)
			}
		}
	}
}
