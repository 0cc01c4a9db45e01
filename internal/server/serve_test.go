// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	reg := NewRegistry(nil)
	require.NoError(t, reg.Register("users", &Cache{Name: "Users"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := &Server{Registry: reg, ContextPath: "/app", RefreshInterval: time.Hour}
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/app/aclAdmin/cache/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := &Server{Registry: NewRegistry(nil)}
	err = s.ListenAndServe(context.Background(), ln.Addr().String())
	assert.ErrorContains(t, err, "failed to listen")
}

func TestServer_ServeErrorStopsRefresh(t *testing.T) {
	var loads atomic.Int64
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register("users", &Cache{
		Name: "Users",
		Age:  time.Nanosecond,
		Loader: func() (map[string]string, error) {
			loads.Add(1)
			return map[string]string{}, nil
		},
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	s := &Server{Registry: reg, RefreshInterval: 5 * time.Millisecond}
	assert.Error(t, s.Serve(context.Background(), ln))

	time.Sleep(50 * time.Millisecond)
	settled := loads.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, loads.Load(), "refreshes continued after Serve returned")
}
