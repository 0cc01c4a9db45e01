// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresHost(t *testing.T) {
	_, err := New("  ")
	assert.ErrorIs(t, err, ErrNoHost)
}

func TestURL(t *testing.T) {
	tests := []struct {
		host   string
		suffix string
		want   string
	}{
		{"http://localhost:8080/app", "list", "http://localhost:8080/app/aclAdmin/cache/list"},
		{"http://localhost:8080/app/", "users", "http://localhost:8080/app/aclAdmin/cache/users"},
		{"http://localhost:8080", "a b/../c", "http://localhost:8080/aclAdmin/cache/a b/../c"},
		{"http://localhost:8080", "", "http://localhost:8080/aclAdmin/cache/"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			a, err := New(tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.URL(tt.suffix))
		})
	}
}

func TestGet(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		switch r.URL.Path {
		case "/app/aclAdmin/cache/list":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"users":{"name":"users"}}`))
		case "/app/aclAdmin/cache/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no such cache"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`boom`))
		}
	}))
	defer srv.Close()

	a, err := New(srv.URL + "/app")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		calls.Store(0)
		resp, err := a.Get(context.Background(), ListSuffix)
		require.NoError(t, err)
		assert.True(t, resp.OK())
		assert.JSONEq(t, `{"users":{"name":"users"}}`, string(resp.Body))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("client error keeps body", func(t *testing.T) {
		resp, err := a.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrStatus)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"no such cache"}`, string(resp.Body))
	})

	t.Run("server error is not retried by default", func(t *testing.T) {
		calls.Store(0)
		resp, err := a.Get(context.Background(), "explode")
		assert.ErrorIs(t, err, ErrStatus)
		require.NotNil(t, resp)
		assert.Equal(t, "boom", string(resp.Body))
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestGet_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a, err := New(url)
	require.NoError(t, err)

	resp, err := a.Get(context.Background(), ListSuffix)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrStatus)
	assert.Nil(t, resp)
}

func TestGet_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	a, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := a.Get(ctx, ListSuffix)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}
